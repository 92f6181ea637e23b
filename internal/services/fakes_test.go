package services

import (
	"context"
	"slices"
	"sync"

	"github.com/minhquy1903/snapchat/internal/models"
)

// fakeUserStore keeps records in memory and hands out copies, matching the
// serialize-through-the-store behavior of the real repository.
type fakeUserStore struct {
	mu      sync.Mutex
	users   map[string]*models.UserRecord
	getErr  map[string]error
	putErr  map[string]error
	listErr error
	puts    []string
}

func newFakeUserStore(users ...*models.UserRecord) *fakeUserStore {
	f := &fakeUserStore{
		users:  make(map[string]*models.UserRecord),
		getErr: make(map[string]error),
		putErr: make(map[string]error),
	}
	for _, u := range users {
		f.users[u.ID] = cloneUser(u)
	}
	return f
}

func (f *fakeUserStore) Get(ctx context.Context, id string) (*models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.getErr[id]; err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (f *fakeUserStore) Put(ctx context.Context, user *models.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.putErr[user.ID]; err != nil {
		return err
	}
	f.users[user.ID] = cloneUser(user)
	f.puts = append(f.puts, user.ID)
	return nil
}

func (f *fakeUserStore) List(ctx context.Context) ([]models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	users := make([]models.UserRecord, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *cloneUser(u))
	}
	return users, nil
}

func (f *fakeUserStore) record(id string) *models.UserRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneUser(f.users[id])
}

func cloneUser(u *models.UserRecord) *models.UserRecord {
	if u == nil {
		return nil
	}
	out := *u
	out.Pending = slices.Clone(u.Pending)
	out.Waiting = slices.Clone(u.Waiting)
	return &out
}

// fakeFeedStore keeps notification feeds in memory.
type fakeFeedStore struct {
	mu     sync.Mutex
	feeds  map[string][]models.Notification
	getErr map[string]error
	putErr map[string]error
}

func newFakeFeedStore() *fakeFeedStore {
	return &fakeFeedStore{
		feeds:  make(map[string][]models.Notification),
		getErr: make(map[string]error),
		putErr: make(map[string]error),
	}
}

func (f *fakeFeedStore) Get(ctx context.Context, ownerID string) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.getErr[ownerID]; err != nil {
		return nil, err
	}
	return slices.Clone(f.feeds[ownerID]), nil
}

func (f *fakeFeedStore) Put(ctx context.Context, ownerID string, feed []models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.putErr[ownerID]; err != nil {
		return err
	}
	f.feeds[ownerID] = slices.Clone(feed)
	return nil
}

func (f *fakeFeedStore) feed(ownerID string) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.feeds[ownerID])
}

// fakeBridge records friendship registrations.
type fakeBridge struct {
	mu    sync.Mutex
	calls [][2]string
	err   error
}

func (f *fakeBridge) RegisterFriendship(ctx context.Context, userID, friendID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, [2]string{userID, friendID})
	return nil
}

func (f *fakeBridge) registered() [][2]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// fakeUserCreator records messaging platform account registrations.
type fakeUserCreator struct {
	mu    sync.Mutex
	users []string
	err   error
}

func (f *fakeUserCreator) CreateUser(ctx context.Context, user *models.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.users = append(f.users, user.ID)
	return nil
}

// fakeStoryStore keeps stories in memory.
type fakeStoryStore struct {
	mu      sync.Mutex
	stories []models.Story
	putErr  error
}

func (f *fakeStoryStore) Put(ctx context.Context, story *models.Story) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.stories = append(f.stories, *story)
	return nil
}

func (f *fakeStoryStore) List(ctx context.Context) ([]models.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.stories), nil
}
