package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/session"
)

type mockFriendService struct {
	sendFunc   func(ctx context.Context, sess session.Context, receiverID string) error
	acceptFunc func(ctx context.Context, sess session.Context, notificationID string) error
	rejectFunc func(ctx context.Context, sess session.Context, notificationID string) error
}

func (m *mockFriendService) SendRequest(ctx context.Context, sess session.Context, receiverID string) error {
	return m.sendFunc(ctx, sess, receiverID)
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, sess session.Context, notificationID string) error {
	return m.acceptFunc(ctx, sess, notificationID)
}

func (m *mockFriendService) RejectRequest(ctx context.Context, sess session.Context, notificationID string) error {
	return m.rejectFunc(ctx, sess, notificationID)
}

type mockSuggestionService struct {
	listFunc func(ctx context.Context, sess session.Context) ([]models.UserRecord, error)
}

func (m *mockSuggestionService) ListSuggestions(ctx context.Context, sess session.Context) ([]models.UserRecord, error) {
	return m.listFunc(ctx, sess)
}

type mockUserService struct {
	createFunc  func(ctx context.Context, params models.CreateUserParams) (*models.UserRecord, error)
	getByIDFunc func(ctx context.Context, id string) (*models.UserRecord, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.UserRecord, error) {
	return m.createFunc(ctx, params)
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*models.UserRecord, error) {
	return m.getByIDFunc(ctx, id)
}

type mockStoryService struct {
	createFunc func(ctx context.Context, sess session.Context, params models.CreateStoryParams) (*models.Story, error)
	listFunc   func(ctx context.Context) ([]models.Story, error)
}

func (m *mockStoryService) Create(ctx context.Context, sess session.Context, params models.CreateStoryParams) (*models.Story, error) {
	return m.createFunc(ctx, sess, params)
}

func (m *mockStoryService) List(ctx context.Context) ([]models.Story, error) {
	return m.listFunc(ctx)
}

type mockSessionIssuer struct {
	issueFunc  func(ctx context.Context, user *models.UserRecord) (string, error)
	revokeFunc func(ctx context.Context, token string) error
}

func (m *mockSessionIssuer) Issue(ctx context.Context, user *models.UserRecord) (string, error) {
	return m.issueFunc(ctx, user)
}

func (m *mockSessionIssuer) Revoke(ctx context.Context, token string) error {
	return m.revokeFunc(ctx, token)
}

type mockFeedReader struct {
	getFunc func(ctx context.Context, ownerID string) ([]models.Notification, error)
}

func (m *mockFeedReader) Get(ctx context.Context, ownerID string) ([]models.Notification, error) {
	return m.getFunc(ctx, ownerID)
}

type mockHealthChecker struct {
	healthFunc func(ctx context.Context) error
}

func (m *mockHealthChecker) Health(ctx context.Context) error {
	return m.healthFunc(ctx)
}

// withSession attaches an authenticated session to a request, mimicking
// what the auth middleware does.
func withSession(r *http.Request, userID string) *http.Request {
	sess := session.Context{
		UserID: userID,
		Record: &models.UserRecord{ID: userID, Fullname: "Test User"},
	}
	return r.WithContext(SetSessionInContext(r.Context(), sess))
}

func doRequest(handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, r)
	return rec
}
