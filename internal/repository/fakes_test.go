package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/minhquy1903/snapchat/internal/store"
)

// fakeStore is an in-memory store.Store with the same full-document-replace
// semantics as the real one.
type fakeStore struct {
	mu       sync.Mutex
	data     map[string]map[string]json.RawMessage
	readErr  error
	writeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]map[string]json.RawMessage)}
}

func (f *fakeStore) Read(ctx context.Context, path string) (json.RawMessage, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	collection, id, err := store.SplitPath(path)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.data[collection][id]
	if !ok {
		return nil, nil
	}
	return doc, nil
}

func (f *fakeStore) ReadTree(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	docs := make(map[string]json.RawMessage, len(f.data[collection]))
	for id, doc := range f.data[collection] {
		docs[id] = doc
	}
	return docs, nil
}

func (f *fakeStore) Write(ctx context.Context, path string, doc any) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	collection, id, err := store.SplitPath(path)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data[collection] == nil {
		f.data[collection] = make(map[string]json.RawMessage)
	}
	f.data[collection][id] = payload
	return nil
}

func (f *fakeStore) Subscribe(ctx context.Context, collection string, fn store.SnapshotFunc) (*store.Subscription, error) {
	docs, err := f.ReadTree(ctx, collection)
	if err != nil {
		return nil, err
	}

	sub := store.NewSubscription(nil)
	if err := sub.Activate(); err != nil {
		return nil, err
	}
	fn(store.Snapshot{Collection: collection, Docs: docs})
	return sub, nil
}
