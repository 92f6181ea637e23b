// Package store is the client for the remote document store. Documents are
// addressed by "collection/id" paths, reads and writes operate on whole
// documents, and collections can be subscribed to for live snapshots. The
// store offers no cross-document transactions; every write replaces whatever
// the document contains at that moment.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	CollectionUsers         = "users"
	CollectionNotifications = "notifications"
	CollectionStories       = "stories"
)

var (
	ErrInvalidPath = errors.New("invalid document path")
)

// Snapshot is a point-in-time decoded view of one collection, delivered to
// subscribers once immediately and again after every write to the collection.
type Snapshot struct {
	Collection string
	Docs       map[string]json.RawMessage
}

// SnapshotFunc receives snapshots. It is called from the subscription's own
// goroutine, never concurrently with itself.
type SnapshotFunc func(Snapshot)

// Store is the remote document store boundary. Read returns nil with no error
// when the document is absent.
type Store interface {
	Read(ctx context.Context, path string) (json.RawMessage, error)
	ReadTree(ctx context.Context, collection string) (map[string]json.RawMessage, error)
	Write(ctx context.Context, path string, doc any) error
	Subscribe(ctx context.Context, collection string, fn SnapshotFunc) (*Subscription, error)
}

// Path builds a document path from a collection and an id.
func Path(collection, id string) string {
	return collection + "/" + id
}

// SplitPath breaks "collection/id" into its parts.
func SplitPath(path string) (collection, id string, err error) {
	collection, id, ok := strings.Cut(path, "/")
	if !ok || collection == "" || id == "" || strings.Contains(id, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return collection, id, nil
}
