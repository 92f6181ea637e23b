package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/store"
)

// FeedRepository reads and writes per-user notification feeds. A feed is one
// document holding the owner's ordered notification list; appends and status
// updates both rewrite the whole document.
type FeedRepository struct {
	store store.Store
}

func NewFeedRepository(s store.Store) *FeedRepository {
	return &FeedRepository{store: s}
}

// Get returns nil without an error when the owner has no feed yet.
func (r *FeedRepository) Get(ctx context.Context, ownerID string) ([]models.Notification, error) {
	raw, err := r.store.Read(ctx, store.Path(store.CollectionNotifications, ownerID))
	if err != nil {
		return nil, fmt.Errorf("getting feed %s: %w", ownerID, err)
	}
	if raw == nil {
		return nil, nil
	}

	var feed []models.Notification
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("decoding feed %s: %w", ownerID, err)
	}
	return feed, nil
}

func (r *FeedRepository) Put(ctx context.Context, ownerID string, feed []models.Notification) error {
	if feed == nil {
		feed = []models.Notification{}
	}
	if err := r.store.Write(ctx, store.Path(store.CollectionNotifications, ownerID), feed); err != nil {
		return fmt.Errorf("putting feed %s: %w", ownerID, err)
	}
	return nil
}
