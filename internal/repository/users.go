// Package repository provides typed access to the documents kept in the
// remote store. Every write replaces the full document; there is no
// field-level patching and no optimistic concurrency check.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/store"
)

type UserRepository struct {
	store store.Store
}

func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// Get returns nil without an error when the record does not exist.
func (r *UserRepository) Get(ctx context.Context, id string) (*models.UserRecord, error) {
	raw, err := r.store.Read(ctx, store.Path(store.CollectionUsers, id))
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	if raw == nil {
		return nil, nil
	}

	user := &models.UserRecord{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", id, err)
	}
	return user, nil
}

func (r *UserRepository) Put(ctx context.Context, user *models.UserRecord) error {
	if err := r.store.Write(ctx, store.Path(store.CollectionUsers, user.ID), user); err != nil {
		return fmt.Errorf("putting user %s: %w", user.ID, err)
	}
	return nil
}

// List decodes the full user set. Order is not meaningful; callers that need
// a stable order must sort by an explicit key.
func (r *UserRepository) List(ctx context.Context) ([]models.UserRecord, error) {
	docs, err := r.store.ReadTree(ctx, store.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users := make([]models.UserRecord, 0, len(docs))
	for id, raw := range docs {
		var user models.UserRecord
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("decoding user %s: %w", id, err)
		}
		users = append(users, user)
	}
	return users, nil
}
