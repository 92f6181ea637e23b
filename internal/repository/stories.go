package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/store"
)

type StoryRepository struct {
	store store.Store
}

func NewStoryRepository(s store.Store) *StoryRepository {
	return &StoryRepository{store: s}
}

func (r *StoryRepository) Put(ctx context.Context, story *models.Story) error {
	if err := r.store.Write(ctx, store.Path(store.CollectionStories, story.ID), story); err != nil {
		return fmt.Errorf("putting story %s: %w", story.ID, err)
	}
	return nil
}

// List returns all stories, newest first.
func (r *StoryRepository) List(ctx context.Context) ([]models.Story, error) {
	docs, err := r.store.ReadTree(ctx, store.CollectionStories)
	if err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}

	stories := make([]models.Story, 0, len(docs))
	for id, raw := range docs {
		var story models.Story
		if err := json.Unmarshal(raw, &story); err != nil {
			return nil, fmt.Errorf("decoding story %s: %w", id, err)
		}
		stories = append(stories, story)
	}

	sort.Slice(stories, func(i, j int) bool {
		if !stories[i].CreatedAt.Equal(stories[j].CreatedAt) {
			return stories[i].CreatedAt.After(stories[j].CreatedAt)
		}
		return stories[i].ID < stories[j].ID
	})
	return stories, nil
}
