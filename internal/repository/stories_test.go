package repository

import (
	"context"
	"testing"
	"time"

	"github.com/minhquy1903/snapchat/internal/models"
)

func TestStoryRepository_List_NewestFirst(t *testing.T) {
	repo := NewStoryRepository(newFakeStore())
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"s1", "s2", "s3"} {
		story := &models.Story{
			ID:        id,
			Content:   "https://cdn.example.com/" + id + ".jpg",
			AuthorID:  "alice",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Put(ctx, story); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	stories, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 3 {
		t.Fatalf("expected 3 stories, got %d", len(stories))
	}
	for i, id := range []string{"s3", "s2", "s1"} {
		if stories[i].ID != id {
			t.Fatalf("expected %s at position %d, got %s", id, i, stories[i].ID)
		}
	}
}

func TestStoryRepository_List_Empty(t *testing.T) {
	repo := NewStoryRepository(newFakeStore())
	stories, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 0 {
		t.Fatalf("expected no stories, got %d", len(stories))
	}
}
