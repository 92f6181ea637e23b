package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/session"
)

var ErrEmptyStory = errors.New("story content is required")

// StoryService creates and lists stories. Content is a URL to media uploaded
// elsewhere; this service only manages the story documents.
type StoryService struct {
	stories StoryStore
}

func NewStoryService(stories StoryStore) *StoryService {
	return &StoryService{stories: stories}
}

func (s *StoryService) Create(ctx context.Context, sess session.Context, params models.CreateStoryParams) (*models.Story, error) {
	if params.Content == "" {
		return nil, ErrEmptyStory
	}

	story := &models.Story{
		ID:           uuid.NewString(),
		Content:      params.Content,
		AuthorID:     sess.UserID,
		AuthorName:   sess.Record.Fullname,
		AuthorAvatar: sess.Record.Avatar,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.stories.Put(ctx, story); err != nil {
		return nil, fmt.Errorf("creating story: %w", err)
	}
	return story, nil
}

func (s *StoryService) List(ctx context.Context) ([]models.Story, error) {
	return s.stories.List(ctx)
}
