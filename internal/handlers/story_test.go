package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/services"
	"github.com/minhquy1903/snapchat/internal/session"
)

func TestStoryHandler_Create(t *testing.T) {
	stories := &mockStoryService{
		createFunc: func(ctx context.Context, sess session.Context, params models.CreateStoryParams) (*models.Story, error) {
			return &models.Story{ID: "s1", Content: params.Content, AuthorID: sess.UserID}, nil
		},
	}
	handler := NewStoryHandler(stories)

	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(`{"content":"http://img/snap.png"}`))
	rec := doRequest(handler.Create, withSession(req, "alice"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp StoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if resp.Story.ID != "s1" || resp.Story.AuthorID != "alice" {
		t.Fatalf("unexpected story %+v", resp.Story)
	}
}

func TestStoryHandler_Create_EmptyContent(t *testing.T) {
	stories := &mockStoryService{
		createFunc: func(ctx context.Context, sess session.Context, params models.CreateStoryParams) (*models.Story, error) {
			return nil, services.ErrEmptyStory
		},
	}
	handler := NewStoryHandler(stories)

	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(`{"content":""}`))
	rec := doRequest(handler.Create, withSession(req, "alice"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if resp.Error != "Please upload your story image or video" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestStoryHandler_Create_Unauthenticated(t *testing.T) {
	handler := NewStoryHandler(&mockStoryService{})

	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(`{"content":"x"}`))
	rec := doRequest(handler.Create, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestStoryHandler_List(t *testing.T) {
	stories := &mockStoryService{
		listFunc: func(ctx context.Context) ([]models.Story, error) {
			return []models.Story{{ID: "s2"}, {ID: "s1"}}, nil
		},
	}
	handler := NewStoryHandler(stories)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	rec := doRequest(handler.List, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp StoriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if len(resp.Stories) != 2 || resp.Stories[0].ID != "s2" {
		t.Fatalf("unexpected stories %+v", resp.Stories)
	}
}

func TestStoryHandler_List_Empty(t *testing.T) {
	stories := &mockStoryService{
		listFunc: func(ctx context.Context) ([]models.Story, error) {
			return nil, nil
		},
	}
	handler := NewStoryHandler(stories)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	rec := doRequest(handler.List, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Stories json.RawMessage `json:"stories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if string(resp.Stories) != "[]" {
		t.Fatalf("expected empty array, got %s", resp.Stories)
	}
}
