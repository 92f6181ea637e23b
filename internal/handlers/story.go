package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/logging"
	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/services"
)

type StoryHandler struct {
	storyService services.StoryServiceInterface
	logger       *logrus.Entry
}

func NewStoryHandler(storyService services.StoryServiceInterface) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
		logger:       logging.Log.WithField("component", "story-handler"),
	}
}

type CreateStoryRequest struct {
	Content string `json:"content"`
}

type StoryResponse struct {
	Story *models.Story `json:"story"`
}

type StoriesResponse struct {
	Stories []models.Story `json:"stories"`
}

func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	story, err := h.storyService.Create(r.Context(), sess, models.CreateStoryParams{Content: req.Content})
	if errors.Is(err, services.ErrEmptyStory) {
		writeError(w, http.StatusBadRequest, "Please upload your story image or video")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("creating story failed")
		writeError(w, http.StatusInternalServerError, "Failure to create your story, please try again")
		return
	}

	writeJSON(w, http.StatusCreated, StoryResponse{Story: story})
}

func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	stories, err := h.storyService.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("listing stories failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if stories == nil {
		stories = []models.Story{}
	}

	writeJSON(w, http.StatusOK, StoriesResponse{Stories: stories})
}
