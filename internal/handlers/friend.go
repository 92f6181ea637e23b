package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/logging"
	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/services"
	"github.com/minhquy1903/snapchat/internal/session"
)

type FriendHandler struct {
	friendService     services.FriendServiceInterface
	suggestionService services.SuggestionServiceInterface
	logger            *logrus.Entry
}

func NewFriendHandler(friendService services.FriendServiceInterface, suggestionService services.SuggestionServiceInterface) *FriendHandler {
	return &FriendHandler{
		friendService:     friendService,
		suggestionService: suggestionService,
		logger:            logging.Log.WithField("component", "friend-handler"),
	}
}

type SendRequestRequest struct {
	ReceiverID string `json:"receiver_id"`
}

type SuggestionsResponse struct {
	Suggestions []models.UserRecord `json:"suggestions"`
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReceiverID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.friendService.SendRequest(r.Context(), sess, req.ReceiverID)
	if errors.Is(err, services.ErrCannotFriendSelf) {
		writeError(w, http.StatusBadRequest, "Cannot send friend request to yourself")
		return
	}
	if errors.Is(err, services.ErrRequestExists) {
		writeError(w, http.StatusConflict, "Friend request already exists")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("sending friend request failed")
		writeError(w, http.StatusInternalServerError, "Failure to send your request")
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Your request has been sent successfully"})
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.friendService.AcceptRequest, "The request was accepted successfully")
}

func (h *FriendHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.friendService.RejectRequest, "The request was rejected")
}

func (h *FriendHandler) resolveRequest(w http.ResponseWriter, r *http.Request, resolve resolveFunc, successMessage string) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	notificationID := r.PathValue("id")
	if notificationID == "" {
		writeError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	err := resolve(r.Context(), sess, notificationID)
	if errors.Is(err, services.ErrNotificationNotFound) {
		writeError(w, http.StatusNotFound, "Notification not found")
		return
	}
	if errors.Is(err, services.ErrNotFriendRequest) {
		writeError(w, http.StatusBadRequest, "Notification is not a friend request")
		return
	}
	if err != nil {
		// Transient store errors, missing records and bridge failures all
		// collapse into one generic message for the user.
		h.logger.WithError(err).Error("resolving friend request failed")
		writeError(w, http.StatusInternalServerError, "Failure to add friend. Please try again")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: successMessage})
}

type resolveFunc func(ctx context.Context, sess session.Context, notificationID string) error

func (h *FriendHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	suggestions, err := h.suggestionService.ListSuggestions(r.Context(), sess)
	if err != nil {
		h.logger.WithError(err).Error("listing suggestions failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}
