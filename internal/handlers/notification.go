package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/logging"
	"github.com/minhquy1903/snapchat/internal/models"
)

// FeedReader is the slice of the feed repository the handler needs.
type FeedReader interface {
	Get(ctx context.Context, ownerID string) ([]models.Notification, error)
}

type NotificationHandler struct {
	feeds  FeedReader
	logger *logrus.Entry
}

func NewNotificationHandler(feeds FeedReader) *NotificationHandler {
	return &NotificationHandler{
		feeds:  feeds,
		logger: logging.Log.WithField("component", "notification-handler"),
	}
}

type FeedResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

// List returns the session user's feed in arrival order.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	feed, err := h.feeds.Get(r.Context(), sess.UserID)
	if err != nil {
		h.logger.WithError(err).Error("reading feed failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if feed == nil {
		feed = []models.Notification{}
	}

	writeJSON(w, http.StatusOK, FeedResponse{Notifications: feed})
}
