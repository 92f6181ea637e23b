package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/logging"
	"github.com/minhquy1903/snapchat/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler streams collection snapshots to UI clients over a websocket.
// Each connection holds exactly one store subscription, closed when the
// client disconnects.
type LiveHandler struct {
	store  store.Store
	logger *logrus.Entry
}

func NewLiveHandler(s store.Store) *LiveHandler {
	return &LiveHandler{
		store:  s,
		logger: logging.Log.WithField("component", "live-handler"),
	}
}

// LiveSnapshot is the wire format of one pushed snapshot.
type LiveSnapshot struct {
	Collection string                     `json:"collection"`
	Docs       map[string]json.RawMessage `json:"docs"`
}

func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	switch collection {
	case store.CollectionUsers, store.CollectionNotifications, store.CollectionStories:
	default:
		writeError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		return
	}
	defer conn.Close()

	// The snapshot callback is the connection's only writer.
	sub, err := h.store.Subscribe(r.Context(), collection, func(snapshot store.Snapshot) {
		payload := LiveSnapshot{Collection: snapshot.Collection, Docs: snapshot.Docs}
		if err := conn.WriteJSON(payload); err != nil {
			h.logger.WithError(err).Debug("live write failed")
		}
	})
	if err != nil {
		h.logger.WithError(err).Error("live subscription failed")
		return
	}
	defer func() { _ = sub.Close() }()

	// Drain the connection until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
