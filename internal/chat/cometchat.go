// Package chat talks to the external messaging platform. The platform owns
// messaging and presence; this service only registers users and friendship
// links with it.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/config"
	"github.com/minhquy1903/snapchat/internal/logging"
	"github.com/minhquy1903/snapchat/internal/models"
)

var ErrBridgeRejected = errors.New("messaging platform rejected the request")

// Bridge registers users and friendship links with the messaging platform.
type Bridge interface {
	CreateUser(ctx context.Context, user *models.UserRecord) error
	RegisterFriendship(ctx context.Context, userID, friendID string) error
}

// NewBridge selects the platform client based on configuration. Without an
// API key the console bridge is used, which only logs the calls.
func NewBridge(cfg *config.CometChatConfig) Bridge {
	if cfg.APIKey == "" {
		return NewConsoleBridge()
	}
	return NewCometChatBridge(cfg)
}

// CometChatBridge calls the CometChat REST API. Each operation is a single
// call with no retry; a failure surfaces directly to the caller.
type CometChatBridge struct {
	appID   string
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *logrus.Entry
}

func NewCometChatBridge(cfg *config.CometChatConfig) *CometChatBridge {
	return &CometChatBridge{
		appID:   cfg.AppID,
		apiKey:  cfg.APIKey,
		baseURL: fmt.Sprintf("https://%s.api-%s.cometchat.io/v3", cfg.AppID, cfg.Region),
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logging.Log.WithField("component", "cometchat"),
	}
}

func (b *CometChatBridge) CreateUser(ctx context.Context, user *models.UserRecord) error {
	payload := map[string]string{
		"uid":    user.ID,
		"name":   user.Fullname,
		"avatar": user.Avatar,
	}
	return b.post(ctx, "/users", payload)
}

// RegisterFriendship marks friendID as an accepted friend of userID. The
// platform treats the link as bidirectional.
func (b *CometChatBridge) RegisterFriendship(ctx context.Context, userID, friendID string) error {
	payload := map[string][]string{"accepted": {friendID}}
	return b.post(ctx, "/users/"+userID+"/friends", payload)
}

func (b *CometChatBridge) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("appId", b.appID)
	req.Header.Set("apiKey", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling messaging platform: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b.logger.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("messaging platform call failed")
		return fmt.Errorf("%w: status %d", ErrBridgeRejected, resp.StatusCode)
	}
	return nil
}

// SetBaseURL overrides the API endpoint, used by tests.
func (b *CometChatBridge) SetBaseURL(url string) {
	b.baseURL = url
}

// ConsoleBridge logs bridge calls instead of performing them. Used in local
// development when no CometChat credentials are configured.
type ConsoleBridge struct {
	logger *logrus.Entry
}

func NewConsoleBridge() *ConsoleBridge {
	return &ConsoleBridge{logger: logging.Log.WithField("component", "console-bridge")}
}

func (b *ConsoleBridge) CreateUser(_ context.Context, user *models.UserRecord) error {
	b.logger.WithField("user_id", user.ID).Info("would create messaging platform user")
	return nil
}

func (b *ConsoleBridge) RegisterFriendship(_ context.Context, userID, friendID string) error {
	b.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"friend_id": friendID,
	}).Info("would register friendship")
	return nil
}
