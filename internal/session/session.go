// Package session carries the authenticated user's identity through the
// request path. The session itself is an opaque serialized user blob behind a
// bearer token; components receive an immutable Context rather than reading
// ambient shared state.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minhquy1903/snapchat/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Context identifies the acting user for one request. The record is the
// login-time snapshot; operations that need current state re-read the store.
type Context struct {
	UserID string
	Record *models.UserRecord
}

// TokenStore persists session blobs by token.
type TokenStore interface {
	Set(ctx context.Context, token string, blob []byte, ttl time.Duration) error
	Get(ctx context.Context, token string) ([]byte, error)
	Del(ctx context.Context, token string) error
}

type Manager struct {
	tokens TokenStore
	ttl    time.Duration
}

func NewManager(tokens TokenStore, ttl time.Duration) *Manager {
	return &Manager{tokens: tokens, ttl: ttl}
}

// Issue creates a session for the user and returns the bearer token.
func (m *Manager) Issue(ctx context.Context, user *models.UserRecord) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	blob, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}
	if err := m.tokens.Set(ctx, token, blob, m.ttl); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// Resolve exchanges a token for the session context.
func (m *Manager) Resolve(ctx context.Context, token string) (Context, error) {
	blob, err := m.tokens.Get(ctx, token)
	if err != nil {
		return Context{}, fmt.Errorf("loading session: %w", err)
	}
	if blob == nil {
		return Context{}, ErrSessionNotFound
	}

	record := &models.UserRecord{}
	if err := json.Unmarshal(blob, record); err != nil {
		return Context{}, fmt.Errorf("decoding session: %w", err)
	}
	return Context{UserID: record.ID, Record: record}, nil
}

func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.tokens.Del(ctx, token)
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// RedisTokenStore keeps session blobs in Redis with a TTL.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Set(ctx context.Context, token string, blob []byte, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(token), blob, ttl).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, token string) ([]byte, error) {
	val, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *RedisTokenStore) Del(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return "session:" + token
}
