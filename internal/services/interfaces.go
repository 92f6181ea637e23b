package services

import (
	"context"

	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/session"
)

// UserStore is the slice of the user repository the services depend on.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.UserRecord, error)
	Put(ctx context.Context, user *models.UserRecord) error
	List(ctx context.Context) ([]models.UserRecord, error)
}

// FeedStore is the slice of the feed repository the services depend on.
type FeedStore interface {
	Get(ctx context.Context, ownerID string) ([]models.Notification, error)
	Put(ctx context.Context, ownerID string, feed []models.Notification) error
}

// StoryStore is the slice of the story repository the services depend on.
type StoryStore interface {
	Put(ctx context.Context, story *models.Story) error
	List(ctx context.Context) ([]models.Story, error)
}

// MessagingBridge registers accepted friendships with the external messaging
// platform.
type MessagingBridge interface {
	RegisterFriendship(ctx context.Context, userID, friendID string) error
}

// UserCreator registers new accounts with the external messaging platform.
type UserCreator interface {
	CreateUser(ctx context.Context, user *models.UserRecord) error
}

// FriendServiceInterface defines the contract for friend request operations
// used by handlers.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, sess session.Context, receiverID string) error
	AcceptRequest(ctx context.Context, sess session.Context, notificationID string) error
	RejectRequest(ctx context.Context, sess session.Context, notificationID string) error
}

// SuggestionServiceInterface defines the contract for friend suggestions used
// by handlers.
type SuggestionServiceInterface interface {
	ListSuggestions(ctx context.Context, sess session.Context) ([]models.UserRecord, error)
}

// UserServiceInterface defines the contract for account operations used by
// handlers.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.UserRecord, error)
	GetByID(ctx context.Context, id string) (*models.UserRecord, error)
}

// StoryServiceInterface defines the contract for story operations used by
// handlers.
type StoryServiceInterface interface {
	Create(ctx context.Context, sess session.Context, params models.CreateStoryParams) (*models.Story, error)
	List(ctx context.Context) ([]models.Story, error)
}
