package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/logging"
	"github.com/minhquy1903/snapchat/internal/models"
)

var ErrUserExists = errors.New("user already exists")

// UserService creates user records at registration and mirrors them to the
// messaging platform.
type UserService struct {
	users  UserStore
	chat   UserCreator
	logger *logrus.Entry
}

func NewUserService(users UserStore, chat UserCreator) *UserService {
	return &UserService{
		users:  users,
		chat:   chat,
		logger: logging.Log.WithField("component", "users"),
	}
}

// Create writes a fresh record with empty pending and waiting sets, then
// registers the account with the messaging platform. A platform failure is
// logged but does not undo the record; the user exists either way.
func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.UserRecord, error) {
	id := params.ID
	if id == "" {
		id = uuid.NewString()
	}

	existing, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checking user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	user := &models.UserRecord{
		ID:        id,
		Email:     params.Email,
		Fullname:  params.Fullname,
		Avatar:    params.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if err := s.chat.CreateUser(ctx, user); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("messaging platform registration failed")
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.UserRecord, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
