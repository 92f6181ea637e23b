package services

import (
	"context"
	"errors"
	"testing"

	"github.com/minhquy1903/snapchat/internal/models"
)

func TestUserService_Create(t *testing.T) {
	users := newFakeUserStore()
	chat := &fakeUserCreator{}
	svc := NewUserService(users, chat)

	user, err := svc.Create(context.Background(), models.CreateUserParams{
		ID:       "alice",
		Email:    "alice@example.com",
		Fullname: "Alice",
		Avatar:   "https://cdn.example.com/alice.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "alice" || user.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(user.Pending) != 0 || len(user.Waiting) != 0 {
		t.Fatal("expected empty relationship sets")
	}
	if len(chat.users) != 1 || chat.users[0] != "alice" {
		t.Fatalf("expected platform registration, got %v", chat.users)
	}
}

func TestUserService_Create_GeneratesID(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), &fakeUserCreator{})
	user, err := svc.Create(context.Background(), models.CreateUserParams{Fullname: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestUserService_Create_Exists(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "alice"})
	svc := NewUserService(users, &fakeUserCreator{})

	_, err := svc.Create(context.Background(), models.CreateUserParams{ID: "alice", Fullname: "Alice"})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Create_PlatformFailureTolerated(t *testing.T) {
	users := newFakeUserStore()
	chat := &fakeUserCreator{err: errors.New("service unavailable")}
	svc := NewUserService(users, chat)

	user, err := svc.Create(context.Background(), models.CreateUserParams{ID: "alice", Fullname: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.record(user.ID) == nil {
		t.Fatal("expected record to exist despite platform failure")
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), &fakeUserCreator{})
	_, err := svc.GetByID(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
