package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/session"
)

var (
	ErrCannotFriendSelf     = errors.New("cannot send friend request to yourself")
	ErrRequestExists        = errors.New("friend request already exists")
	ErrUserNotFound         = errors.New("user record not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotFriendRequest     = errors.New("notification is not a friend request")
)

// FriendService coordinates the multi-document mutations behind sending,
// accepting and rejecting friend requests. The remote store has no
// cross-document transactions, so each operation is a fixed sequence of
// read-modify-write steps: the first failure aborts the remainder and earlier
// steps are deliberately left in place. A human retries on visible failure,
// and the set mutations tolerate replays (removing an absent id is a no-op,
// setting a status twice is stable).
type FriendService struct {
	users  UserStore
	feeds  FeedStore
	bridge MessagingBridge
}

func NewFriendService(users UserStore, feeds FeedStore, bridge MessagingBridge) *FriendService {
	return &FriendService{users: users, feeds: feeds, bridge: bridge}
}

// SendRequest records an outgoing request from the session user to receiverID:
// the receiver joins the sender's pending set, the sender joins the receiver's
// waiting set, and the receiver's feed gains a pending friend-request
// notification.
func (s *FriendService) SendRequest(ctx context.Context, sess session.Context, receiverID string) error {
	if sess.UserID == receiverID {
		return ErrCannotFriendSelf
	}

	sender, err := s.users.Get(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("reading sender: %w", err)
	}
	if sender == nil {
		return ErrUserNotFound
	}
	if sender.HasPending(receiverID) {
		return ErrRequestExists
	}

	sender.AddPending(receiverID)
	if err := s.users.Put(ctx, sender); err != nil {
		return fmt.Errorf("writing sender: %w", err)
	}

	receiver, err := s.users.Get(ctx, receiverID)
	if err != nil {
		return fmt.Errorf("reading receiver: %w", err)
	}
	if receiver == nil {
		return ErrUserNotFound
	}
	receiver.AddWaiting(sender.ID)
	if err := s.users.Put(ctx, receiver); err != nil {
		return fmt.Errorf("writing receiver: %w", err)
	}

	feed, err := s.feeds.Get(ctx, receiver.ID)
	if err != nil {
		return fmt.Errorf("reading receiver feed: %w", err)
	}
	feed = append(feed, models.Notification{
		NotificationID:    uuid.NewString(),
		IsFriendRequest:   true,
		Status:            models.NotificationStatusPending,
		NotificationImage: sender.Avatar,
		NotificationTitle: fmt.Sprintf("You have received a friend request from %s", sender.Fullname),
		SenderID:          sender.ID,
	})
	if err := s.feeds.Put(ctx, receiver.ID, feed); err != nil {
		return fmt.Errorf("writing receiver feed: %w", err)
	}

	return nil
}

// AcceptRequest resolves the pending request behind notificationID in the
// session user's feed: both halves of the edge are removed, the notification
// is marked accepted, the friendship is registered with the messaging
// platform, and the original sender is notified.
func (s *FriendService) AcceptRequest(ctx context.Context, sess session.Context, notificationID string) error {
	notification, err := s.findFriendRequest(ctx, sess.UserID, notificationID)
	if err != nil {
		return err
	}
	senderID := notification.SenderID

	if err := s.removeEdge(ctx, senderID, sess.UserID); err != nil {
		return err
	}
	if err := s.updateStatus(ctx, sess.UserID, notificationID, models.NotificationStatusAccepted); err != nil {
		return err
	}

	if err := s.bridge.RegisterFriendship(ctx, sess.UserID, senderID); err != nil {
		return fmt.Errorf("registering friendship: %w", err)
	}

	feed, err := s.feeds.Get(ctx, senderID)
	if err != nil {
		return fmt.Errorf("reading sender feed: %w", err)
	}
	feed = append(feed, models.Notification{
		NotificationID:    uuid.NewString(),
		IsFriendRequest:   false,
		NotificationImage: sess.Record.Avatar,
		NotificationTitle: fmt.Sprintf("%s has accepted your friend request", sess.Record.Fullname),
		SenderID:          sess.UserID,
	})
	if err := s.feeds.Put(ctx, senderID, feed); err != nil {
		return fmt.Errorf("writing sender feed: %w", err)
	}

	return nil
}

// RejectRequest removes both halves of the edge and marks the notification
// rejected. No friendship is registered and the sender is not notified.
func (s *FriendService) RejectRequest(ctx context.Context, sess session.Context, notificationID string) error {
	notification, err := s.findFriendRequest(ctx, sess.UserID, notificationID)
	if err != nil {
		return err
	}

	if err := s.removeEdge(ctx, notification.SenderID, sess.UserID); err != nil {
		return err
	}
	return s.updateStatus(ctx, sess.UserID, notificationID, models.NotificationStatusRejected)
}

func (s *FriendService) findFriendRequest(ctx context.Context, ownerID, notificationID string) (*models.Notification, error) {
	feed, err := s.feeds.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	for i := range feed {
		if feed[i].NotificationID == notificationID {
			if !feed[i].IsFriendRequest || feed[i].SenderID == "" {
				return nil, ErrNotFriendRequest
			}
			return &feed[i], nil
		}
	}
	return nil, ErrNotificationNotFound
}

// removeEdge drops receiverID from the sender's pending set and senderID from
// the receiver's waiting set, one full-document write each. A missing sender
// record aborts before anything is written.
func (s *FriendService) removeEdge(ctx context.Context, senderID, receiverID string) error {
	sender, err := s.users.Get(ctx, senderID)
	if err != nil {
		return fmt.Errorf("reading sender: %w", err)
	}
	if sender == nil {
		return ErrUserNotFound
	}
	sender.RemovePending(receiverID)
	if err := s.users.Put(ctx, sender); err != nil {
		return fmt.Errorf("writing sender: %w", err)
	}

	receiver, err := s.users.Get(ctx, receiverID)
	if err != nil {
		return fmt.Errorf("reading receiver: %w", err)
	}
	if receiver == nil {
		return ErrUserNotFound
	}
	receiver.RemoveWaiting(senderID)
	if err := s.users.Put(ctx, receiver); err != nil {
		return fmt.Errorf("writing receiver: %w", err)
	}

	return nil
}

func (s *FriendService) updateStatus(ctx context.Context, ownerID, notificationID string, status models.NotificationStatus) error {
	feed, err := s.feeds.Get(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("reading feed: %w", err)
	}
	for i := range feed {
		if feed[i].NotificationID == notificationID {
			feed[i].Status = status
			break
		}
	}
	if err := s.feeds.Put(ctx, ownerID, feed); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	return nil
}
