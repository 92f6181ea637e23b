package store

import (
	"errors"
	"sync"
)

var (
	ErrSubscriptionActive = errors.New("subscription already active")
	ErrSubscriptionClosed = errors.New("subscription closed")
)

type subscriptionState int

const (
	stateInactive subscriptionState = iota
	stateActive
	stateClosed
)

// Subscription is the handle returned by Store.Subscribe. Its lifecycle is
// INACTIVE -> ACTIVE -> CLOSED: Activate and Close each succeed exactly once,
// and a closed handle can never be re-activated. The stop function is invoked
// on the first successful Close.
type Subscription struct {
	mu    sync.Mutex
	state subscriptionState
	stop  func()
}

// NewSubscription returns an inactive handle. stop may be nil.
func NewSubscription(stop func()) *Subscription {
	return &Subscription{stop: stop}
}

// Activate transitions the handle to ACTIVE.
func (s *Subscription) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case stateActive:
		return ErrSubscriptionActive
	case stateClosed:
		return ErrSubscriptionClosed
	}
	s.state = stateActive
	return nil
}

// Close tears the subscription down. Closing twice is an error.
func (s *Subscription) Close() error {
	s.mu.Lock()
	if s.state == stateClosed {
		s.mu.Unlock()
		return ErrSubscriptionClosed
	}
	s.state = stateClosed
	stop := s.stop
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	return nil
}

// Active reports whether the handle is currently delivering snapshots.
func (s *Subscription) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateActive
}
