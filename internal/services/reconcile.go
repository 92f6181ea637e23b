package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/logging"
	"github.com/minhquy1903/snapchat/internal/models"
)

type DriftKind string

const (
	// DriftPendingOrphan: A lists B in pending but B does not list A in waiting.
	DriftPendingOrphan DriftKind = "pending-orphan"
	// DriftWaitingOrphan: A lists B in waiting but B does not list A in pending.
	DriftWaitingOrphan DriftKind = "waiting-orphan"
)

// Drift is one detected disagreement between the two mirrored halves of a
// request edge.
type Drift struct {
	Kind          DriftKind `json:"kind"`
	UserID        string    `json:"user_id"`
	CounterpartID string    `json:"counterpart_id"`
}

// ReconcileService periodically scans the user set for request edges whose
// mirrored halves disagree. The coordinator never checks for drift itself;
// this scan is the only place it becomes visible. Repair, when enabled, drops
// the orphaned half of each edge.
type ReconcileService struct {
	users    UserStore
	interval time.Duration
	repair   bool
	logger   *logrus.Entry
}

func NewReconcileService(users UserStore, interval time.Duration, repair bool) *ReconcileService {
	return &ReconcileService{
		users:    users,
		interval: interval,
		repair:   repair,
		logger:   logging.Log.WithField("component", "reconciler"),
	}
}

// Scan reports every pending/waiting mirror disagreement in the current user
// set. A counterpart record that does not exist counts as disagreement.
func (s *ReconcileService) Scan(ctx context.Context) ([]Drift, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	byID := make(map[string]*models.UserRecord, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	var drifts []Drift
	for i := range users {
		user := &users[i]
		for _, counterpartID := range user.Pending {
			counterpart := byID[counterpartID]
			if counterpart == nil || !counterpart.HasWaiting(user.ID) {
				drifts = append(drifts, Drift{
					Kind:          DriftPendingOrphan,
					UserID:        user.ID,
					CounterpartID: counterpartID,
				})
			}
		}
		for _, counterpartID := range user.Waiting {
			counterpart := byID[counterpartID]
			if counterpart == nil || !counterpart.HasPending(user.ID) {
				drifts = append(drifts, Drift{
					Kind:          DriftWaitingOrphan,
					UserID:        user.ID,
					CounterpartID: counterpartID,
				})
			}
		}
	}
	return drifts, nil
}

// Repair removes the orphaned half of each reported drift, one full-document
// write per affected user.
func (s *ReconcileService) Repair(ctx context.Context, drifts []Drift) error {
	for _, drift := range drifts {
		user, err := s.users.Get(ctx, drift.UserID)
		if err != nil {
			return fmt.Errorf("reading user %s: %w", drift.UserID, err)
		}
		if user == nil {
			continue
		}

		switch drift.Kind {
		case DriftPendingOrphan:
			user.RemovePending(drift.CounterpartID)
		case DriftWaitingOrphan:
			user.RemoveWaiting(drift.CounterpartID)
		}
		if err := s.users.Put(ctx, user); err != nil {
			return fmt.Errorf("writing user %s: %w", drift.UserID, err)
		}
	}
	return nil
}

// Run scans on the configured interval until the context is cancelled.
func (s *ReconcileService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *ReconcileService) runOnce(ctx context.Context) {
	drifts, err := s.Scan(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("consistency scan failed")
		return
	}
	if len(drifts) == 0 {
		return
	}

	s.logger.WithField("drifts", len(drifts)).Warn("mirror drift detected")
	for _, drift := range drifts {
		s.logger.WithFields(logrus.Fields{
			"kind":        drift.Kind,
			"user":        drift.UserID,
			"counterpart": drift.CounterpartID,
			"repair":      s.repair,
		}).Warn("request edge out of sync")
	}

	if s.repair {
		if err := s.Repair(ctx, drifts); err != nil {
			s.logger.WithError(err).Warn("drift repair failed")
		}
	}
}
