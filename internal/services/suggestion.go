package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/session"
)

// SuggestionService derives friend candidates for a user from the full user
// set.
type SuggestionService struct {
	users UserStore
}

func NewSuggestionService(users UserStore) *SuggestionService {
	return &SuggestionService{users: users}
}

// ListSuggestions reads the current user set and filters it against the
// session user's fresh record. The session record is re-read so a request
// sent moments ago already excludes its receiver.
func (s *SuggestionService) ListSuggestions(ctx context.Context, sess session.Context) ([]models.UserRecord, error) {
	self, err := s.users.Get(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("reading user: %w", err)
	}
	if self == nil {
		return nil, ErrUserNotFound
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return FilterSuggestions(self, users), nil
}

// FilterSuggestions excludes the user themselves and anyone already on either
// side of an outstanding request. The result is sorted by fullname, then id,
// so the order does not depend on store iteration order.
func FilterSuggestions(self *models.UserRecord, users []models.UserRecord) []models.UserRecord {
	suggestions := make([]models.UserRecord, 0, len(users))
	for _, user := range users {
		if user.ID == self.ID || self.HasPending(user.ID) || self.HasWaiting(user.ID) {
			continue
		}
		suggestions = append(suggestions, user)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Fullname != suggestions[j].Fullname {
			return suggestions[i].Fullname < suggestions[j].Fullname
		}
		return suggestions[i].ID < suggestions[j].ID
	})
	return suggestions
}
