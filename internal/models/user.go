package models

import (
	"slices"
	"time"
)

// UserRecord is the full user document stored at users/{id}. Pending holds the
// ids this user has sent requests to; Waiting holds the ids that have sent
// requests to this user. The two sets are mirrored halves of each request edge
// and are expected to agree across documents.
type UserRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Fullname  string    `json:"fullname"`
	Avatar    string    `json:"avatar"`
	Pending   []string  `json:"pending,omitempty"`
	Waiting   []string  `json:"waiting,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type CreateUserParams struct {
	ID       string
	Email    string
	Fullname string
	Avatar   string
}

func (u *UserRecord) HasPending(id string) bool {
	return slices.Contains(u.Pending, id)
}

func (u *UserRecord) HasWaiting(id string) bool {
	return slices.Contains(u.Waiting, id)
}

// AddPending records an outgoing request. Adding an id already present is a
// no-op so the sets never hold duplicates.
func (u *UserRecord) AddPending(id string) {
	if !u.HasPending(id) {
		u.Pending = append(u.Pending, id)
	}
}

func (u *UserRecord) AddWaiting(id string) {
	if !u.HasWaiting(id) {
		u.Waiting = append(u.Waiting, id)
	}
}

// RemovePending drops an outgoing request. Removing an absent id is a no-op.
func (u *UserRecord) RemovePending(id string) {
	u.Pending = removeID(u.Pending, id)
}

func (u *UserRecord) RemoveWaiting(id string) {
	u.Waiting = removeID(u.Waiting, id)
}

func removeID(ids []string, id string) []string {
	if !slices.Contains(ids, id) {
		return ids
	}
	out := make([]string, 0, len(ids)-1)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
