package models

import "time"

// Story is the document stored at stories/{id}. Content is a URL to the
// already-uploaded media; uploading itself happens outside this service.
type Story struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	AuthorID     string    `json:"userId"`
	AuthorName   string    `json:"fullname"`
	AuthorAvatar string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateStoryParams struct {
	Content string
}
