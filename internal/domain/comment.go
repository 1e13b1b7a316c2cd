package domain

import "time"

// Comment is a review note attached to a publication thread.
type Comment struct {
	ID            string    `json:"id"`
	PublicationID string    `json:"publicationId"`
	AuthorID      string    `json:"authorId"`
	AuthorName    string    `json:"authorName"`
	AuthorRole    Role      `json:"authorRole"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CommentInput carries the writable fields for a new comment.
type CommentInput struct {
	Body string `json:"body"`
}
