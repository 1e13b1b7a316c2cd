package api

import (
	"context"
	"net/http"

	"github.com/spec-kit/hashtagpe-console/internal/domain"
)

// ListComments returns the review thread of a publication.
func (c *Client) ListComments(ctx context.Context, publicationID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := c.do(ctx, http.MethodGet, "/publications/"+publicationID+"/comments", nil, &comments, true); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment appends a comment to a publication thread.
func (c *Client) CreateComment(ctx context.Context, publicationID string, input domain.CommentInput) (*domain.Comment, error) {
	var comment domain.Comment
	if err := c.do(ctx, http.MethodPost, "/publications/"+publicationID+"/comments", input, &comment, true); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment from a thread.
func (c *Client) DeleteComment(ctx context.Context, publicationID, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/publications/"+publicationID+"/comments/"+commentID, nil, nil, true)
}
