package api

import (
	"context"
	"net/http"

	"github.com/spec-kit/hashtagpe-console/internal/domain"
)

// CreateUser creates an account. Admin only; clients are created with
// role CLIENTE plus company metadata.
func (c *Client) CreateUser(ctx context.Context, input domain.UserInput) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/users", input, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an account and its associated client record.
func (c *Client) UpdateUser(ctx context.Context, userID string, input domain.UserInput) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPut, "/users/"+userID, input, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+userID, nil, nil, true)
}
