package api

import (
	"context"
	"net/http"

	"github.com/spec-kit/hashtagpe-console/internal/domain"
)

// ListClients returns every managed client account. Admin only.
func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := c.do(ctx, http.MethodGet, "/clients", nil, &clients, true); err != nil {
		return nil, err
	}
	return clients, nil
}

// MyClient returns the client record bound to the current identity.
func (c *Client) MyClient(ctx context.Context) (*domain.Client, error) {
	var client domain.Client
	if err := c.do(ctx, http.MethodGet, "/clients/me", nil, &client, true); err != nil {
		return nil, err
	}
	return &client, nil
}

// GetClient returns one client by id.
func (c *Client) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	var client domain.Client
	if err := c.do(ctx, http.MethodGet, "/clients/"+clientID, nil, &client, true); err != nil {
		return nil, err
	}
	return &client, nil
}
