package api

import (
	"context"
	"net/http"

	"github.com/spec-kit/hashtagpe-console/internal/domain"
)

// ListClientPublications returns the publications of one client.
func (c *Client) ListClientPublications(ctx context.Context, clientID string) ([]domain.Publication, error) {
	var pubs []domain.Publication
	if err := c.do(ctx, http.MethodGet, "/clients/"+clientID+"/publications", nil, &pubs, true); err != nil {
		return nil, err
	}
	return pubs, nil
}

// ListAdminPublications returns every publication across clients. Admin only.
func (c *Client) ListAdminPublications(ctx context.Context) ([]domain.Publication, error) {
	var pubs []domain.Publication
	if err := c.do(ctx, http.MethodGet, "/publications/admin", nil, &pubs, true); err != nil {
		return nil, err
	}
	return pubs, nil
}

// CreatePublication schedules a publication for a client.
func (c *Client) CreatePublication(ctx context.Context, clientID string, input domain.PublicationInput) (*domain.Publication, error) {
	var pub domain.Publication
	if err := c.do(ctx, http.MethodPost, "/clients/"+clientID+"/publications", input, &pub, true); err != nil {
		return nil, err
	}
	return &pub, nil
}

// UpdatePublication updates publication fields.
func (c *Client) UpdatePublication(ctx context.Context, publicationID string, input domain.PublicationInput) (*domain.Publication, error) {
	var pub domain.Publication
	if err := c.do(ctx, http.MethodPut, "/publications/"+publicationID, input, &pub, true); err != nil {
		return nil, err
	}
	return &pub, nil
}

// UpdatePublicationStatus moves a publication through its review lifecycle.
func (c *Client) UpdatePublicationStatus(ctx context.Context, publicationID string, status domain.PublicationStatus) (*domain.Publication, error) {
	payload := map[string]domain.PublicationStatus{"status": status}
	var pub domain.Publication
	if err := c.do(ctx, http.MethodPatch, "/publications/"+publicationID+"/status", payload, &pub, true); err != nil {
		return nil, err
	}
	return &pub, nil
}

// DeletePublication removes a publication.
func (c *Client) DeletePublication(ctx context.Context, publicationID string) error {
	return c.do(ctx, http.MethodDelete, "/publications/"+publicationID, nil, nil, true)
}
