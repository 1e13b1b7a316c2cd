package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/spec-kit/hashtagpe-console/internal/domain"
)

// ListMedia returns the assets attached to a publication.
func (c *Client) ListMedia(ctx context.Context, publicationID string) ([]domain.Media, error) {
	var media []domain.Media
	if err := c.do(ctx, http.MethodGet, "/publications/"+publicationID+"/media", nil, &media, true); err != nil {
		return nil, err
	}
	return media, nil
}

// UploadMedia attaches an asset to a publication as a multipart upload.
// publishNow asks the backend to publish immediately after the upload.
func (c *Client) UploadMedia(ctx context.Context, publicationID, fileName string, kind domain.MediaKind, content io.Reader, publishNow bool) (*domain.Media, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := writer.WriteField("kind", string(kind)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	path := "/publications/" + publicationID + "/media"
	if publishNow {
		path += "?publishNow=true"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	token, err := c.tokens.Read()
	if err != nil {
		return nil, err
	}
	tokenAttached := false
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		tokenAttached = true
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return nil, c.asError(resp, tokenAttached)
	}

	var media domain.Media
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return nil, err
	}
	return &media, nil
}

// DeleteMedia removes one asset from a publication.
func (c *Client) DeleteMedia(ctx context.Context, publicationID, mediaID string) error {
	return c.do(ctx, http.MethodDelete, "/publications/"+publicationID+"/media/"+mediaID, nil, nil, true)
}
