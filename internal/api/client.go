package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/hashtagpe-console/internal/config"
)

// TokenSource supplies the bearer token for outgoing requests. The
// session store satisfies it; the client reads and clears but never
// writes the token.
type TokenSource interface {
	Read() (string, error)
	Clear() error
}

// APIError reports a non-auth backend failure.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// errorEnvelope is the backend's error response shape.
type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
	// some endpoints return a bare message instead of the envelope
	Message string `json:"message"`
}

func (e errorEnvelope) message() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}
	return e.Message
}

// Client is the thin HTTP wrapper over the HASHTAGPe backend. It injects
// the bearer token on authenticated calls and clears the stored token
// when the backend rejects it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

// NewClient builds the wrapper.
func NewClient(cfg config.APIConfig, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		tokens:     tokens,
		logger:     logger,
	}
}

// do performs one JSON round-trip. When authenticated is set, the stored
// token rides along as a bearer header and a 401/403 response clears it,
// matching the console's single durable session signal.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, authenticated bool) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	tokenAttached := false
	if authenticated {
		token, err := c.tokens.Read()
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			tokenAttached = true
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return c.asError(resp, tokenAttached)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) asError(resp *http.Response, tokenAttached bool) error {
	if tokenAttached && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		if err := c.tokens.Clear(); err != nil {
			c.logger.Warn("failed to clear rejected token", zap.Error(err))
		}
	}

	var envelope errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &envelope)

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       envelope.Error.Code,
		Message:    envelope.message(),
	}
}
