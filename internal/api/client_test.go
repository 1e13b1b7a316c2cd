package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hashtagpe-console/internal/config"
	"github.com/spec-kit/hashtagpe-console/internal/domain"
	"github.com/spec-kit/hashtagpe-console/pkg/util"
)

// memTokens is an in-memory TokenSource for tests.
type memTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (m *memTokens) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.cleared++
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *memTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := &memTokens{token: token}
	client := NewClient(config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, tokens, zap.NewNop())
	return client, tokens
}

func TestExchangeCredentialsSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ana@acme.test", req["email"])
		require.Equal(t, "secret", req["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{"token": "issued-token"})
	}), "")

	token, err := client.ExchangeCredentials(context.Background(), "ana@acme.test", "secret")
	require.NoError(t, err)
	require.Equal(t, "issued-token", token)
}

func TestExchangeCredentialsRejectionKeepsMessageVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Credenciales inválidas"},
		})
	}), "")

	_, err := client.ExchangeCredentials(context.Background(), "ana@acme.test", "wrong")

	var authErr *util.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, util.AuthCodeInvalidCredentials, authErr.Code)
	require.Equal(t, "Credenciales inválidas", authErr.Message)
}

func TestExchangeCredentialsHonorsBackendCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "account_inactive", "message": "La cuenta está inactiva"},
		})
	}), "")

	_, err := client.ExchangeCredentials(context.Background(), "ana@acme.test", "secret")

	var authErr *util.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, util.AuthCodeAccountInactive, authErr.Code)
	require.Equal(t, "La cuenta está inactiva", authErr.Message)
}

func TestExchangeCredentialsEmptyTokenFails(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}), "")

	_, err := client.ExchangeCredentials(context.Background(), "ana@acme.test", "secret")

	var authErr *util.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, util.AuthCodeExchangeFailed, authErr.Code)
}

func TestAuthenticatedCallSendsBearer(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))
		require.Equal(t, "/publications/admin", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]domain.Publication{
			{ID: "p-1", Status: domain.PublicationStatusPending},
		})
	}), "stored-token")

	pubs, err := client.ListAdminPublications(context.Background())
	require.NoError(t, err)
	require.Len(t, pubs, 1)
	require.Equal(t, domain.PublicationStatusPending, pubs[0].Status)
}

func TestRejectedTokenIsCleared(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "UNAUTHORIZED", "message": "invalid token"},
		})
	}), "expired-token")

	_, err := client.ListClients(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, 1, tokens.cleared)

	token, readErr := tokens.Read()
	require.NoError(t, readErr)
	require.Empty(t, token)
}

func TestLoginRejectionDoesNotClearToken(t *testing.T) {
	// 401 on the unauthenticated exchange must not wipe an existing session
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Credenciales inválidas"},
		})
	}), "current-token")

	_, err := client.ExchangeCredentials(context.Background(), "ana@acme.test", "wrong")
	require.Error(t, err)
	require.Zero(t, tokens.cleared)
}

func TestUpdatePublicationStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/publications/p-9/status", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "APROBADO", req["status"])

		_ = json.NewEncoder(w).Encode(domain.Publication{ID: "p-9", Status: domain.PublicationStatusApproved})
	}), "stored-token")

	pub, err := client.UpdatePublicationStatus(context.Background(), "p-9", domain.PublicationStatusApproved)
	require.NoError(t, err)
	require.Equal(t, domain.PublicationStatusApproved, pub.Status)
}

func TestUploadMediaMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/publications/p-3/media", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("publishNow"))
		require.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "IMAGEN", r.FormValue("kind"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close() //nolint:errcheck
		require.Equal(t, "banner.png", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "png-bytes", string(content))

		_ = json.NewEncoder(w).Encode(domain.Media{ID: "m-1", FileName: "banner.png", Kind: domain.MediaKindImage})
	}), "stored-token")

	media, err := client.UploadMedia(context.Background(), "p-3", "banner.png", domain.MediaKindImage,
		strings.NewReader("png-bytes"), true)
	require.NoError(t, err)
	require.Equal(t, "m-1", media.ID)
	require.Equal(t, domain.MediaKindImage, media.Kind)
}

func TestCommentsRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			require.Equal(t, "/publications/p-3/comments", r.URL.Path)
			_ = json.NewEncoder(w).Encode(domain.Comment{ID: "cm-1", Body: "looks good"})
		case r.Method == http.MethodDelete:
			require.Equal(t, "/publications/p-3/comments/cm-1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			require.Equal(t, "/publications/p-3/comments", r.URL.Path)
			_ = json.NewEncoder(w).Encode([]domain.Comment{{ID: "cm-1", Body: "looks good"}})
		}
	}), "stored-token")

	comment, err := client.CreateComment(context.Background(), "p-3", domain.CommentInput{Body: "looks good"})
	require.NoError(t, err)
	require.Equal(t, "cm-1", comment.ID)

	comments, err := client.ListComments(context.Background(), "p-3")
	require.NoError(t, err)
	require.Len(t, comments, 1)

	require.NoError(t, client.DeleteComment(context.Background(), "p-3", "cm-1"))
}
