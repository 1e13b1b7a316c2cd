package session

import (
	"path/filepath"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hashtagpe-console/internal/domain"
)

// signToken builds a real compact token. The decoder never verifies the
// signature, so the signing key is arbitrary.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newStoreWithToken(t *testing.T, token string) *FileStore {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))
	if token != "" {
		require.NoError(t, store.Save(token))
	}
	return store
}

func TestDecodeValidTokenCopiesFieldsVerbatim(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token := signToken(t, jwt.MapClaims{
		"id":          "u-81",
		"email":       "ana@acme.test",
		"name":        "Ana",
		"role":        "CLIENTE",
		"clientId":    "c-12",
		"companyName": "Acme",
		"plan":        "PREMIUM",
		"exp":         exp.Unix(),
	})
	store := newStoreWithToken(t, token)

	claim, err := NewDecoder(store).Decode(token)
	require.NoError(t, err)
	require.Equal(t, "u-81", claim.ID)
	require.Equal(t, "ana@acme.test", claim.Email)
	require.Equal(t, "Ana", claim.Name)
	require.Equal(t, domain.RoleClient, claim.Role)
	require.Equal(t, "c-12", claim.ClientID)
	require.Equal(t, "Acme", claim.CompanyName)
	require.Equal(t, "PREMIUM", claim.Plan)
	require.Equal(t, exp.Unix(), claim.ExpiresAt.Unix())

	// a valid decode must not touch the store
	stored, err := store.Read()
	require.NoError(t, err)
	require.Equal(t, token, stored)
}

func TestDecodeExpiredTokenClearsStore(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"id":    "u-81",
		"email": "ana@acme.test",
		"role":  "ADMIN",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	store := newStoreWithToken(t, token)

	claim, err := NewDecoder(store).Decode(token)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.Nil(t, claim)

	stored, err := store.Read()
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestDecodeMalformedTokenClearsStore(t *testing.T) {
	store := newStoreWithToken(t, "not-a-token")

	claim, err := NewDecoder(store).Decode("not-a-token")
	require.ErrorIs(t, err, ErrMalformed)
	require.Nil(t, claim)

	stored, err := store.Read()
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestDecodeEmptyToken(t *testing.T) {
	store := newStoreWithToken(t, "")

	claim, err := NewDecoder(store).Decode("")
	require.ErrorIs(t, err, ErrEmptyToken)
	require.Nil(t, claim)
}

func TestDecodeMissingExpiryFailsClosed(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"id":    "u-81",
		"email": "ana@acme.test",
		"role":  "ADMIN",
	})
	store := newStoreWithToken(t, token)

	claim, err := NewDecoder(store).Decode(token)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.Nil(t, claim)
}

func TestDecodeUnknownRoleFailsClosed(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"id":    "u-81",
		"email": "ana@acme.test",
		"role":  "SUPERUSER",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	store := newStoreWithToken(t, token)

	claim, err := NewDecoder(store).Decode(token)
	require.ErrorIs(t, err, ErrMalformed)
	require.Nil(t, claim)

	stored, err := store.Read()
	require.NoError(t, err)
	require.Empty(t, stored)
}
