package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/hashtagpe-console/internal/domain"
)

// Decoding failures. All of them resolve to the anonymous state; none is
// ever surfaced to a user.
var (
	ErrEmptyToken   = errors.New("empty token")
	ErrMalformed    = errors.New("malformed token")
	ErrTokenExpired = errors.New("token expired")
)

// tokenPayload is the wire shape of the JWT payload segment.
type tokenPayload struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	ClientID    string `json:"clientId"`
	CompanyName string `json:"companyName"`
	Plan        string `json:"plan"`
	jwt.RegisteredClaims
}

// Decoder turns a raw token into a typed claim. The signature is not
// verified; trust is delegated to the backend that issued the token. On
// any invalid token the decoder clears the store so a known-dead token
// is never decoded twice.
type Decoder struct {
	store Store
	now   func() time.Time
}

// NewDecoder builds a decoder bound to the token store.
func NewDecoder(store Store) *Decoder {
	return &Decoder{store: store, now: time.Now}
}

// Decode parses the payload segment and enforces expiry. Fails closed:
// malformed structure, unparseable JSON, unknown role and past expiry
// all yield a nil claim and a cleared store.
func (d *Decoder) Decode(token string) (*domain.Claim, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	payload := &tokenPayload{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, payload); err != nil {
		d.clear()
		return nil, errors.Join(ErrMalformed, err)
	}

	if payload.ExpiresAt == nil || !payload.ExpiresAt.After(d.now()) {
		d.clear()
		return nil, ErrTokenExpired
	}

	role, err := domain.ParseRole(payload.Role)
	if err != nil {
		d.clear()
		return nil, errors.Join(ErrMalformed, err)
	}

	return &domain.Claim{
		ID:          payload.ID,
		Email:       payload.Email,
		Name:        payload.Name,
		Role:        role,
		ClientID:    payload.ClientID,
		CompanyName: payload.CompanyName,
		Plan:        payload.Plan,
		ExpiresAt:   payload.ExpiresAt.Time,
	}, nil
}

func (d *Decoder) clear() {
	if d.store != nil {
		_ = d.store.Clear()
	}
}
