package domain

import (
	"fmt"
	"time"
)

// Role is the authorization category of an identity. It is authoritative
// for every routing and channel decision in the console.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENTE"
)

// ParseRole converts the wire value into a Role. Unknown values fail
// closed so a token with an unrecognized role never yields a claim.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleClient:
		return RoleClient, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// HomeRoute is where an authenticated identity lands by default.
func (r Role) HomeRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleClient:
		return "/client"
	default:
		return "/unauthorized"
	}
}

// Claim is the decoded, typed identity extracted from a session token.
// A claim is never mutated; a new login fully replaces the old claim.
type Claim struct {
	ID          string
	Email       string
	Name        string
	Role        Role
	ClientID    string
	CompanyName string
	Plan        string
	ExpiresAt   time.Time
}

// Expired reports whether the claim is past its expiry at the given instant.
func (c *Claim) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
