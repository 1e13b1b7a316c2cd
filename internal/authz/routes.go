package authz

import (
	"strings"

	"github.com/spec-kit/hashtagpe-console/internal/domain"
)

// Requirement is the role a route demands.
type Requirement int

const (
	RequireNone Requirement = iota
	RequireAdmin
	RequireClient
)

func (r Requirement) String() string {
	switch r {
	case RequireAdmin:
		return "admin"
	case RequireClient:
		return "client"
	default:
		return "none"
	}
}

// Satisfies reports whether a role meets the requirement.
func (r Requirement) Satisfies(role domain.Role) bool {
	switch r {
	case RequireNone:
		return true
	case RequireAdmin:
		return role == domain.RoleAdmin
	case RequireClient:
		return role == domain.RoleClient
	default:
		return false
	}
}

// Route is one entry of the console's navigation tree.
type Route struct {
	Path     string
	Requires Requirement
}

// Well-known paths.
const (
	PathLogin        = "/"
	PathUnauthorized = "/unauthorized"
	PathAdminHome    = "/admin"
	PathClientHome   = "/client"
	PathNotFound     = "/not-found"
)

// routeTable mirrors the console navigation tree.
var routeTable = []Route{
	{Path: PathLogin, Requires: RequireNone},
	{Path: PathUnauthorized, Requires: RequireNone},
	{Path: PathNotFound, Requires: RequireNone},
	{Path: PathAdminHome, Requires: RequireAdmin},
	{Path: "/admin/dashboard", Requires: RequireAdmin},
	{Path: "/admin/clients", Requires: RequireAdmin},
	{Path: "/admin/admins", Requires: RequireAdmin},
	{Path: "/admin/reports", Requires: RequireAdmin},
	{Path: "/admin/publications/client/:clientId", Requires: RequireAdmin},
	{Path: PathClientHome, Requires: RequireClient},
	{Path: "/client/dashboard", Requires: RequireClient},
	{Path: "/client/publications", Requires: RequireClient},
}

// Lookup resolves a concrete path to its route. Unknown paths resolve to
// the public not-found route, so every path has a routing decision.
func Lookup(path string) Route {
	for _, route := range routeTable {
		if match(route.Path, path) {
			return route
		}
	}
	return Route{Path: PathNotFound, Requires: RequireNone}
}

// match compares a route pattern against a concrete path, treating
// ":param" segments as wildcards.
func match(pattern, path string) bool {
	if pattern == path {
		return true
	}
	if !strings.Contains(pattern, ":") {
		return false
	}
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return true
}
