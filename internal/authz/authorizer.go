package authz

import (
	"github.com/spec-kit/hashtagpe-console/internal/domain"
	"github.com/spec-kit/hashtagpe-console/internal/session"
)

// Outcome is a routing decision. Denial is a redirect, never an error.
type Outcome int

const (
	// OutcomeWithhold renders nothing while the session is still initializing.
	OutcomeWithhold Outcome = iota
	// OutcomeRender lets the requested route render.
	OutcomeRender
	// OutcomeRedirectLogin sends an anonymous visitor to the login route.
	OutcomeRedirectLogin
	// OutcomeRedirectOwnHome sends a role-mismatched identity to its own home.
	OutcomeRedirectOwnHome
	// OutcomeRedirectUnauthorized covers identities with no recognized home.
	OutcomeRedirectUnauthorized
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWithhold:
		return "withhold"
	case OutcomeRender:
		return "render"
	case OutcomeRedirectLogin:
		return "redirect-login"
	case OutcomeRedirectOwnHome:
		return "redirect-own-home"
	case OutcomeRedirectUnauthorized:
		return "redirect-unauthorized"
	default:
		return "unknown"
	}
}

// Decision pairs an outcome with the redirect target, when one applies.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Decide maps (session phase, claim, route) to exactly one decision.
// Total: every combination is handled, nothing falls through.
func Decide(phase session.Phase, claim *domain.Claim, route Route) Decision {
	if phase == session.PhaseInitializing {
		return Decision{Outcome: OutcomeWithhold}
	}

	if phase != session.PhaseAuthenticated || claim == nil {
		if route.Requires == RequireNone {
			return Decision{Outcome: OutcomeRender}
		}
		return Decision{Outcome: OutcomeRedirectLogin, Target: PathLogin}
	}

	if route.Requires.Satisfies(claim.Role) {
		return Decision{Outcome: OutcomeRender}
	}

	switch claim.Role {
	case domain.RoleAdmin:
		return Decision{Outcome: OutcomeRedirectOwnHome, Target: PathAdminHome}
	case domain.RoleClient:
		return Decision{Outcome: OutcomeRedirectOwnHome, Target: PathClientHome}
	default:
		return Decision{Outcome: OutcomeRedirectUnauthorized, Target: PathUnauthorized}
	}
}

// DecideForPath resolves the path through the route table first.
func DecideForPath(phase session.Phase, claim *domain.Claim, path string) Decision {
	return Decide(phase, claim, Lookup(path))
}
