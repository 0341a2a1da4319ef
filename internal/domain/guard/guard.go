package guard

// Package guard decides whether a user may occupy a requested route. It is a
// pure decision machine evaluated on every navigation; results are never
// cached because the identity snapshot can change between requests.

import (
	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/routing"
)

// State is the outcome category of a guard evaluation.
type State string

const (
	// StateLoading means the identity is still being resolved; the caller
	// should hold rendering rather than redirect.
	StateLoading State = "loading"
	// StateUnauthenticated means there is no session; the caller should send
	// the user to login.
	StateUnauthenticated State = "unauthenticated"
	// StateAdmit means the requested route may be rendered.
	StateAdmit State = "admit"
	// StateRedirect means the user belongs elsewhere; Target carries where.
	StateRedirect State = "redirect"
)

// Decision is the result of evaluating a guard.
type Decision struct {
	State  State
	Target routing.RouteID // set when State is StateRedirect
}

// Request groups the inputs of a guard evaluation.
type Request struct {
	User        *identity.Identity
	AuthLoading bool
	Requested   routing.RouteID
	// RequiredPermission, when non-empty, must be held by the user's access
	// role for the route to be admitted.
	RequiredPermission string
}

func admit() Decision { return Decision{State: StateAdmit} }

func redirect(t routing.RouteID) Decision {
	return Decision{State: StateRedirect, Target: t}
}

// Evaluate applies the onboarding gate to a requested route.
//
// Admins only ever see the admin console. Everyone else is held to the
// canonical route for their onboarding state: a request for any route
// outside the admitted set redirects to the canonical one, which makes
// deep-linking past unfinished stages impossible.
func Evaluate(req Request) Decision {
	if req.AuthLoading {
		return Decision{State: StateLoading}
	}
	user := req.User
	if user == nil || user.ID == "" {
		return Decision{State: StateUnauthenticated}
	}
	if req.RequiredPermission != "" && !user.HasPermission(req.RequiredPermission) {
		return redirect(routing.RouteUnauthorized)
	}
	if user.IsAdmin() {
		if routing.IsAdminRoute(req.Requested) {
			return admit()
		}
		return redirect(routing.RouteAdminHome)
	}
	if routing.IsAdminRoute(req.Requested) {
		return redirect(routing.ResolveCanonicalRoute(user))
	}
	if !routing.IsGated(req.Requested) {
		return admit()
	}
	canonical := routing.ResolveCanonicalRoute(user)
	for _, r := range admittedRoutes(user, canonical) {
		if r == req.Requested {
			return admit()
		}
	}
	return redirect(canonical)
}

// EvaluateAdmin applies the admin-console gate: only authenticated admins are
// admitted, optionally holding a specific permission.
func EvaluateAdmin(req Request) Decision {
	if req.AuthLoading {
		return Decision{State: StateLoading}
	}
	user := req.User
	if user == nil || user.ID == "" {
		return Decision{State: StateUnauthenticated}
	}
	if !user.IsAdmin() {
		return redirect(routing.RouteUnauthorized)
	}
	if req.RequiredPermission != "" && !user.HasPermission(req.RequiredPermission) {
		return redirect(routing.RouteUnauthorized)
	}
	return admit()
}

// admittedRoutes returns every route the user may occupy right now. For draft
// profiles mid-wizard this is the full sibling set for their step, so the
// legal stage stays reachable while compensation is canonical.
func admittedRoutes(user *identity.Identity, canonical routing.RouteID) []routing.RouteID {
	if user.ProfileStatus == identity.StatusDraft && !user.NeedsInitialOnboarding() {
		if canonical != routing.RouteProfileStatus {
			return routing.RoutesForStep(user.OnboardingStep)
		}
	}
	return []routing.RouteID{canonical}
}
