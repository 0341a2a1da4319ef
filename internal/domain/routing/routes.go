package routing

// Package routing maps a user's onboarding state to the single route they are
// allowed to occupy. The resolver is the only source of truth for "where
// should this user be"; the guard and post-login redirects both consult it.

import (
	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
)

// RouteID names a client route. Values are the client-side paths so handlers
// can return them directly as redirect targets.
type RouteID string

const (
	RouteLogin             RouteID = "/login"
	RouteInitialOnboarding RouteID = "/onboarding"
	RouteBasics            RouteID = "/onboarding/basics"
	RouteBackground        RouteID = "/onboarding/background"
	RouteHealth            RouteID = "/onboarding/health"
	RouteGenetic           RouteID = "/onboarding/genetic"
	RouteCompensation      RouteID = "/onboarding/compensation"
	RouteLegal             RouteID = "/onboarding/legal"
	RouteProfileStatus     RouteID = "/profile-status"
	RouteAdminHome         RouteID = "/admin"
	RouteUnauthorized      RouteID = "/unauthorized"
)

// stepRoutes lists the routes a DRAFT user may occupy at each onboarding
// step. The first entry is the canonical route for that step. Compensation
// and Legal share step 5: legal consent is gathered before submission flips
// the step to 6, the same way steps 0 and 1 share the first stage.
var stepRoutes = map[int][]RouteID{
	0: {RouteBasics},
	1: {RouteBasics},
	2: {RouteBackground},
	3: {RouteHealth},
	4: {RouteGenetic},
	5: {RouteCompensation, RouteLegal},
	6: {RouteProfileStatus},
}

// ResolveCanonicalRoute returns the one route a user in the given state
// should land on. Rules are ordered; the first match wins:
//
//  1. unauthenticated users go to login
//  2. admins go to the review console
//  3. users who haven't finished role selection go to initial onboarding
//  4. submitted, approved, or rejected profiles see the status page
//  5. draft profiles land on the wizard stage for their onboarding step
func ResolveCanonicalRoute(user *identity.Identity) RouteID {
	if user == nil || user.ID == "" {
		return RouteLogin
	}
	if user.IsAdmin() {
		return RouteAdminHome
	}
	if user.NeedsInitialOnboarding() {
		return RouteInitialOnboarding
	}
	switch user.ProfileStatus {
	case identity.StatusPendingReview, identity.StatusActive, identity.StatusRejected:
		return RouteProfileStatus
	}
	routes, ok := stepRoutes[user.OnboardingStep]
	if !ok || len(routes) == 0 {
		// Out-of-range steps restart the wizard rather than erroring.
		return RouteBasics
	}
	return routes[0]
}

// RoutesForStep returns the routes a DRAFT user at the given step may occupy.
// Unknown steps fall back to the first stage, matching ResolveCanonicalRoute.
func RoutesForStep(step int) []RouteID {
	routes, ok := stepRoutes[step]
	if !ok || len(routes) == 0 {
		return []RouteID{RouteBasics}
	}
	return routes
}

// IsGated reports whether a route requires an authenticated, correctly-placed
// user. Login and the unauthorized page are reachable by anyone.
func IsGated(route RouteID) bool {
	return route != RouteLogin && route != RouteUnauthorized
}

// IsAdminRoute reports whether the route belongs to the admin console.
func IsAdminRoute(route RouteID) bool {
	return route == RouteAdminHome
}

// StageRoute returns the wizard route for a stage number (1-6), or empty for
// unknown stages.
func StageRoute(stage int) RouteID {
	switch stage {
	case 1:
		return RouteBasics
	case 2:
		return RouteBackground
	case 3:
		return RouteHealth
	case 4:
		return RouteGenetic
	case 5:
		return RouteCompensation
	case 6:
		return RouteLegal
	default:
		return ""
	}
}
