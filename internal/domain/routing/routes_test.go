package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
)

func draftUser(step int) *identity.Identity {
	return &identity.Identity{
		ID:             "user-1",
		Email:          "user@example.com",
		OnboardingRole: identity.RoleDonor,
		TermsAccepted:  true,
		OnboardingStep: step,
		ProfileStatus:  identity.StatusDraft,
	}
}

func TestResolveCanonicalRoute_Unauthenticated(t *testing.T) {
	assert.Equal(t, RouteLogin, ResolveCanonicalRoute(nil))
	assert.Equal(t, RouteLogin, ResolveCanonicalRoute(&identity.Identity{}))
}

func TestResolveCanonicalRoute_AdminBypassesOnboarding(t *testing.T) {
	// An admin with an unfinished onboarding state still lands on the console.
	admin := &identity.Identity{
		ID:         "admin-1",
		AccessRole: &identity.AccessRole{Name: identity.AccessRoleAdmin},
	}
	assert.Equal(t, RouteAdminHome, ResolveCanonicalRoute(admin))

	moderator := draftUser(3)
	moderator.AccessRole = &identity.AccessRole{Name: identity.AccessRoleModerator}
	assert.Equal(t, RouteAdminHome, ResolveCanonicalRoute(moderator))
}

func TestResolveCanonicalRoute_InitialOnboarding(t *testing.T) {
	noTerms := &identity.Identity{ID: "u", OnboardingRole: identity.RoleDonor}
	assert.Equal(t, RouteInitialOnboarding, ResolveCanonicalRoute(noTerms))

	noRole := &identity.Identity{ID: "u", TermsAccepted: true}
	assert.Equal(t, RouteInitialOnboarding, ResolveCanonicalRoute(noRole))
}

func TestResolveCanonicalRoute_StatusBeatsStep(t *testing.T) {
	// Once a profile leaves DRAFT, the step table no longer applies.
	for _, status := range []identity.ProfileStatus{
		identity.StatusPendingReview,
		identity.StatusActive,
		identity.StatusRejected,
	} {
		user := draftUser(2)
		user.ProfileStatus = status
		assert.Equal(t, RouteProfileStatus, ResolveCanonicalRoute(user), "status %s", status)
	}
}

func TestResolveCanonicalRoute_StepTable(t *testing.T) {
	tests := []struct {
		step     int
		expected RouteID
	}{
		{step: 0, expected: RouteBasics},
		{step: 1, expected: RouteBasics},
		{step: 2, expected: RouteBackground},
		{step: 3, expected: RouteHealth},
		{step: 4, expected: RouteGenetic},
		{step: 5, expected: RouteCompensation},
		{step: 6, expected: RouteProfileStatus},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ResolveCanonicalRoute(draftUser(tt.step)), "step %d", tt.step)
	}
}

func TestResolveCanonicalRoute_OutOfRangeStepRestartsWizard(t *testing.T) {
	assert.Equal(t, RouteBasics, ResolveCanonicalRoute(draftUser(-1)))
	assert.Equal(t, RouteBasics, ResolveCanonicalRoute(draftUser(7)))
	assert.Equal(t, RouteBasics, ResolveCanonicalRoute(draftUser(42)))
}

func TestRoutesForStep_LegalSharesStepFive(t *testing.T) {
	routes := RoutesForStep(5)
	assert.Equal(t, []RouteID{RouteCompensation, RouteLegal}, routes)

	// Canonical route stays the first entry.
	assert.Equal(t, RouteCompensation, ResolveCanonicalRoute(draftUser(5)))
}

func TestRoutesForStep_UnknownStep(t *testing.T) {
	assert.Equal(t, []RouteID{RouteBasics}, RoutesForStep(99))
}

func TestIsGated(t *testing.T) {
	assert.False(t, IsGated(RouteLogin))
	assert.False(t, IsGated(RouteUnauthorized))
	assert.True(t, IsGated(RouteBasics))
	assert.True(t, IsGated(RouteAdminHome))
	assert.True(t, IsGated(RouteProfileStatus))
}

func TestStageRoute(t *testing.T) {
	assert.Equal(t, RouteBasics, StageRoute(1))
	assert.Equal(t, RouteLegal, StageRoute(6))
	assert.Equal(t, RouteID(""), StageRoute(0))
	assert.Equal(t, RouteID(""), StageRoute(7))
}
