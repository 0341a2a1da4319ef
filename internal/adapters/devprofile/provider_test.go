package devprofile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/wizard"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
)

func newProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(Config{UserID: "dev-user", Email: "dev@example.com", OTP: "000000"})
	require.NoError(t, err)
	return p
}

func login(t *testing.T, p *Provider) string {
	t.Helper()
	res, err := p.VerifyOTP(context.Background(), "dev@example.com", "000000")
	require.NoError(t, err)
	return res.Token
}

func TestNewProvider_RequiredFields(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@example.com"})
	require.Error(t, err)

	_, err = NewProvider(Config{UserID: "dev-user"})
	require.Error(t, err)
}

func TestProvider_VerifyOTP(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()

	require.NoError(t, p.RequestOTP(ctx, "dev@example.com"))

	_, err := p.VerifyOTP(ctx, "dev@example.com", "999999")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))

	res, err := p.VerifyOTP(ctx, "dev@example.com", "000000")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "dev-user", res.User.ID)
	assert.Equal(t, identity.StatusDraft, res.User.ProfileStatus)
}

func TestProvider_FetchCurrent_BadToken(t *testing.T) {
	p := newProvider(t)

	_, err := p.FetchCurrent(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
}

func TestProvider_Logout_InvalidatesToken(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()
	token := login(t, p)

	_, err := p.FetchCurrent(ctx, token)
	require.NoError(t, err)

	require.NoError(t, p.Logout(ctx, token))

	_, err = p.FetchCurrent(ctx, token)
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
}

func TestProvider_InitialOnboardingPatchesIdentity(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()
	token := login(t, p)

	err := p.SubmitInitialOnboarding(ctx, token, wizard.InitialAnswers{
		TermsAccepted:  true,
		Gender:         "FEMALE",
		ServiceType:    identity.ServiceDonor,
		OnboardingRole: identity.RoleDonor,
		InterestedIn:   "EGG_DONATION",
		PairingTypes:   []string{"OPEN"},
	})
	require.NoError(t, err)

	user, err := p.FetchCurrent(ctx, token)
	require.NoError(t, err)
	assert.True(t, user.TermsAccepted)
	assert.Equal(t, identity.RoleDonor, user.OnboardingRole)
	assert.Equal(t, 1, user.OnboardingStep)
}

func TestProvider_StageDraftRoundTrip(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()
	token := login(t, p)

	_, err := p.FetchStageDraft(ctx, token, 2, "background")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	err = p.SubmitStage(ctx, token, ports.StageSubmission{
		Stage:   2,
		Slug:    "background",
		Payload: map[string]string{"education": "Bachelors"},
	})
	require.NoError(t, err)

	raw, err := p.FetchStageDraft(ctx, token, 2, "background")
	require.NoError(t, err)
	assert.JSONEq(t, `{"education":"Bachelors"}`, string(raw))
}

func TestProvider_CompleteSubmissionAdvancesStep(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()
	token := login(t, p)

	err := p.SubmitStage(ctx, token, ports.StageSubmission{
		Stage:      1,
		Slug:       "basics",
		Payload:    map[string]string{"legalName": "Dev User"},
		IsComplete: true,
	})
	require.NoError(t, err)

	user, err := p.FetchCurrent(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 2, user.OnboardingStep)

	// A repeat submission of an earlier stage never moves the step backwards.
	err = p.SubmitStage(ctx, token, ports.StageSubmission{Stage: 1, Slug: "basics", IsComplete: true})
	require.NoError(t, err)
	user, err = p.FetchCurrent(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 2, user.OnboardingStep)
}

func TestProvider_CompleteFinalStage(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()
	token := login(t, p)

	require.NoError(t, p.CompleteFinalStage(ctx, token))

	user, err := p.FetchCurrent(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, identity.MaxOnboardingStep, user.OnboardingStep)
	assert.Equal(t, identity.StatusPendingReview, user.ProfileStatus)
}

func TestProvider_AdminReviewFlow(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-user", Email: "dev@example.com", AdminRole: "Admin"})
	require.NoError(t, err)
	ctx := context.Background()

	res, err := p.VerifyOTP(ctx, "dev@example.com", "000000")
	require.NoError(t, err)
	require.NotNil(t, res.User.AccessRole)
	assert.True(t, res.User.HasPermission(identity.PermissionApproveProfiles))

	require.NoError(t, p.CompleteFinalStage(ctx, res.Token))

	pending, err := p.PendingProfiles(ctx, res.Token)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	err = p.ReviewProfile(ctx, res.Token, "dev-user", ports.ReviewDecision{
		Status: identity.StatusRejected,
		Reason: "Photos missing",
	})
	require.NoError(t, err)

	user, err := p.FetchCurrent(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, identity.StatusRejected, user.ProfileStatus)
	assert.Equal(t, "Photos missing", user.RejectionReason)

	err = p.ReviewProfile(ctx, res.Token, "other-user", ports.ReviewDecision{Status: identity.StatusActive})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
