package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/routing"
	"github.com/helix-fertility/helix-ui-api/internal/domain/wizard"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	mockprofile "github.com/helix-fertility/helix-ui-api/internal/mocks/profile"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
)

func newWizardFixture(stub *mockprofile.StubProfileService) (*WizardService, *mockprofile.MemorySessionStore, *mockprofile.MemoryAuditRecorder) {
	store := mockprofile.NewMemorySessionStore()
	audit := mockprofile.NewMemoryAuditRecorder()
	sessions := NewSessionService(SessionServiceOptions{
		Profile:  stub,
		Sessions: store,
		TTL:      time.Hour,
	})
	svc := NewWizardService(WizardServiceOptions{
		Profile:  stub,
		Sessions: sessions,
		Audit:    audit,
	})
	return svc, store, audit
}

func wizardSession(t *testing.T, store *mockprofile.MemorySessionStore, step int) identity.Session {
	t.Helper()
	sess := identity.Session{
		ID:    "sess-1",
		Token: "token-1",
		User: identity.Identity{
			ID:             "u1",
			TermsAccepted:  true,
			OnboardingRole: identity.RoleDonor,
			ServiceType:    identity.ServiceDonor,
			OnboardingStep: step,
			ProfileStatus:  identity.StatusDraft,
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(context.Background(), sess))
	return sess
}

func TestWizardService_View_UnknownStage(t *testing.T) {
	svc, store, _ := newWizardFixture(mockprofile.NewStubProfileService())
	sess := wizardSession(t, store, 1)

	_, err := svc.View(context.Background(), sess, "nonsense")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestWizardService_View_MissingDraftIsBlank(t *testing.T) {
	stub := mockprofile.NewStubProfileService()
	stub.FetchStageDraftFunc = func(ctx context.Context, token string, stage int, slug string) ([]byte, error) {
		return nil, apperrors.NotFound("no draft")
	}
	svc, store, _ := newWizardFixture(stub)
	sess := wizardSession(t, store, 1)

	view, err := svc.View(context.Background(), sess, wizard.SlugBasics)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Stage.Number)
	assert.JSONEq(t, "{}", string(view.Draft))
}

func TestWizardService_View_ReturnsDraft(t *testing.T) {
	stub := mockprofile.NewStubProfileService()
	stub.FetchStageDraftFunc = func(ctx context.Context, token string, stage int, slug string) ([]byte, error) {
		assert.Equal(t, 2, stage)
		assert.Equal(t, wizard.SlugBackground, slug)
		return []byte(`{"education":"BSc"}`), nil
	}
	svc, store, _ := newWizardFixture(stub)
	sess := wizardSession(t, store, 2)

	view, err := svc.View(context.Background(), sess, wizard.SlugBackground)
	require.NoError(t, err)
	assert.JSONEq(t, `{"education":"BSc"}`, string(view.Draft))
}

func TestWizardService_Next_ValidationBlocksAdvance(t *testing.T) {
	submitted := 0
	stub := mockprofile.NewStubProfileService()
	stub.SubmitStageFunc = func(ctx context.Context, token string, sub ports.StageSubmission) error {
		submitted++
		return nil
	}
	svc, store, _ := newWizardFixture(stub)
	sess := wizardSession(t, store, 1)

	_, err := svc.Next(context.Background(), sess, wizard.SlugBasics, NextInput{
		SubStep: 0,
		Draft:   json.RawMessage(`{"dob":"1990-01-01"}`),
	})
	require.Error(t, err)
	assert.Equal(t, "legalName", apperrors.GetField(err))
	assert.Zero(t, submitted)
}

func TestWizardService_Next_AdvancesScreen(t *testing.T) {
	svc, store, _ := newWizardFixture(mockprofile.NewStubProfileService())
	sess := wizardSession(t, store, 1)

	res, err := svc.Next(context.Background(), sess, wizard.SlugBasics, NextInput{
		SubStep: 0,
		Draft:   json.RawMessage(`{"legalName":"Jo Doe","dob":"1990-01-01"}`),
	})
	require.NoError(t, err)
	assert.False(t, res.Submitted)
	assert.Equal(t, 1, res.SubStep)
	assert.Equal(t, routing.RouteBasics, res.Route)
}

func TestWizardService_Next_MidStageUpload(t *testing.T) {
	var got ports.StageSubmission
	stub := mockprofile.NewStubProfileService()
	stub.SubmitStageFunc = func(ctx context.Context, token string, sub ports.StageSubmission) error {
		got = sub
		return nil
	}
	svc, store, _ := newWizardFixture(stub)
	sess := wizardSession(t, store, 1)

	res, err := svc.Next(context.Background(), sess, wizard.SlugBasics, NextInput{
		SubStep: 2,
		Draft:   json.RawMessage(`{"legalName":"Jo Doe","dob":"1990-01-01","email":"jo@example.com"}`),
		Files:   []ports.FilePart{{Field: "document", Filename: "passport.jpg", Content: []byte("img")}},
	})
	require.NoError(t, err)
	assert.False(t, res.Submitted)
	assert.Equal(t, 3, res.SubStep)
	assert.Equal(t, "identity", got.Slug)
	assert.False(t, got.IsComplete, "mid-stage uploads must not complete the stage")
}

func TestWizardService_Next_TerminalSubmitAdvances(t *testing.T) {
	var got ports.StageSubmission
	stub := mockprofile.NewStubProfileService()
	stub.SubmitStageFunc = func(ctx context.Context, token string, sub ports.StageSubmission) error {
		got = sub
		return nil
	}
	svc, store, audit := newWizardFixture(stub)
	sess := wizardSession(t, store, 2)

	res, err := svc.Next(context.Background(), sess, wizard.SlugBackground, NextInput{
		SubStep: 2,
		Draft:   json.RawMessage(`{"education":"BSc","occupation":"Engineer"}`),
	})
	require.NoError(t, err)
	assert.True(t, res.Submitted)
	assert.Equal(t, routing.RouteHealth, res.Route)
	assert.Equal(t, 3, res.Session.User.OnboardingStep)
	assert.True(t, got.IsComplete)
	assert.Equal(t, wizard.SlugBackground, got.Slug)

	recs, err := audit.ListStageSubmissions(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Accepted)

	saved, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.User.OnboardingStep)
}

func TestWizardService_Next_SubmitFailureDoesNotAdvance(t *testing.T) {
	stub := mockprofile.NewStubProfileService()
	stub.SubmitStageFunc = func(ctx context.Context, token string, sub ports.StageSubmission) error {
		return apperrors.Submission("education record could not be verified")
	}
	svc, store, audit := newWizardFixture(stub)
	sess := wizardSession(t, store, 2)

	_, err := svc.Next(context.Background(), sess, wizard.SlugBackground, NextInput{
		SubStep: 2,
		Draft:   json.RawMessage(`{"education":"BSc","occupation":"Engineer"}`),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsSubmission(err))

	recs, listErr := audit.ListStageSubmissions(context.Background(), "u1")
	require.NoError(t, listErr)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].Accepted)
	assert.Contains(t, recs[0].Detail, "education record")

	saved, getErr := store.Get(context.Background(), sess.ID)
	require.NoError(t, getErr)
	assert.Equal(t, 2, saved.User.OnboardingStep, "a failed submit must not advance the user")
}

func TestWizardService_Next_SurrogacyHeightRequired(t *testing.T) {
	svc, store, _ := newWizardFixture(mockprofile.NewStubProfileService())
	sess := wizardSession(t, store, 2)
	sess.User.ServiceType = identity.ServiceSurrogacy

	_, err := svc.Next(context.Background(), sess, wizard.SlugBackground, NextInput{
		SubStep: 2,
		Draft:   json.RawMessage(`{"education":"BSc","occupation":"Engineer"}`),
	})
	require.Error(t, err)
	assert.Equal(t, "height", apperrors.GetField(err))
}

func TestWizardService_Next_CompensationHandsOffToLegal(t *testing.T) {
	svc, store, _ := newWizardFixture(mockprofile.NewStubProfileService())
	sess := wizardSession(t, store, 5)

	res, err := svc.Next(context.Background(), sess, wizard.SlugCompensation, NextInput{
		SubStep: 0,
		Draft:   json.RawMessage(`{"isInterested":false}`),
	})
	require.NoError(t, err)
	assert.True(t, res.Submitted)
	assert.Equal(t, routing.RouteLegal, res.Route)
	assert.Equal(t, 5, res.Session.User.OnboardingStep, "legal consent is still outstanding")
}

func TestWizardService_Next_LegalCompletesProfile(t *testing.T) {
	completed := false
	stub := mockprofile.NewStubProfileService()
	stub.CompleteFinalStageFunc = func(ctx context.Context, token string) error {
		completed = true
		return nil
	}
	svc, store, _ := newWizardFixture(stub)
	sess := wizardSession(t, store, 5)

	res, err := svc.Next(context.Background(), sess, wizard.SlugLegal, NextInput{
		SubStep: 0,
		Draft:   json.RawMessage(`{"consentAgreed":true,"anonymityPreference":"OPEN"}`),
	})
	require.NoError(t, err)
	assert.True(t, completed)
	assert.True(t, res.Submitted)
	assert.Equal(t, routing.RouteProfileStatus, res.Route)
	assert.Equal(t, identity.StatusPendingReview, res.Session.User.ProfileStatus)
	assert.Equal(t, identity.MaxOnboardingStep, res.Session.User.OnboardingStep)
}

func TestWizardService_Next_LegalWithoutConsent(t *testing.T) {
	svc, store, _ := newWizardFixture(mockprofile.NewStubProfileService())
	sess := wizardSession(t, store, 5)

	_, err := svc.Next(context.Background(), sess, wizard.SlugLegal, NextInput{
		SubStep: 0,
		Draft:   json.RawMessage(`{"consentAgreed":false}`),
	})
	require.Error(t, err)
	assert.Equal(t, "consentAgreed", apperrors.GetField(err))
}

func TestWizardService_Back(t *testing.T) {
	svc, _, _ := newWizardFixture(mockprofile.NewStubProfileService())

	tests := []struct {
		name     string
		slug     string
		subStep  int
		wantSub  int
		wantRoute routing.RouteID
	}{
		{name: "within stage", slug: wizard.SlugBasics, subStep: 2, wantSub: 1, wantRoute: routing.RouteBasics},
		{name: "out of later stage", slug: wizard.SlugHealth, subStep: 0, wantSub: 0, wantRoute: routing.RouteBackground},
		{name: "out of first stage", slug: wizard.SlugBasics, subStep: 0, wantSub: 0, wantRoute: routing.RouteInitialOnboarding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Back(tt.slug, tt.subStep)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, res.SubStep)
			assert.Equal(t, tt.wantRoute, res.Route)
		})
	}
}

func TestSubmitRedirectHint(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{name: "dob rejection", err: apperrors.Submission("DOB is out of the accepted range"), wantHint: true},
		{name: "other rejection", err: apperrors.Submission("photos are blurry"), wantHint: false},
		{name: "validation error", err: apperrors.ValidationField("dob", "bad"), wantHint: false},
		{name: "nil", err: nil, wantHint: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, ok := SubmitRedirectHint(tt.err)
			assert.Equal(t, tt.wantHint, ok)
			if tt.wantHint {
				assert.Equal(t, routing.RouteBasics, route)
			}
		})
	}
}

func TestWizardService_Next_GeneticUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockprofile.NewMockProfileService(ctrl)
	store := mockprofile.NewMemorySessionStore()
	sessions := NewSessionService(SessionServiceOptions{Profile: mock, Sessions: store, TTL: time.Hour})
	svc := NewWizardService(WizardServiceOptions{
		Profile:  mock,
		Sessions: sessions,
		Audit:    mockprofile.NewMemoryAuditRecorder(),
	})
	sess := wizardSession(t, store, 4)

	mock.EXPECT().
		SubmitStage(gomock.Any(), "token-1", gomock.AssignableToTypeOf(ports.StageSubmission{})).
		DoAndReturn(func(_ context.Context, _ string, sub ports.StageSubmission) error {
			assert.Equal(t, 4, sub.Stage)
			assert.True(t, sub.IsComplete)
			require.Len(t, sub.Files, 1)
			draft, ok := sub.Payload.(wizard.GeneticDraft)
			require.True(t, ok)
			assert.True(t, draft.HasGeneticReport)
			return nil
		})

	res, err := svc.Next(context.Background(), sess, wizard.SlugGenetic, NextInput{
		SubStep: 0,
		Draft:   json.RawMessage(`{"conditions":["CF carrier"]}`),
		Files:   []ports.FilePart{{Field: "report", Filename: "report.pdf", Content: []byte("pdf")}},
	})
	require.NoError(t, err)
	assert.Equal(t, routing.RouteCompensation, res.Route)
	assert.Equal(t, 5, res.Session.User.OnboardingStep)
}
