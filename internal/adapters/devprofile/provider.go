package devprofile

// Package devprofile provides an in-process, config-driven ProfileService for
// local development. It short-circuits the OTP flow: any login email is
// accepted and the configured passcode always verifies.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/wizard"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
)

// Config controls the dev profile provider behavior.
type Config struct {
	UserID string
	Email  string
	// OTP is the only passcode VerifyOTP accepts.
	OTP string
	// AdminRole, when set, grants the dev identity that access role with
	// every known permission.
	AdminRole string
}

// Provider implements ports.ProfileService for local development. State
// lives in memory: submissions mutate the dev identity the way the real
// upstream would, so the whole wizard is walkable offline.
type Provider struct {
	otp string

	mu     sync.Mutex
	user   identity.Identity
	tokens map[string]bool
	drafts map[string][]byte
}

var _ ports.ProfileService = (*Provider)(nil)

// NewProvider constructs a dev profile provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev profile: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev profile: Email is required")
	}
	otp := cfg.OTP
	if otp == "" {
		otp = "000000"
	}

	user := identity.Identity{
		ID:            cfg.UserID,
		Email:         cfg.Email,
		ProfileStatus: identity.StatusDraft,
	}
	if cfg.AdminRole != "" {
		user.AccessRole = &identity.AccessRole{
			Name: cfg.AdminRole,
			Permissions: []string{
				identity.PermissionViewPendingProfiles,
				identity.PermissionApproveProfiles,
				identity.PermissionManageUsers,
				identity.PermissionViewSettings,
			},
		}
	}

	return &Provider{
		otp:    otp,
		user:   user,
		tokens: make(map[string]bool),
		drafts: make(map[string][]byte),
	}, nil
}

func (p *Provider) FetchCurrent(_ context.Context, token string) (identity.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.tokens[token] {
		return identity.Identity{}, apperrors.Auth("Your session has expired. Please sign in again.")
	}
	return p.user, nil
}

func (p *Provider) RequestOTP(_ context.Context, email string) error {
	if email == "" {
		return apperrors.ValidationField("email", "Email is required.")
	}
	// Any address is accepted; the configured passcode is the answer.
	return nil
}

func (p *Provider) VerifyOTP(_ context.Context, email, otp string) (ports.VerifyResult, error) {
	if otp != p.otp {
		return ports.VerifyResult{}, apperrors.Auth("Invalid or expired code.")
	}

	token, err := randomString(32)
	if err != nil {
		return ports.VerifyResult{}, fmt.Errorf("generate token: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[token] = true
	if email != "" {
		p.user.Email = email
	}
	return ports.VerifyResult{Token: token, User: p.user}, nil
}

func (p *Provider) Logout(_ context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tokens, token)
	return nil
}

func (p *Provider) SubmitInitialOnboarding(_ context.Context, token string, answers wizard.InitialAnswers) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.tokens[token] {
		return apperrors.Auth("Your session has expired. Please sign in again.")
	}

	p.user.TermsAccepted = true
	p.user.Gender = answers.Gender
	p.user.ServiceType = answers.ServiceType
	p.user.OnboardingRole = answers.OnboardingRole
	p.user.InterestedIn = answers.InterestedIn
	p.user.PairingTypes = append([]string(nil), answers.PairingTypes...)
	if p.user.OnboardingStep < 1 {
		p.user.OnboardingStep = 1
	}
	return nil
}

func draftKey(stage int, slug string) string {
	return fmt.Sprintf("stage-%d/%s", stage, slug)
}

func (p *Provider) FetchStageDraft(_ context.Context, token string, stage int, slug string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.tokens[token] {
		return nil, apperrors.Auth("Your session has expired. Please sign in again.")
	}

	raw, ok := p.drafts[draftKey(stage, slug)]
	if !ok {
		return nil, apperrors.NotFound("No saved draft for this stage.")
	}
	return raw, nil
}

func (p *Provider) SubmitStage(_ context.Context, token string, sub ports.StageSubmission) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.tokens[token] {
		return apperrors.Auth("Your session has expired. Please sign in again.")
	}

	raw, err := marshalPayload(sub.Payload)
	if err != nil {
		return err
	}
	p.drafts[draftKey(sub.Stage, sub.Slug)] = raw

	if sub.IsComplete {
		if next := sub.Stage + 1; next > p.user.OnboardingStep && next <= identity.MaxOnboardingStep {
			p.user.OnboardingStep = next
		}
	}
	return nil
}

func (p *Provider) CompleteFinalStage(_ context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.tokens[token] {
		return apperrors.Auth("Your session has expired. Please sign in again.")
	}

	p.user.OnboardingStep = identity.MaxOnboardingStep
	p.user.ProfileStatus = identity.StatusPendingReview
	return nil
}

func (p *Provider) PendingProfiles(_ context.Context, token string) ([]identity.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.tokens[token] {
		return nil, apperrors.Auth("Your session has expired. Please sign in again.")
	}

	if p.user.ProfileStatus == identity.StatusPendingReview {
		return []identity.Identity{p.user}, nil
	}
	return []identity.Identity{}, nil
}

func (p *Provider) ReviewProfile(_ context.Context, token, userID string, decision ports.ReviewDecision) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.tokens[token] {
		return apperrors.Auth("Your session has expired. Please sign in again.")
	}
	if userID != p.user.ID {
		return apperrors.NotFound("No such profile.")
	}

	p.user.ProfileStatus = decision.Status
	p.user.RejectionReason = decision.Reason
	return nil
}

func marshalPayload(payload any) ([]byte, error) {
	switch v := payload.(type) {
	case nil:
		return []byte("{}"), nil
	case []byte:
		return v, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "marshal stage payload")
		}
		return raw, nil
	}
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	return s[:n], nil
}
