package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/routing"
	"github.com/helix-fertility/helix-ui-api/internal/domain/wizard"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
)

// otpResendCooldown is how long the client should wait before asking for
// another code. Purely a local hint; the upstream enforces nothing.
const otpResendCooldown = 30 * time.Second

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Profile  ports.ProfileService
	Sessions ports.SessionStore
	// TTL bounds how long a minted session lives.
	TTL time.Duration
}

// SessionService owns the login lifecycle: OTP request/verify, the cached
// identity snapshot, optimistic patches, and sign-out.
type SessionService struct {
	profile  ports.ProfileService
	sessions ports.SessionStore
	ttl      time.Duration
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		profile:  opts.Profile,
		sessions: opts.Sessions,
		ttl:      ttl,
	}
}

// AuthState is the answer to "who am I right now".
type AuthState struct {
	Authenticated bool
	Session       identity.Session
}

// User returns the identity when authenticated, nil otherwise.
func (s AuthState) User() *identity.Identity {
	if !s.Authenticated {
		return nil
	}
	return &s.Session.User
}

// CurrentIdentity resolves the auth state for a session cookie. A missing or
// unknown session is a logged-out state, not an error, and costs no upstream
// call. A 401 from the upstream deletes the session and reports logged-out.
// A store outage or any other upstream failure reports logged-out AND
// surfaces the error so the caller can distinguish "signed out" from
// "backend down". On success the server's identity wins and the cached
// snapshot is resynced.
func (s *SessionService) CurrentIdentity(ctx context.Context, sessionID string) (AuthState, error) {
	if sessionID == "" {
		return AuthState{}, nil
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return AuthState{}, nil
		}
		// The store itself failed; surface it so callers answer degraded
		// instead of bouncing an active user to login.
		return AuthState{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read session")
	}

	user, err := s.profile.FetchCurrent(ctx, sess.Token)
	if err != nil {
		if apperrors.IsAuth(err) {
			// Token no longer honored upstream: the session is dead.
			if delErr := s.sessions.Delete(ctx, sessionID); delErr != nil {
				return AuthState{}, apperrors.Wrap(delErr, apperrors.ErrCodeInternal, "delete stale session")
			}
			return AuthState{}, nil
		}
		return AuthState{}, err
	}

	sess.User = user
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return AuthState{}, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "resync session")
	}

	return AuthState{Authenticated: true, Session: sess}, nil
}

// OTPRequestResult carries the locally computed resend hint.
type OTPRequestResult struct {
	Email    string
	ResendAt time.Time
}

// RequestOTP asks the upstream to email a passcode and returns when the
// client may sensibly ask again.
func (s *SessionService) RequestOTP(ctx context.Context, email string) (*OTPRequestResult, error) {
	if email == "" {
		return nil, apperrors.ValidationField("email", "Email is required.")
	}

	if err := s.profile.RequestOTP(ctx, email); err != nil {
		return nil, err
	}

	return &OTPRequestResult{
		Email:    email,
		ResendAt: time.Now().Add(otpResendCooldown),
	}, nil
}

// LoginResult contains the minted session and where the resolver says the
// user should land next.
type LoginResult struct {
	Session    identity.Session
	RedirectTo routing.RouteID
}

// VerifyOTP exchanges a passcode for an upstream token, mints a session
// around it, and resolves the post-login route from the identity carried in
// the verify response itself, with no second round trip.
func (s *SessionService) VerifyOTP(ctx context.Context, email, otp string) (*LoginResult, error) {
	if email == "" {
		return nil, apperrors.ValidationField("email", "Email is required.")
	}
	if otp == "" {
		return nil, apperrors.ValidationField("otp", "The code is required.")
	}

	res, err := s.profile.VerifyOTP(ctx, email, otp)
	if err != nil {
		return nil, err
	}

	sess := identity.Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		User:      res.User,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return nil, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "save session")
	}

	return &LoginResult{
		Session:    sess,
		RedirectTo: routing.ResolveCanonicalRoute(&sess.User),
	}, nil
}

// SubmitInitialOnboarding validates and stores the role selection answers,
// then optimistically patches the cached identity so routing reflects the
// submission before the next resync.
func (s *SessionService) SubmitInitialOnboarding(ctx context.Context, sess identity.Session, answers wizard.InitialAnswers) (*LoginResult, error) {
	if err := wizard.ValidateAnswers(answers); err != nil {
		return nil, err
	}

	if err := s.profile.SubmitInitialOnboarding(ctx, sess.Token, answers); err != nil {
		return nil, err
	}

	sess.User.TermsAccepted = true
	sess.User.Gender = answers.Gender
	sess.User.ServiceType = answers.ServiceType
	sess.User.OnboardingRole = answers.OnboardingRole
	sess.User.InterestedIn = answers.InterestedIn
	sess.User.PairingTypes = append([]string(nil), answers.PairingTypes...)
	if sess.User.OnboardingStep < 1 {
		sess.User.OnboardingStep = 1
	}

	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return nil, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "save session")
	}

	return &LoginResult{
		Session:    sess,
		RedirectTo: routing.ResolveCanonicalRoute(&sess.User),
	}, nil
}

// AdvanceStage optimistically patches the cached onboarding step. The step
// only ever moves forward; stale or out-of-range values are ignored.
func (s *SessionService) AdvanceStage(ctx context.Context, sess identity.Session, step int) (identity.Session, error) {
	if step > sess.User.OnboardingStep && step <= identity.MaxOnboardingStep {
		sess.User.OnboardingStep = step
		if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
			return sess, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "save session")
		}
	}
	return sess, nil
}

// MarkPendingReview optimistically flips the cached profile status after the
// final stage submission.
func (s *SessionService) MarkPendingReview(ctx context.Context, sess identity.Session) (identity.Session, error) {
	sess.User.ProfileStatus = identity.StatusPendingReview
	if sess.User.OnboardingStep < identity.MaxOnboardingStep {
		sess.User.OnboardingStep = identity.MaxOnboardingStep
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return sess, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "save session")
	}
	return sess, nil
}

// SignOut invalidates the upstream token best-effort and always deletes the
// local session.
func (s *SessionService) SignOut(ctx context.Context, sess identity.Session) error {
	// Upstream logout failure never blocks local sign-out.
	_ = s.profile.Logout(ctx, sess.Token)

	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session")
	}
	return nil
}
