package profile

// Package profile contains simple hand-written test doubles for the profile
// and session ports. These are lightweight and suitable for unit tests
// without codegen; gomock-generated mocks live alongside for tests that want
// call expectations.

import (
	"context"
	"errors"
	"sync"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/wizard"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.ProfileService = (*StubProfileService)(nil)
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.AuditRecorder  = (*MemoryAuditRecorder)(nil)
)

// StubProfileService simulates the upstream profile API for tests. Each
// method delegates to the matching func field when set and falls back to a
// benign default otherwise.
type StubProfileService struct {
	FetchCurrentFunc            func(ctx context.Context, token string) (identity.Identity, error)
	RequestOTPFunc              func(ctx context.Context, email string) error
	VerifyOTPFunc               func(ctx context.Context, email, otp string) (ports.VerifyResult, error)
	LogoutFunc                  func(ctx context.Context, token string) error
	SubmitInitialOnboardingFunc func(ctx context.Context, token string, answers wizard.InitialAnswers) error
	FetchStageDraftFunc         func(ctx context.Context, token string, stage int, slug string) ([]byte, error)
	SubmitStageFunc             func(ctx context.Context, token string, sub ports.StageSubmission) error
	CompleteFinalStageFunc      func(ctx context.Context, token string) error
	PendingProfilesFunc         func(ctx context.Context, token string) ([]identity.Identity, error)
	ReviewProfileFunc           func(ctx context.Context, token, userID string, decision ports.ReviewDecision) error

	// DefaultUser is returned by FetchCurrent and VerifyOTP when no func
	// field overrides them.
	DefaultUser identity.Identity
}

// NewStubProfileService creates a StubProfileService with a sensible default user.
func NewStubProfileService() *StubProfileService {
	return &StubProfileService{
		DefaultUser: identity.Identity{
			ID:            "stub-user-1",
			Email:         "stub.user@example.com",
			ProfileStatus: identity.StatusDraft,
		},
	}
}

func (m *StubProfileService) FetchCurrent(ctx context.Context, token string) (identity.Identity, error) {
	if m.FetchCurrentFunc != nil {
		return m.FetchCurrentFunc(ctx, token)
	}
	return m.DefaultUser, nil
}

func (m *StubProfileService) RequestOTP(ctx context.Context, email string) error {
	if m.RequestOTPFunc != nil {
		return m.RequestOTPFunc(ctx, email)
	}
	return nil
}

func (m *StubProfileService) VerifyOTP(ctx context.Context, email, otp string) (ports.VerifyResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, otp)
	}
	user := m.DefaultUser
	if email != "" {
		user.Email = email
	}
	return ports.VerifyResult{Token: "stub-token", User: user}, nil
}

func (m *StubProfileService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *StubProfileService) SubmitInitialOnboarding(ctx context.Context, token string, answers wizard.InitialAnswers) error {
	if m.SubmitInitialOnboardingFunc != nil {
		return m.SubmitInitialOnboardingFunc(ctx, token, answers)
	}
	return nil
}

func (m *StubProfileService) FetchStageDraft(ctx context.Context, token string, stage int, slug string) ([]byte, error) {
	if m.FetchStageDraftFunc != nil {
		return m.FetchStageDraftFunc(ctx, token, stage, slug)
	}
	return nil, ErrNotFound
}

func (m *StubProfileService) SubmitStage(ctx context.Context, token string, sub ports.StageSubmission) error {
	if m.SubmitStageFunc != nil {
		return m.SubmitStageFunc(ctx, token, sub)
	}
	return nil
}

func (m *StubProfileService) CompleteFinalStage(ctx context.Context, token string) error {
	if m.CompleteFinalStageFunc != nil {
		return m.CompleteFinalStageFunc(ctx, token)
	}
	return nil
}

func (m *StubProfileService) PendingProfiles(ctx context.Context, token string) ([]identity.Identity, error) {
	if m.PendingProfilesFunc != nil {
		return m.PendingProfilesFunc(ctx, token)
	}
	return []identity.Identity{}, nil
}

func (m *StubProfileService) ReviewProfile(ctx context.Context, token, userID string, decision ports.ReviewDecision) error {
	if m.ReviewProfileFunc != nil {
		return m.ReviewProfileFunc(ctx, token, userID, decision)
	}
	return nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]identity.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]identity.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess identity.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (identity.Session, error) {
	if id == "" {
		return identity.Session{}, ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return identity.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// MemoryAuditRecorder is an in-memory audit trail for unit tests.
type MemoryAuditRecorder struct {
	mu          sync.Mutex
	Submissions []ports.StageSubmissionRecord
	Decisions   []ports.ReviewDecisionRecord

	// Err, when set, is returned by every method.
	Err error
}

// NewMemoryAuditRecorder creates a new in-memory audit recorder.
func NewMemoryAuditRecorder() *MemoryAuditRecorder {
	return &MemoryAuditRecorder{}
}

func (m *MemoryAuditRecorder) RecordStageSubmission(_ context.Context, rec ports.StageSubmissionRecord) (ports.StageSubmissionRecord, error) {
	if m.Err != nil {
		return ports.StageSubmissionRecord{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submissions = append(m.Submissions, rec)
	return rec, nil
}

func (m *MemoryAuditRecorder) RecordReviewDecision(_ context.Context, rec ports.ReviewDecisionRecord) (ports.ReviewDecisionRecord, error) {
	if m.Err != nil {
		return ports.ReviewDecisionRecord{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Decisions = append(m.Decisions, rec)
	return rec, nil
}

func (m *MemoryAuditRecorder) ListStageSubmissions(_ context.Context, userID string) ([]ports.StageSubmissionRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ports.StageSubmissionRecord
	for _, rec := range m.Submissions {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *MemoryAuditRecorder) ListReviewDecisions(_ context.Context, userID string) ([]ports.ReviewDecisionRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ports.ReviewDecisionRecord
	for _, rec := range m.Decisions {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ErrNotFound is returned by mocks when an entity is not present. It carries
// the not_found taxonomy code, matching what the real adapters return.
var ErrNotFound error = apperrors.NotFound("not found")
