package ports

// Package ports defines interfaces (hexagonal ports) for profile and session
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"time"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/wizard"
)

// VerifyResult carries the upstream verify-otp response: the bearer token and
// the identity snapshot from the same response body, so the caller can route
// without a second round trip.
type VerifyResult struct {
	Token string
	User  identity.Identity
}

// FilePart is one multipart upload attached to a stage submission.
type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// StageSubmission groups everything a stage POST sends upstream.
type StageSubmission struct {
	Stage int
	Slug  string
	// Payload is marshaled as the JSON body, or as the "data" form field
	// when Files are attached.
	Payload any
	Files   []FilePart
	// IsComplete marks the terminal sub-step submission for the stage.
	IsComplete bool
}

// ReviewDecision is an admin's verdict on a pending profile.
type ReviewDecision struct {
	Status identity.ProfileStatus
	Reason string
}

// ProfileService is the typed client for the upstream profile API. A bearer
// token accompanies every authenticated call; an upstream 401 surfaces as an
// auth error so callers can force a sign-out.
type ProfileService interface {
	// FetchCurrent returns the identity bound to the token.
	FetchCurrent(ctx context.Context, token string) (identity.Identity, error)

	// RequestOTP asks the upstream to email a one-time passcode.
	RequestOTP(ctx context.Context, email string) error

	// VerifyOTP exchanges an emailed passcode for a bearer token and the
	// authenticated identity.
	VerifyOTP(ctx context.Context, email, otp string) (VerifyResult, error)

	// Logout invalidates the token upstream.
	Logout(ctx context.Context, token string) error

	// SubmitInitialOnboarding stores the role selection answers and marks
	// the terms as accepted.
	SubmitInitialOnboarding(ctx context.Context, token string, answers wizard.InitialAnswers) error

	// FetchStageDraft returns the raw saved draft for a stage, or a
	// not-found error when nothing has been saved yet.
	FetchStageDraft(ctx context.Context, token string, stage int, slug string) ([]byte, error)

	// SubmitStage posts a stage payload, with multipart file parts when
	// present.
	SubmitStage(ctx context.Context, token string, sub StageSubmission) error

	// CompleteFinalStage marks the whole profile as submitted for review.
	CompleteFinalStage(ctx context.Context, token string) error

	// PendingProfiles lists profiles awaiting review.
	PendingProfiles(ctx context.Context, token string) ([]identity.Identity, error)

	// ReviewProfile records an approve or reject decision for a user.
	ReviewProfile(ctx context.Context, token, userID string, decision ReviewDecision) error
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess identity.Session) error
	Get(ctx context.Context, id string) (identity.Session, error)
	Delete(ctx context.Context, id string) error
}

// StageSubmissionRecord is one audited wizard submission.
type StageSubmissionRecord struct {
	ID        string
	UserID    string
	Stage     int
	Slug      string
	Accepted  bool
	Detail    string
	CreatedAt time.Time
}

// ReviewDecisionRecord is one audited admin review decision.
type ReviewDecisionRecord struct {
	ID         string
	ReviewerID string
	UserID     string
	Status     identity.ProfileStatus
	Reason     string
	CreatedAt  time.Time
}

// AuditRecorder persists the audit trail of submissions and decisions.
type AuditRecorder interface {
	RecordStageSubmission(ctx context.Context, rec StageSubmissionRecord) (StageSubmissionRecord, error)
	RecordReviewDecision(ctx context.Context, rec ReviewDecisionRecord) (ReviewDecisionRecord, error)
	ListStageSubmissions(ctx context.Context, userID string) ([]StageSubmissionRecord, error)
	ListReviewDecisions(ctx context.Context, userID string) ([]ReviewDecisionRecord, error)
}
