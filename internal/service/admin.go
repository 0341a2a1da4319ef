package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
)

// ErrPermissionDenied is returned when an authenticated user lacks the
// permission an admin operation requires. Handlers map it to 403.
var ErrPermissionDenied = errors.New("permission denied")

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Profile ports.ProfileService
	Audit   ports.AuditRecorder
	Logger  *slog.Logger
}

// AdminService proxies the review console: the pending-profile queue and
// approve/reject decisions, with every decision audited locally.
type AdminService struct {
	profile ports.ProfileService
	audit   ports.AuditRecorder
	logger  *slog.Logger
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		profile: opts.Profile,
		audit:   opts.Audit,
		logger:  logger,
	}
}

// PendingProfiles lists profiles awaiting review. The permission check runs
// again here so the service stays safe even if a route forgets its guard.
func (s *AdminService) PendingProfiles(ctx context.Context, sess identity.Session) ([]identity.Identity, error) {
	if !sess.User.HasPermission(identity.PermissionViewPendingProfiles) {
		return nil, ErrPermissionDenied
	}
	return s.profile.PendingProfiles(ctx, sess.Token)
}

// Review applies an approve or reject decision to a pending profile. A
// rejection must say why; the reason is relayed upstream and shown to the
// applicant on their status page.
func (s *AdminService) Review(ctx context.Context, sess identity.Session, userID string, decision ports.ReviewDecision) error {
	if !sess.User.HasPermission(identity.PermissionApproveProfiles) {
		return ErrPermissionDenied
	}
	if userID == "" {
		return apperrors.ValidationField("userId", "A profile id is required.")
	}
	if decision.Status != identity.StatusActive && decision.Status != identity.StatusRejected {
		return apperrors.ValidationField("status", "Status must be ACTIVE or REJECTED.")
	}
	if decision.Status == identity.StatusRejected && decision.Reason == "" {
		return apperrors.ValidationField("reason", "A rejection reason is required.")
	}

	if err := s.profile.ReviewProfile(ctx, sess.Token, userID, decision); err != nil {
		return err
	}

	s.recordDecision(ctx, sess.User.ID, userID, decision)
	return nil
}

// recordDecision writes the audit row for a review verdict. Audit failures
// are logged, never surfaced.
func (s *AdminService) recordDecision(ctx context.Context, reviewerID, userID string, decision ports.ReviewDecision) {
	if s.audit == nil {
		return
	}
	rec := ports.ReviewDecisionRecord{
		ReviewerID: reviewerID,
		UserID:     userID,
		Status:     decision.Status,
		Reason:     decision.Reason,
	}
	if _, err := s.audit.RecordReviewDecision(ctx, rec); err != nil {
		s.logger.Warn("record review decision audit", "reviewer_id", reviewerID, "user_id", userID, "error", err)
	}
}
