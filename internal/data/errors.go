package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Audit repository sentinels.
	ErrAuditUserIDRequired   = errors.New("user_id is required")
	ErrAuditStageOutOfRange  = errors.New("stage must be between 1 and 6")
	ErrAuditSlugRequired     = errors.New("slug is required")
	ErrAuditReviewerRequired = errors.New("reviewer_id is required")
	ErrAuditStatusInvalid    = errors.New("status must be ACTIVE or REJECTED")
)
