package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
)

// AuditRepo persists the onboarding audit trail: one row per wizard stage
// submission attempt and one row per admin review decision.
type AuditRepo struct {
	DB    *sql.DB
	clock clock
}

// NewAuditRepo creates a new AuditRepo instance with the given database connection.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{
		DB:    db,
		clock: systemClock{},
	}
}

var _ ports.AuditRecorder = (*AuditRepo)(nil)

// stageSubmissionColumns defines the column list for stage submission SELECT queries.
const stageSubmissionColumns = `id, user_id, stage, slug, accepted, detail, created_at`

// reviewDecisionColumns defines the column list for review decision SELECT queries.
const reviewDecisionColumns = `id, reviewer_id, user_id, status, reason, created_at`

type stageSubmissionRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Stage     int       `db:"stage"`
	Slug      string    `db:"slug"`
	Accepted  bool      `db:"accepted"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}

func (r stageSubmissionRow) toRecord() ports.StageSubmissionRecord {
	return ports.StageSubmissionRecord{
		ID:        r.ID,
		UserID:    r.UserID,
		Stage:     r.Stage,
		Slug:      r.Slug,
		Accepted:  r.Accepted,
		Detail:    r.Detail,
		CreatedAt: r.CreatedAt,
	}
}

type reviewDecisionRow struct {
	ID         string    `db:"id"`
	ReviewerID string    `db:"reviewer_id"`
	UserID     string    `db:"user_id"`
	Status     string    `db:"status"`
	Reason     string    `db:"reason"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r reviewDecisionRow) toRecord() ports.ReviewDecisionRecord {
	return ports.ReviewDecisionRecord{
		ID:         r.ID,
		ReviewerID: r.ReviewerID,
		UserID:     r.UserID,
		Status:     identity.ProfileStatus(r.Status),
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
	}
}

// RecordStageSubmission inserts one stage submission attempt and returns the stored row.
func (r *AuditRepo) RecordStageSubmission(ctx context.Context, rec ports.StageSubmissionRecord) (ports.StageSubmissionRecord, error) {
	if rec.UserID == "" {
		return ports.StageSubmissionRecord{}, ErrAuditUserIDRequired
	}
	if rec.Stage < 1 || rec.Stage > identity.MaxOnboardingStep {
		return ports.StageSubmissionRecord{}, ErrAuditStageOutOfRange
	}
	if rec.Slug == "" {
		return ports.StageSubmissionRecord{}, ErrAuditSlugRequired
	}

	query := `
		INSERT INTO stage_submissions (id, user_id, stage, slug, accepted, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + stageSubmissionColumns

	var row stageSubmissionRow
	err := withPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query,
			uuid.NewString(), rec.UserID, rec.Stage, rec.Slug, rec.Accepted, rec.Detail,
			r.clock.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[stageSubmissionRow])
		return err
	})
	if err != nil {
		return ports.StageSubmissionRecord{}, apperrors.MapDBError(err)
	}

	return row.toRecord(), nil
}

// RecordReviewDecision inserts one admin review decision and returns the stored row.
func (r *AuditRepo) RecordReviewDecision(ctx context.Context, rec ports.ReviewDecisionRecord) (ports.ReviewDecisionRecord, error) {
	if rec.ReviewerID == "" {
		return ports.ReviewDecisionRecord{}, ErrAuditReviewerRequired
	}
	if rec.UserID == "" {
		return ports.ReviewDecisionRecord{}, ErrAuditUserIDRequired
	}
	if rec.Status != identity.StatusActive && rec.Status != identity.StatusRejected {
		return ports.ReviewDecisionRecord{}, ErrAuditStatusInvalid
	}

	query := `
		INSERT INTO review_decisions (id, reviewer_id, user_id, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reviewDecisionColumns

	var row reviewDecisionRow
	err := withPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query,
			uuid.NewString(), rec.ReviewerID, rec.UserID, string(rec.Status), rec.Reason,
			r.clock.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[reviewDecisionRow])
		return err
	})
	if err != nil {
		return ports.ReviewDecisionRecord{}, apperrors.MapDBError(err)
	}

	return row.toRecord(), nil
}

// ListStageSubmissions returns a user's stage submissions, newest first.
func (r *AuditRepo) ListStageSubmissions(ctx context.Context, userID string) ([]ports.StageSubmissionRecord, error) {
	if userID == "" {
		return nil, ErrAuditUserIDRequired
	}

	query := `
		SELECT ` + stageSubmissionColumns + `
		FROM stage_submissions
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var rowsOut []stageSubmissionRow
	err := withPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[stageSubmissionRow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	records := make([]ports.StageSubmissionRecord, 0, len(rowsOut))
	for _, row := range rowsOut {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// ListReviewDecisions returns the review decisions recorded for a user, newest first.
func (r *AuditRepo) ListReviewDecisions(ctx context.Context, userID string) ([]ports.ReviewDecisionRecord, error) {
	if userID == "" {
		return nil, ErrAuditUserIDRequired
	}

	query := `
		SELECT ` + reviewDecisionColumns + `
		FROM review_decisions
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var rowsOut []reviewDecisionRow
	err := withPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[reviewDecisionRow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	records := make([]ports.ReviewDecisionRecord, 0, len(rowsOut))
	for _, row := range rowsOut {
		records = append(records, row.toRecord())
	}
	return records, nil
}
