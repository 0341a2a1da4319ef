package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/routing"
	"github.com/helix-fertility/helix-ui-api/internal/domain/wizard"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
)

// WizardServiceOptions groups dependencies for WizardService.
type WizardServiceOptions struct {
	Profile  ports.ProfileService
	Sessions *SessionService
	Audit    ports.AuditRecorder
	Logger   *slog.Logger
}

// WizardService drives the six-stage onboarding wizard: draft hydration,
// per-screen validation, and the terminal submit that advances the user.
type WizardService struct {
	profile  ports.ProfileService
	sessions *SessionService
	audit    ports.AuditRecorder
	logger   *slog.Logger
}

// NewWizardService constructs a new WizardService.
func NewWizardService(opts WizardServiceOptions) *WizardService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &WizardService{
		profile:  opts.Profile,
		sessions: opts.Sessions,
		audit:    opts.Audit,
		logger:   logger,
	}
}

// StageView is a hydrated wizard stage ready to render.
type StageView struct {
	Stage wizard.Stage
	// Draft is the upstream draft payload, or {} when none exists yet.
	Draft json.RawMessage
}

// NextInput is what the client sends when advancing from one screen.
type NextInput struct {
	// SubStep is the 0-based screen the user is advancing FROM.
	SubStep int
	// Draft is the full stage draft as the client currently holds it.
	Draft json.RawMessage
	// Files are uploads attached to this screen (identity documents,
	// photos, genetic reports).
	Files []ports.FilePart
}

// NextResult reports where the wizard goes after a successful advance.
type NextResult struct {
	// Submitted is true when the terminal screen pushed the stage upstream.
	Submitted bool
	// SubStep is the screen to show next; meaningful only when Submitted
	// is false.
	SubStep int
	// Route is the client route to navigate to.
	Route routing.RouteID
	// Session carries the optimistic patch applied after a submit.
	Session identity.Session
}

// BackResult reports where the wizard goes when stepping backwards.
type BackResult struct {
	SubStep int
	Route   routing.RouteID
}

// View hydrates a stage with its upstream draft. A missing draft is a blank
// stage, not an error.
func (s *WizardService) View(ctx context.Context, sess identity.Session, slug string) (*StageView, error) {
	stage, ok := wizard.StageBySlug(slug)
	if !ok {
		return nil, apperrors.NotFoundf("Unknown onboarding stage %q.", slug)
	}

	draft, err := s.profile.FetchStageDraft(ctx, sess.Token, stage.Number, stage.Slug)
	if err != nil {
		if apperrors.IsNotFound(err) {
			draft = []byte("{}")
		} else {
			return nil, err
		}
	}
	if len(draft) == 0 {
		draft = []byte("{}")
	}

	return &StageView{Stage: stage, Draft: draft}, nil
}

// Next validates the current screen and either moves to the next screen or,
// on the stage's last screen, submits the whole stage upstream. Validation
// and submission failures never advance the user. A successful submit patches
// the cached onboarding step and, for the legal stage, completes the profile
// and flips it to pending review.
func (s *WizardService) Next(ctx context.Context, sess identity.Session, slug string, input NextInput) (*NextResult, error) {
	stage, ok := wizard.StageBySlug(slug)
	if !ok {
		return nil, apperrors.NotFoundf("Unknown onboarding stage %q.", slug)
	}
	if input.SubStep < 0 || input.SubStep >= stage.SubSteps {
		return nil, apperrors.ValidationField("subStep", "Unknown wizard screen.")
	}

	payload, err := s.validateScreen(stage, sess.User, input)
	if err != nil {
		return nil, err
	}

	if !stage.IsTerminalSubStep(input.SubStep) {
		// Identity documents upload mid-stage; push them as an
		// incomplete submission so nothing is lost before the final
		// screen.
		if len(input.Files) > 0 {
			sub := ports.StageSubmission{
				Stage: stage.Number,
				Slug:  screenSlug(stage, input.SubStep),
				Files: input.Files,
			}
			if err := s.profile.SubmitStage(ctx, sess.Token, sub); err != nil {
				return nil, err
			}
		}
		return &NextResult{
			SubStep: input.SubStep + 1,
			Route:   stage.Route(),
			Session: sess,
		}, nil
	}

	return s.submit(ctx, sess, stage, payload, input.Files)
}

// Back steps to the previous screen, or out of the stage entirely from the
// first screen. Pure navigation; nothing is validated or persisted.
func (s *WizardService) Back(slug string, subStep int) (*BackResult, error) {
	stage, ok := wizard.StageBySlug(slug)
	if !ok {
		return nil, apperrors.NotFoundf("Unknown onboarding stage %q.", slug)
	}
	if subStep > 0 {
		return &BackResult{SubStep: subStep - 1, Route: stage.Route()}, nil
	}
	return &BackResult{SubStep: 0, Route: stage.BackRoute()}, nil
}

// SubmitRedirectHint inspects a stage submission failure for the one known
// case where the fix lives on an earlier stage: the upstream rejects stale
// dates of birth at every later stage, so the client is pointed back at the
// basics screen that owns the field.
func SubmitRedirectHint(err error) (routing.RouteID, bool) {
	if !apperrors.IsSubmission(err) {
		return "", false
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return "", false
	}
	if strings.Contains(strings.ToLower(appErr.Message), "dob") {
		return routing.RouteBasics, true
	}
	return "", false
}

// validateScreen decodes the draft into the stage's typed form and runs the
// per-screen rules. It returns the decoded payload so the terminal submit
// reuses the same parse.
func (s *WizardService) validateScreen(stage wizard.Stage, user identity.Identity, input NextInput) (any, error) {
	raw := input.Draft
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	switch stage.Slug {
	case wizard.SlugBasics:
		var d wizard.BasicsDraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, apperrors.Validation("The submitted form could not be read.")
		}
		d.NewPhotoCount = len(input.Files)
		if err := d.ValidateSubStep(input.SubStep); err != nil {
			return nil, err
		}
		return d, nil
	case wizard.SlugBackground:
		var d wizard.BackgroundDraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, apperrors.Validation("The submitted form could not be read.")
		}
		if err := d.ValidateSubStep(input.SubStep); err != nil {
			return nil, err
		}
		if stage.IsTerminalSubStep(input.SubStep) {
			if err := d.ValidateSubmit(user.ServiceType); err != nil {
				return nil, err
			}
		}
		return d, nil
	case wizard.SlugHealth:
		var d wizard.HealthDraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, apperrors.Validation("The submitted form could not be read.")
		}
		return d, nil
	case wizard.SlugGenetic:
		var d wizard.GeneticDraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, apperrors.Validation("The submitted form could not be read.")
		}
		d.HasGeneticReport = d.HasGeneticReport || len(input.Files) > 0
		return d, nil
	case wizard.SlugCompensation:
		var d wizard.CompensationDraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, apperrors.Validation("The submitted form could not be read.")
		}
		if err := d.ValidateSubmit(); err != nil {
			return nil, err
		}
		return d, nil
	case wizard.SlugLegal:
		var d wizard.LegalDraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, apperrors.Validation("The submitted form could not be read.")
		}
		if err := d.ValidateSubmit(); err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, apperrors.NotFoundf("Unknown onboarding stage %q.", stage.Slug)
}

// submit pushes the completed stage upstream, audits the attempt, and applies
// the optimistic session patch on success.
func (s *WizardService) submit(ctx context.Context, sess identity.Session, stage wizard.Stage, payload any, files []ports.FilePart) (*NextResult, error) {
	sub := ports.StageSubmission{
		Stage:      stage.Number,
		Slug:       stage.Slug,
		Payload:    payload,
		Files:      files,
		IsComplete: true,
	}

	submitErr := s.profile.SubmitStage(ctx, sess.Token, sub)
	if submitErr == nil && stage.Slug == wizard.SlugLegal {
		submitErr = s.profile.CompleteFinalStage(ctx, sess.Token)
	}

	s.recordAttempt(ctx, sess.User.ID, stage, submitErr)

	if submitErr != nil {
		return nil, submitErr
	}

	var err error
	if stage.Slug == wizard.SlugLegal {
		sess, err = s.sessions.MarkPendingReview(ctx, sess)
	} else {
		sess, err = s.sessions.AdvanceStage(ctx, sess, stage.AdvanceTo)
	}
	if err != nil {
		return nil, err
	}

	return &NextResult{
		Submitted: true,
		Route:     stage.NextRoute(),
		Session:   sess,
	}, nil
}

// recordAttempt writes the audit row for a terminal submit. Audit failures
// are logged, never surfaced; the trail must not block onboarding.
func (s *WizardService) recordAttempt(ctx context.Context, userID string, stage wizard.Stage, submitErr error) {
	if s.audit == nil {
		return
	}
	rec := ports.StageSubmissionRecord{
		UserID:   userID,
		Stage:    stage.Number,
		Slug:     stage.Slug,
		Accepted: submitErr == nil,
	}
	if submitErr != nil {
		rec.Detail = submitErr.Error()
	}
	if _, err := s.audit.RecordStageSubmission(ctx, rec); err != nil {
		s.logger.Warn("record stage submission audit", "user_id", userID, "stage", stage.Number, "error", err)
	}
}

// screenSlug names the upstream sub-resource for a mid-stage upload. Only the
// first stage splits into sub-resources.
func screenSlug(stage wizard.Stage, subStep int) string {
	if stage.Slug == wizard.SlugBasics {
		switch subStep {
		case 0, 1:
			return "basics"
		case 2:
			return "identity"
		default:
			return "photos"
		}
	}
	return stage.Slug
}
