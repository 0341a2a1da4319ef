package httpx

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/helix-fertility/helix-ui-api/internal/domain/wizard"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
	"github.com/helix-fertility/helix-ui-api/internal/service"
)

// OnboardingHandlers provides HTTP handlers for the initial role selection
// flow and the six-stage wizard. All routes behind these handlers require an
// authenticated session.
type OnboardingHandlers struct {
	Sessions *service.SessionService
	Wizard   *service.WizardService
	// MaxUploadBytes caps each uploaded file accepted from the browser.
	MaxUploadBytes int64
}

// Initial returns the role selection state for the current user: the first
// screen they have not completed and the answers recovered from their
// identity snapshot.
// GET /onboarding/initial.
func (h *OnboardingHandlers) Initial(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Auth("Please sign in to continue."))
		return
	}

	answers := wizard.InitialAnswers{
		TermsAccepted:  sess.User.TermsAccepted,
		Gender:         sess.User.Gender,
		ServiceType:    sess.User.ServiceType,
		OnboardingRole: sess.User.OnboardingRole,
		InterestedIn:   sess.User.InterestedIn,
		PairingTypes:   sess.User.PairingTypes,
	}
	step, done := wizard.FirstUnanswered(answers)

	WriteJSON(w, http.StatusOK, map[string]any{
		"step":    step,
		"done":    done,
		"answers": answers,
	})
}

// SubmitInitial stores the completed role selection answers and returns where
// the resolver sends the user next.
// POST /onboarding/initial/submit.
func (h *OnboardingHandlers) SubmitInitial(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Auth("Please sign in to continue."))
		return
	}

	var answers wizard.InitialAnswers
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if !DecodeJSON(w, r, &answers) {
		return
	}

	res, err := h.Sessions.SubmitInitialOnboarding(r.Context(), *sess, answers)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user":       res.Session.User,
		"redirectTo": res.RedirectTo,
	})
}

// Stage hydrates a wizard stage with its saved draft.
// GET /onboarding/{stage}.
func (h *OnboardingHandlers) Stage(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Auth("Please sign in to continue."))
		return
	}

	view, err := h.Wizard.View(r.Context(), *sess, r.PathValue("stage"))
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"stage": map[string]any{
			"number":   view.Stage.Number,
			"slug":     view.Stage.Slug,
			"subSteps": view.Stage.SubSteps,
		},
		"draft": view.Draft,
	})
}

// Next validates the current screen and advances the wizard, submitting the
// stage upstream from its last screen. Accepts either a JSON body or, for
// screens with file uploads, multipart form data with "subStep", "draft" and
// file parts.
// POST /onboarding/{stage}/next.
func (h *OnboardingHandlers) Next(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Auth("Please sign in to continue."))
		return
	}

	input, err := h.decodeNextInput(w, r)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	res, err := h.Wizard.Next(r.Context(), *sess, r.PathValue("stage"), input)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"submitted": res.Submitted,
		"subStep":   res.SubStep,
		"route":     res.Route,
		"user":      res.Session.User,
	})
}

// Back steps the wizard backwards without validating or persisting anything.
// POST /onboarding/{stage}/back.
func (h *OnboardingHandlers) Back(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubStep int `json:"subStep"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Wizard.Back(r.PathValue("stage"), req.SubStep)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"subStep": res.SubStep,
		"route":   res.Route,
	})
}

// ProfileStatus reports the review state of the current user's profile,
// including the rejection reason when an admin has rejected it.
// GET /profile/status.
func (h *OnboardingHandlers) ProfileStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Auth("Please sign in to continue."))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"profileStatus":   sess.User.ProfileStatus,
		"onboardingStep":  sess.User.OnboardingStep,
		"rejectionReason": sess.User.RejectionReason,
	})
}

// decodeNextInput reads a Next request from either a JSON or multipart body.
func (h *OnboardingHandlers) decodeNextInput(w http.ResponseWriter, r *http.Request) (service.NextInput, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return h.decodeMultipartNext(w, r)
	}

	var req struct {
		SubStep int             `json:"subStep"`
		Draft   json.RawMessage `json:"draft"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return service.NextInput{}, apperrors.Validation("The request body could not be read.")
	}
	return service.NextInput{SubStep: req.SubStep, Draft: req.Draft}, nil
}

// decodeMultipartNext parses a multipart Next request: "subStep" and "draft"
// form fields plus any number of file parts. Each file is size-capped before
// it is buffered.
func (h *OnboardingHandlers) decodeMultipartNext(w http.ResponseWriter, r *http.Request) (service.NextInput, error) {
	maxBytes := h.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes*4)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return service.NextInput{}, apperrors.ValidationField("files", "The upload is too large or malformed.")
	}

	var input service.NextInput
	if v := r.FormValue("subStep"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return service.NextInput{}, apperrors.ValidationField("subStep", "subStep must be a number.")
		}
		input.SubStep = n
	}
	input.Draft = json.RawMessage(r.FormValue("draft"))

	if r.MultipartForm != nil {
		for field, headers := range r.MultipartForm.File {
			for _, fh := range headers {
				if fh.Size > maxBytes {
					return service.NextInput{}, apperrors.ValidationField("files", "One of the uploaded files is too large.")
				}
				f, err := fh.Open()
				if err != nil {
					return service.NextInput{}, apperrors.Internal("read uploaded file")
				}
				content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
				_ = f.Close()
				if err != nil {
					return service.NextInput{}, apperrors.Internal("read uploaded file")
				}
				if int64(len(content)) > maxBytes {
					return service.NextInput{}, apperrors.ValidationField("files", "One of the uploaded files is too large.")
				}
				input.Files = append(input.Files, ports.FilePart{
					Field:    field,
					Filename: fh.Filename,
					Content:  content,
				})
			}
		}
	}

	return input, nil
}
