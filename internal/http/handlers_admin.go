package httpx

import (
	"net/http"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
	"github.com/helix-fertility/helix-ui-api/internal/service"
)

// AdminHandlers provides HTTP handlers for the review console.
type AdminHandlers struct {
	Svc *service.AdminService
}

// Pending lists profiles awaiting review.
// GET /admin/pending.
func (h *AdminHandlers) Pending(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Auth("Please sign in to continue."))
		return
	}

	profiles, err := h.Svc.PendingProfiles(r.Context(), *sess)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []identity.Identity{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

// Approve applies an approve or reject verdict to a pending profile.
// PATCH /admin/approve/{userID} {"status": "ACTIVE"|"REJECTED", "reason": "..."}.
func (h *AdminHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Auth("Please sign in to continue."))
		return
	}

	var req struct {
		Status identity.ProfileStatus `json:"status"`
		Reason string                 `json:"reason"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if !DecodeJSON(w, r, &req) {
		return
	}

	err := h.Svc.Review(r.Context(), *sess, r.PathValue("userID"), ports.ReviewDecision{
		Status: req.Status,
		Reason: req.Reason,
	})
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"userId": r.PathValue("userID"),
		"status": req.Status,
	})
}
