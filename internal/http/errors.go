package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/service"
)

// errorBody is the JSON shape of every error response. Field is only set for
// validation errors that belong to a specific form field; RedirectTo is only
// set when the client should navigate somewhere to fix the problem.
type errorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// WriteAppError maps a service-layer error onto an HTTP status and the shared
// JSON error shape. Auth errors additionally clear the session cookie so the
// browser stops replaying a dead session.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrPermissionDenied) {
		WriteJSON(w, http.StatusForbidden, errorBody{
			Error:   "permission_denied",
			Message: "You do not have permission to do that.",
		})
		return
	}

	code := apperrors.GetCode(err)
	body := errorBody{
		Error:   string(code),
		Message: userMessage(err, code),
		Field:   apperrors.GetField(err),
	}
	if route, ok := service.SubmitRedirectHint(err); ok {
		body.RedirectTo = string(route)
	}

	switch code {
	case apperrors.ErrCodeValidation:
		WriteJSON(w, http.StatusBadRequest, body)
	case apperrors.ErrCodeAuth:
		clearSessionCookie(w, r, "")
		WriteJSON(w, http.StatusUnauthorized, body)
	case apperrors.ErrCodeNotFound:
		WriteJSON(w, http.StatusNotFound, body)
	case apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		WriteJSON(w, http.StatusConflict, body)
	case apperrors.ErrCodeSubmission:
		WriteJSON(w, http.StatusUnprocessableEntity, body)
	case apperrors.ErrCodeTimeout:
		WriteJSON(w, http.StatusGatewayTimeout, body)
	default:
		WriteJSON(w, http.StatusInternalServerError, body)
	}
}

// userMessage returns the message safe to show an end user. Internal errors
// never leak their cause.
func userMessage(err error, code apperrors.ErrorCode) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch code {
		case apperrors.ErrCodeInternal, apperrors.ErrCodeTimeout, apperrors.ErrCodeCanceled:
			return "Something went wrong. Please try again."
		default:
			return appErr.Message
		}
	}
	return "Something went wrong. Please try again."
}
