package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
)

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
// On failure it writes a validation error in the standard error shape and
// returns false; the handler should just return.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteAppError(w, r, apperrors.Validation("The request body could not be read."))
		return false
	}
	return true
}

// WriteJSON encodes v and writes it with the given status. The body is
// staged in a buffer so an encoding failure can still become a clean 500
// instead of a half-written response.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// A write failure here means the client went away; nothing to do.
	_, _ = buf.WriteTo(w)
}
