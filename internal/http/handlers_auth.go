package httpx

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/routing"
	"github.com/helix-fertility/helix-ui-api/internal/service"
)

// AuthHandlers provides HTTP handlers for the OTP login flow and session
// status.
type AuthHandlers struct {
	Svc          *service.SessionService
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login requests a one-time passcode for an email address.
// POST /auth/login {"email": "..."}.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.RequestOTP(r.Context(), req.Email)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":           "otp_sent",
		"email":            res.Email,
		"resendAvailableAt": res.ResendAt,
	})
}

// VerifyOTP exchanges a passcode for a session. On success the session cookie
// is set and the resolver's post-login route is returned for the client to
// navigate to.
// POST /auth/verify-otp {"email": "...", "otp": "..."}.
func (h *AuthHandlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.setSessionCookie(w, r, res.Session)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          res.Session.User,
		"redirectTo":    res.RedirectTo,
	})
}

// Logout signs the user out. The upstream token is invalidated best-effort;
// the local session and cookie are always cleared.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		if err := h.Svc.SignOut(r.Context(), *sess); err != nil {
			h.logger().WarnContext(r.Context(), "sign out", "error", err)
		}
	}

	clearSessionCookie(w, r, h.CookieDomain)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": false,
		"redirectTo":    routing.RouteLogin,
	})
}

// Status reports the current authentication state. A missing or dead session
// is a normal logged-out answer; an upstream outage is reported alongside the
// logged-out state so the client can tell the two apart.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromRequest(r)

	state, err := h.Svc.CurrentIdentity(r.Context(), sessionID)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "resolve identity", "error", err)
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"degraded":      true,
		})
		return
	}
	if !state.Authenticated {
		if sessionID != "" {
			clearSessionCookie(w, r, h.CookieDomain)
		}
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          state.Session.User,
		"expiresAt":     state.Session.ExpiresAt,
	})
}

// sessionIDFromRequest reads the session cookie, returning "" when absent.
func sessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// isSecureRequest reports whether the request arrived over TLS, directly or
// via a terminating proxy.
func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s identity.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// clearSessionCookie clears the session cookie by setting it to expire
// immediately, mirroring the attributes used when setting it.
func clearSessionCookie(w http.ResponseWriter, r *http.Request, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
