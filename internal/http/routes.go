package httpx

import (
	"log/slog"
	"net/http"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions *service.SessionService
	Wizard   *service.WizardService
	Admin    *service.AdminService

	CookieDomain string
	// MaxUploadBytes caps each uploaded file accepted from the browser.
	MaxUploadBytes int64
	Logger         *slog.Logger // Logger for handler warnings (optional)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Sessions,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	onboardingHandlers := &OnboardingHandlers{
		Sessions:       services.Sessions,
		Wizard:         services.Wizard,
		MaxUploadBytes: services.MaxUploadBytes,
	}
	routingHandlers := &RoutingHandlers{Sessions: services.Sessions}
	adminHandlers := &AdminHandlers{Svc: services.Admin}

	registerAuthRoutes(mux, authHandlers, services.Sessions)
	registerRoutingRoutes(mux, routingHandlers)
	registerOnboardingRoutes(mux, onboardingHandlers, services.Sessions)
	registerAdminRoutes(mux, adminHandlers, services.Sessions)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, sessions *service.SessionService) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/verify-otp", h.VerifyOTP)
	mux.HandleFunc("GET /auth/status", h.Status)
	// Logout resolves the session itself so an already-dead session still
	// clears the cookie instead of answering 401.
	mux.Handle("POST /auth/logout", optionalSession(sessions, http.HandlerFunc(h.Logout)))
}

func registerRoutingRoutes(mux *http.ServeMux, h *RoutingHandlers) {
	mux.HandleFunc("GET /routing/resolve", h.Resolve)
}

func registerOnboardingRoutes(mux *http.ServeMux, h *OnboardingHandlers, sessions *service.SessionService) {
	wrap := RequireSession(sessions)
	mux.Handle("GET /onboarding/initial", wrap(http.HandlerFunc(h.Initial)))
	mux.Handle("POST /onboarding/initial/submit", wrap(http.HandlerFunc(h.SubmitInitial)))
	mux.Handle("GET /onboarding/{stage}", wrap(http.HandlerFunc(h.Stage)))
	mux.Handle("POST /onboarding/{stage}/next", wrap(http.HandlerFunc(h.Next)))
	mux.Handle("POST /onboarding/{stage}/back", wrap(http.HandlerFunc(h.Back)))
	mux.Handle("GET /profile/status", wrap(http.HandlerFunc(h.ProfileStatus)))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers, sessions *service.SessionService) {
	viewWrap := RequireAdmin(sessions, identity.PermissionViewPendingProfiles)
	approveWrap := RequireAdmin(sessions, identity.PermissionApproveProfiles)
	mux.Handle("GET /admin/pending", viewWrap(http.HandlerFunc(h.Pending)))
	mux.Handle("PATCH /admin/approve/{userID}", approveWrap(http.HandlerFunc(h.Approve)))
}

// optionalSession resolves the session cookie when present and continues
// either way.
func optionalSession(sessions *service.SessionService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, err := sessions.CurrentIdentity(r.Context(), sessionIDFromRequest(r))
		if err == nil && state.Authenticated {
			sess := state.Session
			r = r.WithContext(SetSessionInContext(r.Context(), &sess))
		}
		next.ServeHTTP(w, r)
	})
}
