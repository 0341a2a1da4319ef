package httpx

import (
	"net/http"

	"github.com/helix-fertility/helix-ui-api/internal/domain/guard"
	"github.com/helix-fertility/helix-ui-api/internal/domain/routing"
	"github.com/helix-fertility/helix-ui-api/internal/service"
)

// RoutingHandlers answers "may I render this route" for the SPA's navigation
// guard.
type RoutingHandlers struct {
	Sessions *service.SessionService
}

// Resolve evaluates the route guard for the requested client path. The
// endpoint is deliberately public: unauthenticated users get an
// unauthenticated decision, not a 401, so the client can route to login
// without error handling.
// GET /routing/resolve?path=/onboarding/basics.
func (h *RoutingHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	requested := routing.RouteID(r.URL.Query().Get("path"))
	if requested == "" {
		requested = routing.RouteID("/")
	}

	state, err := h.Sessions.CurrentIdentity(r.Context(), sessionIDFromRequest(r))
	if err != nil {
		// An upstream outage means we cannot decide; the client holds
		// rendering instead of bouncing the user to login.
		WriteJSON(w, http.StatusOK, map[string]any{
			"state":    guard.StateLoading,
			"degraded": true,
		})
		return
	}

	decision := guard.Evaluate(guard.Request{
		User:      state.User(),
		Requested: requested,
	})

	resp := map[string]any{"state": decision.State}
	if decision.Target != "" {
		resp["redirectTo"] = decision.Target
	}
	WriteJSON(w, http.StatusOK, resp)
}
