package httpx

import (
	"context"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *identity.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session from context and a boolean
// indicating presence.
func GetSessionFromContext(ctx context.Context) (*identity.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*identity.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}
