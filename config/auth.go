package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOTP authenticates against the upstream profile service's
	// email/OTP endpoints.
	AuthModeOTP AuthMode = "otp"
	// AuthModeMock uses an in-process fake profile service (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "otp", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: otp, mock)", v)
	}
}

// DevProfileConfig controls the in-process fake profile service identity.
// Used when AUTH_MODE=mock for development and testing.
type DevProfileConfig struct {
	UserID string `env:"USER_ID" envDefault:"dev-user"`
	Email  string `env:"EMAIL"   envDefault:"dev@example.com"`
	// OTP is the code the fake service accepts for any login.
	OTP string `env:"OTP" envDefault:"000000"`
	// AdminRole grants the dev identity an access role when non-empty
	// (e.g. "Super Admin", "Admin", "Moderator").
	AdminRole string `env:"ADMIN_ROLE" envDefault:""`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which profile service implementation to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"otp"`

	// DevProfile configuration (used when Mode=mock).
	DevProfile DevProfileConfig `envPrefix:"DEV_PROFILE_"`
}

// SessionConfig controls server-side session behavior.
type SessionConfig struct {
	// TTL is how long a session lives after a successful OTP verification.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// KeyPrefix is the Redis key prefix for session records.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL < time.Minute {
		s.TTL = time.Minute
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
}
