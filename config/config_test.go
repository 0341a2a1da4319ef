package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "otp", input: "otp", expected: AuthModeOTP},
		{name: "mock", input: "mock", expected: AuthModeMock},
		{name: "uppercase otp", input: "OTP", expected: AuthModeOTP},
		{name: "mixed case mock", input: "Mock", expected: AuthModeMock},
		{name: "invalid mode", input: "oauth", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for input %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("expected mode %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name          string
		level         int
		expectedLevel int
	}{
		{name: "below range clamps to 1", level: 0, expectedLevel: 1},
		{name: "negative clamps to 1", level: -5, expectedLevel: 1},
		{name: "above range clamps to 9", level: 42, expectedLevel: 9},
		{name: "in range unchanged", level: 6, expectedLevel: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := HTTPConfig{CompressionLevel: tt.level}
			cfg.Sanitize()
			if cfg.CompressionLevel != tt.expectedLevel {
				t.Errorf("expected level %d, got %d", tt.expectedLevel, cfg.CompressionLevel)
			}
		})
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	cfg := SessionConfig{TTL: time.Second, KeyPrefix: ""}
	cfg.Sanitize()

	if cfg.TTL != time.Minute {
		t.Errorf("expected TTL clamped to 1m, got %v", cfg.TTL)
	}
	if cfg.KeyPrefix != "session:" {
		t.Errorf("expected default key prefix, got %q", cfg.KeyPrefix)
	}
}

func TestProfileConfig_Sanitize(t *testing.T) {
	cfg := ProfileConfig{
		Timeout:        time.Millisecond,
		UploadTimeout:  0,
		MaxUploadBytes: 10,
	}
	cfg.Sanitize()

	if cfg.Timeout != time.Second {
		t.Errorf("expected timeout clamped to 1s, got %v", cfg.Timeout)
	}
	if cfg.UploadTimeout < cfg.Timeout {
		t.Errorf("expected upload timeout >= timeout, got %v", cfg.UploadTimeout)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("expected max upload bytes floor 1024, got %d", cfg.MaxUploadBytes)
	}
}

func TestAppConfig_ParseDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse defaults: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeOTP {
		t.Errorf("expected default auth mode otp, got %q", cfg.Auth.Mode)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected default session TTL 24h, got %v", cfg.Session.TTL)
	}
	if cfg.Profile.BaseURL == "" {
		t.Error("expected a default profile base URL")
	}
}

func TestAppConfig_ParseEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PROFILE_BASE_URL", "https://profiles.example.com/api")
	t.Setenv("DB_NAME", "helix_test")
	t.Setenv("SESSION_TTL", "1h")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeMock {
		t.Errorf("expected auth mode mock, got %q", cfg.Auth.Mode)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %q", cfg.HTTP.Addr)
	}
	if cfg.Profile.BaseURL != "https://profiles.example.com/api" {
		t.Errorf("unexpected profile base URL %q", cfg.Profile.BaseURL)
	}
	if cfg.Postgres.Name != "helix_test" {
		t.Errorf("expected db name helix_test, got %q", cfg.Postgres.Name)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("expected session TTL 1h, got %v", cfg.Session.TTL)
	}
}
