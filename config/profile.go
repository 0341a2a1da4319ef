package config

import "time"

// ProfileConfig contains upstream profile service configuration.
// The profile service owns user records, onboarding drafts, OTP issuance,
// and the admin review queue; this application consumes its REST API.
type ProfileConfig struct {
	// BaseURL is the root of the profile service API
	// (e.g., "https://profiles.internal.example.com/api").
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3001/api"`

	// Timeout bounds each upstream request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// UploadTimeout bounds multipart upload requests (identity documents,
	// photos, genetic reports), which can be considerably larger.
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"60s"`

	// MaxUploadBytes caps the size of a single uploaded file accepted
	// from the browser before it is forwarded upstream.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Sanitize applies guardrails to profile service configuration values.
func (p *ProfileConfig) Sanitize() {
	if p.Timeout < time.Second {
		p.Timeout = time.Second
	}
	if p.UploadTimeout < p.Timeout {
		p.UploadTimeout = p.Timeout
	}
	if p.MaxUploadBytes < 1024 {
		p.MaxUploadBytes = 1024
	}
}
