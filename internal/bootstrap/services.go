package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/helix-fertility/helix-ui-api/config"
	"github.com/helix-fertility/helix-ui-api/internal/adapters/devprofile"
	"github.com/helix-fertility/helix-ui-api/internal/adapters/profileapi"
	redisadapter "github.com/helix-fertility/helix-ui-api/internal/adapters/redis"
	"github.com/helix-fertility/helix-ui-api/internal/data"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
	"github.com/helix-fertility/helix-ui-api/internal/service"
)

// shutdownTimeout bounds how long in-flight requests get to finish once a
// termination signal arrives.
const shutdownTimeout = 15 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Profile  ports.ProfileService
	Sessions *service.SessionService
	Wizard   *service.WizardService
	Admin    *service.AdminService
	Audit    ports.AuditRecorder
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the profile provider, session store, and audit repo into
// the service layer.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	profile, err := buildProfileService(cfg, logger)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build profile service: %w", err)
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, cfg.Session.KeyPrefix)
	audit := data.NewAuditRepo(deps.DB)

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Profile:  profile,
		Sessions: sessionStore,
		TTL:      cfg.Session.TTL,
	})

	wizardSvc := service.NewWizardService(service.WizardServiceOptions{
		Profile:  profile,
		Sessions: sessions,
		Audit:    audit,
		Logger:   logger,
	})

	admin := service.NewAdminService(service.AdminServiceOptions{
		Profile: profile,
		Audit:   audit,
		Logger:  logger,
	})

	return ServiceContainer{
		Profile:  profile,
		Sessions: sessions,
		Wizard:   wizardSvc,
		Admin:    admin,
		Audit:    audit,
	}, nil
}

// buildProfileService picks the upstream profile implementation from the
// configured auth mode.
//
//nolint:ireturn // callers depend on the port, not a concrete client.
func buildProfileService(cfg *config.AppConfig, logger *slog.Logger) (ports.ProfileService, error) {
	if cfg.Auth.Mode == config.AuthModeMock {
		logger.Warn("using in-process dev profile service; do not run this in production",
			"user_id", cfg.Auth.DevProfile.UserID,
			"email", cfg.Auth.DevProfile.Email,
		)
		return devprofile.NewProvider(devprofile.Config{
			UserID:    cfg.Auth.DevProfile.UserID,
			Email:     cfg.Auth.DevProfile.Email,
			OTP:       cfg.Auth.DevProfile.OTP,
			AdminRole: cfg.Auth.DevProfile.AdminRole,
		})
	}

	return profileapi.NewClient(profileapi.Options{
		BaseURL:        cfg.Profile.BaseURL,
		Timeout:        cfg.Profile.Timeout,
		UploadTimeout:  cfg.Profile.UploadTimeout,
		MaxUploadBytes: cfg.Profile.MaxUploadBytes,
	})
}

// RunConfig groups dependencies for the service runtime.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Run starts the HTTP server and blocks until a termination signal or a
// server failure, then drains in-flight requests before returning.
func Run(ctx context.Context, cfg *RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := NewHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if err == nil {
		logger.Info("shutdown complete")
	}
	return err
}
