package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/courseforge/courseforge-api/internal/config"
	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/generation"
	"github.com/courseforge/courseforge-api/internal/platform/anthropic"
	"github.com/courseforge/courseforge-api/internal/platform/gemini"
	"github.com/courseforge/courseforge-api/internal/platform/openai"
	"github.com/courseforge/courseforge-api/internal/platform/postgres"
	"github.com/courseforge/courseforge-api/internal/ratelimit"
	"github.com/courseforge/courseforge-api/internal/service"
	"github.com/courseforge/courseforge-api/internal/service/auth"
	"github.com/courseforge/courseforge-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore   store.UserStore
	courseStore store.CourseStore
	usageStore  store.UsageStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	courseService    service.CourseService

	// Per-user generation rate limiter
	limiter *ratelimit.Limiter
}

// newApplication creates a new application instance with all dependencies
// initialized. Configuration, logging, and the database connection must
// already be established.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost)
	app.courseStore = postgres.NewPostgresCourseStore(db)
	app.usageStore = postgres.NewPostgresUsageStore(db)

	providers, err := setupProviders(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation providers: %w", err)
	}

	orchestrator, err := generation.NewOrchestrator(providers, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation orchestrator: %w", err)
	}

	app.courseService, err = service.NewCourseService(
		orchestrator,
		app.courseStore,
		app.usageStore,
		db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create course service: %w", err)
	}

	app.limiter = ratelimit.New(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// setupProviders builds the provider map from the configured API keys.
// Providers without a key are skipped: requests routed to them fail with
// a configuration error rather than at startup. At least one key must be
// present.
func setupProviders(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (map[domain.ModelFamily]generation.ModelProvider, error) {
	providers := make(map[domain.ModelFamily]generation.ModelProvider)

	if cfg.OpenAIAPIKey != "" {
		client, err := openai.NewClient(cfg.OpenAIAPIKey, logger)
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		providers[domain.FamilyOpenAI] = client
	}

	if cfg.AnthropicAPIKey != "" {
		client, err := anthropic.NewClient(cfg.AnthropicAPIKey, logger)
		if err != nil {
			return nil, fmt.Errorf("anthropic client: %w", err)
		}
		providers[domain.FamilyAnthropic] = client
	}

	if cfg.GeminiAPIKey != "" {
		gen, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, logger)
		if err != nil {
			return nil, fmt.Errorf("gemini generator: %w", err)
		}
		providers[domain.FamilyGemini] = gen
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no generation provider API keys configured")
	}

	logger.Info("generation providers initialized", "provider_count", len(providers))
	return providers, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
