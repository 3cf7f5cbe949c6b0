// Package main is the entry point for the flight offer aggregation service.
//
//	@title						Easy Flight API
//	@version					1.0.0
//	@description				A flight price comparison service that aggregates offers from multiple providers, with a free-search quota and subscription billing.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/kingcrud12/easy-flight-project/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/kingcrud12/easy-flight-project/docs"

	// Application layers
	"github.com/kingcrud12/easy-flight-project/internal/account"
	offerhttp "github.com/kingcrud12/easy-flight-project/internal/adapter/http"
	"github.com/kingcrud12/easy-flight-project/internal/adapter/http/middleware"
	"github.com/kingcrud12/easy-flight-project/internal/adapter/provider/aviasales"
	"github.com/kingcrud12/easy-flight-project/internal/adapter/provider/aviationstack"
	"github.com/kingcrud12/easy-flight-project/internal/adapter/provider/googleflights"
	"github.com/kingcrud12/easy-flight-project/internal/billing"
	"github.com/kingcrud12/easy-flight-project/internal/config"
	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/email"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/logger"
	"github.com/kingcrud12/easy-flight-project/internal/quota"
	"github.com/kingcrud12/easy-flight-project/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
	startupTimeout  = 15 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	log := logger.Global

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	users, cleanup, err := buildUserStore(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize user store")
	}
	defer cleanup()

	sessions := buildSessionStore(cfg, log)

	// Quota, billing and email services share the real clock.
	quotas := quota.NewService(sessions, users, cfg.Quota.FreeSearchLimit, nil)
	mailer := email.NewMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	}, log)
	billingSvc := billing.NewService(billing.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		PriceID:       cfg.Stripe.PriceID,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		FrontendURL:   cfg.App.FrontendURL,
	}, nil, users, mailer, nil, log)

	searchUC := buildSearchUseCase(cfg, log)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)

	handler := offerhttp.NewOfferHandler(searchUC, quotas, users, billingSvc, log)
	offerhttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// buildSearchUseCase wires the provider adapters into the search use case.
// All three providers are always registered; the ones without a credential
// contribute zero results. Registration order fixes the merge priority, with
// the structured-search provider first and primary.
func buildSearchUseCase(cfg *config.Config, log *logger.Logger) usecase.OfferSearchUseCase {
	if cfg.Providers.SerpAPIKey == "" {
		log.Warn().Msg("SERPAPI_KEY is not set; searches will fail until it is configured")
	}

	registry := domain.NewProviderRegistry()
	registry.Register(googleflights.NewAdapter(cfg.Providers.SerpAPIKey))
	registry.Register(aviasales.NewAdapter(cfg.Providers.AviasalesToken))
	registry.Register(aviationstack.NewAdapter(cfg.Providers.AviationstackKey))

	log.Info().Strs("providers", registry.Names()).Msg("Providers registered")

	return usecase.NewOfferSearchUseCase(registry, &usecase.Config{
		GlobalTimeout:   cfg.Timeouts.GlobalSearch,
		ProviderTimeout: cfg.Timeouts.PerProvider,
		PrimaryProvider: googleflights.ProviderName,
	}, log)
}

// buildUserStore returns the Postgres-backed account store when DATABASE_URL
// is set, and an in-memory store otherwise. The returned cleanup closes the
// connection pool.
func buildUserStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (account.Store, func(), error) {
	if cfg.Database.URL == "" {
		log.Warn().Msg("DATABASE_URL is not set; accounts are kept in memory")
		return account.NewMemoryStore(nil), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	store := account.NewPostgresStore(pool, nil)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}

	log.Info().Msg("Connected to Postgres")
	return store, pool.Close, nil
}

// buildSessionStore returns the Redis-backed session quota store when
// REDIS_ADDR is set, and an in-memory store otherwise.
func buildSessionStore(cfg *config.Config, log *logger.Logger) quota.SessionStore {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR is not set; session quotas are kept in memory")
		return quota.NewMemorySessionStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	log.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis for session quotas")
	return quota.NewRedisSessionStore(client)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
