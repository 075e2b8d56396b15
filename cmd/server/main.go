package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fr0stylo/shopreviews/internal/adapters/storefactory"
	appservices "github.com/fr0stylo/shopreviews/internal/app/services"
	"github.com/fr0stylo/shopreviews/internal/config"
	"github.com/fr0stylo/shopreviews/internal/observability"
	"github.com/fr0stylo/shopreviews/internal/server"
	"github.com/fr0stylo/shopreviews/internal/server/routes"
	"github.com/fr0stylo/shopreviews/internal/shopify"
)

const shutdownTimeout = 10 * time.Second

func Run() error {
	log := observability.NewLogger(os.Stdout, slog.LevelInfo)
	slog.SetDefault(log)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.IsLocalDevelopment() && os.Getenv("REVIEWS_SESSION_SECRET") == "" {
		slog.Warn("REVIEWS_SESSION_SECRET not set, using local development fallback")
	}

	shutdownTelemetry, err := observability.SetupOpenTelemetry(context.Background(), log, observability.OpenTelemetryConfig{
		Enabled:           cfg.Observability.Enabled,
		OTLPEndpoint:      cfg.Observability.OTLPEndpoint,
		OTLPTraceHeaders:  cfg.Observability.OTLPTraceHeaders,
		OTLPMetricHeaders: cfg.Observability.OTLPMetricHeaders,
		ServiceName:       cfg.Observability.ServiceName,
		ServiceVer:        cfg.Observability.ServiceVer,
		SamplingRatio:     cfg.Observability.SamplingRatio,
		MetricsConsole:    cfg.Observability.MetricsConsole,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			slog.Error("Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	store, err := storefactory.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open review store: %w", err)
	}
	defer func() {
		if latency, ok := store.(storefactory.LatencyLogger); ok && cfg.Store.LogTiming {
			latency.LogQueryLatency(log)
		}
		if err := store.Close(); err != nil {
			slog.Error("Failed to close review store", "error", err)
		}
	}()
	slog.Info("Review store ready", "driver", cfg.Store.Driver, "path", cfg.Store.Path)

	client := shopify.NewClient(shopify.Config{
		APIVersion: cfg.Shopify.APIVersion,
		Timeout:    cfg.ShopifyTimeout(),
		RateLimit:  cfg.Shopify.RateLimit,
	})
	ingest := appservices.NewReviewIngestService(store)
	lookup := appservices.NewProductLookupService(client)

	authConfig := routes.AuthConfig{
		SessionKey:     cfg.Auth.SessionSecret,
		SecureCookies:  cfg.Auth.SecureCookie,
		APIKey:         cfg.Shopify.APIKey,
		APISecret:      cfg.Shopify.APISecret,
		CallbackURL:    cfg.Shopify.CallbackURL,
		Scopes:         cfg.Shopify.Scopes,
		EnableDevLogin: cfg.IsLocalDevelopment(),
	}
	routes.ConfigureAuth(authConfig)
	if !cfg.OAuthConfigured() {
		slog.Warn("SHOPIFY_API_KEY or SHOPIFY_API_SECRET not set, Shopify install flow disabled")
	}

	srv := server.New(log, server.Options{ServiceName: cfg.Observability.ServiceName})
	srv.RegisterRouter(routes.HealthRoutes{})
	srv.RegisterRouter(routes.NewAuthRoutes(authConfig))
	srv.RegisterRouter(routes.NewProductRoutes(lookup, ingest))
	srv.RegisterRouter(routes.NewReviewRoutes(ingest))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("Starting server", "port", cfg.Server.Port)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return <-errCh
}

func main() {
	if err := Run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
