// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package main is the entry point for the Reelpick HTTP server.
//
// Reelpick serves random movie recommendations filtered by genre and an
// optional release-year range, backed by a DuckDB, SQLite or PostgreSQL
// catalog.
//
// # Startup
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Store: the backend named by DATABASE_DRIVER, schema ensured on open
//  4. Seeding: sample catalog and/or SEED_FILE, when configured
//  5. Service: circuit breaker around the store, genre cache, sampler
//  6. Supervisor: store probe and HTTP server under suture
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. The HTTP server stops
// accepting connections and drains in-flight requests for up to
// SERVER_TIMEOUT before the store is closed.
//
// # Example
//
//	export DATABASE_DRIVER=sqlite
//	export DATABASE_URL=file:/data/movies.db
//	export SEED_SAMPLE_DATA=true
//	./reelpick
//
//	curl 'http://localhost:8000/recommendations?genre=Drama&n=3&year_min=1990'
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/tomtom215/reelpick/internal/api"
	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/storage"
	"github.com/tomtom215/reelpick/internal/supervisor"
	"github.com/tomtom215/reelpick/internal/supervisor/services"
)

const (
	storeProbeInterval = 30 * time.Second
	readHeaderTimeout  = 10 * time.Second
	idleTimeout        = 60 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", cfg.API.ServiceVersion).
		Str("driver", cfg.Database.Driver).
		Str("addr", cfg.Server.Addr()).
		Str("base_path", cfg.API.BasePath).
		Msg("Starting Reelpick")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Server stopped")
}

func run(cfg *config.Config) error {
	store, backend, err := storage.Open(&cfg.Database, storage.Options{
		TracerProvider: otel.GetTracerProvider(),
		Verbose:        cfg.Logging.Level == "debug" || cfg.Logging.Level == "trace",
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()
	metrics.AppInfo.WithLabelValues(cfg.API.ServiceVersion, backend).Set(1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := recommend.NewService(
		recommend.NewBreakerCatalog(store, recommend.DefaultBreakerSettings()),
		&cfg.API,
	)
	defer svc.Close()

	// Seeding finishes before the listener opens so the first request sees
	// the full catalog.
	if err := seedOnStartup(ctx, cfg, store); err != nil {
		return err
	}
	svc.InvalidateGenres()

	if cfg.HasWildcardCORS() && cfg.IsProduction() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*) in production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is disabled (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(svc, store, cfg)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, cfg),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       idleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.Timeout,
	})
	if err != nil {
		return err
	}
	tree.AddDataService(services.NewStoreProbeService(store, services.StoreProbeConfig{
		Interval: storeProbeInterval,
	}))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
	return supervise(ctx, tree)
}
