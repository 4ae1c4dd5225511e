// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package main is the entry point for the Inkwell API server.
//
// Inkwell is a blog-platform REST backend: user authentication, blog CRUD
// with ownership checks, comments scoped to a parent blog, and aggregate
// analytics (top authors, most-commented posts, posts per day, dashboard
// stats) serving a single frontend client.
//
// # Startup order
//
//  1. Configuration: Koanf v2 layered defaults, config.yaml, environment
//  2. Logging: zerolog, JSON or console format
//  3. Database: DuckDB file store, schema initialized on open
//  4. Mailer: SMTP when configured, reset links logged otherwise
//  5. Auth: JWT manager (HS256, 7-day tokens) and bearer middleware
//  6. HTTP server: Chi router, graceful shutdown on SIGINT/SIGTERM
//
// # Configuration
//
// Minimum for production:
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export DATABASE_PATH=/data/inkwell.db
//	./inkwell
//
// Optional SMTP for password-reset delivery:
//
//	export SMTP_HOST=smtp.example.com
//	export SMTP_FROM=noreply@example.com
//	export APP_URL=https://blog.example.com
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/inkwell-hq/inkwell/internal/api"
	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/database"
	"github.com/inkwell-hq/inkwell/internal/logging"
	"github.com/inkwell-hq/inkwell/internal/mailer"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Bool("rate_limit", cfg.Server.RateLimit.Enabled).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	m, err := mailer.FromConfig(&cfg.SMTP)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize mailer")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	handler := api.NewHandler(db, cfg, jwtManager, m)
	router := api.NewRouter(handler, auth.NewMiddleware(jwtManager), cfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Serve until signalled, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Server listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}

	logging.Info().Msg("Server stopped")
}
