// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"time"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/database"
	"github.com/inkwell-hq/inkwell/internal/mailer"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by concern:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response envelope and decoding helpers
//   - handlers_health.go: liveness endpoint
//   - handlers_auth.go: registration, login, profile, password lifecycle
//   - handlers_blogs.go: blog CRUD with pagination and search
//   - handlers_comments.go: comment CRUD scoped to a parent blog
//   - handlers_analytics.go: read-only aggregation endpoints
type Handler struct {
	db         *database.DB
	config     *config.Config
	jwtManager *auth.JWTManager
	mailer     mailer.Mailer
	startTime  time.Time
}

// NewHandler creates the API handler with its dependencies.
func NewHandler(db *database.DB, cfg *config.Config, jwtManager *auth.JWTManager, m mailer.Mailer) *Handler {
	return &Handler{
		db:         db,
		config:     cfg,
		jwtManager: jwtManager,
		mailer:     m,
		startTime:  time.Now(),
	}
}
