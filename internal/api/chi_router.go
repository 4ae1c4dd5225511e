// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package api provides HTTP routing and handlers using the Chi router.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/middleware"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// Router wires handlers, authentication, and global middleware into the HTTP
// entry point.
type Router struct {
	handler *Handler
	authMW  *auth.Middleware
	cfg     *config.Config
}

// NewRouter creates a router from its dependencies.
func NewRouter(handler *Handler, authMW *auth.Middleware, cfg *config.Config) *Router {
	return &Router{handler: handler, authMW: authMW, cfg: cfg}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Rate limiting is wired but disabled by default; the single-client
	// deployment this serves does not need it.
	if router.cfg.Server.RateLimit.Enabled {
		r.Use(httprate.LimitByIP(
			router.cfg.Server.RateLimit.Requests,
			router.cfg.Server.RateLimit.Window,
		))
	}

	// Uniform envelope for unmatched routes and bad methods.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusNotFound, &models.APIResponse{
			Success: false,
			Message: fmt.Sprintf("Route %s not found", req.URL.Path),
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, &models.APIResponse{
			Success: false,
			Message: fmt.Sprintf("Method %s not allowed on %s", req.Method, req.URL.Path),
		})
	})

	// ========================
	// Health & Metrics
	// ========================
	r.Get("/api/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Auth Endpoints
	// ========================
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", router.handler.Register)
		r.Post("/login", router.handler.Login)
		r.Post("/forgot-password", router.handler.ForgotPassword)
		r.Put("/reset-password/{resettoken}", router.handler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(router.authMW.Authenticate)
			r.Get("/profile", router.handler.Profile)
			r.Put("/change-password", router.handler.ChangePassword)
		})
	})

	// ========================
	// Blog Endpoints
	// ========================
	r.Route("/api/blogs", func(r chi.Router) {
		r.Get("/", router.handler.ListBlogs)
		r.Get("/{id}", router.handler.GetBlog)

		r.Group(func(r chi.Router) {
			r.Use(router.authMW.Authenticate)
			r.Post("/", router.handler.CreateBlog)
			r.With(router.handler.RequireBlogOwner).Put("/{id}", router.handler.UpdateBlog)
			r.With(router.handler.RequireBlogOwner).Delete("/{id}", router.handler.DeleteBlog)
		})
	})

	// ========================
	// Comment Endpoints
	// ========================
	r.Route("/api/comments", func(r chi.Router) {
		r.Get("/blog/{blogId}", router.handler.ListComments)
		r.Get("/{commentId}", router.handler.GetComment)

		r.Group(func(r chi.Router) {
			r.Use(router.authMW.Authenticate)
			// Per-author ownership stays off here; see RequireCommentOwner.
			r.Post("/blog/{blogId}", router.handler.AddComment)
			r.Put("/{commentId}", router.handler.UpdateComment)
			r.Delete("/{commentId}", router.handler.DeleteComment)
		})
	})

	// ========================
	// Analytics Endpoints
	// ========================
	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/top-authors", router.handler.TopAuthors)
		r.Get("/most-commented", router.handler.MostCommented)
		r.Get("/posts-per-day", router.handler.PostsPerDay)
		r.Get("/dashboard-stats", router.handler.DashboardStats)
	})

	return r
}
