// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"net/http"
	"time"
)

// TopAuthors handles GET /api/analytics/top-authors: the ten most prolific
// authors, ties broken by most recent post.
func (h *Handler) TopAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.db.TopAuthors(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	respondSuccess(w, http.StatusOK, "", authors)
}

// MostCommented handles GET /api/analytics/most-commented: the five posts
// with the most comments.
func (h *Handler) MostCommented(w http.ResponseWriter, r *http.Request) {
	posts, err := h.db.MostCommentedPosts(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	respondSuccess(w, http.StatusOK, "", posts)
}

// PostsPerDay handles GET /api/analytics/posts-per-day: post counts for the
// trailing seven days, zero-filled, ascending by date.
func (h *Handler) PostsPerDay(w http.ResponseWriter, r *http.Request) {
	series, err := h.db.PostsPerDay(r.Context(), time.Now())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	respondSuccess(w, http.StatusOK, "", series)
}

// DashboardStats handles GET /api/analytics/dashboard-stats.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.DashboardStats(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	respondSuccess(w, http.StatusOK, "", stats)
}
