// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/logging"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// CreateBlog handles POST /api/blogs. The authenticated caller becomes the
// owner.
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Not authorized to access this route", nil)
		return
	}

	var req models.CreateBlogRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}

	blog, err := h.db.CreateBlog(r.Context(), claims.UserID(), &req)
	if err != nil {
		respondStoreError(w, r, err, "Blog not found")
		return
	}

	logging.Ctx(r.Context()).Info().Str("blog_id", blog.ID).Str("user_id", claims.UserID()).Msg("Blog created")
	respondSuccess(w, http.StatusCreated, "Blog created successfully", blog)
}

// ListBlogs handles GET /api/blogs with pagination, search, filtering, and
// sorting. Each item carries owner info, recent comments, and comment count.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	query := &models.ListBlogsQuery{
		Page:      getIntParam(r, "page", 1),
		Limit:     getIntParam(r, "limit", 10),
		Search:    r.URL.Query().Get("search"),
		Category:  r.URL.Query().Get("category"),
		Author:    r.URL.Query().Get("author"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: strings.ToLower(r.URL.Query().Get("sortOrder")),
	}
	if query.SortBy == "" {
		query.SortBy = "createdAt"
	}
	if query.SortOrder == "" {
		query.SortOrder = "desc"
	}
	if !validateBody(w, query) {
		return
	}

	blogs, total, err := h.db.ListBlogs(r.Context(), query)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	respondSuccess(w, http.StatusOK, "", models.BlogListData{
		Blogs:      blogs,
		Pagination: models.NewBlogPagination(query.Page, query.Limit, total),
	})
}

// GetBlog handles GET /api/blogs/:id and bumps the view counter.
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	blog, err := h.db.GetBlog(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err, "Blog not found")
		return
	}

	if err := h.db.IncrementViews(r.Context(), id); err != nil {
		// A lost view increment should not fail the read.
		logging.Ctx(r.Context()).Warn().Err(err).Str("blog_id", id).Msg("Failed to increment views")
	} else {
		blog.Views++
	}

	respondSuccess(w, http.StatusOK, "", blog)
}

// UpdateBlog handles PUT /api/blogs/:id. Ownership is enforced by
// RequireBlogOwner before this runs. Provided fields are merged; the slug is
// never regenerated.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBlogRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}

	blog, err := h.db.UpdateBlog(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondStoreError(w, r, err, "Blog not found")
		return
	}

	respondSuccess(w, http.StatusOK, "Blog updated successfully", blog)
}

// DeleteBlog handles DELETE /api/blogs/:id. Ownership is enforced by
// RequireBlogOwner. Comments under the blog are not deleted; they remain as
// orphans.
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.db.DeleteBlog(r.Context(), id); err != nil {
		respondStoreError(w, r, err, "Blog not found")
		return
	}

	logging.Ctx(r.Context()).Info().Str("blog_id", id).Msg("Blog deleted")
	respondSuccess(w, http.StatusOK, "Blog deleted successfully", nil)
}

// RequireBlogOwner is route middleware gating blog mutation to the owner.
// Runs after Authenticate: 404 when the blog is missing, 403 when the caller
// is not the owner.
func (h *Handler) RequireBlogOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			respondError(w, r, http.StatusUnauthorized, "Not authorized to access this route", nil)
			return
		}

		owner, err := h.db.GetBlogOwner(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err, "Blog not found")
			return
		}

		if owner != claims.UserID() {
			respondError(w, r, http.StatusForbidden, "You are not authorized to perform this action on this blog post", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
