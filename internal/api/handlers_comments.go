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

// AddComment handles POST /api/comments/blog/:blogId. The parent blog must
// exist; the authoring user is recorded when the caller is authenticated.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req models.AddCommentRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}

	userID := ""
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		userID = claims.UserID()
	}

	comment, err := h.db.CreateComment(r.Context(), chi.URLParam(r, "blogId"), req.Commenter, req.CommentText, userID)
	if err != nil {
		respondStoreError(w, r, err, "Blog post not found")
		return
	}

	logging.Ctx(r.Context()).Info().Str("comment_id", comment.ID).Str("blog_id", comment.BlogID).Msg("Comment added")
	respondSuccess(w, http.StatusCreated, "Comment added successfully", comment)
}

// ListComments handles GET /api/comments/blog/:blogId with pagination.
// Default order is newest first.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	query := &models.ListCommentsQuery{
		Page:      getIntParam(r, "page", 1),
		Limit:     getIntParam(r, "limit", 10),
		SortOrder: strings.ToLower(r.URL.Query().Get("sortOrder")),
	}
	if query.SortOrder == "" {
		query.SortOrder = "desc"
	}
	if !validateBody(w, query) {
		return
	}

	comments, total, err := h.db.ListCommentsByBlog(r.Context(), chi.URLParam(r, "blogId"), query.Page, query.Limit, query.SortOrder)
	if err != nil {
		respondStoreError(w, r, err, "Blog post not found")
		return
	}

	respondSuccess(w, http.StatusOK, "", models.CommentListData{
		Comments:   comments,
		Pagination: models.NewCommentPagination(query.Page, query.Limit, total),
	})
}

// GetComment handles GET /api/comments/:commentId with parent-blog title and
// author resolved.
func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.db.GetComment(r.Context(), chi.URLParam(r, "commentId"))
	if err != nil {
		respondStoreError(w, r, err, "Comment not found")
		return
	}
	respondSuccess(w, http.StatusOK, "", comment)
}

// UpdateComment handles PUT /api/comments/:commentId.
// Any authenticated caller may update any comment; per-author ownership is
// deliberately not enforced here. RequireCommentOwner exists for when that
// policy changes.
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCommentRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}

	comment, err := h.db.UpdateComment(r.Context(), chi.URLParam(r, "commentId"), req.CommentText)
	if err != nil {
		respondStoreError(w, r, err, "Comment not found")
		return
	}

	respondSuccess(w, http.StatusOK, "Comment updated successfully", comment)
}

// DeleteComment handles DELETE /api/comments/:commentId.
// Ownership is not enforced, matching UpdateComment.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "commentId")

	if err := h.db.DeleteComment(r.Context(), id); err != nil {
		respondStoreError(w, r, err, "Comment not found")
		return
	}

	logging.Ctx(r.Context()).Info().Str("comment_id", id).Msg("Comment deleted")
	respondSuccess(w, http.StatusOK, "Comment deleted successfully", nil)
}

// RequireCommentOwner gates comment mutation to the authoring user. Not
// mounted on any route: current policy allows any authenticated caller to
// edit or delete any comment. Anonymous comments (no recorded author) stay
// editable by anyone even if this is enabled.
func (h *Handler) RequireCommentOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			respondError(w, r, http.StatusUnauthorized, "Not authorized to access this route", nil)
			return
		}

		comment, err := h.db.GetComment(r.Context(), chi.URLParam(r, "commentId"))
		if err != nil {
			respondStoreError(w, r, err, "Comment not found")
			return
		}

		if comment.UserID != "" && comment.UserID != claims.UserID() {
			respondError(w, r, http.StatusForbidden, "You can only modify your own comments", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
