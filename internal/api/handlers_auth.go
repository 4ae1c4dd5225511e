// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/database"
	"github.com/inkwell-hq/inkwell/internal/logging"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// Register handles POST /api/auth/register.
// Creates a user with a hashed password and returns a session token plus the
// public profile. Duplicate username or email answers 409.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}

	ctx := r.Context()

	if _, err := h.db.GetUserByUsername(ctx, req.Username); err == nil {
		respondError(w, r, http.StatusConflict, "Username already exists", nil)
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.config.Security.BcryptCost)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	user, err := h.db.CreateUser(ctx, req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, r, http.StatusConflict, "Username or email already exists", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("User registered")
	respondSuccess(w, http.StatusCreated, "Registration successful", models.AuthData{
		User:  user.Public(),
		Token: token,
	})
}

// Login handles POST /api/auth/login.
// Unknown username and wrong password answer identically to avoid username
// enumeration.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}

	ctx := r.Context()

	user, err := h.db.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	respondSuccess(w, http.StatusOK, "Login successful", models.AuthData{
		User:  user.Public(),
		Token: token,
	})
}

// Profile handles GET /api/auth/profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Not authorized to access this route", nil)
		return
	}

	user, err := h.db.GetUserByID(r.Context(), claims.UserID())
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Token subject no longer exists; treat as an invalid token.
			respondError(w, r, http.StatusUnauthorized, "Not authorized to access this route", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]interface{}{"user": user.Public()})
}

// ForgotPassword handles POST /api/auth/forgot-password.
// Stores only the hash of the generated token. If mail delivery fails the
// pending token is cleared so no valid-but-undelivered token remains.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}

	ctx := r.Context()

	user, err := h.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "No user found with that email", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	plaintext, hash, err := auth.GenerateResetToken()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	expires := time.Now().Add(h.config.Security.ResetTokenTTL)
	if err := h.db.SetResetToken(ctx, user.ID, hash, expires); err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", h.config.SMTP.AppURL, plaintext)
	if err := h.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		if clearErr := h.db.ClearResetToken(ctx, user.ID); clearErr != nil {
			logging.Ctx(ctx).Error().Err(clearErr).Str("user_id", user.ID).Msg("Failed to clear reset token after mail failure")
		}
		respondError(w, r, http.StatusInternalServerError, "Email could not be sent", err)
		return
	}

	respondSuccess(w, http.StatusOK, "Email sent", nil)
}

// ResetPassword handles PUT /api/auth/reset-password/:resettoken.
// An expired or unknown token answers 400 and never mutates the password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}

	ctx := r.Context()
	tokenHash := auth.HashResetToken(chi.URLParam(r, "resettoken"))

	user, err := h.db.GetUserByResetToken(ctx, tokenHash, time.Now())
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, r, http.StatusBadRequest, "Invalid or expired reset token", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.config.Security.BcryptCost)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	// Also clears the reset fields, making the token single-use.
	if err := h.db.UpdatePassword(ctx, user.ID, hash); err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("Password reset completed")
	respondSuccess(w, http.StatusOK, "Password reset successful", models.AuthData{
		User:  user.Public(),
		Token: token,
	})
}

// ChangePassword handles PUT /api/auth/change-password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Not authorized to access this route", nil)
		return
	}

	var req models.ChangePasswordRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}

	ctx := r.Context()

	user, err := h.db.GetUserByID(ctx, claims.UserID())
	if err != nil {
		respondStoreError(w, r, err, "User not found")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		respondError(w, r, http.StatusBadRequest, "Current password is incorrect", nil)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword, h.config.Security.BcryptCost)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if err := h.db.UpdatePassword(ctx, user.ID, hash); err != nil {
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	respondSuccess(w, http.StatusOK, "Password updated successfully", nil)
}
