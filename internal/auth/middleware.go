// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/inkwell-hq/inkwell/internal/logging"
	"github.com/inkwell-hq/inkwell/internal/models"
)

type contextKey string

// ClaimsContextKey is the request-context key under which the middleware
// stores the resolved identity.
const ClaimsContextKey contextKey = "claims"

// Middleware enforces bearer-token authentication on protected routes.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// Authenticate rejects requests without a valid bearer token and attaches the
// resolved claims to the request context for downstream handlers.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Authentication failed")
			respondUnauthorized(w, "Not authorized to access this route")
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate attaches claims when a valid bearer token is present
// but lets anonymous requests through. Not mounted on any route: comment
// creation currently requires authentication. Swapping it in on the comment
// POST enables anonymous commenting; AddComment already tolerates absent
// claims.
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := m.claimsFromRequest(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), ClaimsContextKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// claimsFromRequest extracts and validates the bearer token.
func (m *Middleware) claimsFromRequest(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, errMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return nil, errMissingToken
	}
	return m.jwtManager.ValidateToken(token)
}

var errMissingToken = &tokenError{"missing bearer token"}

type tokenError struct{ msg string }

func (e *tokenError) Error() string { return e.msg }

// ClaimsFromContext retrieves the authenticated identity attached by
// Authenticate. The second return is false on anonymous requests.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

// respondUnauthorized writes a 401 in the standard envelope. Duplicated from
// the api package to keep the dependency direction api -> auth.
func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(&models.APIResponse{
		Success: false,
		Message: message,
	})
}
