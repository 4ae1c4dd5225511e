// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/database"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// fakeMailer captures the reset link instead of sending mail. It records the
// call even when instructed to fail, mirroring a delivery error after the
// message was handed off.
type fakeMailer struct {
	failNext bool
	lastTo   string
	lastURL  string
	sent     int
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, resetURL string) error {
	m.lastTo = to
	m.lastURL = resetURL
	if m.failNext {
		m.failNext = false
		return errors.New("smtp unavailable")
	}
	m.sent++
	return nil
}

// testEnv is a fully wired API over an in-memory database.
type testEnv struct {
	t       *testing.T
	db      *database.DB
	mailer  *fakeMailer
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{})
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{
			CORSOrigins:  []string{"http://localhost:3000"},
			MaxBodyBytes: 1 << 20,
		},
		Security: config.SecurityConfig{
			JWTSecret:     "0123456789abcdef0123456789abcdef",
			TokenTTL:      time.Hour,
			ResetTokenTTL: 10 * time.Minute,
			// Minimum work factor keeps the handler tests fast.
			BcryptCost: 4,
		},
		SMTP: config.SMTPConfig{AppURL: "http://localhost:3000"},
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	fm := &fakeMailer{}
	h := NewHandler(db, cfg, jwtManager, fm)
	router := NewRouter(h, auth.NewMiddleware(jwtManager), cfg)

	return &testEnv{t: t, db: db, mailer: fm, handler: router.Setup()}
}

// envelope mirrors models.APIResponse with the data left raw for per-test
// decoding.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  []models.FieldError `json:"errors"`
}

// do runs one request through the full middleware stack and decodes the
// envelope.
func (env *testEnv) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	env.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			env.t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	resp := &envelope{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), resp); err != nil {
			env.t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

// decodeData unmarshals the raw data payload into out.
func (env *testEnv) decodeData(resp *envelope, out interface{}) {
	env.t.Helper()
	if err := json.Unmarshal(resp.Data, out); err != nil {
		env.t.Fatalf("decode data %q: %v", string(resp.Data), err)
	}
}

// register creates a user through the API and returns its session token and id.
func (env *testEnv) register(username, email, password string) (token, userID string) {
	env.t.Helper()

	rec, resp := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		env.t.Fatalf("register %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	var data models.AuthData
	env.decodeData(resp, &data)
	return data.Token, data.User.ID
}

// createBlog creates a blog through the API on behalf of token's user.
func (env *testEnv) createBlog(token, title, author string) *models.Blog {
	env.t.Helper()

	rec, resp := env.do(http.MethodPost, "/api/blogs", token, map[string]interface{}{
		"title":   title,
		"content": "Some content long enough to satisfy the minimum length rule.",
		"author":  author,
	})
	if rec.Code != http.StatusCreated {
		env.t.Fatalf("create blog %q: status %d body %s", title, rec.Code, rec.Body.String())
	}
	var blog models.Blog
	env.decodeData(resp, &blog)
	return &blog
}

// addComment creates a comment through the API.
func (env *testEnv) addComment(token, blogID, commenter, text string) *models.Comment {
	env.t.Helper()

	rec, resp := env.do(http.MethodPost, "/api/comments/blog/"+blogID, token, map[string]string{
		"commenter":   commenter,
		"commentText": text,
	})
	if rec.Code != http.StatusCreated {
		env.t.Fatalf("add comment: status %d body %s", rec.Code, rec.Body.String())
	}
	var comment models.Comment
	env.decodeData(resp, &comment)
	return &comment
}
