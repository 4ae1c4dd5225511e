// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"testing"
	"time"

	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// newTestDB opens an in-memory database with the full schema applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustCreateUser(t *testing.T, db *DB, username, email string) *models.User {
	t.Helper()
	user, err := db.CreateUser(context.Background(), username, email, "hash-"+username)
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return user
}

func mustCreateBlog(t *testing.T, db *DB, userID, title, author string) *models.Blog {
	t.Helper()
	blog, err := db.CreateBlog(context.Background(), userID, &models.CreateBlogRequest{
		Title:   title,
		Content: "Some content long enough to satisfy the minimum length rule.",
		Author:  author,
	})
	if err != nil {
		t.Fatalf("CreateBlog(%s): %v", title, err)
	}
	return blog
}

func mustCreateComment(t *testing.T, db *DB, blogID, commenter, text string) *models.Comment {
	t.Helper()
	comment, err := db.CreateComment(context.Background(), blogID, commenter, text, "")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	return comment
}

// backdateBlog rewrites a blog's created_at, used to build deterministic
// time-based fixtures for sorting and analytics tests.
func backdateBlog(t *testing.T, db *DB, blogID string, createdAt time.Time) {
	t.Helper()
	_, err := db.conn.ExecContext(context.Background(),
		`UPDATE blogs SET created_at = ? WHERE id = ?`, createdAt.UTC(), blogID)
	if err != nil {
		t.Fatalf("backdate blog: %v", err)
	}
}

func backdateComment(t *testing.T, db *DB, commentID string, createdAt time.Time) {
	t.Helper()
	_, err := db.conn.ExecContext(context.Background(),
		`UPDATE comments SET created_at = ? WHERE id = ?`, createdAt.UTC(), commentID)
	if err != nil {
		t.Fatalf("backdate comment: %v", err)
	}
}

func defaultListQuery() *models.ListBlogsQuery {
	return &models.ListBlogsQuery{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: "desc"}
}

func TestPingAndClose(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestSchemaIdempotent(t *testing.T) {
	db := newTestDB(t)
	if err := db.initSchema(context.Background()); err != nil {
		t.Errorf("second initSchema: %v", err)
	}
}
