// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateCommentUnknownBlog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateComment(ctx, "missing", "Bob", "A comment for nobody.", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	// Nothing persisted.
	n, err := db.CountCommentsForBlog(ctx, "missing")
	if err != nil {
		t.Fatalf("CountCommentsForBlog: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestCreateCommentTrimsFields(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "alice", "alice@example.com")
	blog := mustCreateBlog(t, db, user.ID, "A Post Worth Commenting On", "Alice")

	comment, err := db.CreateComment(context.Background(), blog.ID, "  Bob  ", "  Nice write-up, thanks.  ", "")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if comment.Commenter != "Bob" {
		t.Errorf("commenter = %q", comment.Commenter)
	}
	if comment.CommentText != "Nice write-up, thanks." {
		t.Errorf("commentText = %q", comment.CommentText)
	}
}

func TestCreateCommentAttribution(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := mustCreateUser(t, db, "alice", "alice@example.com")
	blog := mustCreateBlog(t, db, user.ID, "A Post Worth Commenting On", "Alice")

	authed, err := db.CreateComment(ctx, blog.ID, "Alice", "Commenting on my own post.", user.ID)
	if err != nil {
		t.Fatalf("CreateComment authed: %v", err)
	}
	anon, err := db.CreateComment(ctx, blog.ID, "Stranger", "Drive-by comment, no account.", "")
	if err != nil {
		t.Fatalf("CreateComment anon: %v", err)
	}

	got, err := db.GetComment(ctx, authed.ID)
	if err != nil {
		t.Fatalf("GetComment: %v", err)
	}
	if got.UserID != user.ID {
		t.Errorf("userID = %q, want %s", got.UserID, user.ID)
	}

	got, err = db.GetComment(ctx, anon.ID)
	if err != nil {
		t.Fatalf("GetComment: %v", err)
	}
	if got.UserID != "" {
		t.Errorf("anonymous comment has userID %q", got.UserID)
	}
}

func TestListCommentsByBlog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := mustCreateUser(t, db, "alice", "alice@example.com")
	blog := mustCreateBlog(t, db, user.ID, "A Post With A Comment Thread", "Alice")

	base := time.Now().UTC().Add(-time.Hour)
	first := mustCreateComment(t, db, blog.ID, "Bob", "The first comment in the thread.")
	second := mustCreateComment(t, db, blog.ID, "Carol", "The second comment in the thread.")
	third := mustCreateComment(t, db, blog.ID, "Dave", "The third comment in the thread.")
	backdateComment(t, db, first.ID, base)
	backdateComment(t, db, second.ID, base.Add(time.Minute))
	backdateComment(t, db, third.ID, base.Add(2*time.Minute))

	// Default: newest first.
	comments, total, err := db.ListCommentsByBlog(ctx, blog.ID, 1, 10, "desc")
	if err != nil {
		t.Fatalf("ListCommentsByBlog: %v", err)
	}
	if total != 3 || len(comments) != 3 {
		t.Fatalf("total=%d len=%d, want 3/3", total, len(comments))
	}
	if comments[0].ID != third.ID || comments[2].ID != first.ID {
		t.Errorf("desc order wrong: %s, %s, %s", comments[0].Commenter, comments[1].Commenter, comments[2].Commenter)
	}

	// Ascending flips it.
	comments, _, err = db.ListCommentsByBlog(ctx, blog.ID, 1, 10, "asc")
	if err != nil {
		t.Fatalf("ListCommentsByBlog asc: %v", err)
	}
	if comments[0].ID != first.ID {
		t.Errorf("asc order wrong: first commenter %s", comments[0].Commenter)
	}

	// Pagination.
	comments, total, err = db.ListCommentsByBlog(ctx, blog.ID, 2, 2, "desc")
	if err != nil {
		t.Fatalf("ListCommentsByBlog page 2: %v", err)
	}
	if total != 3 || len(comments) != 1 || comments[0].ID != first.ID {
		t.Errorf("page 2: total=%d len=%d", total, len(comments))
	}
}

func TestListCommentsUnknownBlog(t *testing.T) {
	db := newTestDB(t)
	if _, _, err := db.ListCommentsByBlog(context.Background(), "missing", 1, 10, "desc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGetCommentResolvesBlogFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := mustCreateUser(t, db, "alice", "alice@example.com")
	blog := mustCreateBlog(t, db, user.ID, "A Post Worth Commenting On", "Alice")
	comment := mustCreateComment(t, db, blog.ID, "Bob", "Comment with parent context.")

	got, err := db.GetComment(ctx, comment.ID)
	if err != nil {
		t.Fatalf("GetComment: %v", err)
	}
	if got.BlogTitle != blog.Title || got.BlogAuthor != blog.Author {
		t.Errorf("blog fields = %q / %q", got.BlogTitle, got.BlogAuthor)
	}

	if _, err := db.GetComment(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing comment: got %v, want ErrNotFound", err)
	}
}

func TestUpdateAndDeleteComment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := mustCreateUser(t, db, "alice", "alice@example.com")
	blog := mustCreateBlog(t, db, user.ID, "A Post Worth Commenting On", "Alice")
	comment := mustCreateComment(t, db, blog.ID, "Bob", "The original comment text.")

	updated, err := db.UpdateComment(ctx, comment.ID, "  The revised comment text.  ")
	if err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	if updated.CommentText != "The revised comment text." {
		t.Errorf("commentText = %q", updated.CommentText)
	}
	if updated.Commenter != "Bob" {
		t.Errorf("commenter changed: %q", updated.Commenter)
	}

	if _, err := db.UpdateComment(ctx, "missing", "Text for a missing comment."); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: got %v, want ErrNotFound", err)
	}

	if err := db.DeleteComment(ctx, comment.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if _, err := db.GetComment(ctx, comment.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted comment still readable: %v", err)
	}
	if err := db.DeleteComment(ctx, comment.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
