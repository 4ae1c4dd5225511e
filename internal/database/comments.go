// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/models"
)

// CreateComment inserts a comment under an existing blog. The parent check is
// performed here, not by a foreign key, matching the documented data model:
// ErrNotFound when the blog id is unknown, and nothing is persisted.
func (db *DB) CreateComment(ctx context.Context, blogID, commenter, commentText, userID string) (*models.Comment, error) {
	exists, err := db.BlogExists(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:          uuid.New().String(),
		BlogID:      blogID,
		Commenter:   strings.TrimSpace(commenter),
		CommentText: strings.TrimSpace(commentText),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO comments (id, blog_id, commenter, comment_text, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		comment.ID, comment.BlogID, comment.Commenter, comment.CommentText,
		nullString(comment.UserID), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return comment, nil
}

// ListCommentsByBlog returns one page of a blog's comments plus the total
// count. Default order is newest first; sortOrder "asc" flips it.
func (db *DB) ListCommentsByBlog(ctx context.Context, blogID string, page, limit int, sortOrder string) ([]models.Comment, int, error) {
	exists, err := db.BlogExists(ctx, blogID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrNotFound
	}

	var total int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE blog_id = ?`, blogID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	offset := (page - 1) * limit

	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, blog_id, commenter, comment_text, user_id, created_at, updated_at
		             FROM comments WHERE blog_id = ? ORDER BY created_at %s LIMIT ? OFFSET ?`, direction),
		blogID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, total, nil
}

// GetComment fetches a single comment with its parent blog's title and author
// resolved. Orphaned comments (parent blog deleted) come back with those
// fields empty.
func (db *DB) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT c.id, c.blog_id, c.commenter, c.comment_text, c.user_id, c.created_at, c.updated_at,
		        b.title, b.author
		 FROM comments c LEFT JOIN blogs b ON b.id = c.blog_id
		 WHERE c.id = ?`, id)

	var c models.Comment
	var userID, blogTitle, blogAuthor sql.NullString
	err := row.Scan(&c.ID, &c.BlogID, &c.Commenter, &c.CommentText, &userID,
		&c.CreatedAt, &c.UpdatedAt, &blogTitle, &blogAuthor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query comment: %w", err)
	}
	c.UserID = userID.String
	c.BlogTitle = blogTitle.String
	c.BlogAuthor = blogAuthor.String
	return &c, nil
}

// UpdateComment replaces the comment text and stamps updated_at.
func (db *DB) UpdateComment(ctx context.Context, id, commentText string) (*models.Comment, error) {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE comments SET comment_text = ?, updated_at = ? WHERE id = ?`,
		strings.TrimSpace(commentText), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return db.GetComment(ctx, id)
}

// DeleteComment hard-deletes a comment.
func (db *DB) DeleteComment(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireRow(res)
}

// CountCommentsForBlog returns the number of comments under a blog, including
// orphans kept after a blog deletion.
func (db *DB) CountCommentsForBlog(ctx context.Context, blogID string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE blog_id = ?`, blogID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return n, nil
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var c models.Comment
	var userID sql.NullString
	err := row.Scan(&c.ID, &c.BlogID, &c.Commenter, &c.CommentText, &userID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	c.UserID = userID.String
	return &c, nil
}
