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
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/models"
)

const userColumns = `id, username, email, password_hash, reset_token_hash, reset_token_expires, created_at, updated_at`

// CreateUser inserts a new user. Email is optional; when present it must be
// unique, like the username. Returns ErrDuplicate on conflict.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, nullString(user.Email), user.PasswordHash, now, now,
	)
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return user, nil
}

// GetUserByID looks up a user by primary key.
func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return db.getUser(ctx, "id = ?", id)
}

// GetUserByUsername looks up a user by username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return db.getUser(ctx, "username = ?", username)
}

// GetUserByEmail looks up a user by email address.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.getUser(ctx, "email = ?", email)
}

// GetUserByResetToken finds the user holding the given reset-token hash with
// an expiry in the future. Expired or unknown tokens return ErrNotFound.
func (db *DB) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return db.getUser(ctx, "reset_token_hash = ? AND reset_token_expires > ?", tokenHash, now.UTC())
}

func (db *DB) getUser(ctx context.Context, where string, args ...interface{}) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s", userColumns, where)
	row := db.conn.QueryRowContext(ctx, query, args...)

	var u models.User
	var email, resetHash sql.NullString
	var resetExpires sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &resetHash, &resetExpires, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	u.Email = email.String
	u.ResetTokenHash = resetHash.String
	if resetExpires.Valid {
		t := resetExpires.Time
		u.ResetTokenExpires = &t
	}
	return &u, nil
}

// SetResetToken stores the hash of a newly issued reset token with its expiry.
// Any previously pending token is overwritten, keeping at most one live reset
// per user.
func (db *DB) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET reset_token_hash = ?, reset_token_expires = ?, updated_at = ? WHERE id = ?`,
		tokenHash, expires.UTC(), time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	return requireRow(res)
}

// ClearResetToken removes a pending reset token, e.g. after a failed mail
// delivery so no valid token exists that was never delivered.
func (db *DB) ClearResetToken(ctx context.Context, userID string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET reset_token_hash = NULL, reset_token_expires = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return requireRow(res)
}

// UpdatePassword replaces the stored password hash and clears any pending
// reset token in the same statement, making a completed reset single-use.
func (db *DB) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users
		 SET password_hash = ?, reset_token_hash = NULL, reset_token_expires = NULL, updated_at = ?
		 WHERE id = ?`,
		passwordHash, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRow(res)
}

// requireRow converts a zero-row update into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
