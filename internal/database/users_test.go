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

func TestCreateAndGetUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := mustCreateUser(t, db, "alice", "alice@example.com")
	if created.ID == "" {
		t.Fatal("created user has no id")
	}

	byID, err := db.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID.Username != "alice" || byID.Email != "alice@example.com" {
		t.Errorf("got %q / %q, want alice / alice@example.com", byID.Username, byID.Email)
	}
	if byID.PasswordHash != "hash-alice" {
		t.Errorf("password hash = %q", byID.PasswordHash)
	}

	byName, err := db.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if byName.ID != created.ID {
		t.Errorf("lookup by username returned id %s, want %s", byName.ID, created.ID)
	}

	byEmail, err := db.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("lookup by email returned id %s, want %s", byEmail.ID, created.ID)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.GetUserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByID: got %v, want ErrNotFound", err)
	}
	if _, err := db.GetUserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByUsername: got %v, want ErrNotFound", err)
	}
	if _, err := db.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByEmail: got %v, want ErrNotFound", err)
	}
}

func TestCreateUserDuplicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	mustCreateUser(t, db, "alice", "alice@example.com")

	if _, err := db.CreateUser(ctx, "alice", "other@example.com", "h"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate username: got %v, want ErrDuplicate", err)
	}
	if _, err := db.CreateUser(ctx, "bob", "alice@example.com", "h"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate email: got %v, want ErrDuplicate", err)
	}
}

func TestCreateUserWithoutEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Email is optional; two email-less users must not collide on the unique
	// index because NULLs are distinct.
	a := mustCreateUser(t, db, "alice", "")
	b := mustCreateUser(t, db, "bob", "")

	got, err := db.GetUserByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Email != "" {
		t.Errorf("email = %q, want empty", got.Email)
	}
	if a.ID == b.ID {
		t.Error("distinct users share an id")
	}
}

func TestResetTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := mustCreateUser(t, db, "alice", "alice@example.com")

	if err := db.SetResetToken(ctx, user.ID, "token-hash", now.Add(10*time.Minute)); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}

	got, err := db.GetUserByResetToken(ctx, "token-hash", now)
	if err != nil {
		t.Fatalf("GetUserByResetToken: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("reset lookup returned id %s, want %s", got.ID, user.ID)
	}

	// Expired: same token, clock advanced past expiry.
	if _, err := db.GetUserByResetToken(ctx, "token-hash", now.Add(11*time.Minute)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired token: got %v, want ErrNotFound", err)
	}

	// Unknown hash.
	if _, err := db.GetUserByResetToken(ctx, "other-hash", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown token: got %v, want ErrNotFound", err)
	}
}

func TestUpdatePasswordClearsResetToken(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := mustCreateUser(t, db, "alice", "alice@example.com")
	if err := db.SetResetToken(ctx, user.ID, "token-hash", now.Add(10*time.Minute)); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}

	if err := db.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	got, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.PasswordHash != "new-hash" {
		t.Errorf("password hash = %q, want new-hash", got.PasswordHash)
	}
	if got.ResetTokenHash != "" || got.ResetTokenExpires != nil {
		t.Error("reset token should be cleared after a password update")
	}

	// The consumed token no longer resolves.
	if _, err := db.GetUserByResetToken(ctx, "token-hash", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("consumed token: got %v, want ErrNotFound", err)
	}
}

func TestClearResetToken(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := mustCreateUser(t, db, "alice", "alice@example.com")
	if err := db.SetResetToken(ctx, user.ID, "token-hash", now.Add(10*time.Minute)); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}
	if err := db.ClearResetToken(ctx, user.ID); err != nil {
		t.Fatalf("ClearResetToken: %v", err)
	}
	if _, err := db.GetUserByResetToken(ctx, "token-hash", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("cleared token: got %v, want ErrNotFound", err)
	}
}

func TestUserWritesRequireExistingRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.SetResetToken(ctx, "missing", "h", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetResetToken: got %v, want ErrNotFound", err)
	}
	if err := db.ClearResetToken(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ClearResetToken: got %v, want ErrNotFound", err)
	}
	if err := db.UpdatePassword(ctx, "missing", "h"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatePassword: got %v, want ErrNotFound", err)
	}
}
