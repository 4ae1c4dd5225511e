// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package database provides the DuckDB-backed data access layer. One DB is
// opened at startup and shared for the process lifetime; every method takes a
// context and performs a single-step operation against the store.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/logging"
)

// Sentinel errors mapped to the HTTP error taxonomy by the API layer.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique-field conflict (username, email, slug).
	ErrDuplicate = errors.New("duplicate unique field")
)

// DB wraps the DuckDB connection and provides data access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the database, creating parent directories and initializing the
// schema. An empty path opens an in-memory database (used by tests).
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg == nil {
		cfg = &config.DatabaseConfig{}
	}

	// Ensure parent directory exists for file-backed databases.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301.
	if cfg.Path != "" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	dsn := cfg.Path
	if cfg.Threads > 0 {
		dsn = fmt.Sprintf("%s?threads=%d", cfg.Path, cfg.Threads)
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}
	if err := db.initSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Msg("Database initialized")
	return db, nil
}

// Close releases the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the connection is alive; used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// initSchema creates tables and indexes. Idempotent; safe on every startup.
func (db *DB) initSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR PRIMARY KEY,
			username VARCHAR NOT NULL UNIQUE,
			email VARCHAR UNIQUE,
			password_hash VARCHAR NOT NULL,
			reset_token_hash VARCHAR,
			reset_token_expires TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS blogs (
			id VARCHAR PRIMARY KEY,
			title VARCHAR NOT NULL,
			content VARCHAR NOT NULL,
			author VARCHAR NOT NULL,
			user_id VARCHAR NOT NULL,
			slug VARCHAR NOT NULL UNIQUE,
			tags VARCHAR NOT NULL DEFAULT '[]',
			category VARCHAR NOT NULL DEFAULT 'General',
			is_published BOOLEAN NOT NULL DEFAULT true,
			views INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id VARCHAR PRIMARY KEY,
			blog_id VARCHAR NOT NULL,
			commenter VARCHAR NOT NULL,
			comment_text VARCHAR NOT NULL,
			user_id VARCHAR,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_blogs_author_created ON blogs (author, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_blog_created ON comments (blog_id, created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// mapConstraintError converts DuckDB unique-constraint violations into
// ErrDuplicate so the API layer can answer 409 without string matching.
func mapConstraintError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "Duplicate key") || strings.Contains(msg, "Constraint Error") {
		return fmt.Errorf("%w: %s", ErrDuplicate, msg)
	}
	return err
}

// nullString converts an optional string to its SQL representation, treating
// empty as NULL so the unique index on users.email ignores absent addresses.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
