// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package config loads and validates application configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//   - Environment variables (JWT_SECRET, PORT, DATABASE_PATH, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	SMTP     SMTPConfig     `koanf:"smtp"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`

	// MaxBodyBytes caps request body size before JSON decoding.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig controls per-IP request throttling.
// Disabled by default; the single-client deployment this serves has no need
// for it, but the wiring stays in place for public deployments.
type RateLimitConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file location. Empty means in-memory (tests).
	Path    string `koanf:"path"`
	Threads int    `koanf:"threads"`
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the session token lifetime. Default: 7 days.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// ResetTokenTTL is the password-reset token lifetime. Default: 10 minutes.
	ResetTokenTTL time.Duration `koanf:"reset_token_ttl"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`
}

// SMTPConfig holds outbound mail settings for password-reset delivery.
// When Host is empty, reset mails are logged instead of sent (development).
type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	From     string `koanf:"from"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// AppURL is the frontend base URL embedded in reset links.
	AppURL string `koanf:"app_url"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are applied
// first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"http://localhost:3000"},
			MaxBodyBytes:    10 << 20, // 10MB
			RateLimit: RateLimitConfig{
				Enabled:  false,
				Requests: 50,
				Window:   15 * time.Minute,
			},
		},
		Database: DatabaseConfig{
			Path:    "data/inkwell.db",
			Threads: 0,
		},
		Security: SecurityConfig{
			JWTSecret:     "",
			TokenTTL:      7 * 24 * time.Hour,
			ResetTokenTTL: 10 * time.Minute,
			BcryptCost:    12,
		},
		SMTP: SMTPConfig{
			Port:   587,
			AppURL: "http://localhost:3000",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("invalid bcrypt cost %d (must be 4 to 31)", c.Security.BcryptCost)
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	if c.Security.ResetTokenTTL <= 0 {
		return fmt.Errorf("reset token TTL must be positive")
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
