// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/inkwell/config.yaml",
	"/etc/inkwell/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps well-known environment variables to koanf keys. Flat names
// are kept for compatibility with typical 12-factor deployments.
var envMappings = map[string]string{
	"HOST":                  "server.host",
	"PORT":                  "server.port",
	"CORS_ORIGINS":          "server.cors_origins",
	"RATE_LIMIT_ENABLED":    "server.rate_limit.enabled",
	"DATABASE_PATH":         "database.path",
	"DATABASE_THREADS":      "database.threads",
	"JWT_SECRET":            "security.jwt_secret",
	"JWT_TOKEN_TTL":         "security.token_ttl",
	"RESET_TOKEN_TTL":       "security.reset_token_ttl",
	"BCRYPT_COST":           "security.bcrypt_cost",
	"SMTP_HOST":             "smtp.host",
	"SMTP_PORT":             "smtp.port",
	"SMTP_FROM":             "smtp.from",
	"SMTP_USERNAME":         "smtp.username",
	"SMTP_PASSWORD":         "smtp.password",
	"APP_URL":               "smtp.app_url",
	"LOG_LEVEL":             "logging.level",
	"LOG_FORMAT":            "logging.format",
	"LOG_CALLER":            "logging.caller",
}

// Load builds the configuration from defaults, an optional YAML config file,
// and environment variables, in that order of increasing priority.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: struct defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", func(s string) string {
		if key, ok := envMappings[s]; ok {
			return key
		}
		return "" // ignore unmapped variables
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile resolves the config file path, preferring CONFIG_PATH.
// Returns empty string when no config file exists; defaults and environment
// variables alone are a valid configuration.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
