// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// DefaultRecipeFiles are looked up in the working directory when no recipe
// path is configured.
var DefaultRecipeFiles = []string{"recipes.hcl", "recipes.yaml", "recipes.yml"}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// RecipePaths are files or directories holding recipe files.
	RecipePaths []string
	// DotenvPath is a dotenv file merged into the inherited environment. An
	// empty value loads ".env" if it exists.
	DotenvPath string

	LogFormat string
	LogLevel  string
	// Color controls coloured output: "auto", "always" or "never".
	Color string

	// StatusPort enables the HTTP status server when positive.
	StatusPort int
	// EventsURL enables the socket.io event sink when set.
	EventsURL       string
	EventsNamespace string

	// GracePeriod is how long an interrupted command may take to exit.
	GracePeriod time.Duration
	// DryRun prints the plan instead of running it.
	DryRun bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("invalid color mode %q: must be 'auto', 'always', or 'never'", cfg.Color)
	}

	if cfg.StatusPort < 0 || cfg.StatusPort > 65535 {
		return nil, fmt.Errorf("invalid status port %d", cfg.StatusPort)
	}
	if cfg.GracePeriod < 0 {
		return nil, errors.New("grace period must not be negative")
	}

	if cfg.EventsURL != "" {
		u, err := url.Parse(cfg.EventsURL)
		if err != nil {
			return nil, fmt.Errorf("invalid events URL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid events URL %q: scheme and host are required", cfg.EventsURL)
		}
	}

	return &cfg, nil
}
