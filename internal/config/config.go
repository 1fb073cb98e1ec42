// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and SQUADS_* env vars.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RosterPath is an optional roster file loaded at startup.
	RosterPath string `koanf:"roster_path"`

	// CSVDelimiter separates roster columns. Must be a single character.
	CSVDelimiter string `koanf:"csv_delimiter"`

	// DefaultSort is the ranking criterion used when a request names none.
	DefaultSort string `koanf:"default_sort"`

	// MinTeamSize and MaxTeamSize bound the team size accepted by the API.
	MinTeamSize int `koanf:"min_team_size"`
	MaxTeamSize int `koanf:"max_team_size"`

	// TeamNames label teams in creation order. Empty means the NATO
	// alphabet, Alfa through Juliett.
	TeamNames []string `koanf:"team_names"`

	// MaxUploadBytes caps the size of a roster upload.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// New creates a Config with defaults. The context is accepted to follow the
// project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		CSVDelimiter:   ";",
		DefaultSort:    "average",
		MinTeamSize:    2,
		MaxTeamSize:    10,
		MaxUploadBytes: 1 << 20,
	}
}

// Delimiter returns CSVDelimiter as a rune. Call Validate first.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case utf8.RuneCountInString(c.CSVDelimiter) != 1:
		return fmt.Errorf("csv_delimiter must be a single character, got %q: %w", c.CSVDelimiter, ErrInvalidConfig)
	case c.MinTeamSize < 1:
		return fmt.Errorf("min_team_size must be at least 1: %w", ErrInvalidConfig)
	case c.MaxTeamSize < c.MinTeamSize:
		return fmt.Errorf("max_team_size (%d) must not be below min_team_size (%d): %w", c.MaxTeamSize, c.MinTeamSize, ErrInvalidConfig)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("max_upload_bytes must be positive: %w", ErrInvalidConfig)
	}
	return nil
}
