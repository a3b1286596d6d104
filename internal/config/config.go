// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New(ctx) to build a Config with defaults, Load(ctx) to layer
//     file and environment sources on top.
//   - All future functions must accept context.Context as the first parameter.
package config

import (
	"context"
	"time"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CacheTTLSeconds bounds how long a computed result set may be served
	// before it is recomputed even without an invalidation.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// RefreshDebounceMS is how long the refresh loop waits after an edit
	// for further edits before recomputing.
	RefreshDebounceMS int `koanf:"refresh_debounce_ms"`

	// DedupeSize sets the size of the competition submission dedupe ring.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit and /points?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// CacheTTL returns the configured cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// RefreshDebounce returns the configured debounce as a duration.
func (c *Config) RefreshDebounce() time.Duration {
	return time.Duration(c.RefreshDebounceMS) * time.Millisecond
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		CacheTTLSeconds:     300,
		RefreshDebounceMS:   250,
		DedupeSize:          4096,
		MaxLeaderboardLimit: 100,
	}
}
