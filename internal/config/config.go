// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/cinematch/internal/poster"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/vectorize"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Logging   LoggingConfig    `koanf:"logging"`
	Bundle    BundleConfig     `koanf:"bundle"`
	Build     BuildConfig      `koanf:"build"`
	Recommend recommend.Config `koanf:"recommend"`
	Poster    poster.Config    `koanf:"poster"`
	History   HistoryConfig    `koanf:"history"`
	Security  SecurityConfig   `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// BundleConfig locates the precomputed similarity bundle.
type BundleConfig struct {
	Path string `koanf:"path"`
}

// BuildConfig holds settings used only by the offline bundle builder.
type BuildConfig struct {
	MoviesPath  string `koanf:"movies_path"`
	CreditsPath string `koanf:"credits_path"`

	// Workers bounds similarity parallelism; 0 uses runtime.NumCPU().
	Workers int `koanf:"workers"`

	// CastLimit is the number of leading cast members kept per movie.
	CastLimit int `koanf:"cast_limit"`

	Vectorizer vectorize.Config `koanf:"vectorizer"`
}

// HistoryConfig bounds per-session history retention.
type HistoryConfig struct {
	MaxSessions int           `koanf:"max_sessions"`
	IdleTTL     time.Duration `koanf:"idle_ttl"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
