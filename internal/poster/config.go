// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package poster

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultPlaceholderURL is served whenever a poster cannot be resolved.
const DefaultPlaceholderURL = "https://via.placeholder.com/500x750?text=No+Poster"

// Config contains poster enrichment configuration.
type Config struct {
	// APIKey is the TMDB API key. Without it every lookup returns the
	// placeholder.
	APIKey string `koanf:"api_key"`

	// BaseURL is the TMDB API root.
	// Default: https://api.themoviedb.org/3
	BaseURL string `koanf:"base_url"`

	// ImageBaseURL is prefixed to poster paths.
	// Default: https://image.tmdb.org/t/p/w500
	ImageBaseURL string `koanf:"image_base_url"`

	// PlaceholderURL is returned on any failure.
	PlaceholderURL string `koanf:"placeholder_url"`

	// Timeout bounds one lookup including rate-limit waits.
	// Default: 5s.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the outbound request rate per second; 0 disables limiting.
	// Default: 20.
	RateLimit float64 `koanf:"rate_limit"`

	// Burst is the limiter burst size.
	// Default: 5.
	Burst int `koanf:"burst"`

	// BreakerFailures is the number of consecutive failures that opens the
	// circuit breaker.
	// Default: 5.
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long the breaker stays open before probing.
	// Default: 1m.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`

	// CachePath is the BadgerDB directory for persisted URLs. Empty keeps
	// the cache in memory only.
	CachePath string `koanf:"cache_path"`

	// WarmCount is how many of the most popular items are resolved in the
	// background at startup; 0 disables warming.
	// Default: 0.
	WarmCount int `koanf:"warm_count"`
}

// DefaultConfig returns the poster defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "https://api.themoviedb.org/3",
		ImageBaseURL:    "https://image.tmdb.org/t/p/w500",
		PlaceholderURL:  DefaultPlaceholderURL,
		Timeout:         5 * time.Second,
		RateLimit:       20,
		Burst:           5,
		BreakerFailures: 5,
		BreakerTimeout:  time.Minute,
	}
}

// Enabled reports whether outbound lookups are possible.
func (c *Config) Enabled() bool {
	return c.APIKey != ""
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("poster.timeout must be positive, got %s", c.Timeout)
	}
	if c.PlaceholderURL == "" {
		return fmt.Errorf("poster.placeholder_url is required")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("poster.rate_limit must not be negative, got %f", c.RateLimit)
	}
	if c.RateLimit > 0 && c.Burst < 1 {
		return fmt.Errorf("poster.burst must be positive when rate limiting, got %d", c.Burst)
	}
	if c.BreakerFailures == 0 {
		return fmt.Errorf("poster.breaker_failures must be positive")
	}
	if c.WarmCount < 0 {
		return fmt.Errorf("poster.warm_count must not be negative, got %d", c.WarmCount)
	}
	if c.Enabled() {
		for name, raw := range map[string]string{"base_url": c.BaseURL, "image_base_url": c.ImageBaseURL} {
			u, err := url.Parse(raw)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("poster.%s must be an absolute URL, got %q", name, raw)
			}
		}
	}
	return nil
}
