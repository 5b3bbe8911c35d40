// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Bundle.Path != "data/cinematch.bundle" {
		t.Errorf("Bundle.Path = %q", cfg.Bundle.Path)
	}
	if cfg.Build.Vectorizer.MaxFeatures != 5000 {
		t.Errorf("Build.Vectorizer.MaxFeatures = %d, want 5000", cfg.Build.Vectorizer.MaxFeatures)
	}
	if cfg.Recommend.DefaultTopN != 10 || cfg.Recommend.MaxTopN != 20 {
		t.Errorf("Recommend top-n = %d/%d, want 10/20", cfg.Recommend.DefaultTopN, cfg.Recommend.MaxTopN)
	}
	if cfg.Poster.Timeout != 5*time.Second {
		t.Errorf("Poster.Timeout = %v, want 5s", cfg.Poster.Timeout)
	}
	if cfg.Poster.Enabled() {
		t.Error("Poster lookups should be disabled without an API key")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// clearEnv isolates a test from the developer's environment.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, "")
	for key := range envMappings {
		t.Setenv(strings.ToUpper(key), "")
		os.Unsetenv(strings.ToUpper(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8501" {
		t.Errorf("Server.Addr() = %q", cfg.Server.Addr())
	}
	if diff := cmp.Diff(defaultConfig().Recommend.Moods, cfg.Recommend.Moods); diff != "" {
		t.Errorf("moods mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BUNDLE_PATH", "/tmp/x.bundle")
	t.Setenv("MAX_FEATURES", "1234")
	t.Setenv("TMDB_API_KEY", "abc")
	t.Setenv("POSTER_TIMEOUT", "2s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Bundle.Path != "/tmp/x.bundle" {
		t.Errorf("Bundle.Path = %q", cfg.Bundle.Path)
	}
	if cfg.Build.Vectorizer.MaxFeatures != 1234 {
		t.Errorf("MaxFeatures = %d, want 1234", cfg.Build.Vectorizer.MaxFeatures)
	}
	if cfg.Poster.APIKey != "abc" || cfg.Poster.Timeout != 2*time.Second {
		t.Errorf("Poster = %+v", cfg.Poster)
	}
	want := []string{"https://a.example", "https://b.example"}
	if diff := cmp.Diff(want, cfg.Security.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
recommend:
  max_top_n: 15
  weights:
    content: 0.5
    personalized: 0.3
    popularity: 0.2
poster:
  warm_count: 25
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("env should override file: Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Recommend.MaxTopN != 15 {
		t.Errorf("Recommend.MaxTopN = %d, want 15", cfg.Recommend.MaxTopN)
	}
	if cfg.Recommend.Weights.Content != 0.5 {
		t.Errorf("Recommend.Weights = %+v", cfg.Recommend.Weights)
	}
	if cfg.Poster.WarmCount != 25 {
		t.Errorf("Poster.WarmCount = %d, want 25", cfg.Poster.WarmCount)
	}
	if cfg.Recommend.DefaultTopN != 10 {
		t.Errorf("unset keys keep defaults: DefaultTopN = %d", cfg.Recommend.DefaultTopN)
	}
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail validation")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"empty bundle", func(c *Config) { c.Bundle.Path = " " }, "BUNDLE_PATH"},
		{"negative workers", func(c *Config) { c.Build.Workers = -1 }, "BUILD_WORKERS"},
		{"bad ngram", func(c *Config) { c.Build.Vectorizer.NgramMax = 0 }, "vectorizer"},
		{"default above max", func(c *Config) { c.Recommend.DefaultTopN = 50 }, "recommend"},
		{"poster timeout", func(c *Config) { c.Poster.Timeout = 0 }, "poster.timeout"},
		{"history sessions", func(c *Config) { c.History.MaxSessions = 0 }, "HISTORY_MAX_SESSIONS"},
		{"no cors", func(c *Config) { c.Security.CORSOrigins = nil }, "CORS_ORIGINS"},
		{"rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"HTTP_PORT":    "server.port",
		"TMDB_API_KEY": "poster.api_key",
		"max_features": "build.vectorizer.max_features",
		"PATH":         "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "console"

	lc := cfg.LogConfig()
	if lc.Level != "warn" || lc.Format != "console" || !lc.Timestamp {
		t.Errorf("LogConfig() = %+v", lc)
	}
}
