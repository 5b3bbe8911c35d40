// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config provides centralized configuration management for CineMatch.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/cinematch/config.yaml
 3. Environment variables listed in the mapping table in koanf.go

Unmapped environment variables are ignored.

# Sections

  - server: HTTP bind address, port and timeouts
  - logging: zerolog level, format and caller
  - bundle: path of the precomputed similarity bundle
  - build: catalog CSV inputs and vectorizer settings for cmd/build
  - recommend: list lengths, default hybrid weights and mood keywords
  - poster: TMDB poster lookups (API key, timeout, breaker, cache)
  - history: session history retention
  - security: CORS origins and per-IP rate limiting

# Environment Variables

	HTTP_HOST, HTTP_PORT, SERVER_TIMEOUT, SHUTDOWN_TIMEOUT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
	BUNDLE_PATH
	MOVIES_CSV, CREDITS_CSV, BUILD_WORKERS, MAX_FEATURES
	RECOMMEND_DEFAULT_TOP_N, RECOMMEND_MAX_TOP_N
	TMDB_API_KEY, TMDB_BASE_URL, TMDB_IMAGE_BASE_URL, POSTER_TIMEOUT,
	POSTER_RATE_LIMIT, POSTER_CACHE_PATH, POSTER_WARM_COUNT
	HISTORY_MAX_SESSIONS, HISTORY_IDLE_TTL
	CORS_ORIGINS (comma separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
	DISABLE_RATE_LIMIT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
