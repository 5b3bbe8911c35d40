// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Command server serves movie recommendations over HTTP from a precomputed
similarity bundle.

# Application Architecture

	RootSupervisor ("cinematch")
	├── CacheSupervisor ("cache-layer")
	│   └── Poster warm-up (POSTER_WARM_COUNT > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: Koanf v2 layering defaults, config.yaml and environment
 2. Logging: zerolog, with a slog bridge for supervisor events
 3. Bundle: the similarity bundle written by cmd/build, loaded once
 4. Poster service: TMDB lookups with an optional BadgerDB cache
 5. Engine, session history and the chi router
 6. Supervisor tree

A missing bundle is fatal; run cmd/build first.

# Configuration

Commonly used environment variables:
  - BUNDLE_PATH: similarity bundle (default data/cinematch.bundle)
  - HTTP_HOST, HTTP_PORT: listen address (default 0.0.0.0:8501)
  - TMDB_API_KEY: enables poster lookups
  - POSTER_CACHE_PATH: BadgerDB directory for resolved poster URLs
  - LOG_LEVEL, LOG_FORMAT: zerolog level and json/console output

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. In-flight requests drain
for at most SHUTDOWN_TIMEOUT.
*/
package main
