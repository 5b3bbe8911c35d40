// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides the HTTP middleware shared by the CineMatch API.

All middleware uses the chi-compatible signature func(http.Handler) http.Handler.

  - RequestID: honours or generates X-Request-ID and puts it in the logging context
  - SessionID: honours or generates X-Session-ID, the key for browsing history
  - PrometheusMetrics: request counts, durations and in-flight gauge, labelled
    by chi route pattern to keep cardinality bounded
  - AccessLog: one structured zerolog line per request

Typical ordering on a chi router:

	r.Use(middleware.RequestID)
	r.Use(middleware.SessionID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
