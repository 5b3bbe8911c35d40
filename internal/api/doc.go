// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the HTTP JSON API of CineMatch.

The API is the presentation layer over the recommendation engine: it lists
the catalog, shows movie details with posters, runs the three ranking
strategies, applies the optional mood filter, exports results as CSV and
keeps a per-session history of requests.

Endpoints:

	GET  /health                          liveness and catalog size
	GET  /metrics                         Prometheus metrics
	GET  /api/v1/catalog/stats            catalog size and model description
	GET  /api/v1/titles?q=                sorted titles, optional substring filter
	GET  /api/v1/movies/{title}           details of one movie with poster URL
	GET  /api/v1/recommend/similar        ?title=&top_n=&mood=&format=csv
	POST /api/v1/recommend/personalized   {"titles": [...], "top_n": 10, "mood": ""}
	POST /api/v1/recommend/hybrid         {"titles": [...], "top_n": 10, "weights": {...}}
	GET  /api/v1/history                  requests made in this session

All JSON responses use the envelope

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Error codes: NOT_FOUND (404) for an unknown title, NO_VALID_SEEDS (422)
when none of the seed titles resolve, VALIDATION_ERROR (400) for malformed
requests, TOO_MANY_REQUESTS (429) from the per-IP rate limiter.

Sessions are identified by the X-Session-ID header; the server generates
one when absent and returns it on every response.
*/
package api
