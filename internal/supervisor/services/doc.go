// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services provides suture.Service wrappers for the long-running parts
of the recommendation server.

# Available Services

HTTPServerService:
  - Wraps *http.Server, translating ListenAndServe into Serve
  - Drains connections for a bounded time on cancellation
  - A listener failure is returned so the supervisor restarts it

PosterWarmService:
  - Resolves poster URLs for the most popular items once at startup
  - Returns suture.ErrDoNotRestart when done or cancelled

Every wrapper implements fmt.Stringer so supervisor events name it.
*/
package services
