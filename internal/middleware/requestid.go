// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package middleware

import (
	"net/http"
	"regexp"


	"github.com/tomtom215/cinematch/internal/logging"
)

// Header names.
const (
	RequestIDHeader = "X-Request-ID"
	SessionIDHeader = "X-Session-ID"
)

// clientIDPattern bounds ids accepted from clients. Anything else is
// replaced so arbitrary header content never reaches logs or map keys.
var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func clientID(r *http.Request, header string) string {
	if id := r.Header.Get(header); clientIDPattern.MatchString(id) {
		return id
	}
	return logging.NewID()
}

// RequestID generates a unique ID for each request unless a valid one was
// supplied upstream, and adds it to the response header and the logging
// context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := clientID(r, RequestIDHeader)
		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID identifies the browsing session a request belongs to. Clients
// echo the returned X-Session-ID header to keep their history.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := clientID(r, SessionIDHeader)
		w.Header().Set(SessionIDHeader, sessionID)

		ctx := logging.ContextWithSessionID(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
