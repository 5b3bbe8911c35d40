// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// maxBodyBytes bounds POST request bodies.
const maxBodyBytes = 64 << 10

// SimilarRequest holds the query parameters of GET /recommend/similar.
type SimilarRequest struct {
	Title  string `json:"title" validate:"required,notblank,max=300"`
	TopN   int    `json:"top_n"`
	Mood   string `json:"mood" validate:"omitempty,max=32"`
	Format string `json:"format" validate:"omitempty,oneof=json csv"`
}

// PersonalizedRequest is the body of POST /recommend/personalized.
type PersonalizedRequest struct {
	Titles []string `json:"titles" validate:"required,min=1,max=50,dive,notblank,max=300"`
	TopN   *int     `json:"top_n"`
	Mood   string   `json:"mood" validate:"omitempty,max=32"`
}

// HybridRequest is the body of POST /recommend/hybrid. Omitted weights use
// the configured defaults.
type HybridRequest struct {
	Titles  []string           `json:"titles" validate:"required,min=1,max=50,dive,notblank,max=300"`
	TopN    *int               `json:"top_n"`
	Mood    string             `json:"mood" validate:"omitempty,max=32"`
	Weights *recommend.Weights `json:"weights"`
}

// parseTopN reads an optional integer query parameter, falling back to def.
// Range checks are left to the engine.
func parseTopN(raw string, def int) (int, *validation.RequestValidationError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.NewError("top_n", "integer", "top_n must be an integer")
	}
	return n, nil
}

// topNOrDefault dereferences an optional body field.
func topNOrDefault(n *int, def int) int {
	if n == nil {
		return def
	}
	return *n
}

// decodeJSONBody decodes a bounded JSON request body into dst.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) *validation.RequestValidationError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return validation.NewError("body", "max", fmt.Sprintf("request body must be at most %d bytes", maxBodyBytes))
		}
		return validation.NewError("body", "json", "request body must be valid JSON: "+err.Error())
	}
	return nil
}
