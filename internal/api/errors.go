// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// writeEngineError maps recommendation errors onto API responses.
// An unresolvable seed set is a user mistake reported as 422, not a
// server failure.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		rw.NotFound("Title not found in catalog")
	case errors.Is(err, recommend.ErrNoValidSeeds):
		rw.Error(http.StatusUnprocessableEntity, ErrCodeNoValidSeeds, "None of the selected titles were found in the catalog")
	case errors.Is(err, recommend.ErrInvalidTopN):
		rw.ValidationError(validation.NewError("top_n", "range", err.Error()))
	default:
		rw.InternalError(err)
	}
}
