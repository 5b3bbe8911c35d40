// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// PosterWarmer resolves posters ahead of the first request.
type PosterWarmer interface {
	// Warm resolves ids and returns how many produced a real poster.
	Warm(ctx context.Context, ids []int64) int
}

// PosterWarmService pre-fetches poster URLs for the most popular catalog
// items once at startup. It runs to completion and is never restarted.
type PosterWarmService struct {
	warmer PosterWarmer
	ids    []int64
	logger zerolog.Logger
	done   chan struct{}
}

// NewPosterWarmService creates a warm-up service for ids.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPosterWarmService(warmer PosterWarmer, ids []int64, logger zerolog.Logger) *PosterWarmService {
	return &PosterWarmService{
		warmer: warmer,
		ids:    ids,
		logger: logger.With().Str("service", "poster-warm").Logger(),
		done:   make(chan struct{}),
	}
}

// Serve implements suture.Service. Lookups never fail, so the only way out
// is completion or cancellation; both end supervision of this service.
func (s *PosterWarmService) Serve(ctx context.Context) error {
	defer close(s.done)

	if len(s.ids) == 0 {
		return suture.ErrDoNotRestart
	}

	start := time.Now()
	resolved := s.warmer.Warm(ctx, s.ids)

	event := s.logger.Info()
	if ctx.Err() != nil {
		event = s.logger.Warn()
	}
	event.
		Int("requested", len(s.ids)).
		Int("resolved", resolved).
		Dur("duration", time.Since(start)).
		Msg("Poster cache warm-up finished")

	return suture.ErrDoNotRestart
}

// Done is closed once Serve has returned.
func (s *PosterWarmService) Done() <-chan struct{} {
	return s.done
}

// String names the service in supervisor events.
func (s *PosterWarmService) String() string {
	return "poster-warm"
}
