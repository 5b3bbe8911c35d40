// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/poster"
)

// newPosterService builds the poster service, adding the BadgerDB layer
// when a cache path is configured.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newPosterService(cfg *poster.Config, logger zerolog.Logger) (*poster.Service, error) {
	var (
		opts       []poster.Option
		persistent *poster.BadgerStore
	)
	if cfg.CachePath != "" {
		var err error
		persistent, err = poster.OpenBadgerStore(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open poster cache: %w", err)
		}
		opts = append(opts, poster.WithPersistent(persistent))
		logger.Info().Str("path", cfg.CachePath).Msg("Persistent poster cache enabled")
	}
	if !cfg.Enabled() {
		logger.Warn().Msg("TMDB_API_KEY not set, posters fall back to the placeholder")
	}

	svc, err := poster.NewService(*cfg, logger, opts...)
	if err != nil {
		if persistent != nil {
			_ = persistent.Close()
		}
		return nil, err
	}
	return svc, nil
}

// rowSource is the subset of the store popularIDs reads.
type rowSource interface {
	Len() int
	Row(i int) (catalog.Item, error)
}

// popularIDs returns the TMDB ids of the n most popular items, most
// popular first. Ties keep catalog order.
func popularIDs(src rowSource, n int) []int64 {
	if n <= 0 {
		return nil
	}
	items := make([]catalog.Item, 0, src.Len())
	for i := 0; i < src.Len(); i++ {
		item, err := src.Row(i)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Popularity > items[b].Popularity
	})

	n = min(n, len(items))
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = items[i].ID
	}
	return ids
}
