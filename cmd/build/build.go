// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/features"
	"github.com/tomtom215/cinematch/internal/ingest"
	"github.com/tomtom215/cinematch/internal/store"
	"github.com/tomtom215/cinematch/internal/vectorize"
)

var errNoMovies = errors.New("movies file has no usable rows")

// build runs the offline pipeline and returns the assembled store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func build(ctx context.Context, cfg *config.BuildConfig, logger zerolog.Logger) (*store.Store, error) {
	reader, err := ingest.Open(ctx, logger)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	movies, err := reader.Movies(ctx, cfg.MoviesPath)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	credits, err := reader.Credits(ctx, cfg.CreditsPath)
	if err != nil {
		return nil, fmt.Errorf("load credits: %w", err)
	}

	records, duplicates := catalog.Dedupe(catalog.Merge(movies, credits))
	if len(records) == 0 {
		return nil, errNoMovies
	}
	catalog.FillMedians(records)
	logger.Info().
		Int("movies", len(records)).
		Int("duplicates_dropped", duplicates).
		Msg("Catalog prepared")

	combined := features.NewBuilder(cfg.CastLimit, logger).BuildAll(records)
	docs := make([]string, len(combined))
	items := make([]catalog.Item, len(records))
	for i := range records {
		docs[i] = combined[i].Text
		items[i] = catalog.ToItem(&records[i], combined[i].Genres)
	}

	start := time.Now()
	model, matrix, err := vectorize.Fit(cfg.Vectorizer, docs)
	if err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}
	logger.Info().Int("vocabulary", len(model.Vocabulary)).Dur("duration", time.Since(start)).Msg("TF-IDF fitted")

	start = time.Now()
	sim, err := vectorize.Similarity(ctx, matrix, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("compute similarity: %w", err)
	}
	logger.Info().Int("rows", sim.N).Dur("duration", time.Since(start)).Msg("Similarity matrix computed")

	return store.New(items, store.Scale(items), sim, store.Metadata{
		BuiltAt:        time.Now().UTC(),
		VocabularySize: len(model.Vocabulary),
		MaxFeatures:    cfg.Vectorizer.MaxFeatures,
		NgramMin:       cfg.Vectorizer.NgramMin,
		NgramMax:       cfg.Vectorizer.NgramMax,
		Duplicates:     duplicates,
	})
}
