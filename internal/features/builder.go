// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package features turns raw catalog records into the combined text that the
// vectorizer indexes.
//
// The combined text of an item is, in order and separated by single spaces:
// the overview, the genre names with whitespace removed, the keyword names,
// the top cast names with whitespace removed and the director name with
// whitespace removed. A column that fails to parse contributes an empty
// string; building never fails for a single bad record.
package features

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// DefaultCastLimit is the number of credited cast members indexed per item.
const DefaultCastLimit = 5

// Field names reported in Combined.Failures.
const (
	FieldGenres   = "genres"
	FieldKeywords = "keywords"
	FieldCast     = "cast"
	FieldCrew     = "crew"
)

// Combined is the feature text of one item plus its parsed genres.
type Combined struct {
	Text     string
	Genres   []string
	Failures []string
}

// Builder builds combined feature texts.
type Builder struct {
	castLimit int
	logger    zerolog.Logger
}

// NewBuilder creates a Builder. castLimit <= 0 selects DefaultCastLimit.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBuilder(castLimit int, logger zerolog.Logger) *Builder {
	if castLimit <= 0 {
		castLimit = DefaultCastLimit
	}
	return &Builder{
		castLimit: castLimit,
		logger:    logger.With().Str("component", "features").Logger(),
	}
}

// Build produces the combined feature text for one record.
func (b *Builder) Build(rec *catalog.Record) Combined {
	var failures []string

	genres := Genres(rec.Genres)
	if !genres.OK {
		failures = append(failures, FieldGenres)
	}
	keywords := Keywords(rec.Keywords)
	if !keywords.OK {
		failures = append(failures, FieldKeywords)
	}
	cast := Cast(rec.Cast, b.castLimit)
	if !cast.OK {
		failures = append(failures, FieldCast)
	}
	director := Director(rec.Crew)
	if !director.OK {
		failures = append(failures, FieldCrew)
	}

	squashed := make([]string, len(genres.Value))
	for i, g := range genres.Value {
		squashed[i] = squash(g)
	}

	text := strings.Join([]string{
		rec.Overview,
		strings.Join(squashed, " "),
		keywords.Value,
		cast.Value,
		director.Value,
	}, " ")

	return Combined{
		Text:     text,
		Genres:   genres.Value,
		Failures: failures,
	}
}

// BuildAll builds every record, logging fallbacks at debug level and a
// summary at info level.
func (b *Builder) BuildAll(records []catalog.Record) []Combined {
	out := make([]Combined, len(records))
	fallbacks := 0
	for i := range records {
		out[i] = b.Build(&records[i])
		if len(out[i].Failures) > 0 {
			fallbacks++
			b.logger.Debug().
				Int64("id", records[i].ID).
				Str("title", records[i].Title).
				Strs("fields", out[i].Failures).
				Msg("Metadata parse failed, using empty contribution")
		}
	}
	b.logger.Info().
		Int("records", len(records)).
		Int("with_fallbacks", fallbacks).
		Msg("Built combined features")
	return out
}
