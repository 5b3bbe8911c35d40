// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog defines the movie item model and the cleaning steps applied
// to raw TMDB rows before feature building: the credits join, title
// de-duplication and median filling of missing numeric columns.
package catalog

import (
	"sort"
)

// Item is one catalog entry as served by the recommendation engine.
type Item struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	VoteAverage float64  `json:"vote_average"`
	VoteCount   float64  `json:"vote_count"`
	Popularity  float64  `json:"popularity"`
	Runtime     *float64 `json:"runtime,omitempty"`
	Genres      []string `json:"genres"`
	Overview    string   `json:"overview,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// RuntimeMinutes returns the runtime, or 0 when unknown.
func (i *Item) RuntimeMinutes() int {
	if i.Runtime == nil {
		return 0
	}
	return int(*i.Runtime)
}

// Record is one raw merged row from the movies and credits files.
// JSON-encoded columns are kept as raw strings and parsed by the
// features package. Numeric columns are nil when the source cell was
// empty or unparseable.
type Record struct {
	ID          int64
	Title       string
	Overview    string
	ReleaseDate string
	Genres      string
	Keywords    string
	Cast        string
	Crew        string

	VoteAverage *float64
	VoteCount   *float64
	Popularity  *float64
	Runtime     *float64
}

// Credits holds the cast and crew JSON for one movie id.
type Credits struct {
	MovieID int64
	Cast    string
	Crew    string
}

// Merge left-joins credits onto movies by id. Movies without credits keep
// empty cast and crew. When a movie id appears more than once in credits the
// first row wins.
func Merge(movies []Record, credits []Credits) []Record {
	byID := make(map[int64]Credits, len(credits))
	for _, c := range credits {
		if _, ok := byID[c.MovieID]; !ok {
			byID[c.MovieID] = c
		}
	}

	out := make([]Record, len(movies))
	for i := range movies {
		out[i] = movies[i]
		if c, ok := byID[movies[i].ID]; ok {
			out[i].Cast = c.Cast
			out[i].Crew = c.Crew
		}
	}
	return out
}

// Dedupe keeps the first record for every title and reports how many were
// dropped.
func Dedupe(records []Record) ([]Record, int) {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for i := range records {
		if _, ok := seen[records[i].Title]; ok {
			continue
		}
		seen[records[i].Title] = struct{}{}
		out = append(out, records[i])
	}
	return out, len(records) - len(out)
}

// FillMedians replaces missing numeric cells with the median of the present
// values in the same column. Runtime is filled too; a column with no values
// at all stays missing.
func FillMedians(records []Record) {
	fields := []func(*Record) **float64{
		func(r *Record) **float64 { return &r.VoteAverage },
		func(r *Record) **float64 { return &r.VoteCount },
		func(r *Record) **float64 { return &r.Popularity },
		func(r *Record) **float64 { return &r.Runtime },
	}

	for _, field := range fields {
		var present []float64
		for i := range records {
			if v := *field(&records[i]); v != nil {
				present = append(present, *v)
			}
		}
		if len(present) == 0 {
			continue
		}
		m := Median(present)
		for i := range records {
			p := field(&records[i])
			if *p == nil {
				v := m
				*p = &v
			}
		}
	}
}

// Median returns the median of values, averaging the two middle values for
// an even count. values is not modified. Median of an empty slice is 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// ToItem converts a cleaned record into an Item using the given genre names.
func ToItem(r *Record, genres []string) Item {
	var runtime *float64
	if r.Runtime != nil {
		v := *r.Runtime
		runtime = &v
	}
	if genres == nil {
		genres = []string{}
	}
	return Item{
		ID:          r.ID,
		Title:       r.Title,
		VoteAverage: deref(r.VoteAverage),
		VoteCount:   deref(r.VoteCount),
		Popularity:  deref(r.Popularity),
		Runtime:     runtime,
		Genres:      genres,
		Overview:    r.Overview,
		ReleaseDate: r.ReleaseDate,
	}
}
