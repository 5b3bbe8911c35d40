// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package features

import (
	"strings"

	"github.com/goccy/go-json"
)

// Extraction is the typed result of parsing one metadata column. A failed
// parse carries the zero value with OK set to false; callers use Value in
// either case.
type Extraction[T any] struct {
	Value T
	OK    bool
}

func ok[T any](v T) Extraction[T] { return Extraction[T]{Value: v, OK: true} }

func failed[T any]() Extraction[T] { return Extraction[T]{} }

// entry is one element of a TMDB tagged list (genres, keywords, cast, crew).
type entry struct {
	Name *string `json:"name"`
	Job  string  `json:"job"`
}

// parseEntries decodes a JSON list of tagged entries. Names are checked by
// each extractor on the entries it reads.
func parseEntries(raw string) ([]entry, bool) {
	var entries []entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// entryNames returns the names of entries, or false if any is missing one.
func entryNames(entries []entry, transform func(string) string) ([]string, bool) {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name == nil {
			return nil, false
		}
		names = append(names, transform(*e.Name))
	}
	return names, true
}

func identity(s string) string { return s }

// squash removes all whitespace so multi-word names become one token.
func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Genres extracts genre names in source order.
func Genres(raw string) Extraction[[]string] {
	entries, valid := parseEntries(raw)
	if !valid {
		return failed[[]string]()
	}
	names, valid := entryNames(entries, identity)
	if !valid {
		return failed[[]string]()
	}
	return ok(names)
}

// Keywords extracts keyword names joined by single spaces.
func Keywords(raw string) Extraction[string] {
	entries, valid := parseEntries(raw)
	if !valid {
		return failed[string]()
	}
	names, valid := entryNames(entries, identity)
	if !valid {
		return failed[string]()
	}
	return ok(strings.Join(names, " "))
}

// Cast extracts the first limit credited names, each with whitespace
// removed, joined by single spaces. Entries past limit are not read.
func Cast(raw string, limit int) Extraction[string] {
	entries, valid := parseEntries(raw)
	if !valid {
		return failed[string]()
	}
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	names, valid := entryNames(entries, squash)
	if !valid {
		return failed[string]()
	}
	return ok(strings.Join(names, " "))
}

// Director extracts the first crew member whose job is exactly "Director",
// with whitespace removed. A valid crew list without a director is a
// successful extraction of "". Entries after the first director are not
// read; a director without a name fails the extraction.
func Director(raw string) Extraction[string] {
	entries, valid := parseEntries(raw)
	if !valid {
		return failed[string]()
	}
	for _, e := range entries {
		if e.Job != "Director" {
			continue
		}
		if e.Name == nil {
			return failed[string]()
		}
		return ok(squash(*e.Name))
	}
	return ok("")
}
