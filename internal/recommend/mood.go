// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"strings"

	"golang.org/x/text/cases"
)

// DefaultMoods maps mood names to the genre keywords they select.
func DefaultMoods() map[string][]string {
	return map[string][]string{
		"happy":       {"comedy", "family", "animation", "music"},
		"excited":     {"action", "adventure", "thriller"},
		"thoughtful":  {"drama", "history", "documentary"},
		"romantic":    {"romance"},
		"scared":      {"horror", "mystery"},
		"curious":     {"science fiction", "fantasy", "mystery"},
		"nostalgic":   {"western", "war", "history"},
		"adventurous": {"adventure", "fantasy", "science fiction"},
	}
}

// Keywords returns the genre keywords for a mood name, case-insensitively.
func (c *Config) Keywords(mood string) ([]string, bool) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(mood))
	for name, keywords := range c.Moods {
		if fold.String(name) == want {
			return keywords, true
		}
	}
	return nil, false
}

// MoodFilter keeps the items whose genres contain any keyword as a
// case-insensitive substring, preserving order. When keywords select
// nothing the unfiltered items are returned with fellBack set. Empty
// keywords or an empty list leave items untouched without a fallback.
func MoodFilter(items []ScoredItem, keywords []string) (filtered []ScoredItem, fellBack bool) {
	fold := cases.Fold()
	needles := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			needles = append(needles, fold.String(k))
		}
	}
	if len(needles) == 0 || len(items) == 0 {
		return items, false
	}

	filtered = make([]ScoredItem, 0, len(items))
	for i := range items {
		if genresMatch(fold, items[i].Item.Genres, needles) {
			filtered = append(filtered, items[i])
		}
	}
	if len(filtered) == 0 {
		return items, true
	}
	return filtered, false
}

func genresMatch(fold cases.Caser, genres, needles []string) bool {
	for _, g := range genres {
		hay := fold.String(g)
		for _, n := range needles {
			if strings.Contains(hay, n) {
				return true
			}
		}
	}
	return false
}
