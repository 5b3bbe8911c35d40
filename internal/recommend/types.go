// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/store"
)

// Mode identifies the ranking strategy that produced a result.
type Mode int

const (
	// ModeContent ranks by the similarity row of one seed.
	ModeContent Mode = iota
	// ModePersonalized ranks by the mean similarity row of several seeds.
	ModePersonalized
	// ModeHybrid blends similarity with popularity.
	ModeHybrid
)

// String returns the mode name used in logs, metrics and JSON.
func (m Mode) String() string {
	switch m {
	case ModeContent:
		return "content"
	case ModePersonalized:
		return "personalized"
	case ModeHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// ScoreColumn is the export column name of the mode's score.
func (m Mode) ScoreColumn() string {
	switch m {
	case ModePersonalized:
		return "profile_score"
	case ModeHybrid:
		return "hybrid_score"
	default:
		return "similarity_score"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	for _, candidate := range []Mode{ModeContent, ModePersonalized, ModeHybrid} {
		if candidate.String() == string(text) {
			*m = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", text)
}

// Components are the per-item hybrid component scores.
type Components struct {
	Content      float64 `json:"content"`
	Personalized float64 `json:"personalized"`
	Popularity   float64 `json:"popularity"`
}

// ScoredItem is one ranked recommendation.
type ScoredItem struct {
	Item       catalog.Item `json:"item"`
	Rank       int          `json:"rank"`
	Score      float64      `json:"score"`
	Components *Components  `json:"components,omitempty"`

	// Index is the store row of the item.
	Index int `json:"-"`
}

// Result is the output of a ranking strategy.
type Result struct {
	Mode Mode `json:"mode"`

	// Seeds are the titles that resolved, in request order.
	Seeds []string `json:"seeds"`

	// Dropped are the titles that did not resolve.
	Dropped []string `json:"dropped,omitempty"`

	// Weights are the normalized hybrid weights actually applied.
	Weights *Weights `json:"weights,omitempty"`

	// Candidates is the number of items ranked before truncation.
	Candidates int `json:"candidates"`

	Items []ScoredItem `json:"items"`
}

// Source is the read-only similarity data the engine ranks over.
// *store.Store satisfies it.
type Source interface {
	Len() int
	Lookup(title string) (int, error)
	Row(i int) (catalog.Item, error)
	SimilarityRow(i int) ([]float32, error)
	ScaledSignals(i int) (store.Signals, error)
}
