// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package store holds the immutable similarity bundle: the item table, the
// scaled popularity signals, the dense similarity matrix and the
// title-to-row index. A Store is built once by the offline build step,
// persisted as a single file and loaded once at server start. It is never
// mutated afterwards, so concurrent readers need no locking.
package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/vectorize"
)

// ErrNotFound is returned when a title or row index does not resolve.
var ErrNotFound = errors.New("item not found")

// Metadata describes how a bundle was built.
type Metadata struct {
	BuiltAt        time.Time `json:"built_at"`
	VocabularySize int       `json:"vocabulary_size"`
	MaxFeatures    int       `json:"max_features"`
	NgramMin       int       `json:"ngram_min"`
	NgramMax       int       `json:"ngram_max"`
	Duplicates     int       `json:"duplicates_dropped"`
}

// Store is the loaded similarity bundle.
type Store struct {
	items   []catalog.Item
	signals []Signals
	sim     *vectorize.SimilarityMatrix
	index   map[string]int
	titles  []string
	meta    Metadata
}

// New assembles a Store. items, signals and the matrix must all describe
// the same number of rows. When titles repeat, only the first row is
// reachable through Lookup.
func New(items []catalog.Item, signals []Signals, sim *vectorize.SimilarityMatrix, meta Metadata) (*Store, error) {
	if sim == nil {
		return nil, errors.New("store: nil similarity matrix")
	}
	if len(items) != len(signals) || len(items) != sim.N {
		return nil, fmt.Errorf("store: row count mismatch: %d items, %d signals, %d matrix rows",
			len(items), len(signals), sim.N)
	}

	index := make(map[string]int, len(items))
	titles := make([]string, 0, len(items))
	for i := range items {
		if _, ok := index[items[i].Title]; ok {
			continue
		}
		index[items[i].Title] = i
		titles = append(titles, items[i].Title)
	}
	sort.Strings(titles)

	return &Store{
		items:   items,
		signals: signals,
		sim:     sim,
		index:   index,
		titles:  titles,
		meta:    meta,
	}, nil
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.items)
}

// Metadata returns the build metadata.
func (s *Store) Metadata() Metadata {
	return s.meta
}

// Lookup resolves a title to its row index.
func (s *Store) Lookup(title string) (int, error) {
	i, ok := s.index[title]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return i, nil
}

func (s *Store) check(i int) error {
	if i < 0 || i >= len(s.items) {
		return fmt.Errorf("%w: row %d out of range [0, %d)", ErrNotFound, i, len(s.items))
	}
	return nil
}

// Row returns the item at row i.
func (s *Store) Row(i int) (catalog.Item, error) {
	if err := s.check(i); err != nil {
		return catalog.Item{}, err
	}
	return s.items[i], nil
}

// SimilarityRow returns the similarity of row i to every row. The slice is
// shared with the store and must not be modified.
func (s *Store) SimilarityRow(i int) ([]float32, error) {
	if err := s.check(i); err != nil {
		return nil, err
	}
	return s.sim.Row(i), nil
}

// ScaledSignals returns the scaled popularity signals of row i.
func (s *Store) ScaledSignals(i int) (Signals, error) {
	if err := s.check(i); err != nil {
		return Signals{}, err
	}
	return s.signals[i], nil
}

// Titles returns every addressable title in alphabetical order. The slice
// is shared and must not be modified.
func (s *Store) Titles() []string {
	return s.titles
}
