// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/poster"
	"github.com/tomtom215/cinematch/internal/store"
)

type rows []catalog.Item

func (r rows) Len() int { return len(r) }

func (r rows) Row(i int) (catalog.Item, error) {
	if i < 0 || i >= len(r) {
		return catalog.Item{}, store.ErrNotFound
	}
	return r[i], nil
}

func TestPopularIDs(t *testing.T) {
	src := rows{
		{ID: 1, Popularity: 10},
		{ID: 2, Popularity: 150},
		{ID: 3, Popularity: 60},
		{ID: 4, Popularity: 150},
	}

	tests := []struct {
		n    int
		want []int64
	}{
		{0, nil},
		{-1, nil},
		{2, []int64{2, 4}},
		{3, []int64{2, 4, 3}},
		{10, []int64{2, 4, 3, 1}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, popularIDs(src, tt.n)); diff != "" {
			t.Errorf("popularIDs(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestNewPosterService(t *testing.T) {
	cfg := poster.DefaultConfig()
	cfg.CachePath = t.TempDir()

	svc, err := newPosterService(&cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newPosterService: %v", err)
	}
	if svc.Placeholder() != poster.DefaultPlaceholderURL {
		t.Errorf("Placeholder() = %q", svc.Placeholder())
	}
	if err := svc.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	cfg.Timeout = -1
	if _, err := newPosterService(&cfg, zerolog.Nop()); err == nil {
		t.Error("invalid config should fail")
	}
}
