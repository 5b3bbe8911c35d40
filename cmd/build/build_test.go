// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/store"
	"github.com/tomtom215/cinematch/internal/vectorize"
)

const testMovies = `id,title,overview,genres,keywords,vote_average,vote_count,popularity,runtime,release_date
1,Space Wars,"Rebels fight an empire across the galaxy in space battles","[{""id"": 878, ""name"": ""Science Fiction""}]","[{""id"": 1, ""name"": ""space""}]",7.9,9000,120.5,121,1977-05-25
2,Galaxy Quest,"A washed up crew is pulled into a real space galaxy adventure","[{""id"": 35, ""name"": ""Comedy""}, {""id"": 878, ""name"": ""Science Fiction""}]",[],7.0,1500,25.1,,1999-12-25
3,Kitchen Tales,"A family restaurant shares recipes from the kitchen","[{""id"": 99, ""name"": ""Documentary""}]",[],6.1,,3.2,88,2010-01-01
4,Space Wars,"Duplicate row that must be dropped","[]",[],1,1,1,1,2020-01-01
`

const testCredits = `movie_id,title,cast,crew
1,Space Wars,"[{""name"": ""Mark Hamill"", ""order"": 0}]","[{""job"": ""Director"", ""name"": ""George Lucas""}]"
3,Kitchen Tales,[],"not json"
`

func writeInputs(t *testing.T) *config.BuildConfig {
	t.Helper()
	dir := t.TempDir()
	movies := filepath.Join(dir, "movies.csv")
	credits := filepath.Join(dir, "credits.csv")
	if err := os.WriteFile(movies, []byte(testMovies), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(credits, []byte(testCredits), 0o600); err != nil {
		t.Fatal(err)
	}
	return &config.BuildConfig{
		MoviesPath:  movies,
		CreditsPath: credits,
		Workers:     2,
		Vectorizer:  vectorize.DefaultConfig(),
	}
}

func TestBuild(t *testing.T) {
	cfg := writeInputs(t)

	s, err := build(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if diff := cmp.Diff([]string{"Galaxy Quest", "Kitchen Tales", "Space Wars"}, s.Titles()); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
	meta := s.Metadata()
	if meta.Duplicates != 1 || meta.VocabularySize == 0 || meta.NgramMax != 2 {
		t.Errorf("metadata = %+v", meta)
	}

	spaceWars, _ := s.Lookup("Space Wars")
	quest, _ := s.Lookup("Galaxy Quest")
	kitchen, _ := s.Lookup("Kitchen Tales")
	row, err := s.SimilarityRow(spaceWars)
	if err != nil {
		t.Fatal(err)
	}
	if row[spaceWars] != 1 {
		t.Errorf("self similarity = %v", row[spaceWars])
	}
	if row[quest] <= row[kitchen] {
		t.Errorf("Galaxy Quest (%v) should be closer to Space Wars than Kitchen Tales (%v)", row[quest], row[kitchen])
	}

	item, _ := s.Row(kitchen)
	if item.VoteCount == 0 {
		t.Error("missing vote count should be filled with the median")
	}
	if diff := cmp.Diff([]string{"Comedy", "Science Fiction"}, mustRow(t, s, quest).Genres); diff != "" {
		t.Errorf("genres mismatch (-want +got):\n%s", diff)
	}
}

func mustRow(t *testing.T, s *store.Store, i int) catalog.Item {
	t.Helper()
	item, err := s.Row(i)
	if err != nil {
		t.Fatal(err)
	}
	return item
}

func TestBuildRoundTrip(t *testing.T) {
	cfg := writeInputs(t)
	s, err := build(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "cinematch.bundle")
	if err := s.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	loaded, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if diff := cmp.Diff(s.Titles(), loaded.Titles()); diff != "" {
		t.Errorf("titles mismatch after reload (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	cfg := writeInputs(t)
	cfg.MoviesPath = filepath.Join(t.TempDir(), "missing.csv")
	if _, err := build(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Error("missing movies file should fail")
	}

	cfg = writeInputs(t)
	empty := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(empty, []byte("id,title\nnope,Nothing\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.MoviesPath = empty
	if _, err := build(context.Background(), cfg, zerolog.Nop()); !errors.Is(err, errNoMovies) {
		t.Errorf("build() = %v, want errNoMovies", err)
	}
}
