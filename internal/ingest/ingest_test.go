// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func openReader(t *testing.T) *Reader {
	t.Helper()
	r, err := Open(context.Background(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func f(v float64) *float64 { return &v }

const moviesCSV = `budget,genres,id,keywords,overview,popularity,release_date,runtime,title,vote_average,vote_count
237000000,"[{""id"": 28, ""name"": ""Action""}]",19995,"[{""id"": 1463, ""name"": ""culture clash""}]","In the 22nd century, a paraplegic Marine...",150.437577,2009-12-10,162,Avatar,7.2,11800
200000000,"[{""id"": 18, ""name"": ""Drama""}]",597,[],"84 years later, a woman, recalls",100.025899,1997-11-18,,Titanic,7.5,7562
0,[],oops,[],bad id,1,2000-01-01,90,Broken,5,10
0,[],14160,[],,n/a,2009-05-28,96,Up,7.7,6870
`

func TestMovies(t *testing.T) {
	r := openReader(t)
	path := writeFile(t, "movies.csv", moviesCSV)

	got, err := r.Movies(context.Background(), path)
	if err != nil {
		t.Fatalf("Movies: %v", err)
	}

	want := []catalog.Record{
		{
			ID:          19995,
			Title:       "Avatar",
			Overview:    "In the 22nd century, a paraplegic Marine...",
			ReleaseDate: "2009-12-10",
			Genres:      `[{"id": 28, "name": "Action"}]`,
			Keywords:    `[{"id": 1463, "name": "culture clash"}]`,
			VoteAverage: f(7.2),
			VoteCount:   f(11800),
			Popularity:  f(150.437577),
			Runtime:     f(162),
		},
		{
			ID:          597,
			Title:       "Titanic",
			Overview:    "84 years later, a woman, recalls",
			ReleaseDate: "1997-11-18",
			Genres:      `[{"id": 18, "name": "Drama"}]`,
			Keywords:    "[]",
			VoteAverage: f(7.5),
			VoteCount:   f(7562),
			Popularity:  f(100.025899),
		},
		{
			ID:          14160,
			Title:       "Up",
			ReleaseDate: "2009-05-28",
			Genres:      "[]",
			Keywords:    "[]",
			VoteAverage: f(7.7),
			VoteCount:   f(6870),
			Runtime:     f(96),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Movies mismatch (-want +got):\n%s", diff)
	}
}

func TestMoviesOptionalColumns(t *testing.T) {
	r := openReader(t)
	path := writeFile(t, "movies.csv", "id,title\n1,Solo\n")

	got, err := r.Movies(context.Background(), path)
	if err != nil {
		t.Fatalf("Movies: %v", err)
	}
	if diff := cmp.Diff([]catalog.Record{{ID: 1, Title: "Solo"}}, got); diff != "" {
		t.Errorf("Movies mismatch (-want +got):\n%s", diff)
	}
}

func TestMoviesMissingRequiredColumn(t *testing.T) {
	r := openReader(t)
	path := writeFile(t, "movies.csv", "id,overview\n1,text\n")

	if _, err := r.Movies(context.Background(), path); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Movies() error = %v, want ErrMissingColumn", err)
	}
}

func TestMoviesMissingFile(t *testing.T) {
	r := openReader(t)
	if _, err := r.Movies(context.Background(), filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Movies() on a missing file should fail")
	}
}

func TestCredits(t *testing.T) {
	r := openReader(t)
	path := writeFile(t, "credits.csv", `movie_id,title,cast,crew
19995,Avatar,"[{""name"": ""Sam Worthington"", ""order"": 0}]","[{""job"": ""Director"", ""name"": ""James Cameron""}]"
597,Titanic,[],[]
`)

	got, err := r.Credits(context.Background(), path)
	if err != nil {
		t.Fatalf("Credits: %v", err)
	}
	want := []catalog.Credits{
		{MovieID: 19995, Cast: `[{"name": "Sam Worthington", "order": 0}]`, Crew: `[{"job": "Director", "name": "James Cameron"}]`},
		{MovieID: 597, Cast: "[]", Crew: "[]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Credits mismatch (-want +got):\n%s", diff)
	}
}

func TestQuoting(t *testing.T) {
	if got := quoteLiteral("it's.csv"); got != "'it''s.csv'" {
		t.Errorf("quoteLiteral = %s", got)
	}
	if got := quoteIdent(`a"b`); got != `"a""b"` {
		t.Errorf("quoteIdent = %s", got)
	}
}
