// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package features

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

func TestGenres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   []string
		wantOK bool
	}{
		{"valid", `[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]`, []string{"Action", "Science Fiction"}, true},
		{"empty list", `[]`, []string{}, true},
		{"empty string", ``, nil, false},
		{"malformed", `[{"id":28,"name":`, nil, false},
		{"missing name", `[{"id":28}]`, nil, false},
		{"not a list", `{"name":"Action"}`, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Genres(tt.raw)
			if got.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v", got.OK, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got.Value); diff != "" {
				t.Errorf("Genres() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCast(t *testing.T) {
	t.Parallel()

	raw := `[{"name":"Sam Worthington"},{"name":"Zoe Saldana"},{"name":"Sigourney Weaver"},
		{"name":"Stephen Lang"},{"name":"Michelle Rodriguez"},{"name":"Giovanni Ribisi"}]`

	got := Cast(raw, 5)
	want := "SamWorthington ZoeSaldana SigourneyWeaver StephenLang MichelleRodriguez"
	if !got.OK || got.Value != want {
		t.Errorf("Cast() = %+v, want %q", got, want)
	}

	if bad := Cast("not json", 5); bad.OK || bad.Value != "" {
		t.Errorf("Cast(malformed) = %+v, want empty failure", bad)
	}

	nameless := `[{"name":"A B"},{"name":"C"},{"name":"D"},{"name":"E"},{"name":"F G"},{"character":"Extra"}]`
	if got := Cast(nameless, 5); !got.OK || got.Value != "AB C D E FG" {
		t.Errorf("Cast(nameless sixth entry) = %+v, want the first five names", got)
	}
	if got := Cast(`[{"name":"A B"},{"character":"Extra"}]`, 5); got.OK || got.Value != "" {
		t.Errorf("Cast(nameless credited entry) = %+v, want empty failure", got)
	}
}

func TestDirector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"first director wins", `[{"name":"Jon Landau","job":"Producer"},{"name":"James Cameron","job":"Director"},{"name":"Other Person","job":"Director"}]`, "JamesCameron", true},
		{"no director", `[{"name":"Jon Landau","job":"Producer"}]`, "", true},
		{"case sensitive job", `[{"name":"A B","job":"director"}]`, "", true},
		{"malformed", `[{`, "", false},
		{"entry without job before director", `[{"job":"Producer"},{"name":"x"},{"job":"Director","name":"James Cameron"}]`, "JamesCameron", true},
		{"nameless entry after director", `[{"name":"A B","job":"Director"},{"job":"Writer"}]`, "AB", true},
		{"nameless director", `[{"name":"A B","job":"Producer"},{"job":"Director"}]`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Director(tt.raw)
			if got.Value != tt.want || got.OK != tt.wantOK {
				t.Errorf("Director() = %+v, want {%q %v}", got, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	t.Parallel()

	b := NewBuilder(0, zerolog.New(io.Discard))
	rec := catalog.Record{
		Title:    "Avatar",
		Overview: "A paraplegic marine.",
		Genres:   `[{"name":"Action"},{"name":"Science Fiction"}]`,
		Keywords: `[{"name":"culture clash"},{"name":"space war"}]`,
		Cast:     `[{"name":"Sam Worthington"}]`,
		Crew:     `[{"name":"James Cameron","job":"Director"}]`,
	}

	got := b.Build(&rec)
	want := "A paraplegic marine. Action ScienceFiction culture clash space war SamWorthington JamesCameron"
	if got.Text != want {
		t.Errorf("Text = %q, want %q", got.Text, want)
	}
	if diff := cmp.Diff([]string{"Action", "Science Fiction"}, got.Genres); diff != "" {
		t.Errorf("Genres mismatch (-want +got):\n%s", diff)
	}
	if len(got.Failures) != 0 {
		t.Errorf("Failures = %v, want none", got.Failures)
	}
}

func TestBuilderBuildMalformed(t *testing.T) {
	t.Parallel()

	b := NewBuilder(5, zerolog.New(io.Discard))
	rec := catalog.Record{
		Overview: "Plot",
		Genres:   "{broken",
		Keywords: "",
		Cast:     "[",
		Crew:     `[{"name":"Ann Lee","job":"Director"}]`,
	}

	got := b.Build(&rec)
	if want := "Plot    AnnLee"; got.Text != want {
		t.Errorf("Text = %q, want %q", got.Text, want)
	}
	wantFailures := []string{FieldGenres, FieldKeywords, FieldCast}
	if diff := cmp.Diff(wantFailures, got.Failures); diff != "" {
		t.Errorf("Failures mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAllNeverFails(t *testing.T) {
	t.Parallel()

	b := NewBuilder(5, zerolog.New(io.Discard))
	out := b.BuildAll([]catalog.Record{{Genres: "x"}, {Genres: "[]"}})
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if len(out[1].Failures) != 3 {
		t.Errorf("second record failures = %v, want keywords/cast/crew", out[1].Failures)
	}
}
