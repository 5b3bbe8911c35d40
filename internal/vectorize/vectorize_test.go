// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package vectorize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const tolerance = 1e-6

func dot(a, b SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

func TestTokenizerWords(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(1, 1, true)
	got := tok.Words("The Dark KNIGHT returns, a hero_in Gotham! I x2")
	want := []string{"dark", "knight", "returns", "hero_in", "gotham", "x2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizerTermsBigramsSkipStopWords(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(1, 2, true)
	got := tok.Terms("war of the worlds")
	want := []string{"war", "worlds", "war worlds"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Terms() mismatch (-want +got):\n%s", diff)
	}
}

func TestFitWeights(t *testing.T) {
	t.Parallel()

	model, matrix, err := Fit(DefaultConfig(), []string{"apple banana", "apple cherry"})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	wantVocab := []string{"apple", "apple banana", "apple cherry", "banana", "cherry"}
	if diff := cmp.Diff(wantVocab, model.Vocabulary); diff != "" {
		t.Fatalf("vocabulary mismatch (-want +got):\n%s", diff)
	}

	rare := math.Log(3.0/2.0) + 1
	if math.Abs(model.IDF[0]-1) > tolerance {
		t.Errorf("idf(apple) = %f, want 1", model.IDF[0])
	}
	if math.Abs(model.IDF[3]-rare) > tolerance {
		t.Errorf("idf(banana) = %f, want %f", model.IDF[3], rare)
	}

	for i, row := range matrix.Rows {
		if math.Abs(row.Norm()-1) > tolerance {
			t.Errorf("row %d norm = %f, want 1", i, row.Norm())
		}
	}

	wantCos := 1 / (1 + 2*rare*rare)
	if got := dot(matrix.Rows[0], matrix.Rows[1]); math.Abs(got-wantCos) > tolerance {
		t.Errorf("cos(0,1) = %f, want %f", got, wantCos)
	}
}

func TestFitMaxFeaturesTieBreak(t *testing.T) {
	t.Parallel()

	cfg := Config{MaxFeatures: 2, NgramMin: 1, NgramMax: 1, StopWords: true}
	model, matrix, err := Fit(cfg, []string{"zeta zeta alpha", "beta"})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, model.Vocabulary); diff != "" {
		t.Errorf("vocabulary mismatch (-want +got):\n%s", diff)
	}
	if len(matrix.Rows[1].Indices) != 0 {
		t.Errorf("document with no vocabulary terms should be empty, got %v", matrix.Rows[1])
	}
}

func TestFitErrors(t *testing.T) {
	t.Parallel()

	if _, _, err := Fit(DefaultConfig(), nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Fit(nil) error = %v, want ErrEmptyCorpus", err)
	}
	if _, _, err := Fit(Config{MaxFeatures: 0, NgramMin: 1, NgramMax: 1}, []string{"x"}); err == nil {
		t.Error("expected config validation error")
	}
}

func TestSimilarityInvariants(t *testing.T) {
	t.Parallel()

	docs := make([]string, 150)
	for i := range docs {
		docs[i] = fmt.Sprintf("movie%d genre%d shared actor%d", i, i%7, i%13)
	}
	docs[10] = ""

	_, matrix, err := Fit(DefaultConfig(), docs)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	sim, err := Similarity(context.Background(), matrix, 4)
	if err != nil {
		t.Fatalf("Similarity() error = %v", err)
	}

	for i := 0; i < sim.N; i++ {
		if sim.Row(i)[i] != 1 {
			t.Errorf("sim(%d,%d) = %f, want 1", i, i, sim.Row(i)[i])
		}
		for j := 0; j < sim.N; j++ {
			if sim.Row(i)[j] != sim.Row(j)[i] {
				t.Fatalf("asymmetric at (%d,%d): %f vs %f", i, j, sim.Row(i)[j], sim.Row(j)[i])
			}
			if sim.Row(i)[j] < 0 || sim.Row(i)[j] > 1 {
				t.Fatalf("sim(%d,%d) = %f out of range", i, j, sim.Row(i)[j])
			}
		}
	}

	want := dot(matrix.Rows[3], matrix.Rows[17])
	if got := float64(sim.Row(3)[17]); math.Abs(got-want) > 1e-5 {
		t.Errorf("sim(3,17) = %f, want %f", got, want)
	}
	if sim.Row(10)[3] != 0 {
		t.Errorf("empty document similarity = %f, want 0", sim.Row(10)[3])
	}
}

func TestSimilarityCancelled(t *testing.T) {
	t.Parallel()

	_, matrix, err := Fit(DefaultConfig(), []string{"alpha beta", "beta gamma"})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Similarity(ctx, matrix, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Similarity() error = %v, want context.Canceled", err)
	}
}

func TestNewSimilarityMatrix(t *testing.T) {
	t.Parallel()

	if _, err := NewSimilarityMatrix(2, make([]float32, 3)); err == nil {
		t.Error("expected size mismatch error")
	}
	s, err := NewSimilarityMatrix(2, []float32{1, 0.5, 0.5, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Row(1); got[0] != 0.5 {
		t.Errorf("Row(1)[0] = %f, want 0.5", got[0])
	}
}
