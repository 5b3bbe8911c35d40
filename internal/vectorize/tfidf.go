// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package vectorize builds the TF-IDF feature space over the combined
// feature texts and derives the dense all-pairs cosine similarity matrix.
//
// # Weighting
//
// Terms are lowercase word tokens of at least two characters with English
// stop words removed, expanded into unigrams and bigrams. The vocabulary
// keeps the MaxFeatures terms with the highest corpus term frequency, ties
// broken alphabetically, and is frozen after Fit.
//
// For a corpus of n documents the inverse document frequency of a term is
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and a document's weight for t is its raw count times idf(t). Every
// document vector is L2-normalized, so cosine similarity is a dot product.
package vectorize

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrEmptyCorpus is returned when Fit is called without documents.
var ErrEmptyCorpus = errors.New("vectorize: empty corpus")

// Config controls vocabulary construction.
type Config struct {
	// MaxFeatures caps the vocabulary size.
	// Default: 5000.
	MaxFeatures int `json:"max_features" koanf:"max_features" validate:"gte=1"`

	// NgramMin and NgramMax bound the n-gram lengths.
	// Default: 1 and 2.
	NgramMin int `json:"ngram_min" koanf:"ngram_min" validate:"gte=1"`
	NgramMax int `json:"ngram_max" koanf:"ngram_max" validate:"gtefield=NgramMin"`

	// StopWords removes English stop words before n-gram generation.
	// Default: true.
	StopWords bool `json:"stop_words" koanf:"stop_words"`
}

// DefaultConfig returns the vectorizer configuration used for the catalog.
func DefaultConfig() Config {
	return Config{
		MaxFeatures: 5000,
		NgramMin:    1,
		NgramMax:    2,
		StopWords:   true,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxFeatures < 1 {
		return fmt.Errorf("max_features must be positive, got %d", c.MaxFeatures)
	}
	if c.NgramMin < 1 || c.NgramMax < c.NgramMin {
		return fmt.Errorf("invalid ngram range (%d, %d)", c.NgramMin, c.NgramMax)
	}
	return nil
}

// SparseVector is one document row: column indices in ascending order with
// their weights.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Norm returns the L2 norm of v.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Model is a fitted vocabulary with its IDF weights.
type Model struct {
	Vocabulary []string
	IDF        []float64
}

// Matrix is the fitted document-term matrix.
type Matrix struct {
	Rows []SparseVector
	Cols int
}

// Fit builds the vocabulary and IDF weights from docs and returns the
// weighted, normalized document-term matrix.
func Fit(cfg Config, docs []string) (*Model, *Matrix, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid vectorizer config: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil, ErrEmptyCorpus
	}

	tok := NewTokenizer(cfg.NgramMin, cfg.NgramMax, cfg.StopWords)

	docTerms := make([][]string, len(docs))
	freq := make(map[string]int)
	for i, d := range docs {
		docTerms[i] = tok.Terms(d)
		for _, term := range docTerms[i] {
			freq[term]++
		}
	}

	vocab := selectVocabulary(freq, cfg.MaxFeatures)
	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	df := make([]int, len(vocab))
	counts := make([]map[int]int, len(docs))
	for i, terms := range docTerms {
		counts[i] = countTerms(terms, index)
		for col := range counts[i] {
			df[col]++
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for col := range idf {
		idf[col] = math.Log((1+n)/(1+float64(df[col]))) + 1
	}

	m := &Model{Vocabulary: vocab, IDF: idf}
	rows := make([]SparseVector, len(docs))
	for i := range counts {
		rows[i] = m.weigh(counts[i])
	}
	return m, &Matrix{Rows: rows, Cols: len(vocab)}, nil
}

func (m *Model) weigh(counts map[int]int) SparseVector {
	cols := make([]int, 0, len(counts))
	for col := range counts {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	v := SparseVector{Indices: cols, Values: make([]float64, len(cols))}
	for k, col := range cols {
		v.Values[k] = float64(counts[col]) * m.IDF[col]
	}
	if norm := v.Norm(); norm > 0 {
		for k := range v.Values {
			v.Values[k] /= norm
		}
	}
	return v
}

func countTerms(terms []string, index map[string]int) map[int]int {
	counts := make(map[int]int)
	for _, term := range terms {
		if col, ok := index[term]; ok {
			counts[col]++
		}
	}
	return counts
}

// selectVocabulary keeps the limit most frequent terms, ties broken
// alphabetically, and returns them in alphabetical order.
func selectVocabulary(freq map[string]int, limit int) []string {
	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	sort.Strings(terms)
	return terms
}
