// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package vectorize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordPattern matches runs of two or more word characters.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenizer splits text into lowercase terms and n-grams.
type Tokenizer struct {
	ngramMin  int
	ngramMax  int
	stopWords bool
}

// NewTokenizer creates a Tokenizer producing n-grams in [ngramMin, ngramMax].
func NewTokenizer(ngramMin, ngramMax int, stopWords bool) *Tokenizer {
	if ngramMin < 1 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}
	return &Tokenizer{ngramMin: ngramMin, ngramMax: ngramMax, stopWords: stopWords}
}

// Words lowercases text and returns its word tokens with stop words removed.
func (t *Tokenizer) Words(text string) []string {
	lower := cases.Lower(language.Und).String(text)
	raw := wordPattern.FindAllString(lower, -1)
	if !t.stopWords {
		return raw
	}
	words := raw[:0]
	for _, w := range raw {
		if !IsStopWord(w) {
			words = append(words, w)
		}
	}
	return words
}

// Terms returns every n-gram of text. N-grams are built after stop-word
// removal and joined by a single space.
func (t *Tokenizer) Terms(text string) []string {
	words := t.Words(text)
	if t.ngramMin == 1 && t.ngramMax == 1 {
		return words
	}

	var terms []string
	if t.ngramMin == 1 {
		terms = append(terms, words...)
	}
	start := t.ngramMin
	if start < 2 {
		start = 2
	}
	for n := start; n <= t.ngramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}
