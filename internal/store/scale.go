// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"math"
	"sort"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Signals are the corpus-wide min-max scaled popularity signals of one item.
type Signals struct {
	RatingScaled     float64 `json:"rating_scaled"`
	PopularityScaled float64 `json:"popularity_scaled"`
	VoteCountScaled  float64 `json:"vote_count_scaled"`
}

// Winsorization bounds applied to vote counts before scaling.
const (
	VoteCountLowerQuantile = 0.01
	VoteCountUpperQuantile = 0.99
)

// Scale computes the scaled signals for every item. Vote counts are clipped
// to their 1st and 99th percentiles before scaling.
func Scale(items []catalog.Item) []Signals {
	n := len(items)
	rating := make([]float64, n)
	pop := make([]float64, n)
	votes := make([]float64, n)
	for i := range items {
		rating[i] = items[i].VoteAverage
		pop[i] = items[i].Popularity
		votes[i] = items[i].VoteCount
	}

	lo := Quantile(votes, VoteCountLowerQuantile)
	hi := Quantile(votes, VoteCountUpperQuantile)
	for i := range votes {
		votes[i] = math.Min(math.Max(votes[i], lo), hi)
	}

	rating = MinMax(rating)
	pop = MinMax(pop)
	votes = MinMax(votes)

	out := make([]Signals, n)
	for i := range out {
		out[i] = Signals{
			RatingScaled:     rating[i],
			PopularityScaled: pop[i],
			VoteCountScaled:  votes[i],
		}
	}
	return out
}

// Quantile returns the q-th quantile of values using linear interpolation
// between the closest ranks: position (n-1)*q in the sorted values.
// values is not modified. Quantile of an empty slice is 0.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)

	pos := float64(len(s)-1) * q
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower < 0 {
		return s[0]
	}
	if upper >= len(s) {
		return s[len(s)-1]
	}
	frac := pos - float64(lower)
	return s[lower] + (s[upper]-s[lower])*frac
}

// MinMax rescales values to [0, 1]. A constant column maps to 0.
func MinMax(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out
}
