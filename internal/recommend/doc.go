// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend implements the ranking strategies served by CineMatch.
//
// # Strategies
//
// All strategies read from an immutable similarity source (see the store
// package) and return at most topN items, highest score first, never
// including the seed items themselves. Equal scores keep catalog order.
//
//   - ContentSimilar: the similarity row of a single seed title.
//   - Personalized: the element-wise mean of the similarity rows of every
//     resolvable seed title. Unknown titles are dropped silently.
//   - Hybrid: a weighted blend of the min-max normalized similarity signal
//     (used twice, under the content and personalized weights) and a
//     popularity component of 0.7 × scaled rating + 0.3 × scaled popularity.
//
// # Errors
//
// ContentSimilar returns ErrNotFound for an unknown title. Personalized and
// Hybrid return ErrNoValidSeeds only when no seed resolves. Hybrid weights
// that do not sum to 1 are renormalized, never rejected.
//
// # Post-processing
//
// MoodFilter narrows a ranked list to items whose genres match a keyword
// set, falling back to the unfiltered list when nothing matches. WriteCSV
// renders a result as a delimited export.
//
// # Thread Safety
//
// The Engine holds no mutable state; it is safe for concurrent use.
package recommend
