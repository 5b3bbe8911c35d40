// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Command build precomputes the similarity bundle served by cmd/server.

Pipeline:

 1. Read the TMDB movies and credits CSV files through DuckDB
 2. Left-join credits onto movies by id, drop repeated titles and fill
    missing numeric cells with column medians
 3. Build the combined feature text of every movie
 4. Fit TF-IDF (unigrams and bigrams, English stop words, 5000 features)
 5. Compute the pairwise cosine similarity matrix in parallel
 6. Scale the popularity signals and write the bundle atomically

Configuration uses the same sources as the server (config.yaml and
environment): MOVIES_CSV, CREDITS_CSV, BUNDLE_PATH, BUILD_WORKERS,
CAST_LIMIT and MAX_FEATURES.
*/
package main
