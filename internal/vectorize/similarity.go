// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package vectorize

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SimilarityMatrix is a dense, symmetric N×N cosine similarity matrix
// stored row-major.
type SimilarityMatrix struct {
	N    int
	Data []float32
}

// NewSimilarityMatrix wraps row-major data. len(data) must be n*n.
func NewSimilarityMatrix(n int, data []float32) (*SimilarityMatrix, error) {
	if n < 0 || len(data) != n*n {
		return nil, fmt.Errorf("similarity matrix: %d values for %d rows", len(data), n)
	}
	return &SimilarityMatrix{N: n, Data: data}, nil
}

// Row returns row i without copying. Callers must not modify it.
func (s *SimilarityMatrix) Row(i int) []float32 {
	return s.Data[i*s.N : (i+1)*s.N]
}

type posting struct {
	row    int
	weight float64
}

// rowBlock is the number of rows handed to a worker at a time.
const rowBlock = 64

// Similarity computes the cosine similarity of every pair of rows in m.
// Rows are expected to be L2-normalized so the dot product is the cosine.
// Only the upper triangle is computed; each value is mirrored into the
// lower triangle and the diagonal is 1. workers <= 0 uses GOMAXPROCS.
func Similarity(ctx context.Context, m *Matrix, workers int) (*SimilarityMatrix, error) {
	n := len(m.Rows)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	postings := make([][]posting, m.Cols)
	for i, row := range m.Rows {
		for k, col := range row.Indices {
			postings[col] = append(postings[col], posting{row: i, weight: row.Values[k]})
		}
	}

	data := make([]float32, n*n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += rowBlock {
		if err := gctx.Err(); err != nil {
			break
		}
		lo, hi := start, min(start+rowBlock, n)
		g.Go(func() error {
			acc := make([]float64, n)
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				row := m.Rows[i]
				for k, col := range row.Indices {
					w := row.Values[k]
					for _, p := range postings[col] {
						if p.row > i {
							acc[p.row] += w * p.weight
						}
					}
				}
				data[i*n+i] = 1
				for j := i + 1; j < n; j++ {
					if acc[j] != 0 {
						v := float32(min(acc[j], 1))
						data[i*n+j] = v
						data[j*n+i] = v
						acc[j] = 0
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("similarity computation cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("similarity computation cancelled: %w", err)
	}
	return &SimilarityMatrix{N: n, Data: data}, nil
}
