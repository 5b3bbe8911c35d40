// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/history"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/store"
)

// posterConcurrency bounds parallel poster lookups per response.
const posterConcurrency = 8

// Catalog is the read-only view of the loaded bundle used by handlers.
// *store.Store satisfies it.
type Catalog interface {
	Len() int
	Lookup(title string) (int, error)
	Row(i int) (catalog.Item, error)
	Titles() []string
	Metadata() store.Metadata
}

// PosterResolver resolves poster URLs. It must never fail; *poster.Service
// satisfies it.
type PosterResolver interface {
	URL(ctx context.Context, id int64) string
	Placeholder() string
}

// Handler serves the API endpoints.
type Handler struct {
	catalog   Catalog
	engine    *recommend.Engine
	posters   PosterResolver
	history   *history.Registry
	startTime time.Time
}

// NewHandler creates a handler. posters may be nil, in which case no
// poster URLs are returned.
func NewHandler(cat Catalog, engine *recommend.Engine, posters PosterResolver, hist *history.Registry) (*Handler, error) {
	if cat == nil || engine == nil {
		return nil, errors.New("api: catalog and engine are required")
	}
	if hist == nil {
		hist = history.NewRegistry(0, 0)
	}
	return &Handler{
		catalog:   cat,
		engine:    engine,
		posters:   posters,
		history:   hist,
		startTime: time.Now(),
	}, nil
}

// posterURLs resolves poster URLs for ids concurrently. It returns nil
// when no resolver is configured.
func (h *Handler) posterURLs(ctx context.Context, ids []int64) []string {
	if h.posters == nil {
		return nil
	}

	urls := make([]string, len(ids))
	var g errgroup.Group
	g.SetLimit(posterConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			urls[i] = h.posters.URL(ctx, id)
			return nil
		})
	}
	_ = g.Wait() // lookups never fail
	return urls
}
