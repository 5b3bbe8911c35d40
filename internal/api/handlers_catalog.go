// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/store"
)

// HealthStatus is the /health payload.
type HealthStatus struct {
	Status string  `json:"status"`
	Items  int     `json:"items"`
	Uptime float64 `json:"uptime_seconds"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, HealthStatus{
		Status: "healthy",
		Items:  h.catalog.Len(),
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// CatalogStats is the /catalog/stats payload.
type CatalogStats struct {
	Items          int               `json:"items"`
	Model          string            `json:"model"`
	VocabularySize int               `json:"vocabulary_size"`
	BuiltAt        time.Time         `json:"built_at"`
	Duplicates     int               `json:"duplicates_dropped"`
	DefaultTopN    int               `json:"default_top_n"`
	MaxTopN        int               `json:"max_top_n"`
	DefaultWeights recommend.Weights `json:"default_weights"`
	Moods          []string          `json:"moods"`
}

// CatalogStats handles GET /api/v1/catalog/stats.
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	meta := h.catalog.Metadata()
	cfg := h.engine.Config()

	moods := make([]string, 0, len(cfg.Moods))
	for name := range cfg.Moods {
		moods = append(moods, name)
	}
	sort.Strings(moods)

	WriteSuccess(w, r, CatalogStats{
		Items: h.catalog.Len(),
		Model: fmt.Sprintf("TF-IDF (%d-%d grams, %d features) with cosine similarity",
			meta.NgramMin, meta.NgramMax, meta.MaxFeatures),
		VocabularySize: meta.VocabularySize,
		BuiltAt:        meta.BuiltAt,
		Duplicates:     meta.Duplicates,
		DefaultTopN:    cfg.DefaultTopN,
		MaxTopN:        cfg.MaxTopN,
		DefaultWeights: cfg.Weights,
		Moods:          moods,
	})
}

// TitleList is the /titles payload.
type TitleList struct {
	Count  int      `json:"count"`
	Titles []string `json:"titles"`
}

// Titles handles GET /api/v1/titles. The optional q parameter keeps
// titles containing it, case-insensitively.
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	titles := h.catalog.Titles()

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		fold := cases.Fold()
		needle := fold.String(q)
		matched := make([]string, 0, len(titles))
		for _, t := range titles {
			if strings.Contains(fold.String(t), needle) {
				matched = append(matched, t)
			}
		}
		titles = matched
	}

	WriteSuccess(w, r, TitleList{Count: len(titles), Titles: titles})
}

// MovieDetails is the /movies/{title} payload.
type MovieDetails struct {
	catalog.Item
	RuntimeMinutes int    `json:"runtime_minutes"`
	PosterURL      string `json:"poster_url,omitempty"`
}

// Movie handles GET /api/v1/movies/{title}.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if unescaped, err := url.PathUnescape(title); err == nil {
		title = unescaped
	}

	idx, err := h.catalog.Lookup(title)
	if err == nil {
		var item catalog.Item
		if item, err = h.catalog.Row(idx); err == nil {
			details := MovieDetails{Item: item, RuntimeMinutes: item.RuntimeMinutes()}
			if urls := h.posterURLs(r.Context(), []int64{item.ID}); urls != nil {
				details.PosterURL = urls[0]
			}
			WriteSuccess(w, r, details)
			return
		}
	}

	if errors.Is(err, store.ErrNotFound) {
		NewResponseWriter(w, r).NotFound(fmt.Sprintf("Title %q not found in catalog", title))
		return
	}
	NewResponseWriter(w, r).InternalError(err)
}
