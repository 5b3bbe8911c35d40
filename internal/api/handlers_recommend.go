// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/history"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// RecommendationItem is one ranked item with its poster.
type RecommendationItem struct {
	Item       catalog.Item          `json:"item"`
	Rank       int                   `json:"rank"`
	Score      float64               `json:"score"`
	Components *recommend.Components `json:"components,omitempty"`
	PosterURL  string                `json:"poster_url,omitempty"`
}

func newRecommendationItem(it *recommend.ScoredItem) RecommendationItem {
	return RecommendationItem{
		Item:       it.Item,
		Rank:       it.Rank,
		Score:      it.Score,
		Components: it.Components,
	}
}

// RecommendationResponse is the payload of the recommend endpoints.
type RecommendationResponse struct {
	Mode         recommend.Mode       `json:"mode"`
	Seeds        []string             `json:"seeds"`
	Dropped      []string             `json:"dropped,omitempty"`
	Weights      *recommend.Weights   `json:"weights,omitempty"`
	Candidates   int                  `json:"candidates"`
	Mood         string               `json:"mood,omitempty"`
	MoodFellBack bool                 `json:"mood_fell_back,omitempty"`
	Warnings     []string             `json:"warnings,omitempty"`
	Items        []RecommendationItem `json:"items"`
}

// SimilarMovies handles GET /api/v1/recommend/similar.
func (h *Handler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topN, verr := parseTopN(q.Get("top_n"), h.engine.Config().DefaultTopN)
	if verr != nil {
		NewResponseWriter(w, r).ValidationError(verr)
		return
	}
	req := SimilarRequest{
		Title:  strings.TrimSpace(q.Get("title")),
		TopN:   topN,
		Mood:   q.Get("mood"),
		Format: strings.ToLower(q.Get("format")),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr)
		return
	}
	keywords, ok := h.moodKeywords(w, r, req.Mood)
	if !ok {
		return
	}

	res, err := h.engine.ContentSimilar(r.Context(), req.Title, req.TopN)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	h.respond(w, r, res, req.Mood, keywords, req.TopN, req.Format == "csv")
}

// PersonalizedMovies handles POST /api/v1/recommend/personalized.
func (h *Handler) PersonalizedMovies(w http.ResponseWriter, r *http.Request) {
	var req PersonalizedRequest
	if verr := decodeJSONBody(w, r, &req); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr)
		return
	}
	keywords, ok := h.moodKeywords(w, r, req.Mood)
	if !ok {
		return
	}

	topN := topNOrDefault(req.TopN, h.engine.Config().DefaultTopN)
	res, err := h.engine.Personalized(r.Context(), req.Titles, topN)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	h.respond(w, r, res, req.Mood, keywords, topN, wantsCSV(r))
}

// HybridMovies handles POST /api/v1/recommend/hybrid.
func (h *Handler) HybridMovies(w http.ResponseWriter, r *http.Request) {
	var req HybridRequest
	if verr := decodeJSONBody(w, r, &req); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr)
		return
	}
	keywords, ok := h.moodKeywords(w, r, req.Mood)
	if !ok {
		return
	}

	cfg := h.engine.Config()
	weights := cfg.Weights
	if req.Weights != nil {
		weights = *req.Weights
	}

	topN := topNOrDefault(req.TopN, cfg.DefaultTopN)
	res, err := h.engine.Hybrid(r.Context(), req.Titles, topN, weights)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	h.respond(w, r, res, req.Mood, keywords, topN, wantsCSV(r))
}

// SessionHistory is the /history payload.
type SessionHistory struct {
	SessionID string          `json:"session_id"`
	Entries   []history.Entry `json:"entries"`
}

// History handles GET /api/v1/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := logging.SessionIDFromContext(r.Context())
	entries := []history.Entry{}
	if sessionLog, ok := h.history.Lookup(sessionID); ok {
		entries = sessionLog.Entries()
	}
	WriteSuccess(w, r, SessionHistory{SessionID: sessionID, Entries: entries})
}

func wantsCSV(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), "csv")
}

// moodKeywords resolves a mood name. An empty mood means no filter; an
// unknown one is rejected and ok is false.
func (h *Handler) moodKeywords(w http.ResponseWriter, r *http.Request, mood string) (keywords []string, ok bool) {
	if strings.TrimSpace(mood) == "" {
		return nil, true
	}
	keywords, found := h.engine.Config().Keywords(mood)
	if !found {
		NewResponseWriter(w, r).ValidationError(
			validation.NewError("mood", "oneof", fmt.Sprintf("unknown mood %q", mood)))
		return nil, false
	}
	return keywords, true
}

// respond applies the mood filter, records history and writes the result
// as JSON or CSV.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, res *recommend.Result, mood string, keywords []string, topN int, asCSV bool) {
	logger := logging.Ctx(r.Context())

	items, fellBack := recommend.MoodFilter(res.Items, keywords)
	var warnings []string
	if fellBack {
		metrics.MoodFallbacksTotal.Inc()
		warnings = append(warnings, fmt.Sprintf("No recommendations matched mood %q, showing all results", mood))
	}
	if len(res.Dropped) > 0 {
		warnings = append(warnings, "Titles not found in catalog: "+strings.Join(res.Dropped, ", "))
		logger.Warn().Strs("dropped", res.Dropped).Str("mode", res.Mode.String()).Msg("Seed titles not found")
	}

	filtered := *res
	filtered.Items = items

	if sessionID := logging.SessionIDFromContext(r.Context()); sessionID != "" {
		h.history.Session(sessionID).Append(history.Entry{
			Mode:        res.Mode.String(),
			Seeds:       res.Seeds,
			Mood:        mood,
			TopN:        topN,
			ResultCount: len(items),
		})
	}

	if asCSV {
		writeCSV(w, r, &filtered)
		return
	}

	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].Item.ID
	}
	urls := h.posterURLs(r.Context(), ids)

	out := make([]RecommendationItem, len(items))
	for i := range items {
		out[i] = newRecommendationItem(&items[i])
		if urls != nil {
			out[i].PosterURL = urls[i]
		}
	}

	WriteSuccess(w, r, RecommendationResponse{
		Mode:         res.Mode,
		Seeds:        res.Seeds,
		Dropped:      res.Dropped,
		Weights:      res.Weights,
		Candidates:   res.Candidates,
		Mood:         mood,
		MoodFellBack: fellBack,
		Warnings:     warnings,
		Items:        out,
	})
}

// writeCSV renders the result fully before writing so a formatting failure
// can still produce a JSON error.
func writeCSV(w http.ResponseWriter, r *http.Request, res *recommend.Result) {
	var buf bytes.Buffer
	if err := recommend.WriteCSV(&buf, res); err != nil {
		NewResponseWriter(w, r).InternalError(err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", recommend.ExportFilename(res)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write CSV export")
	}
}
