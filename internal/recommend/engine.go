// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/store"
)

var (
	// ErrNotFound is returned when a single seed title does not resolve.
	// It matches store.ErrNotFound.
	ErrNotFound = store.ErrNotFound

	// ErrNoValidSeeds is returned when none of the seed titles resolve.
	ErrNoValidSeeds = errors.New("no valid seeds")

	// ErrInvalidTopN is returned when topN is outside [1, MaxTopN].
	ErrInvalidTopN = errors.New("invalid top_n")
)

// normEpsilon keeps per-request min-max normalization finite when every
// candidate has the same score.
const normEpsilon = 1e-9

// Popularity component mix.
const (
	ratingShare     = 0.7
	popularityShare = 0.3
)

// Engine ranks catalog items against an immutable similarity source.
type Engine struct {
	src    Source
	config *Config
	logger zerolog.Logger
}

// NewEngine creates an engine over src.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(src Source, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if src == nil {
		return nil, errors.New("recommend: nil source")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		src:    src,
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// ContentSimilar ranks items by their similarity to one seed title.
func (e *Engine) ContentSimilar(ctx context.Context, title string, topN int) (res *Result, err error) {
	start := time.Now()
	defer func() { e.record(ctx, ModeContent, start, res, err) }()

	if err := e.checkTopN(topN); err != nil {
		return nil, err
	}
	seed, err := e.src.Lookup(title)
	if err != nil {
		return nil, fmt.Errorf("content similar: %w", err)
	}
	row, err := e.src.SimilarityRow(seed)
	if err != nil {
		return nil, fmt.Errorf("content similar: %w", err)
	}

	scores := make([]float64, len(row))
	for i, v := range row {
		scores[i] = float64(v)
	}

	exclude := map[int]struct{}{seed: {}}
	order := rankCandidates(scores, exclude)
	items, err := e.collect(order, topN, func(i int) (float64, *Components) {
		return scores[i], nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Mode:       ModeContent,
		Seeds:      []string{title},
		Candidates: len(order),
		Items:      items,
	}, nil
}

// Personalized ranks items by the mean similarity to every resolvable seed.
func (e *Engine) Personalized(ctx context.Context, titles []string, topN int) (res *Result, err error) {
	start := time.Now()
	defer func() { e.record(ctx, ModePersonalized, start, res, err) }()

	if err := e.checkTopN(topN); err != nil {
		return nil, err
	}
	seeds, err := e.resolveSeeds(titles)
	if err != nil {
		return nil, err
	}
	profile, err := e.profile(seeds.indices)
	if err != nil {
		return nil, err
	}

	order := rankCandidates(profile, seeds.exclude)
	items, err := e.collect(order, topN, func(i int) (float64, *Components) {
		return profile[i], nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Mode:       ModePersonalized,
		Seeds:      seeds.resolved,
		Dropped:    seeds.dropped,
		Candidates: len(order),
		Items:      items,
	}, nil
}

// Hybrid blends the seed profile with item popularity. Weights that do not
// sum to 1 are renormalized.
//
//nolint:gocritic // Weights is small and passed by value for clarity
func (e *Engine) Hybrid(ctx context.Context, titles []string, topN int, weights Weights) (res *Result, err error) {
	start := time.Now()
	defer func() { e.record(ctx, ModeHybrid, start, res, err) }()

	if err := e.checkTopN(topN); err != nil {
		return nil, err
	}
	w := weights.Normalize()

	seeds, err := e.resolveSeeds(titles)
	if err != nil {
		return nil, err
	}
	profile, err := e.profile(seeds.indices)
	if err != nil {
		return nil, err
	}

	candidates := make([]int, 0, len(profile))
	for i := range profile {
		if _, skip := seeds.exclude[i]; !skip {
			candidates = append(candidates, i)
		}
	}

	// The content and personalized components are the same profile
	// signal, normalized over the candidate set and weighted separately.
	contentNorm := normalizeOver(profile, candidates)
	personalizedNorm := normalizeOver(profile, candidates)

	components := make([]Components, len(profile))
	final := make([]float64, len(profile))
	for _, i := range candidates {
		sig, err := e.src.ScaledSignals(i)
		if err != nil {
			return nil, fmt.Errorf("hybrid: %w", err)
		}
		c := Components{
			Content:      contentNorm[i],
			Personalized: personalizedNorm[i],
			Popularity:   ratingShare*sig.RatingScaled + popularityShare*sig.PopularityScaled,
		}
		components[i] = c
		final[i] = w.Content*c.Content + w.Personalized*c.Personalized + w.Popularity*c.Popularity
	}

	order := rankCandidates(final, seeds.exclude)
	items, err := e.collect(order, topN, func(i int) (float64, *Components) {
		c := components[i]
		return final[i], &c
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Mode:       ModeHybrid,
		Seeds:      seeds.resolved,
		Dropped:    seeds.dropped,
		Weights:    &w,
		Candidates: len(order),
		Items:      items,
	}, nil
}

func (e *Engine) checkTopN(topN int) error {
	if topN < 1 || topN > e.config.MaxTopN {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidTopN, topN, e.config.MaxTopN)
	}
	return nil
}

type seedSet struct {
	indices  []int
	resolved []string
	dropped  []string
	exclude  map[int]struct{}
}

// resolveSeeds looks up every title, dropping unknown ones. Repeated titles
// count once.
func (e *Engine) resolveSeeds(titles []string) (*seedSet, error) {
	s := &seedSet{exclude: make(map[int]struct{}, len(titles))}
	for _, title := range titles {
		i, err := e.src.Lookup(title)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.dropped = append(s.dropped, title)
				continue
			}
			return nil, fmt.Errorf("resolve seed %q: %w", title, err)
		}
		if _, dup := s.exclude[i]; dup {
			continue
		}
		s.exclude[i] = struct{}{}
		s.indices = append(s.indices, i)
		s.resolved = append(s.resolved, title)
	}
	if len(s.indices) == 0 {
		return nil, fmt.Errorf("%w: none of %d titles found", ErrNoValidSeeds, len(titles))
	}
	return s, nil
}

// profile averages the similarity rows of the seeds element-wise.
func (e *Engine) profile(seeds []int) ([]float64, error) {
	profile := make([]float64, e.src.Len())
	for _, seed := range seeds {
		row, err := e.src.SimilarityRow(seed)
		if err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
		for j, v := range row {
			profile[j] += float64(v)
		}
	}
	n := float64(len(seeds))
	for j := range profile {
		profile[j] /= n
	}
	return profile, nil
}

// rankCandidates returns every index not in exclude, ordered by descending
// score. Equal scores keep ascending index order.
func rankCandidates(scores []float64, exclude map[int]struct{}) []int {
	order := make([]int, 0, len(scores))
	for i := range scores {
		if _, skip := exclude[i]; !skip {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

// normalizeOver min-max scales values at the candidate indices into [0, 1].
// Other positions are left at 0.
func normalizeOver(values []float64, candidates []int) []float64 {
	out := make([]float64, len(values))
	if len(candidates) == 0 {
		return out
	}
	lo, hi := values[candidates[0]], values[candidates[0]]
	for _, i := range candidates[1:] {
		lo = min(lo, values[i])
		hi = max(hi, values[i])
	}
	denom := hi - lo + normEpsilon
	for _, i := range candidates {
		out[i] = (values[i] - lo) / denom
	}
	return out
}

func (e *Engine) collect(order []int, topN int, score func(int) (float64, *Components)) ([]ScoredItem, error) {
	if len(order) > topN {
		order = order[:topN]
	}
	items := make([]ScoredItem, 0, len(order))
	for rank, i := range order {
		item, err := e.src.Row(i)
		if err != nil {
			return nil, fmt.Errorf("collect row %d: %w", i, err)
		}
		s, c := score(i)
		items = append(items, ScoredItem{
			Item:       item,
			Rank:       rank + 1,
			Score:      s,
			Components: c,
			Index:      i,
		})
	}
	return items, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoValidSeeds):
		return "no_valid_seeds"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTopN):
		return "invalid"
	default:
		return "error"
	}
}

func (e *Engine) record(ctx context.Context, mode Mode, start time.Time, res *Result, err error) {
	elapsed := time.Since(start)
	dropped := 0
	if res != nil {
		dropped = len(res.Dropped)
	}
	metrics.RecordRecommendation(mode.String(), outcome(err), elapsed, dropped)

	logger := e.logger.With().
		Str("mode", mode.String()).
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Dur("duration", elapsed).
		Logger()
	if err != nil {
		logger.Debug().Err(err).Msg("Recommendation rejected")
		return
	}
	logger.Debug().
		Int("items", len(res.Items)).
		Int("dropped_seeds", dropped).
		Msg("Recommendation served")
}
