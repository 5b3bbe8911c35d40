// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package poster resolves poster image URLs for catalog items from the TMDB
// API. Lookups never fail: any error, timeout or open circuit yields the
// configured placeholder URL. Resolved URLs are cached forever in memory
// and, when configured, in BadgerDB; failures are not cached.
package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/metrics"
)

const breakerName = "tmdb-poster"

// Lookup outcomes reported to metrics.
const (
	outcomeMemory      = "memory"
	outcomePersistent  = "persistent"
	outcomeFetched     = "fetched"
	outcomePlaceholder = "placeholder"
)

var (
	errNoPoster  = errors.New("movie has no poster")
	errNoAPIKey  = errors.New("poster lookups disabled: no API key")
	errBadStatus = errors.New("unexpected status")
)

// maxResponseBytes bounds the TMDB response body read per lookup.
const maxResponseBytes = 1 << 20

// Service resolves poster URLs.
type Service struct {
	cfg        Config
	client     *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[string]
	group      singleflight.Group
	memory     *memoryCache
	persistent Persistent
	logger     zerolog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.client = c }
}

// WithPersistent adds a durable cache layer.
func WithPersistent(p Persistent) Option {
	return func(s *Service) { s.persistent = p }
}

// NewService creates a poster service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(cfg Config, logger zerolog.Logger, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid poster config: %w", err)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	s := &Service{
		cfg:     cfg,
		client:  &http.Client{},
		limiter: rate.NewLimiter(limit, max(cfg.Burst, 1)),
		memory:  newMemoryCache(),
		logger:  logger.With().Str("component", "poster").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	s.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// A movie without artwork is an answer, not an outage.
			return err == nil || errors.Is(err, errNoPoster)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})
	return s, nil
}

// Placeholder returns the URL served when a poster cannot be resolved.
func (s *Service) Placeholder() string {
	return s.cfg.PlaceholderURL
}

// URL returns the poster URL for a TMDB movie id, or the placeholder.
// It never blocks longer than the configured timeout.
func (s *Service) URL(ctx context.Context, id int64) string {
	if u, ok := s.memory.get(id); ok {
		metrics.RecordPosterLookup(outcomeMemory)
		return u
	}

	v, err, _ := s.group.Do(strconv.FormatInt(id, 10), func() (any, error) {
		return s.resolve(ctx, id)
	})
	if err != nil {
		metrics.RecordPosterLookup(outcomePlaceholder)
		s.logger.Debug().Err(err).Int64("id", id).Msg("Poster lookup failed, using placeholder")
		return s.cfg.PlaceholderURL
	}
	return v.(string)
}

func (s *Service) resolve(ctx context.Context, id int64) (string, error) {
	if s.persistent != nil {
		u, ok, err := s.persistent.Get(id)
		if err != nil {
			s.logger.Warn().Err(err).Int64("id", id).Msg("Persistent poster cache read failed")
		} else if ok {
			s.memory.put(id, u)
			metrics.RecordPosterLookup(outcomePersistent)
			return u, nil
		}
	}

	if !s.cfg.Enabled() {
		return "", errNoAPIKey
	}

	// Shared by every caller coalesced into this lookup, so one caller
	// going away must not cancel it for the rest.
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
	defer cancel()

	u, err := s.execute(fetchCtx, id)
	if err != nil {
		return "", err
	}

	s.memory.put(id, u)
	if s.persistent != nil {
		if err := s.persistent.Put(id, u); err != nil {
			s.logger.Warn().Err(err).Int64("id", id).Msg("Persistent poster cache write failed")
		}
	}
	metrics.RecordPosterLookup(outcomeFetched)
	return u, nil
}

func (s *Service) execute(ctx context.Context, id int64) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	u, err := s.breaker.Execute(func() (string, error) {
		return s.fetch(ctx, id)
	})
	metrics.PosterFetchDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
	}
	return u, err
}

type movieResponse struct {
	PosterPath string `json:"poster_path"`
}

func (s *Service) fetch(ctx context.Context, id int64) (string, error) {
	endpoint := fmt.Sprintf("%s/movie/%d?api_key=%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), id, url.QueryEscape(s.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch movie %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", fmt.Errorf("%w %d for movie %d", errBadStatus, resp.StatusCode, id)
	}

	var body movieResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode movie %d: %w", id, err)
	}
	if body.PosterPath == "" {
		return "", errNoPoster
	}
	return strings.TrimRight(s.cfg.ImageBaseURL, "/") + "/" + strings.TrimLeft(body.PosterPath, "/"), nil
}

// Warm resolves posters for ids sequentially, stopping early when ctx is
// done. It returns the number of ids that resolved to a real poster.
func (s *Service) Warm(ctx context.Context, ids []int64) int {
	resolved := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if s.URL(ctx, id) != s.cfg.PlaceholderURL {
			resolved++
		}
	}
	return resolved
}

// Close releases the persistent cache.
func (s *Service) Close() error {
	if s.persistent == nil {
		return nil
	}
	return s.persistent.Close()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
