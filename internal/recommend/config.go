// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"math"
	"strings"
)

// weightTolerance is how far a weight sum may stray from 1 before the
// weights are renormalized.
const weightTolerance = 1e-9

// Weights are the hybrid blend weights.
type Weights struct {
	// Content scales the normalized similarity signal.
	// Default: 0.4.
	Content float64 `json:"content" koanf:"content" validate:"gte=0"`

	// Personalized scales the same normalized similarity signal.
	// Default: 0.4.
	Personalized float64 `json:"personalized" koanf:"personalized" validate:"gte=0"`

	// Popularity scales the popularity component.
	// Default: 0.2.
	Popularity float64 `json:"popularity" koanf:"popularity" validate:"gte=0"`
}

// Sum returns the sum of the weights.
func (w Weights) Sum() float64 {
	return w.Content + w.Personalized + w.Popularity
}

// Normalize returns weights that sum to 1. Negative or NaN weights are
// treated as 0; if nothing positive remains the weights become equal thirds.
// Weights already summing to 1 within tolerance are returned unchanged.
func (w Weights) Normalize() Weights {
	clamp := func(v float64) float64 {
		if math.IsNaN(v) || v < 0 {
			return 0
		}
		return v
	}
	w = Weights{
		Content:      clamp(w.Content),
		Personalized: clamp(w.Personalized),
		Popularity:   clamp(w.Popularity),
	}

	sum := w.Sum()
	if sum == 0 || math.IsInf(sum, 0) {
		return Weights{Content: 1.0 / 3, Personalized: 1.0 / 3, Popularity: 1.0 / 3}
	}
	if math.Abs(sum-1) <= weightTolerance {
		return w
	}
	return Weights{
		Content:      w.Content / sum,
		Personalized: w.Personalized / sum,
		Popularity:   w.Popularity / sum,
	}
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultTopN is used when a request does not specify a list length.
	// Default: 10.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// MaxTopN caps the list length a request may ask for.
	// Default: 20.
	MaxTopN int `json:"max_top_n" koanf:"max_top_n"`

	// Weights are the hybrid weights used when a request omits them.
	Weights Weights `json:"weights" koanf:"weights"`

	// Moods maps mood names to genre keywords for MoodFilter.
	Moods map[string][]string `json:"moods" koanf:"moods"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopN: 10,
		MaxTopN:     20,
		Weights:     Weights{Content: 0.4, Personalized: 0.4, Popularity: 0.2},
		Moods:       DefaultMoods(),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxTopN < 1 {
		return fmt.Errorf("max_top_n must be positive, got %d", c.MaxTopN)
	}
	if c.DefaultTopN < 1 || c.DefaultTopN > c.MaxTopN {
		return fmt.Errorf("default_top_n must be in [1, %d], got %d", c.MaxTopN, c.DefaultTopN)
	}
	if c.Weights.Content < 0 || c.Weights.Personalized < 0 || c.Weights.Popularity < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", c.Weights)
	}
	for name, keywords := range c.Moods {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("mood name must not be empty")
		}
		if len(keywords) == 0 {
			return fmt.Errorf("mood %q has no genre keywords", name)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Moods = make(map[string][]string, len(c.Moods))
	for k, v := range c.Moods {
		clone.Moods[k] = append([]string(nil), v...)
	}
	return &clone
}
