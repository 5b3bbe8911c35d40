// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"math"
	"testing"
)

func TestWeightsNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Weights
		want Weights
	}{
		{"already normalized", Weights{0.4, 0.4, 0.2}, Weights{0.4, 0.4, 0.2}},
		{"proportional", Weights{2, 2, 1}, Weights{0.4, 0.4, 0.2}},
		{"single weight", Weights{0, 0, 5}, Weights{0, 0, 1}},
		{"all zero", Weights{}, Weights{1.0 / 3, 1.0 / 3, 1.0 / 3}},
		{"negative clamped", Weights{-1, 1, 1}, Weights{0, 0.5, 0.5}},
		{"NaN clamped", Weights{math.NaN(), 1, 0}, Weights{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.in.Normalize()
			if math.Abs(got.Content-tt.want.Content) > 1e-12 ||
				math.Abs(got.Personalized-tt.want.Personalized) > 1e-12 ||
				math.Abs(got.Popularity-tt.want.Popularity) > 1e-12 {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
			if math.Abs(got.Sum()-1) > 1e-9 {
				t.Errorf("normalized sum = %f, want 1", got.Sum())
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero max", func(c *Config) { c.MaxTopN = 0 }, true},
		{"default above max", func(c *Config) { c.DefaultTopN = 50 }, true},
		{"negative weight", func(c *Config) { c.Weights.Popularity = -0.1 }, true},
		{"empty mood", func(c *Config) { c.Moods["calm"] = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigCloneIsDeep(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Moods["happy"][0] = "changed"
	clone.MaxTopN = 99
	if cfg.Moods["happy"][0] == "changed" || cfg.MaxTopN == 99 {
		t.Error("Clone shares state with the original")
	}
}
