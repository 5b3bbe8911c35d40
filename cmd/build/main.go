// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.LogConfig())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	s, err := build(ctx, &cfg.Build, logging.WithComponent("build"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Bundle build failed")
	}
	if err := s.WriteFile(cfg.Bundle.Path); err != nil {
		logging.Fatal().Err(err).Msg("Failed to write bundle")
	}

	meta := s.Metadata()
	logging.Info().
		Str("path", cfg.Bundle.Path).
		Int("items", s.Len()).
		Int("vocabulary", meta.VocabularySize).
		Int("duplicates_dropped", meta.Duplicates).
		Dur("duration", time.Since(start)).
		Msg("Similarity bundle written")
}
