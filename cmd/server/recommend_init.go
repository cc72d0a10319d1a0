// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cinerank/internal/config"
	"github.com/tomtom215/cinerank/internal/dataset"
	"github.com/tomtom215/cinerank/internal/journal"
	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/recommend"
	"github.com/tomtom215/cinerank/internal/recommend/algorithms"
)

// initEngine builds the engine and trains the initial model from the dataset
// plus any replayed journal ratings already merged into ds.
func initEngine(ctx context.Context, cfg *config.Config, ds *dataset.Dataset, jnl *journal.Journal) (*recommend.Engine, error) {
	logger := logging.WithComponent("recommend")

	var opts []recommend.Option
	if jnl != nil {
		opts = append(opts, recommend.WithJournal(jnl))
	}

	engineCfg := buildEngineConfig(cfg)
	engine, err := recommend.NewEngine(
		engineCfg,
		recommend.NewCatalog(ds.Movies),
		algorithms.NewALSTrainer(cfg.Recommend.Workers),
		logger,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	logger.Info().
		Int("rank", engineCfg.Training.Rank).
		Int("iterations", engineCfg.Training.Iterations).
		Float64("regularization", engineCfg.Training.Regularization).
		Int("workers", cfg.Recommend.Workers).
		Int("ratings", len(ds.Ratings)).
		Msg("Training initial model")

	start := time.Now()
	if err := engine.Bootstrap(ctx, ds.Ratings); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	status := engine.GetStatus()
	logger.Info().
		Int64("model_version", status.ModelVersion).
		Dur("duration", time.Since(start)).
		Msg("Initial model published")

	return engine, nil
}

// buildEngineConfig maps the flat koanf section onto the engine's nested config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	return &recommend.Config{
		Training: recommend.Hyperparameters{
			Rank:           rc.Rank,
			Seed:           rc.Seed,
			Iterations:     rc.Iterations,
			Regularization: rc.Regularization,
		},
		MinRatingCount: rc.MinRatingCount,
		Limits: recommend.LimitsConfig{
			MaxK:               rc.MaxTopK,
			MaxMoviesPerQuery:  rc.MaxMoviesPerQuery,
			MaxRatingsPerWrite: rc.MaxRatingsPerWrite,
		},
		Cache: recommend.CacheConfig{
			Enabled:    rc.CacheEnabled,
			TTL:        rc.CacheTTL,
			MaxEntries: rc.CacheSize,
		},
	}
}
