// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerank/internal/config"
	"github.com/tomtom215/cinerank/internal/dataset"
	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/recommend"
	"github.com/tomtom215/cinerank/internal/recommend/algorithms"
)

// Report summarizes one evaluation run.
type Report struct {
	TrainCount      int
	ValidationCount int
	TestCount       int
	Selection       recommend.RankSelection
	TestRMSE        float64
	TestScored      int
}

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logging.WithComponent("evaluate")); err != nil {
		logging.Error().Err(err).Msg("Evaluation failed")
		stop()
		os.Exit(1)
	}
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	loader, err := dataset.NewLoader(dataset.Config{
		Loader:      cfg.Dataset.Loader,
		Path:        cfg.Dataset.Path,
		RatingsFile: cfg.Dataset.RatingsFile,
		MoviesFile:  cfg.Dataset.MoviesFile,
	})
	if err != nil {
		return fmt.Errorf("dataset config: %w", err)
	}

	ds, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	logger.Info().Int("ratings", len(ds.Ratings)).Str("path", cfg.Dataset.Path).Msg("Dataset loaded")

	base := recommend.Hyperparameters{
		Seed:           cfg.Recommend.Seed,
		Iterations:     cfg.Recommend.Iterations,
		Regularization: cfg.Recommend.Regularization,
	}

	start := time.Now()
	report, err := evaluate(ctx, algorithms.NewALSTrainer(cfg.Recommend.Workers), ds.Ratings, &cfg.Evaluate, base)
	if err != nil {
		return err
	}

	for _, c := range report.Selection.Candidates {
		logger.Info().Int("rank", c.Rank).Float64("validation_rmse", c.RMSE).Msg("Candidate evaluated")
	}
	logger.Info().
		Int("train", report.TrainCount).
		Int("validation", report.ValidationCount).
		Int("test", report.TestCount).
		Int("best_rank", report.Selection.Best.Rank).
		Float64("validation_rmse", report.Selection.Best.RMSE).
		Float64("test_rmse", report.TestRMSE).
		Int("test_scored", report.TestScored).
		Dur("duration", time.Since(start)).
		Msg("Rank selection complete")

	return nil
}

// evaluate splits ratings three ways, selects a rank on the validation split
// and scores the winner on the test split.
//
//nolint:gocritic // hugeParam: base passed by value for immutability
func evaluate(ctx context.Context, trainer recommend.Trainer, ratings []recommend.Rating, cfg *config.EvaluateConfig, base recommend.Hyperparameters) (*Report, error) {
	splits, err := recommend.SplitRatings(ratings, cfg.Weights, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("split ratings: %w", err)
	}
	if len(splits) != 3 {
		return nil, fmt.Errorf("expected 3 split weights, got %d", len(splits))
	}
	train, validation, test := splits[0], splits[1], splits[2]

	selection, err := recommend.SelectRank(ctx, trainer, train, validation, cfg.Ranks, base)
	if err != nil {
		return nil, fmt.Errorf("select rank: %w", err)
	}

	params := base
	params.Rank = selection.Best.Rank
	model, err := trainer.Train(ctx, train, params)
	if err != nil {
		return nil, fmt.Errorf("train rank %d: %w", params.Rank, err)
	}

	testRMSE, scored, err := recommend.RMSE(ctx, model, test)
	if err != nil {
		return nil, fmt.Errorf("test rmse: %w", err)
	}

	return &Report{
		TrainCount:      len(train),
		ValidationCount: len(validation),
		TestCount:       len(test),
		Selection:       selection,
		TestRMSE:        testRMSE,
		TestScored:      scored,
	}, nil
}
