// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package main

import (
	"context"
	"testing"

	"github.com/tomtom215/cinerank/internal/config"
	"github.com/tomtom215/cinerank/internal/recommend"
	"github.com/tomtom215/cinerank/internal/recommend/algorithms"
)

// denseRatings has every user rate every movie, so each split covers all ids.
func denseRatings(users, movies int) []recommend.Rating {
	out := make([]recommend.Rating, 0, users*movies)
	for u := 1; u <= users; u++ {
		for m := 1; m <= movies; m++ {
			out = append(out, recommend.Rating{UserID: u, MovieID: m, Score: float64(1 + (u+m)%5)})
		}
	}
	return out
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	ratings := denseRatings(30, 12)
	cfg := &config.EvaluateConfig{Ranks: []int{2, 4}, Weights: []float64{0.6, 0.2, 0.2}, Seed: 1}
	base := recommend.Hyperparameters{Seed: 5, Iterations: 5, Regularization: 0.1}

	report, err := evaluate(context.Background(), algorithms.NewALSTrainer(2), ratings, cfg, base)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if got := report.TrainCount + report.ValidationCount + report.TestCount; got != len(ratings) {
		t.Errorf("split sizes sum to %d, want %d", got, len(ratings))
	}
	if len(report.Selection.Candidates) != 2 {
		t.Errorf("candidates = %d, want 2", len(report.Selection.Candidates))
	}
	if r := report.Selection.Best.Rank; r != 2 && r != 4 {
		t.Errorf("best rank %d is not a candidate", r)
	}
	if report.TestScored == 0 || report.TestRMSE <= 0 {
		t.Errorf("test rmse %f over %d ratings", report.TestRMSE, report.TestScored)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()

	ratings := denseRatings(5, 5)
	base := recommend.Hyperparameters{Seed: 5, Iterations: 2, Regularization: 0.1}

	tests := []struct {
		name string
		cfg  config.EvaluateConfig
	}{
		{name: "two weights", cfg: config.EvaluateConfig{Ranks: []int{2}, Weights: []float64{0.5, 0.5}}},
		{name: "zero weights", cfg: config.EvaluateConfig{Ranks: []int{2}, Weights: []float64{0, 0, 0}}},
		{name: "no ranks", cfg: config.EvaluateConfig{Weights: []float64{0.6, 0.2, 0.2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := evaluate(context.Background(), algorithms.NewALSTrainer(1), ratings, &tt.cfg, base); err == nil {
				t.Error("expected error")
			}
		})
	}
}
