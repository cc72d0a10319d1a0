// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinerank/internal/recommend"
)

// Recommender is the subset of *recommend.Engine the handlers call.
type Recommender interface {
	GetTopRatings(ctx context.Context, userID, count int) ([]recommend.Recommendation, error)
	GetRatingsForMovieIDs(ctx context.Context, userID int, movieIDs []int) ([]recommend.Recommendation, error)
	AddRatings(ctx context.Context, ratings []recommend.Rating) ([]recommend.Rating, error)
	MovieStats(movieID int) (recommend.MovieStats, bool, error)
	GetStatus() recommend.TrainingStatus
	GetMetrics() recommend.Metrics
	Ready() bool
}

var _ Recommender = (*recommend.Engine)(nil)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_ratings.go: prediction and rating endpoints
//   - handlers_movies.go: movie statistics
//   - handlers_health.go: health and status endpoints
//   - handlers_helpers.go: response and error helpers
type Handler struct {
	engine    Recommender
	limits    recommend.LimitsConfig
	version   string
	startTime time.Time
}

// NewHandler creates a handler. limits bounds request sizes; zero fields fall
// back to recommend.DefaultConfig limits.
func NewHandler(engine Recommender, limits recommend.LimitsConfig, version string) *Handler {
	defaults := recommend.DefaultConfig().Limits
	if limits.MaxK < 1 {
		limits.MaxK = defaults.MaxK
	}
	if limits.MaxMoviesPerQuery < 1 {
		limits.MaxMoviesPerQuery = defaults.MaxMoviesPerQuery
	}
	if limits.MaxRatingsPerWrite < 1 {
		limits.MaxRatingsPerWrite = defaults.MaxRatingsPerWrite
	}

	return &Handler{
		engine:    engine,
		limits:    limits,
		version:   version,
		startTime: time.Now(),
	}
}
