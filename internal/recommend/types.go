// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"context"
	"time"
)

// Rating is one observed (user, movie, score) triple.
// The same user may rate the same movie more than once; every observation is kept.
type Rating struct {
	// UserID is the rating user's identifier.
	UserID int `json:"user_id"`

	// MovieID references Movie.ID. It is not required to exist in the Catalog.
	MovieID int `json:"movie_id"`

	// Score is the explicit rating value.
	Score float64 `json:"score"`
}

// Movie is catalog metadata for a single movie.
type Movie struct {
	// ID is the movie identifier used by ratings.
	ID int `json:"movie_id"`

	// Title is the display title, usually with the release year.
	Title string `json:"title"`

	// Genres is the raw pipe-separated genre list.
	Genres string `json:"genres"`
}

// Pair is a (user, movie) prediction request.
type Pair struct {
	UserID  int `json:"user_id"`
	MovieID int `json:"movie_id"`
}

// Prediction is a model output for one Pair.
type Prediction struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

// Recommendation is the record returned by every query operation.
type Recommendation struct {
	// MovieID identifies the recommended movie.
	MovieID int `json:"movie_id"`

	// Title is the catalog title of the movie.
	Title string `json:"title"`

	// PredictedScore is the model's predicted rating for the requesting user.
	PredictedScore float64 `json:"predicted_score"`

	// RatingCount is the number of stored ratings for the movie.
	RatingCount int `json:"rating_count"`
}

// Hyperparameters are the fixed training settings held for the process lifetime.
type Hyperparameters struct {
	// Rank is the dimension of the latent factor vectors.
	Rank int `json:"rank"`

	// Seed initializes the factor matrices deterministically.
	Seed int64 `json:"seed"`

	// Iterations is the number of alternating least squares sweeps.
	Iterations int `json:"iterations"`

	// Regularization is the L2 penalty weight.
	Regularization float64 `json:"regularization"`
}

// Model is a trained latent-factor model. Implementations must be immutable
// once returned by a Trainer so they can be shared by concurrent readers.
type Model interface {
	// Predict returns a prediction for every pair whose user and movie were
	// both seen during training. Other pairs are omitted. Output order follows
	// input order.
	Predict(ctx context.Context, pairs []Pair) ([]Prediction, error)
}

// Trainer produces a Model from the complete rating history.
type Trainer interface {
	// Name returns the training algorithm identifier.
	Name() string

	// Train fits a new model. Degenerate input is handled by the implementation.
	Train(ctx context.Context, ratings []Rating, params Hyperparameters) (Model, error)
}

// Journal persists ratings accepted by AddRatings.
type Journal interface {
	Append(ctx context.Context, ratings []Rating) error
}

// MovieStats summarizes the stored ratings of one movie.
type MovieStats struct {
	MovieID      int     `json:"movie_id"`
	Title        string  `json:"title,omitempty"`
	RatingCount  int     `json:"rating_count"`
	AverageScore float64 `json:"average_score"`
}

// TrainingStatus describes the currently published snapshot.
type TrainingStatus struct {
	// Ready is true once the initial model has been published.
	Ready bool `json:"ready"`

	// ModelVersion increments on every published snapshot.
	ModelVersion int64 `json:"model_version"`

	// Algorithm is the trainer name.
	Algorithm string `json:"algorithm"`

	// RatingCount is the size of the published Ratings Store.
	RatingCount int `json:"rating_count"`

	// RatedMovieCount is the number of distinct movies with at least one rating.
	RatedMovieCount int `json:"rated_movie_count"`

	// UserCount is the number of distinct users with at least one rating.
	UserCount int `json:"user_count"`

	// CatalogSize is the number of movies in the Catalog.
	CatalogSize int `json:"catalog_size"`

	// LastTrainedAt is when the published model finished training.
	LastTrainedAt time.Time `json:"last_trained_at,omitempty"`

	// LastTrainingDurationMS is how long the published model took to train.
	LastTrainingDurationMS int64 `json:"last_training_duration_ms"`

	// Hyperparameters are the training settings in use.
	Hyperparameters Hyperparameters `json:"hyperparameters"`
}

// Metrics contains engine counters for observability.
type Metrics struct {
	// RequestCount is the total number of query requests.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of top-k cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of top-k cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// TrainingCount is the number of successful training runs.
	TrainingCount int64 `json:"training_count"`

	// TrainingFailures is the number of failed training runs.
	TrainingFailures int64 `json:"training_failures"`

	// RatingsAdded is the number of ratings accepted through AddRatings.
	RatingsAdded int64 `json:"ratings_added"`

	// ErrorCount is the total number of errors.
	ErrorCount int64 `json:"error_count"`
}
