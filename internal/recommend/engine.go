// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerank/internal/cache"
	"github.com/tomtom215/cinerank/internal/metrics"
)

// Engine owns the Ratings Store, Popularity Index and Model and answers
// recommendation queries against them. It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger

	catalog *Catalog
	trainer Trainer
	journal Journal

	// state is replaced, never mutated, on every successful write
	state atomic.Pointer[snapshot]

	// writeMu serializes append + recompute + retrain
	writeMu sync.Mutex

	// Top-k result cache, nil when disabled
	cache *cache.LRU[[]Recommendation]

	// Metrics
	requestCount     atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
	errorCount       atomic.Int64
	trainingCount    atomic.Int64
	trainingFailures atomic.Int64
	ratingsAdded     atomic.Int64
}

// snapshot is one consistent generation of engine state. The model is always
// trained on exactly ratings, and popularity is always computed from ratings.
type snapshot struct {
	version        int64
	ratings        *RatingsStore
	popularity     *PopularityIndex
	model          Model
	trainedAt      time.Time
	trainingTimeMS int64
}

// Option configures optional Engine collaborators.
type Option func(*Engine)

// WithJournal persists every accepted write batch before it is published.
func WithJournal(j Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// NewEngine creates a recommendation engine. The engine answers queries only
// after Bootstrap has trained and published the initial model.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog *Catalog, trainer Trainer, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if trainer == nil {
		return nil, errors.New("trainer is required")
	}

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: catalog,
		trainer: trainer,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[[]Recommendation](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Bootstrap builds the initial Ratings Store and Popularity Index from ratings,
// trains the initial model and publishes all three as version 1.
// Initial ratings are not written to the journal.
func (e *Engine) Bootstrap(ctx context.Context, ratings []Rating) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if e.state.Load() != nil {
		return ErrAlreadyBootstrapped
	}

	e.logger.Info().
		Int("ratings", len(ratings)).
		Int("catalog_size", e.catalog.Len()).
		Msg("bootstrapping recommendation engine")

	next, err := e.build(ctx, NewRatingsStore(ratings), 1)
	if err != nil {
		return err
	}

	e.publish(next)
	return nil
}

// AddRatings appends ratings to the store, recomputes the Popularity Index,
// retrains the model and publishes the result. It returns the accepted ratings.
//
// The call blocks for the full retrain. If training or journaling fails,
// nothing is published and the previous snapshot stays current.
func (e *Engine) AddRatings(ctx context.Context, ratings []Rating) ([]Rating, error) {
	for i, r := range ratings {
		if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
			e.errorCount.Add(1)
			return nil, fmt.Errorf("%w: rating %d for movie %d has non-finite score", ErrInvalidRating, i, r.MovieID)
		}
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	current := e.state.Load()
	if current == nil {
		return nil, ErrNotReady
	}

	if len(ratings) == 0 {
		return []Rating{}, nil
	}

	accepted := make([]Rating, len(ratings))
	copy(accepted, ratings)

	next, err := e.build(ctx, current.ratings.Append(accepted), current.version+1)
	if err != nil {
		return nil, err
	}

	if e.journal != nil {
		if err := e.journal.Append(ctx, accepted); err != nil {
			e.errorCount.Add(1)
			return nil, fmt.Errorf("%w: %w", ErrJournal, err)
		}
	}

	e.publish(next)
	e.ratingsAdded.Add(int64(len(accepted)))
	metrics.RecordRatingsAdded(len(accepted))

	e.logger.Info().
		Int("added", len(accepted)).
		Int("total_ratings", next.ratings.Len()).
		Int64("version", next.version).
		Msg("ratings added")

	return accepted, nil
}

// build recomputes popularity and trains a model for store. Caller holds writeMu.
func (e *Engine) build(ctx context.Context, store *RatingsStore, version int64) (*snapshot, error) {
	popularity := RecomputePopularity(store.All())

	start := time.Now()
	model, err := e.trainer.Train(ctx, store.All(), e.config.Training)
	duration := time.Since(start)
	metrics.RecordTraining(duration, err)

	if err != nil {
		e.trainingFailures.Add(1)
		e.errorCount.Add(1)
		e.logger.Error().
			Err(err).
			Str("algorithm", e.trainer.Name()).
			Int("ratings", store.Len()).
			Msg("model training failed")
		return nil, fmt.Errorf("%w: %w", ErrTraining, err)
	}

	e.trainingCount.Add(1)
	e.logger.Info().
		Str("algorithm", e.trainer.Name()).
		Int64("version", version).
		Int("ratings", store.Len()).
		Int("movies", popularity.Len()).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("model training complete")

	return &snapshot{
		version:        version,
		ratings:        store,
		popularity:     popularity,
		model:          model,
		trainedAt:      time.Now(),
		trainingTimeMS: duration.Milliseconds(),
	}, nil
}

// publish makes next visible to readers. Caller holds writeMu.
func (e *Engine) publish(next *snapshot) {
	e.state.Store(next)
	if e.cache != nil {
		e.cache.Clear()
	}
	metrics.RecordSnapshot(next.version, next.ratings.Len(), next.popularity.Len())
}

// current returns the published snapshot or ErrNotReady.
func (e *Engine) current() (*snapshot, error) {
	s := e.state.Load()
	if s == nil {
		return nil, ErrNotReady
	}
	return s, nil
}

// Ready reports whether the initial model has been published.
func (e *Engine) Ready() bool {
	return e.state.Load() != nil
}

// Catalog returns the shared read-only catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// PopularityCounts returns the published movie ID to rating count table.
func (e *Engine) PopularityCounts() (map[int]int, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	return s.popularity.Counts(), nil
}

// MovieStats returns the rating count and average score of movieID.
// A movie without ratings reports zero counts; found is false only when the
// movie is neither rated nor in the catalog.
func (e *Engine) MovieStats(movieID int) (stats MovieStats, found bool, err error) {
	s, err := e.current()
	if err != nil {
		return MovieStats{}, false, err
	}

	title, inCatalog := e.catalog.Title(movieID)
	entry, rated := s.popularity.Entry(movieID)

	return MovieStats{
		MovieID:      movieID,
		Title:        title,
		RatingCount:  entry.RatingCount,
		AverageScore: entry.AverageScore,
	}, inCatalog || rated, nil
}

// GetStatus returns a description of the published snapshot.
func (e *Engine) GetStatus() TrainingStatus {
	status := TrainingStatus{
		Algorithm:       e.trainer.Name(),
		CatalogSize:     e.catalog.Len(),
		Hyperparameters: e.config.Training,
	}

	s := e.state.Load()
	if s == nil {
		return status
	}

	status.Ready = true
	status.ModelVersion = s.version
	status.RatingCount = s.ratings.Len()
	status.RatedMovieCount = s.popularity.Len()
	status.UserCount = s.ratings.UserCount()
	status.LastTrainedAt = s.trainedAt
	status.LastTrainingDurationMS = s.trainingTimeMS
	return status
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:     e.requestCount.Load(),
		CacheHits:        e.cacheHits.Load(),
		CacheMisses:      e.cacheMisses.Load(),
		TrainingCount:    e.trainingCount.Load(),
		TrainingFailures: e.trainingFailures.Load(),
		RatingsAdded:     e.ratingsAdded.Load(),
		ErrorCount:       e.errorCount.Load(),
	}
}
