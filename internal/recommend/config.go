// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Training contains the fixed model hyperparameters.
	Training Hyperparameters `json:"training"`

	// MinRatingCount is the popularity floor applied by TopKForUser.
	// Default: 25.
	MinRatingCount int `json:"min_rating_count"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains top-k result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains operational limits enforced by callers of the engine.
type LimitsConfig struct {
	// MaxK is the largest top-k count accepted over HTTP.
	// Default: 1000.
	MaxK int `json:"max_k"`

	// MaxMoviesPerQuery is the largest movie list accepted by RateForMovies over HTTP.
	// Default: 500.
	MaxMoviesPerQuery int `json:"max_movies_per_query"`

	// MaxRatingsPerWrite is the largest batch accepted by AddRatings over HTTP.
	// Default: 10000.
	MaxRatingsPerWrite int `json:"max_ratings_per_write"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether top-k results are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached entries.
	// Default: 1024.
	MaxEntries int `json:"max_entries"`
}

// DefaultHyperparameters returns rank 8, seed 5, 10 iterations and
// regularization 0.1.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Rank:           8,
		Seed:           5,
		Iterations:     10,
		Regularization: 0.1,
	}
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Training:       DefaultHyperparameters(),
		MinRatingCount: 25,
		Limits: LimitsConfig{
			MaxK:               1000,
			MaxMoviesPerQuery:  500,
			MaxRatingsPerWrite: 10000,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Training.Rank < 1 {
		return fmt.Errorf("training.rank must be positive, got %d", c.Training.Rank)
	}
	if c.Training.Iterations < 1 {
		return fmt.Errorf("training.iterations must be positive, got %d", c.Training.Iterations)
	}
	if c.Training.Regularization < 0 {
		return fmt.Errorf("training.regularization must be non-negative, got %f", c.Training.Regularization)
	}

	if c.MinRatingCount < 0 {
		return fmt.Errorf("min_rating_count must be non-negative, got %d", c.MinRatingCount)
	}

	if c.Limits.MaxK < 1 {
		return fmt.Errorf("limits.max_k must be positive, got %d", c.Limits.MaxK)
	}
	if c.Limits.MaxMoviesPerQuery < 1 {
		return fmt.Errorf("limits.max_movies_per_query must be positive, got %d", c.Limits.MaxMoviesPerQuery)
	}
	if c.Limits.MaxRatingsPerWrite < 1 {
		return fmt.Errorf("limits.max_ratings_per_write must be positive, got %d", c.Limits.MaxRatingsPerWrite)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when caching is enabled, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
