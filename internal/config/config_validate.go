// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateJournal(); err != nil {
		return err
	}

	if err := c.validateEvaluate(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	switch c.Dataset.Loader {
	case "csv", "duckdb":
	default:
		return fmt.Errorf("DATASET_LOADER must be one of: csv, duckdb")
	}
	if c.Dataset.RatingsFile == "" || c.Dataset.MoviesFile == "" {
		return fmt.Errorf("DATASET_RATINGS_FILE and DATASET_MOVIES_FILE must not be empty")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.Rank < 1 {
		return fmt.Errorf("RECOMMEND_RANK must be at least 1")
	}
	if r.Iterations < 1 {
		return fmt.Errorf("RECOMMEND_ITERATIONS must be at least 1")
	}
	if r.Regularization < 0 {
		return fmt.Errorf("RECOMMEND_REGULARIZATION must be non-negative")
	}
	if r.MinRatingCount < 0 {
		return fmt.Errorf("RECOMMEND_MIN_RATING_COUNT must be non-negative")
	}
	if r.MaxTopK < 1 || r.MaxMoviesPerQuery < 1 || r.MaxRatingsPerWrite < 1 {
		return fmt.Errorf("RECOMMEND_MAX_* limits must be at least 1")
	}
	if r.Workers < 1 {
		return fmt.Errorf("RECOMMEND_WORKERS must be at least 1")
	}
	if r.CacheEnabled && (r.CacheSize < 1 || r.CacheTTL <= 0) {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE and RECOMMEND_CACHE_TTL must be positive when the cache is enabled")
	}
	return nil
}

func (c *Config) validateJournal() error {
	if !c.Journal.Enabled {
		return nil
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("JOURNAL_PATH is required when JOURNAL_ENABLED=true")
	}
	if c.Journal.GCInterval < time.Second {
		return fmt.Errorf("JOURNAL_GC_INTERVAL must be at least 1s")
	}
	return nil
}

func (c *Config) validateEvaluate() error {
	if len(c.Evaluate.Ranks) == 0 {
		return fmt.Errorf("EVALUATE_RANKS must list at least one rank")
	}
	for _, r := range c.Evaluate.Ranks {
		if r < 1 {
			return fmt.Errorf("EVALUATE_RANKS entries must be at least 1, got %d", r)
		}
	}
	if len(c.Evaluate.Weights) != 3 {
		return fmt.Errorf("EVALUATE_WEIGHTS must have exactly 3 entries (train, validation, test)")
	}
	for _, w := range c.Evaluate.Weights {
		if w <= 0 {
			return fmt.Errorf("EVALUATE_WEIGHTS entries must be positive")
		}
	}
	return nil
}

// Rate limiting bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any allowed origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
