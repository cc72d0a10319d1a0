// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	Journal   JournalConfig   `koanf:"journal"`
	Evaluate  EvaluateConfig  `koanf:"evaluate"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetConfig locates the startup ratings and movies files
type DatasetConfig struct {
	Path        string `koanf:"path"`
	Loader      string `koanf:"loader"` // csv or duckdb
	RatingsFile string `koanf:"ratings_file"`
	MoviesFile  string `koanf:"movies_file"`
}

// RecommendConfig holds training hyperparameters and query limits
type RecommendConfig struct {
	Rank           int     `koanf:"rank"`
	Seed           int64   `koanf:"seed"`
	Iterations     int     `koanf:"iterations"`
	Regularization float64 `koanf:"regularization"`

	// MinRatingCount is the popularity floor applied to top-K results.
	MinRatingCount int `koanf:"min_rating_count"`

	MaxTopK            int `koanf:"max_top_k"`
	MaxMoviesPerQuery  int `koanf:"max_movies_per_query"`
	MaxRatingsPerWrite int `koanf:"max_ratings_per_write"`

	// Workers is the number of goroutines the ALS solver uses per half-step.
	Workers int `koanf:"workers"`

	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheSize    int           `koanf:"cache_size"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// JournalConfig controls persistence of ratings added at runtime
type JournalConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Path       string        `koanf:"path"`
	GCInterval time.Duration `koanf:"gc_interval"`
	SyncWrites bool          `koanf:"sync_writes"`
}

// EvaluateConfig drives the offline rank-selection command
type EvaluateConfig struct {
	Ranks   []int     `koanf:"ranks"`
	Weights []float64 `koanf:"weights"`
	Seed    int64     `koanf:"seed"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}
