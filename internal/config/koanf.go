// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinerank/config.yaml",
	"/etc/cinerank/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5440,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Dataset: DatasetConfig{
			Path:        "./datasets/ml-latest-small",
			Loader:      "csv",
			RatingsFile: "ratings.csv",
			MoviesFile:  "movies.csv",
		},
		Recommend: RecommendConfig{
			Rank:               8,
			Seed:               5,
			Iterations:         10,
			Regularization:     0.1,
			MinRatingCount:     25,
			MaxTopK:            1000,
			MaxMoviesPerQuery:  500,
			MaxRatingsPerWrite: 10000,
			Workers:            4,
			CacheEnabled:       true,
			CacheSize:          1024,
			CacheTTL:           10 * time.Minute,
		},
		Journal: JournalConfig{
			Enabled:    false, // Opt-in: without it, added ratings live until restart
			Path:       "./data/journal",
			GCInterval: 5 * time.Minute,
			SyncWrites: true,
		},
		Evaluate: EvaluateConfig{
			Ranks:   []int{4, 8, 12},
			Weights: []float64{6, 2, 2},
			Seed:    0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional YAML file and
// environment variables, in that order of precedence, then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are keys that may arrive from env vars as comma-separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"evaluate.ranks",
	"evaluate.weights",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf keys.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	"dataset_path":         "dataset.path",
	"dataset_loader":       "dataset.loader",
	"dataset_ratings_file": "dataset.ratings_file",
	"dataset_movies_file":  "dataset.movies_file",

	"recommend_rank":                  "recommend.rank",
	"recommend_seed":                  "recommend.seed",
	"recommend_iterations":            "recommend.iterations",
	"recommend_regularization":        "recommend.regularization",
	"recommend_min_rating_count":      "recommend.min_rating_count",
	"recommend_max_top_k":             "recommend.max_top_k",
	"recommend_max_movies_per_query":  "recommend.max_movies_per_query",
	"recommend_max_ratings_per_write": "recommend.max_ratings_per_write",
	"recommend_workers":               "recommend.workers",
	"recommend_cache_enabled":         "recommend.cache_enabled",
	"recommend_cache_size":            "recommend.cache_size",
	"recommend_cache_ttl":             "recommend.cache_ttl",

	"journal_enabled":     "journal.enabled",
	"journal_path":        "journal.path",
	"journal_gc_interval": "journal.gc_interval",
	"journal_sync_writes": "journal.sync_writes",

	"evaluate_ranks":   "evaluate.ranks",
	"evaluate_weights": "evaluate.weights",
	"evaluate_seed":    "evaluate.seed",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc maps an environment variable to its koanf key.
// Unknown variables map to "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
