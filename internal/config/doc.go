// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package config provides centralized configuration management for Cinerank.

Configuration is layered with koanf: struct defaults first, then an optional
YAML file, then environment variables. Later layers win.

# Configuration Sources

  - Defaults from defaultConfig()
  - YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml, /etc/cinerank/config.yaml
  - Environment variables (mapped explicitly by envTransformFunc)

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 5440)
  - HTTP_TIMEOUT: Per-request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown deadline (default: 10s)

Dataset:
  - DATASET_PATH: Directory holding ratings.csv and movies.csv
  - DATASET_LOADER: csv or duckdb (default: csv)
  - DATASET_RATINGS_FILE, DATASET_MOVIES_FILE: File names inside DATASET_PATH

Recommendation engine:
  - RECOMMEND_RANK, RECOMMEND_SEED, RECOMMEND_ITERATIONS, RECOMMEND_REGULARIZATION
  - RECOMMEND_MIN_RATING_COUNT: Popularity floor for top-K (default: 25)
  - RECOMMEND_MAX_TOP_K: Largest accepted count (default: 1000)
  - RECOMMEND_WORKERS: ALS solver goroutines (default: 4)
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_SIZE, RECOMMEND_CACHE_TTL

Ratings journal:
  - JOURNAL_ENABLED: Persist added ratings to BadgerDB (default: false)
  - JOURNAL_PATH, JOURNAL_GC_INTERVAL, JOURNAL_SYNC_WRITES

Evaluation (cmd/evaluate):
  - EVALUATE_RANKS: Comma-separated candidate ranks (default: 4,8,12)
  - EVALUATE_WEIGHTS: Comma-separated train/validation/test weights (default: 6,2,2)
  - EVALUATE_SEED: Split seed (default: 0)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file and line (default: false)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
