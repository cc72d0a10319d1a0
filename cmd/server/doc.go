// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package main is the entry point for the Cinerank recommendation server.

Cinerank trains an alternating least squares model on a MovieLens-style
dataset and serves personalized predictions and top-K recommendations over
HTTP. Ratings posted at runtime are appended to the in-memory store and the
model is retrained before the request returns.

# Startup

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Dataset: ratings.csv and movies.csv via the csv or duckdb loader
 4. Journal (optional): BadgerDB log of ratings added at runtime, replayed
    on top of the dataset
 5. Engine: ALS trainer, initial training and publication of model version 1
 6. Supervisor tree: HTTP server in the api layer, journal GC in the data layer

A dataset or initial training failure is fatal. The server never accepts
traffic without a model.

# Supervisor Tree

	cinerank
	├── data-layer
	│   └── journal-gc     (JOURNAL_ENABLED=true)
	└── api-layer
	    └── http-server

# Configuration

Core environment variables:

	HTTP_HOST=0.0.0.0
	HTTP_PORT=5440
	DATASET_PATH=./datasets/ml-latest-small
	DATASET_LOADER=csv           # csv or duckdb
	RECOMMEND_RANK=8
	RECOMMEND_ITERATIONS=10
	RECOMMEND_MIN_RATING_COUNT=25
	JOURNAL_ENABLED=false
	JOURNAL_PATH=./data/journal
	LOG_LEVEL=info
	LOG_FORMAT=json

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and drains in-flight requests for up to
server.shutdown_timeout; a POST that is mid-retrain finishes first. The
journal is closed after the tree stops.

# Example

	curl http://localhost:5440/0/ratings/top/10
	curl http://localhost:5440/0/ratings/500
	curl --data-binary $'260,9\n1,8\n16,7' http://localhost:5440/0/ratings
*/
package main
