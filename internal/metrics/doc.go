// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API router:

	curl http://localhost:5440/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)

Training Metrics:
  - recommend_training_duration_seconds: Full retrain duration (histogram)
  - recommend_training_runs_total: Training runs (counter)
    Labels: result (success, error)
  - recommend_model_version: Published snapshot version (gauge)
  - recommend_ratings_stored: Ratings in the published store (gauge)
  - recommend_rated_movies: Movies in the Popularity Index (gauge)
  - recommend_ratings_added_total: Ratings accepted by writes (counter)

Query Metrics:
  - recommend_queries_total: Queries (counter)
    Labels: operation (rate_for_movies, top_k), result
  - recommend_query_duration_seconds: Query latency (histogram)
  - recommend_query_results: Records returned per query (histogram)
  - recommend_cache_hits_total, recommend_cache_misses_total: Top-k cache (counter)

Journal Metrics:
  - journal_appends_total: Append batches (counter)
    Labels: result
  - journal_ratings: Journaled ratings (gauge)
  - journal_gc_runs_total: Value-log GC runs (counter)
    Labels: result (rewritten, noop, error)

System Metrics:
  - app_info: Build version (gauge)
    Labels: version, go_version
  - app_uptime_seconds: Process uptime (gauge)

# Usage

	start := time.Now()
	recs, err := engine.TopKForUser(ctx, userID, k)
	metrics.RecordQuery("top_k", time.Since(start), len(recs), err)

# Thread Safety

Prometheus collectors are safe for concurrent use.
*/
package metrics
