// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - Model training runs and the published snapshot
// - Recommendation queries and the top-k cache
// - The ratings journal

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}, // POST retrains synchronously
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Training Metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_training_duration_seconds",
			Help:    "Duration of full model retrains in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"result"},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_version",
			Help: "Version of the currently published model snapshot",
		},
	)

	RatingsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_ratings_stored",
			Help: "Number of ratings in the published Ratings Store",
		},
	)

	RatedMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_rated_movies",
			Help: "Number of distinct movies in the Popularity Index",
		},
	)

	RatingsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_ratings_added_total",
			Help: "Total number of ratings accepted through AddRatings",
		},
	)

	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_queries_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"operation", "result"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_query_duration_seconds",
			Help:    "Recommendation query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	QueryResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_query_results",
			Help:    "Number of records returned per query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"operation"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of top-k cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of top-k cache misses",
		},
	)

	// Journal Metrics
	JournalAppends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_appends_total",
			Help: "Total number of journal append batches",
		},
		[]string{"result"},
	)

	JournalRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "journal_ratings",
			Help: "Number of ratings held in the journal",
		},
	)

	JournalGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_gc_runs_total",
			Help: "Total number of journal value-log GC runs",
		},
		[]string{"result"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordTraining records one training run
func RecordTraining(duration time.Duration, err error) {
	TrainingDuration.Observe(duration.Seconds())
	TrainingRuns.WithLabelValues(resultLabel(err)).Inc()
}

// RecordSnapshot updates the gauges describing the published snapshot
func RecordSnapshot(version int64, ratings, ratedMovies int) {
	ModelVersion.Set(float64(version))
	RatingsStored.Set(float64(ratings))
	RatedMovies.Set(float64(ratedMovies))
}

// RecordRatingsAdded counts ratings accepted by a write
func RecordRatingsAdded(n int) {
	RatingsAdded.Add(float64(n))
}

// RecordQuery records a recommendation query
func RecordQuery(operation string, duration time.Duration, results int, err error) {
	QueriesTotal.WithLabelValues(operation, resultLabel(err)).Inc()
	QueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err == nil {
		QueryResults.WithLabelValues(operation).Observe(float64(results))
	}
}

// RecordCacheLookup records a top-k cache lookup
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordJournalAppend records a journal append batch
func RecordJournalAppend(err error) {
	JournalAppends.WithLabelValues(resultLabel(err)).Inc()
}

// SetJournalRatings sets the number of journaled ratings
func SetJournalRatings(n int64) {
	JournalRatings.Set(float64(n))
}

// RecordJournalGC records a value-log GC run. "noop" means badger found nothing to rewrite.
func RecordJournalGC(result string) {
	JournalGCRuns.WithLabelValues(result).Inc()
}

// SetAppInfo publishes the build version
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// UpdateUptime sets the uptime gauge from the process start time
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
