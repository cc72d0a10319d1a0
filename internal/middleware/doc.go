// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package middleware provides infrastructure HTTP middleware shared by the API
router.

Key Components:

  - RequestID: reuses or generates an X-Request-ID, stores it together with a
    fresh correlation ID in the request context for logging.Ctx
  - AccessLog: one structured zerolog line per request
  - Metrics: Prometheus request counters, latency histograms and the active
    request gauge, labelled by chi route pattern

All three are chi-compatible (func(http.Handler) http.Handler):

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)

The endpoint label uses the matched route pattern (for example
"/{userID}/ratings/top/{count}") rather than the raw path so that user and
movie IDs do not explode label cardinality. Requests that match no route are
labelled "unmatched".

See Also:

  - internal/api: handlers and router wiring
  - internal/metrics: metric definitions
  - internal/logging: context-aware logger
*/
package middleware
