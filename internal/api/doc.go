// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package api exposes the recommendation engine over HTTP using the Chi router.

Endpoints:

	GET  /{userID}/ratings/top/{count}   top-count unrated, sufficiently popular movies
	GET  /{userID}/ratings/{movieID}     predicted rating for one movie
	GET  /{userID}/ratings?movies=1,2,3  predicted ratings for a movie list
	POST /{userID}/ratings               add ratings and retrain
	GET  /movies/{movieID}/stats         rating count and average score
	GET  /api/v1/health                  liveness plus readiness flag
	GET  /api/v1/health/live             liveness probe
	GET  /api/v1/health/ready            readiness probe (503 until the first model is published)
	GET  /api/v1/status                  snapshot version, counts, training timings, counters
	GET  /metrics                        Prometheus exposition

POST bodies are either a form with a "key" field or a raw text body, each
holding newline-separated "movie_id,rating" lines:

	curl --data-binary $'260,4\n1,3\n16,3' http://localhost:5440/0/ratings

A malformed line rejects the whole batch with 400 and nothing is stored.
The POST handler detaches from the request context before calling the
engine, so a client that disconnects mid-retrain does not abort training.

Every response uses the models.APIResponse envelope. Errors carry a machine
code: VALIDATION_ERROR, NOT_READY, TRAINING_ERROR, NOT_FOUND,
METHOD_NOT_ALLOWED, RATE_LIMITED, TIMEOUT or INTERNAL_ERROR.

Middleware order: RealIP, RequestID, AccessLog, Recoverer, Metrics, CORS,
then per-group rate limiting, security headers and (reads only) a request
timeout.
*/
package api
