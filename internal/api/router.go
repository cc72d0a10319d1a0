// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinerank/internal/middleware"
)

// RateLimitHealth is permissive rate limiting for health and status endpoints.
var RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// Middleware configures CORS and rate limiting. Nil uses defaults.
	Middleware *ChiMiddlewareConfig

	// RequestTimeout bounds read requests. Writes are not bounded because
	// they retrain synchronously. Zero disables the timeout.
	RequestTimeout time.Duration
}

// NewRouter builds the Chi router for all endpoints.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	mw := NewChiMiddleware(cfg.Middleware)
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(mw.CORS()) // global so OPTIONS preflight is answered before routing

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	// ========================
	// Health and Status
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())

		r.Get("/health", h.Health)
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)
		r.Get("/status", h.Status)
	})

	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Recommendation Endpoints
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(APISecurityHeaders())

		r.Group(func(r chi.Router) {
			if cfg.RequestTimeout > 0 {
				r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
			}

			r.Get("/{userID}/ratings/top/{count}", h.TopRatings)
			r.Get("/{userID}/ratings/{movieID}", h.MovieRating)
			r.Get("/{userID}/ratings", h.MovieRatings)
			r.Get("/movies/{movieID}/stats", h.MovieStats)
		})

		r.With(mw.RateLimitCustom(RateLimitWrite)).Post("/{userID}/ratings", h.AddRatings)
	})

	return r
}
