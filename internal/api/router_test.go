// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerank/internal/config"
	"github.com/tomtom215/cinerank/internal/models"
	"github.com/tomtom215/cinerank/internal/recommend"
)

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ready     bool
		path      string
		status    int
		wantField string
	}{
		{name: "health_ready", ready: true, path: "/api/v1/health", status: http.StatusOK, wantField: `"status":"healthy"`},
		{name: "health_starting", ready: false, path: "/api/v1/health", status: http.StatusOK, wantField: `"status":"starting"`},
		{name: "live", ready: false, path: "/api/v1/health/live", status: http.StatusOK, wantField: `"alive"`},
		{name: "ready", ready: true, path: "/api/v1/health/ready", status: http.StatusOK, wantField: `"ready"`},
		{name: "not_ready", ready: false, path: "/api/v1/health/ready", status: http.StatusServiceUnavailable, wantField: codeNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMockRecommender()
			m.ready = tt.ready
			rec, _ := doRequest(t, newTestRouter(m), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.wantField) {
				t.Errorf("body %s missing %s", rec.Body.String(), tt.wantField)
			}
		})
	}
}

func TestStatusEndpoint(t *testing.T) {
	t.Parallel()

	m := newMockRecommender()
	m.version = 4
	rec, resp := doRequest(t, newTestRouter(m), httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body StatusResponse
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Version != "test" || body.Training.ModelVersion != 4 || body.Metrics.RequestCount != 7 {
		t.Errorf("status body = %+v", body)
	}
	if resp.Metadata.ModelVersion != 4 {
		t.Errorf("metadata model_version = %d, want 4", resp.Metadata.ModelVersion)
	}
}

func TestMovieStatsEndpoint(t *testing.T) {
	t.Parallel()

	m := newMockRecommender()
	m.stats[1] = recommend.MovieStats{MovieID: 1, Title: "Toy Story (1995)", RatingCount: 215, AverageScore: 3.92}
	router := newTestRouter(m)

	rec, resp := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/movies/1/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var stats recommend.MovieStats
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.RatingCount != 215 || stats.AverageScore != 3.92 {
		t.Errorf("stats = %+v", stats)
	}

	rec, resp = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/movies/999/stats", nil))
	if rec.Code != http.StatusNotFound || resp.Error == nil || resp.Error.Code != codeNotFound {
		t.Errorf("unknown movie: status %d, error %+v", rec.Code, resp.Error)
	}
}

func TestRouterFallbacks(t *testing.T) {
	t.Parallel()

	router := newTestRouter(newMockRecommender())

	rec, resp := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/no/such/route/here", nil))
	if rec.Code != http.StatusNotFound || resp.Error == nil || resp.Error.Code != codeNotFound {
		t.Errorf("not found: status %d, error %+v", rec.Code, resp.Error)
	}

	rec, resp = doRequest(t, router, httptest.NewRequest(http.MethodDelete, "/1/ratings", nil))
	if rec.Code != http.StatusMethodNotAllowed || resp.Error == nil || resp.Error.Code != codeMethodNotAllowed {
		t.Errorf("method not allowed: status %d, error %+v", rec.Code, resp.Error)
	}
}

func TestRouterHeaders(t *testing.T) {
	t.Parallel()

	m := newMockRecommender()
	m.recs = sampleRecs()
	router := newTestRouter(m)

	rec, _ := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/1/ratings/top/3", nil))

	for _, h := range []string{"X-Request-ID", "ETag", "X-Content-Type-Options", "X-Frame-Options"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
}

func TestRespondJSON_NotModified(t *testing.T) {
	t.Parallel()

	body := &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     []int{1, 2, 3},
		Metadata: models.Metadata{Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}

	rec := httptest.NewRecorder()
	respondJSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, body)
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	respondJSON(rec, req, http.StatusOK, body)
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 must not carry a body, got %q", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", `"stale"`)
	rec = httptest.NewRecorder()
	respondJSON(rec, req, http.StatusOK, body)
	if rec.Code != http.StatusOK {
		t.Errorf("stale tag: status = %d, want 200", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	m := newMockRecommender()
	router := NewRouter(NewHandler(m, recommend.LimitsConfig{}, "test"), RouterConfig{Middleware: cfg})

	var last *httptest.ResponseRecorder
	for range 3 {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/1/ratings/top/1", nil))
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", last.Code)
	}
	if !strings.Contains(last.Body.String(), codeRateLimited) {
		t.Errorf("body %s missing %s", last.Body.String(), codeRateLimited)
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	t.Parallel()

	sec := &config.SecurityConfig{
		CORSOrigins:       []string{"https://example.com"},
		RateLimitReqs:     42,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
	}
	cfg := ChiMiddlewareConfigFromSecurity(sec)

	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://example.com" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRequests != 42 || cfg.RateLimitWindow != 30*time.Second || !cfg.RateLimitDisabled {
		t.Errorf("rate limit = %d/%v disabled=%v", cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitDisabled)
	}

	if got := ChiMiddlewareConfigFromSecurity(nil); got.RateLimitRequests != 100 {
		t.Errorf("nil security should use defaults, got %d", got.RateLimitRequests)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	got := sanitizeLogValue("a\nb\tc")
	if got != `a\x0ab\x09c` {
		t.Errorf("sanitizeLogValue = %q", got)
	}
}
