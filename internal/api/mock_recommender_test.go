// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerank/internal/recommend"
)

// mockRecommender records calls and returns canned results.
type mockRecommender struct {
	mu sync.Mutex

	ready   bool
	version int64
	stats   map[int]recommend.MovieStats
	recs    []recommend.Recommendation
	err     error

	topCalls   []int
	movieCalls [][]int
	added      []recommend.Rating
	addCtxErr  error
}

func newMockRecommender() *mockRecommender {
	return &mockRecommender{
		ready:   true,
		version: 1,
		stats:   map[int]recommend.MovieStats{},
	}
}

func (m *mockRecommender) GetTopRatings(_ context.Context, _, count int) ([]recommend.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topCalls = append(m.topCalls, count)
	if m.err != nil {
		return nil, m.err
	}
	if count < len(m.recs) {
		return m.recs[:count], nil
	}
	return m.recs, nil
}

func (m *mockRecommender) GetRatingsForMovieIDs(_ context.Context, _ int, movieIDs []int) ([]recommend.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movieCalls = append(m.movieCalls, movieIDs)
	if m.err != nil {
		return nil, m.err
	}
	return m.recs, nil
}

func (m *mockRecommender) AddRatings(ctx context.Context, ratings []recommend.Rating) ([]recommend.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCtxErr = ctx.Err()
	if m.err != nil {
		return nil, m.err
	}
	m.added = append(m.added, ratings...)
	m.version++
	return ratings, nil
}

func (m *mockRecommender) MovieStats(movieID int) (recommend.MovieStats, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return recommend.MovieStats{}, false, m.err
	}
	s, ok := m.stats[movieID]
	return s, ok, nil
}

func (m *mockRecommender) GetStatus() recommend.TrainingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return recommend.TrainingStatus{Ready: m.ready, ModelVersion: m.version, Algorithm: "mock"}
}

func (m *mockRecommender) GetMetrics() recommend.Metrics {
	return recommend.Metrics{RequestCount: 7}
}

func (m *mockRecommender) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// testResponse mirrors models.APIResponse with raw data for per-test decoding.
type testResponse struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		ModelVersion int64 `json:"model_version"`
		Count        int   `json:"count"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

// newTestRouter builds the full router with rate limiting off.
func newTestRouter(m *mockRecommender) http.Handler {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	h := NewHandler(m, recommend.LimitsConfig{MaxK: 50, MaxMoviesPerQuery: 3, MaxRatingsPerWrite: 4}, "test")
	return NewRouter(h, RouterConfig{Middleware: cfg})
}

func doRequest(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp testResponse
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
		}
	}
	return rec, resp
}
