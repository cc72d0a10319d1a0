// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test/record", "200"))

	RecordAPIRequest("GET", "/test/record", "200", 15*time.Millisecond)
	RecordAPIRequest("GET", "/test/record", "200", 25*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test/record", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total delta = %f, want 2", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %f, want %f", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %f, want %f", got, before)
	}
}

func TestRecordTraining(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{name: "successful run", err: nil, result: "success"},
		{name: "failed run", err: errors.New("singular matrix"), result: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(TrainingRuns.WithLabelValues(tt.result))
			RecordTraining(time.Second, tt.err)
			after := testutil.ToFloat64(TrainingRuns.WithLabelValues(tt.result))
			if after-before != 1 {
				t.Errorf("training runs[%s] delta = %f, want 1", tt.result, after-before)
			}
		})
	}
}

func TestRecordSnapshot(t *testing.T) {
	RecordSnapshot(7, 1200, 90)

	if got := testutil.ToFloat64(ModelVersion); got != 7 {
		t.Errorf("model version = %f, want 7", got)
	}
	if got := testutil.ToFloat64(RatingsStored); got != 1200 {
		t.Errorf("ratings stored = %f, want 1200", got)
	}
	if got := testutil.ToFloat64(RatedMovies); got != 90 {
		t.Errorf("rated movies = %f, want 90", got)
	}
}

func TestRecordQuery(t *testing.T) {
	beforeOK := testutil.ToFloat64(QueriesTotal.WithLabelValues("top_k", "success"))
	beforeErr := testutil.ToFloat64(QueriesTotal.WithLabelValues("top_k", "error"))

	RecordQuery("top_k", 2*time.Millisecond, 10, nil)
	RecordQuery("top_k", time.Millisecond, 0, errors.New("not ready"))

	if got := testutil.ToFloat64(QueriesTotal.WithLabelValues("top_k", "success")) - beforeOK; got != 1 {
		t.Errorf("success delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(QueriesTotal.WithLabelValues("top_k", "error")) - beforeErr; got != 1 {
		t.Errorf("error delta = %f, want 1", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits)
	misses := testutil.ToFloat64(CacheMisses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	if got := testutil.ToFloat64(CacheHits) - hits; got != 1 {
		t.Errorf("cache hits delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses) - misses; got != 2 {
		t.Errorf("cache misses delta = %f, want 2", got)
	}
}

func TestJournalMetrics(t *testing.T) {
	before := testutil.ToFloat64(JournalAppends.WithLabelValues("success"))
	RecordJournalAppend(nil)
	if got := testutil.ToFloat64(JournalAppends.WithLabelValues("success")) - before; got != 1 {
		t.Errorf("journal appends delta = %f, want 1", got)
	}

	SetJournalRatings(42)
	if got := testutil.ToFloat64(JournalRatings); got != 42 {
		t.Errorf("journal ratings = %f, want 42", got)
	}

	gcBefore := testutil.ToFloat64(JournalGCRuns.WithLabelValues("noop"))
	RecordJournalGC("noop")
	if got := testutil.ToFloat64(JournalGCRuns.WithLabelValues("noop")) - gcBefore; got != 1 {
		t.Errorf("journal gc delta = %f, want 1", got)
	}
}

func TestAppMetrics(t *testing.T) {
	SetAppInfo("test")
	UpdateUptime(time.Now().Add(-time.Minute))

	if got := testutil.ToFloat64(AppUptime); got < 60 {
		t.Errorf("uptime = %f, want >= 60", got)
	}
}

func TestConcurrentRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordQuery("rate_for_movies", time.Millisecond, 1, nil)
			RecordRatingsAdded(1)
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()
}
