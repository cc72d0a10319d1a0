// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerank/internal/models"
	"github.com/tomtom215/cinerank/internal/recommend"
)

func sampleRecs() []recommend.Recommendation {
	return []recommend.Recommendation{
		{MovieID: 318, Title: "Shawshank Redemption, The (1994)", PredictedScore: 4.7, RatingCount: 317},
		{MovieID: 858, Title: "Godfather, The (1972)", PredictedScore: 4.5, RatingCount: 192},
		{MovieID: 50, Title: "Usual Suspects, The (1995)", PredictedScore: 4.4, RatingCount: 204},
	}
}

func TestTopRatings(t *testing.T) {
	t.Parallel()

	m := newMockRecommender()
	m.recs = sampleRecs()
	router := newTestRouter(m)

	rec, resp := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/7/ratings/top/2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if resp.Status != models.StatusSuccess {
		t.Errorf("status field = %q", resp.Status)
	}

	var recs []recommend.Recommendation
	if err := json.Unmarshal(resp.Data, &recs); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(recs) != 2 || recs[0].MovieID != 318 {
		t.Errorf("recs = %+v", recs)
	}
	if resp.Metadata.Count != 2 || resp.Metadata.ModelVersion != 1 {
		t.Errorf("metadata = %+v", resp.Metadata)
	}
	if len(m.topCalls) != 1 || m.topCalls[0] != 2 {
		t.Errorf("topCalls = %v", m.topCalls)
	}
}

func TestTopRatings_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
	}{
		{name: "non_numeric_user", path: "/abc/ratings/top/5"},
		{name: "negative_user", path: "/-1/ratings/top/5"},
		{name: "non_numeric_count", path: "/1/ratings/top/many"},
		{name: "negative_count", path: "/1/ratings/top/-3"},
		{name: "count_over_limit", path: "/1/ratings/top/51"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMockRecommender()
			rec, resp := doRequest(t, newTestRouter(m), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if resp.Error == nil || resp.Error.Code != codeValidation {
				t.Errorf("error = %+v, want %s", resp.Error, codeValidation)
			}
			if len(m.topCalls) != 0 {
				t.Error("engine should not be called for invalid input")
			}
		})
	}
}

func TestTopRatings_ZeroCount(t *testing.T) {
	t.Parallel()

	m := newMockRecommender()
	m.recs = sampleRecs()
	rec, resp := doRequest(t, newTestRouter(m), httptest.NewRequest(http.MethodGet, "/1/ratings/top/0", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if string(resp.Data) != "[]" {
		t.Errorf("data = %s, want []", resp.Data)
	}
}

func TestEngineErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not_ready", err: recommend.ErrNotReady, status: http.StatusServiceUnavailable, code: codeNotReady},
		{name: "invalid_count", err: fmt.Errorf("%w: -1", recommend.ErrInvalidCount), status: http.StatusBadRequest, code: codeValidation},
		{name: "training", err: fmt.Errorf("%w: boom", recommend.ErrTraining), status: http.StatusInternalServerError, code: codeTraining},
		{name: "journal", err: fmt.Errorf("%w: disk full", recommend.ErrJournal), status: http.StatusInternalServerError, code: codeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMockRecommender()
			m.err = tt.err
			rec, resp := doRequest(t, newTestRouter(m), httptest.NewRequest(http.MethodGet, "/1/ratings/top/3", nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if resp.Error == nil || resp.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.code)
			}
		})
	}
}

func TestMovieRating(t *testing.T) {
	t.Parallel()

	m := newMockRecommender()
	m.recs = sampleRecs()[:1]
	rec, resp := doRequest(t, newTestRouter(m), httptest.NewRequest(http.MethodGet, "/3/ratings/318", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(m.movieCalls) != 1 || len(m.movieCalls[0]) != 1 || m.movieCalls[0][0] != 318 {
		t.Errorf("movieCalls = %v", m.movieCalls)
	}
	if resp.Metadata.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Metadata.Count)
	}
}

func TestMovieRatings_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  string
		status int
		want   []int
	}{
		{name: "three_movies", query: "movies=1,2,2", status: http.StatusOK, want: []int{1, 2, 2}},
		{name: "spaces_and_blanks", query: "movies=" + url.QueryEscape(" 5 ,, 6"), status: http.StatusOK, want: []int{5, 6}},
		{name: "missing", query: "", status: http.StatusBadRequest},
		{name: "non_numeric", query: "movies=1,x", status: http.StatusBadRequest},
		{name: "negative", query: "movies=-4", status: http.StatusBadRequest},
		{name: "over_limit", query: "movies=1,2,3,4", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMockRecommender()
			rec, _ := doRequest(t, newTestRouter(m), httptest.NewRequest(http.MethodGet, "/1/ratings?"+tt.query, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.want == nil {
				if len(m.movieCalls) != 0 {
					t.Errorf("engine called with %v", m.movieCalls)
				}
				return
			}
			if len(m.movieCalls) != 1 || fmt.Sprint(m.movieCalls[0]) != fmt.Sprint(tt.want) {
				t.Errorf("movieCalls = %v, want [%v]", m.movieCalls, tt.want)
			}
		})
	}
}

func TestAddRatings_RawBody(t *testing.T) {
	t.Parallel()

	m := newMockRecommender()
	req := httptest.NewRequest(http.MethodPost, "/0/ratings", strings.NewReader("260,4\n1,3\r\n\n16,3.5\n"))
	req.Header.Set("Content-Type", "text/plain")

	rec, resp := doRequest(t, newTestRouter(m), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	want := []recommend.Rating{
		{UserID: 0, MovieID: 260, Score: 4},
		{UserID: 0, MovieID: 1, Score: 3},
		{UserID: 0, MovieID: 16, Score: 3.5},
	}
	if fmt.Sprint(m.added) != fmt.Sprint(want) {
		t.Errorf("added = %v, want %v", m.added, want)
	}
	if m.addCtxErr != nil {
		t.Errorf("engine saw a cancelled context: %v", m.addCtxErr)
	}

	var body struct {
		Accepted     []recommend.Rating `json:"accepted"`
		Count        int                `json:"count"`
		ModelVersion int64              `json:"model_version"`
	}
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if body.Count != 3 || len(body.Accepted) != 3 || body.ModelVersion != 2 {
		t.Errorf("response = %+v", body)
	}
}

func TestAddRatings_FormField(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()

		m := newMockRecommender()
		form := url.Values{"key": {"10,5\n20,1"}}
		req := httptest.NewRequest(http.MethodPost, "/9/ratings", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec, _ := doRequest(t, newTestRouter(m), req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		if len(m.added) != 2 || m.added[1] != (recommend.Rating{UserID: 9, MovieID: 20, Score: 1}) {
			t.Errorf("added = %v", m.added)
		}
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if err := mw.WriteField("key", "30,2.5"); err != nil {
			t.Fatal(err)
		}
		if err := mw.Close(); err != nil {
			t.Fatal(err)
		}

		m := newMockRecommender()
		req := httptest.NewRequest(http.MethodPost, "/9/ratings", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec, _ := doRequest(t, newTestRouter(m), req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		if len(m.added) != 1 || m.added[0].Score != 2.5 {
			t.Errorf("added = %v", m.added)
		}
	})
}

func TestAddRatings_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "empty", path: "/1/ratings", body: ""},
		{name: "missing_score", path: "/1/ratings", body: "1,4\n2"},
		{name: "extra_field", path: "/1/ratings", body: "1,4,5"},
		{name: "bad_movie", path: "/1/ratings", body: "one,4"},
		{name: "bad_score", path: "/1/ratings", body: "1,great"},
		{name: "nan_score", path: "/1/ratings", body: "1,NaN"},
		{name: "inf_score", path: "/1/ratings", body: "1,+Inf"},
		{name: "negative_movie", path: "/1/ratings", body: "-1,3"},
		{name: "bad_user", path: "/x/ratings", body: "1,3"},
		{name: "over_limit", path: "/1/ratings", body: "1,1\n2,2\n3,3\n4,4\n5,5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMockRecommender()
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec, resp := doRequest(t, newTestRouter(m), req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			if resp.Error == nil || resp.Error.Code != codeValidation {
				t.Errorf("error = %+v", resp.Error)
			}
			if len(m.added) != 0 {
				t.Errorf("nothing should be stored, got %v", m.added)
			}
		})
	}
}

func TestAddRatings_TrainingFailure(t *testing.T) {
	t.Parallel()

	m := newMockRecommender()
	m.err = fmt.Errorf("%w: diverged", recommend.ErrTraining)
	req := httptest.NewRequest(http.MethodPost, "/1/ratings", strings.NewReader("1,4"))

	rec, resp := doRequest(t, newTestRouter(m), req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeTraining {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestParseRatingLines(t *testing.T) {
	t.Parallel()

	got, verr := parseRatingLines("  1, 4.5 \n\n 2 ,3\n")
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	want := []RatingInput{{MovieID: 1, Score: 4.5}, {MovieID: 2, Score: 3}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, verr := parseRatingLines("1,4\nbad"); verr == nil {
		t.Error("expected error for malformed second line")
	} else if !strings.Contains(verr.Error(), "line 2") {
		t.Errorf("error should name line 2: %v", verr)
	}

	if got, verr := parseRatingLines("   \n "); verr != nil || got != nil {
		t.Errorf("blank payload = %v, %v; want nil, nil", got, verr)
	}
}
