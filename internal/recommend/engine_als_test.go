// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerank/internal/recommend"
	"github.com/tomtom215/cinerank/internal/recommend/algorithms"
)

func TestEngineWithALS_EmptyStoreThenWrites(t *testing.T) {
	t.Parallel()

	catalog := recommend.NewCatalog([]recommend.Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}})
	e, err := recommend.NewEngine(recommend.DefaultConfig(), catalog, algorithms.NewALSTrainer(2), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	ctx := context.Background()

	if err := e.Bootstrap(ctx, nil); err != nil {
		t.Fatalf("Bootstrap() with empty store error = %v", err)
	}

	if _, err := e.AddRatings(ctx, []recommend.Rating{{UserID: 7, MovieID: 1, Score: 5}}); err != nil {
		t.Fatalf("AddRatings() error = %v", err)
	}
	counts, _ := e.PopularityCounts()
	if !reflect.DeepEqual(counts, map[int]int{1: 1}) {
		t.Errorf("counts = %v, want map[1:1]", counts)
	}

	top, err := e.TopKForUser(ctx, 7, 5)
	if err != nil {
		t.Fatalf("TopKForUser() error = %v", err)
	}
	if len(top) != 0 {
		t.Errorf("TopKForUser() = %v, want empty (only movie already rated)", top)
	}

	if _, err := e.AddRatings(ctx, []recommend.Rating{{UserID: 7, MovieID: 2, Score: 3}}); err != nil {
		t.Fatalf("second AddRatings() error = %v", err)
	}
	for _, movieID := range []int{1, 2} {
		recs, err := e.RateForMovies(ctx, 7, []int{movieID})
		if err != nil {
			t.Fatalf("RateForMovies(7, [%d]) error = %v", movieID, err)
		}
		if len(recs) != 1 || recs[0].RatingCount != 1 {
			t.Errorf("RateForMovies(7, [%d]) = %v, want one record with count 1", movieID, recs)
		}
	}
	if got := e.GetStatus().ModelVersion; got != 3 {
		t.Errorf("ModelVersion = %d, want 3", got)
	}
}

func TestEngineWithALS_TopKProperties(t *testing.T) {
	t.Parallel()

	var movies []recommend.Movie
	var ratings []recommend.Rating
	for m := 1; m <= 12; m++ {
		movies = append(movies, recommend.Movie{ID: m, Title: "Movie", Genres: "Drama"})
	}
	// 40 users rate movies by parity; movie 12 stays below the popularity floor
	for u := 1; u <= 40; u++ {
		for m := 1; m <= 11; m++ {
			if (u+m)%4 == 0 {
				continue
			}
			score := 2.0
			if (u%2 == 0) == (m%2 == 0) {
				score = 5
			}
			ratings = append(ratings, recommend.Rating{UserID: u, MovieID: m, Score: score})
		}
		if u <= 10 {
			ratings = append(ratings, recommend.Rating{UserID: u, MovieID: 12, Score: 5})
		}
	}

	e, err := recommend.NewEngine(recommend.DefaultConfig(), recommend.NewCatalog(movies), algorithms.NewALSTrainer(4), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	ctx := context.Background()
	if err := e.Bootstrap(ctx, ratings); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	rated := make(map[int]map[int]bool)
	for _, r := range ratings {
		if rated[r.UserID] == nil {
			rated[r.UserID] = make(map[int]bool)
		}
		rated[r.UserID][r.MovieID] = true
	}

	for u := 1; u <= 40; u++ {
		for _, k := range []int{0, 1, 3, 20} {
			recs, err := e.TopKForUser(ctx, u, k)
			if err != nil {
				t.Fatalf("TopKForUser(%d, %d) error = %v", u, k, err)
			}
			if len(recs) > k {
				t.Errorf("TopKForUser(%d, %d) returned %d records", u, k, len(recs))
			}
			for i, r := range recs {
				if rated[u][r.MovieID] {
					t.Errorf("TopKForUser(%d, %d) includes rated movie %d", u, k, r.MovieID)
				}
				if r.RatingCount < 25 {
					t.Errorf("TopKForUser(%d, %d) includes movie %d with %d ratings", u, k, r.MovieID, r.RatingCount)
				}
				if i > 0 && recs[i-1].PredictedScore < r.PredictedScore {
					t.Errorf("TopKForUser(%d, %d) not sorted descending", u, k)
				}
			}
		}
	}
}
