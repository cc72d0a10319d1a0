// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"reflect"
	"slices"
	"testing"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	c := NewCatalog([]Movie{
		{ID: 1, Title: "Toy Story (1995)", Genres: "Adventure|Animation"},
		{ID: 2, Title: "Jumanji (1995)", Genres: "Adventure"},
		{ID: 2, Title: "Jumanji (1995) [dup]", Genres: "Adventure"},
	})

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if title, ok := c.Title(1); !ok || title != "Toy Story (1995)" {
		t.Errorf("Title(1) = %q, %v", title, ok)
	}
	if title, _ := c.Title(2); title != "Jumanji (1995) [dup]" {
		t.Errorf("Title(2) = %q, want last duplicate to win", title)
	}
	if _, ok := c.Movie(3); ok {
		t.Error("Movie(3) found, want missing")
	}
}

func TestRatingsStore_AppendLeavesReceiverUnchanged(t *testing.T) {
	t.Parallel()

	initial := []Rating{{UserID: 1, MovieID: 10, Score: 4}}
	base := NewRatingsStore(initial)
	initial[0].Score = 1 // caller mutation must not leak into the store

	next := base.Append([]Rating{{UserID: 1, MovieID: 10, Score: 5}, {UserID: 2, MovieID: 20, Score: 3}})

	if base.Len() != 1 {
		t.Errorf("base.Len() = %d, want 1", base.Len())
	}
	if base.All()[0].Score != 4 {
		t.Errorf("base score = %v, want 4", base.All()[0].Score)
	}
	if next.Len() != 3 {
		t.Errorf("next.Len() = %d, want 3", next.Len())
	}
	if base.MovieIDs().Contains(20) {
		t.Error("base store sees movie added to next")
	}
	if !next.HasRated(2, 20) {
		t.Error("next.HasRated(2, 20) = false")
	}
	if next.UserCount() != 2 {
		t.Errorf("next.UserCount() = %d, want 2", next.UserCount())
	}
}

func TestRatingsStore_UnratedBy(t *testing.T) {
	t.Parallel()

	s := NewRatingsStore([]Rating{
		{UserID: 1, MovieID: 10, Score: 4},
		{UserID: 1, MovieID: 10, Score: 2},
		{UserID: 2, MovieID: 20, Score: 3},
		{UserID: 3, MovieID: 30, Score: 3},
	})

	tests := []struct {
		name   string
		userID int
		want   []int
	}{
		{name: "excludes own movies", userID: 1, want: []int{20, 30}},
		{name: "other user", userID: 2, want: []int{10, 30}},
		{name: "unknown user sees every rated movie", userID: 99, want: []int{10, 20, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := s.UnratedBy(tt.userID).ToSlice()
			slices.Sort(got)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UnratedBy(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}

	// Clone for unknown users must not alias the store's movie set
	s.UnratedBy(99).Add(40)
	if s.MovieIDs().Contains(40) {
		t.Error("UnratedBy result aliases the store movie set")
	}
}

func TestRecomputePopularity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ratings []Rating
		want    map[int]PopularityEntry
	}{
		{
			name:    "empty",
			ratings: nil,
			want:    map[int]PopularityEntry{},
		},
		{
			name: "counts duplicates and averages scores",
			ratings: []Rating{
				{UserID: 1, MovieID: 1, Score: 5},
				{UserID: 1, MovieID: 1, Score: 3},
				{UserID: 2, MovieID: 2, Score: 2},
			},
			want: map[int]PopularityEntry{
				1: {MovieID: 1, RatingCount: 2, AverageScore: 4},
				2: {MovieID: 2, RatingCount: 1, AverageScore: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := RecomputePopularity(tt.ratings)
			if p.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", p.Len(), len(tt.want))
			}
			for id, want := range tt.want {
				got, ok := p.Entry(id)
				if !ok || got != want {
					t.Errorf("Entry(%d) = %+v, %v; want %+v", id, got, ok, want)
				}
				if count, _ := p.Count(id); count != want.RatingCount {
					t.Errorf("Count(%d) = %d, want %d", id, count, want.RatingCount)
				}
			}
		})
	}
}

func TestPopularityIndex_CountMissing(t *testing.T) {
	t.Parallel()

	p := RecomputePopularity([]Rating{{UserID: 1, MovieID: 1, Score: 4}})
	if _, ok := p.Count(2); ok {
		t.Error("Count(2) found, want missing")
	}
	counts := p.Counts()
	counts[1] = 100
	if c, _ := p.Count(1); c != 1 {
		t.Error("Counts() returned a map aliasing the index")
	}
}
