// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// RatingsStore is an append-only collection of rating observations.
//
// A RatingsStore value is never modified after construction. Append returns a
// new store containing the old ratings followed by the new ones, which lets the
// engine build the next snapshot without disturbing readers of the current one.
type RatingsStore struct {
	ratings []Rating

	// movies is the set of distinct movie IDs with at least one rating.
	movies mapset.Set[int]

	// ratedBy maps a user ID to the movies that user has rated.
	ratedBy map[int]mapset.Set[int]
}

// NewRatingsStore builds a store from an initial rating sequence.
func NewRatingsStore(initial []Rating) *RatingsStore {
	ratings := make([]Rating, len(initial))
	copy(ratings, initial)
	return newRatingsStore(ratings)
}

func newRatingsStore(ratings []Rating) *RatingsStore {
	s := &RatingsStore{
		ratings: ratings,
		movies:  mapset.NewThreadUnsafeSet[int](),
		ratedBy: make(map[int]mapset.Set[int]),
	}
	for _, r := range ratings {
		s.movies.Add(r.MovieID)
		set, ok := s.ratedBy[r.UserID]
		if !ok {
			set = mapset.NewThreadUnsafeSet[int]()
			s.ratedBy[r.UserID] = set
		}
		set.Add(r.MovieID)
	}
	return s
}

// Append returns a store holding the existing ratings followed by added.
// Duplicates are kept and unknown IDs are accepted.
func (s *RatingsStore) Append(added []Rating) *RatingsStore {
	ratings := make([]Rating, 0, len(s.ratings)+len(added))
	ratings = append(ratings, s.ratings...)
	ratings = append(ratings, added...)
	return newRatingsStore(ratings)
}

// All returns the stored ratings in insertion order. Callers must not modify the slice.
func (s *RatingsStore) All() []Rating {
	return s.ratings
}

// Len returns the number of stored ratings.
func (s *RatingsStore) Len() int {
	return len(s.ratings)
}

// UserCount returns the number of distinct users.
func (s *RatingsStore) UserCount() int {
	return len(s.ratedBy)
}

// MovieIDs returns the distinct rated movie IDs.
func (s *RatingsStore) MovieIDs() mapset.Set[int] {
	return s.movies
}

// UnratedBy returns the rated movie IDs that userID has not rated.
func (s *RatingsStore) UnratedBy(userID int) mapset.Set[int] {
	rated, ok := s.ratedBy[userID]
	if !ok {
		return s.movies.Clone()
	}
	return s.movies.Difference(rated)
}

// HasRated reports whether userID has at least one stored rating for movieID.
func (s *RatingsStore) HasRated(userID, movieID int) bool {
	rated, ok := s.ratedBy[userID]
	return ok && rated.Contains(movieID)
}
