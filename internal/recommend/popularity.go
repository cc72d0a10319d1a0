// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"github.com/samber/lo"
)

// PopularityEntry is the derived rating summary for one movie.
type PopularityEntry struct {
	MovieID      int     `json:"movie_id"`
	RatingCount  int     `json:"rating_count"`
	AverageScore float64 `json:"average_score"`
}

// PopularityIndex maps a movie ID to its rating summary.
type PopularityIndex struct {
	entries map[int]PopularityEntry
}

// RecomputePopularity groups the full rating history by movie and counts each group.
// It always makes a full pass; there is no incremental update.
func RecomputePopularity(ratings []Rating) *PopularityIndex {
	groups := lo.GroupBy(ratings, func(r Rating) int {
		return r.MovieID
	})

	return &PopularityIndex{
		entries: lo.MapValues(groups, func(group []Rating, movieID int) PopularityEntry {
			total := lo.SumBy(group, func(r Rating) float64 {
				return r.Score
			})
			return PopularityEntry{
				MovieID:      movieID,
				RatingCount:  len(group),
				AverageScore: total / float64(len(group)),
			}
		}),
	}
}

// Count returns the number of ratings for movieID.
func (p *PopularityIndex) Count(movieID int) (int, bool) {
	e, ok := p.entries[movieID]
	return e.RatingCount, ok
}

// Entry returns the full summary for movieID.
func (p *PopularityIndex) Entry(movieID int) (PopularityEntry, bool) {
	e, ok := p.entries[movieID]
	return e, ok
}

// Counts returns a copy of the movie ID to rating count table.
func (p *PopularityIndex) Counts() map[int]int {
	return lo.MapValues(p.entries, func(e PopularityEntry, _ int) int {
		return e.RatingCount
	})
}

// Len returns the number of movies in the index.
func (p *PopularityIndex) Len() int {
	return len(p.entries)
}
