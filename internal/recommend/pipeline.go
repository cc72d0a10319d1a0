// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/tomtom215/cinerank/internal/metrics"
)

const (
	opRateForMovies = "rate_for_movies"
	opTopK          = "top_k"
)

// RateForMovies predicts userID's score for each movie in movieIDs.
// Duplicates and movies the user already rated are kept. Movies unknown to
// the model, the Catalog or the Popularity Index are omitted.
func (e *Engine) RateForMovies(ctx context.Context, userID int, movieIDs []int) ([]Recommendation, error) {
	start := time.Now()
	e.requestCount.Add(1)

	recs, err := e.rateForMovies(ctx, userID, movieIDs)
	if err != nil {
		e.errorCount.Add(1)
	}
	metrics.RecordQuery(opRateForMovies, time.Since(start), len(recs), err)
	return recs, err
}

// GetRatingsForMovieIDs is RateForMovies under the name used by the HTTP layer.
func (e *Engine) GetRatingsForMovieIDs(ctx context.Context, userID int, movieIDs []int) ([]Recommendation, error) {
	return e.RateForMovies(ctx, userID, movieIDs)
}

func (e *Engine) rateForMovies(ctx context.Context, userID int, movieIDs []int) ([]Recommendation, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}

	pairs := lo.Map(movieIDs, func(movieID int, _ int) Pair {
		return Pair{UserID: userID, MovieID: movieID}
	})

	return e.predictForPairs(ctx, s, pairs)
}

// TopKForUser returns up to k movies the user has not rated, each with at
// least MinRatingCount ratings, ordered by predicted score descending and by
// movie ID ascending on ties.
func (e *Engine) TopKForUser(ctx context.Context, userID, k int) ([]Recommendation, error) {
	start := time.Now()
	e.requestCount.Add(1)

	recs, err := e.topKForUser(ctx, userID, k)
	if err != nil {
		e.errorCount.Add(1)
	}
	metrics.RecordQuery(opTopK, time.Since(start), len(recs), err)
	return recs, err
}

// GetTopRatings is TopKForUser under the name used by the HTTP layer.
func (e *Engine) GetTopRatings(ctx context.Context, userID, count int) ([]Recommendation, error) {
	return e.TopKForUser(ctx, userID, count)
}

func (e *Engine) topKForUser(ctx context.Context, userID, k int) ([]Recommendation, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, k)
	}

	s, err := e.current()
	if err != nil {
		return nil, err
	}

	if k == 0 {
		return []Recommendation{}, nil
	}

	key := fmt.Sprintf("v%d:u%d:k%d", s.version, userID, k)
	if recs, ok := e.cacheGet(key); ok {
		return recs, nil
	}

	candidates := s.ratings.UnratedBy(userID).ToSlice()
	slices.Sort(candidates)

	pairs := lo.Map(candidates, func(movieID int, _ int) Pair {
		return Pair{UserID: userID, MovieID: movieID}
	})

	predicted, err := e.predictForPairs(ctx, s, pairs)
	if err != nil {
		return nil, err
	}

	popular := lo.Filter(predicted, func(r Recommendation, _ int) bool {
		return r.RatingCount >= e.config.MinRatingCount
	})

	sort.SliceStable(popular, func(i, j int) bool {
		if popular[i].PredictedScore != popular[j].PredictedScore {
			return popular[i].PredictedScore > popular[j].PredictedScore
		}
		return popular[i].MovieID < popular[j].MovieID
	})

	top := lo.Subset(popular, 0, uint(k))
	e.cacheSet(key, top)

	return top, nil
}

// predictForPairs runs the model over pairs, inner-joins the predictions with
// the Catalog and the Popularity Index of s, and reshapes each match into a
// Recommendation. Predictions without a title or a rating count are dropped.
func (e *Engine) predictForPairs(ctx context.Context, s *snapshot, pairs []Pair) ([]Recommendation, error) {
	if len(pairs) == 0 {
		return []Recommendation{}, nil
	}

	predictions, err := s.model.Predict(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	return lo.FilterMap(predictions, func(p Prediction, _ int) (Recommendation, bool) {
		title, ok := e.catalog.Title(p.MovieID)
		if !ok {
			return Recommendation{}, false
		}
		count, ok := s.popularity.Count(p.MovieID)
		if !ok {
			return Recommendation{}, false
		}
		return Recommendation{
			MovieID:        p.MovieID,
			Title:          title,
			PredictedScore: p.Score,
			RatingCount:    count,
		}, true
	}), nil
}

// cacheGet returns a copy of a cached top-k result.
func (e *Engine) cacheGet(key string) ([]Recommendation, bool) {
	if e.cache == nil {
		return nil, false
	}

	recs, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil, false
	}

	e.cacheHits.Add(1)
	return slices.Clone(recs), true
}

func (e *Engine) cacheSet(key string, recs []Recommendation) {
	if e.cache == nil {
		return
	}
	e.cache.Set(key, slices.Clone(recs))
}
