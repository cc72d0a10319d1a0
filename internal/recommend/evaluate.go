// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/samber/lo"
)

// ErrNoOverlap is returned by RMSE when the model can score none of the held-out ratings.
var ErrNoOverlap = errors.New("model scored none of the evaluation ratings")

// SplitRatings randomly assigns every rating to one of len(weights) partitions
// with probability proportional to its weight. Equal seeds give equal splits.
func SplitRatings(ratings []Rating, weights []float64, seed int64) ([][]Rating, error) {
	if len(weights) == 0 {
		return nil, errors.New("at least one split weight is required")
	}

	var total float64
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("split weights must be non-negative, got %f", w)
		}
		total += w
	}
	if total == 0 {
		return nil, errors.New("split weights must not all be zero")
	}

	bounds := make([]float64, len(weights))
	var acc float64
	for i, w := range weights {
		acc += w / total
		bounds[i] = acc
	}
	bounds[len(bounds)-1] = 1

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)+1)) //nolint:gosec // reproducible split
	splits := make([][]Rating, len(weights))
	for _, r := range ratings {
		x := rng.Float64()
		for i, b := range bounds {
			if x < b {
				splits[i] = append(splits[i], r)
				break
			}
		}
	}

	return splits, nil
}

// RMSE returns the root mean squared error of model over held-out ratings and
// the number of ratings it could score. Ratings for unseen users or movies are skipped.
func RMSE(ctx context.Context, model Model, heldOut []Rating) (float64, int, error) {
	pairs := lo.Map(heldOut, func(r Rating, _ int) Pair {
		return Pair{UserID: r.UserID, MovieID: r.MovieID}
	})

	predictions, err := model.Predict(ctx, lo.Uniq(pairs))
	if err != nil {
		return 0, 0, fmt.Errorf("predict: %w", err)
	}

	predicted := lo.SliceToMap(predictions, func(p Prediction) (Pair, float64) {
		return Pair{UserID: p.UserID, MovieID: p.MovieID}, p.Score
	})

	var sum float64
	var n int
	for _, r := range heldOut {
		score, ok := predicted[Pair{UserID: r.UserID, MovieID: r.MovieID}]
		if !ok {
			continue
		}
		diff := score - r.Score
		sum += diff * diff
		n++
	}

	if n == 0 {
		return 0, 0, ErrNoOverlap
	}
	return math.Sqrt(sum / float64(n)), n, nil
}

// RankResult is the validation error of one candidate rank.
type RankResult struct {
	Rank int     `json:"rank"`
	RMSE float64 `json:"rmse"`
}

// RankSelection is the outcome of SelectRank.
type RankSelection struct {
	Best       RankResult   `json:"best"`
	Candidates []RankResult `json:"candidates"`
}

// SelectRank trains one model per candidate rank on train, scores each on
// validation, and returns the rank with the lowest RMSE. Ties keep the earlier rank.
//
//nolint:gocritic // hugeParam: base passed by value for immutability
func SelectRank(ctx context.Context, trainer Trainer, train, validation []Rating, ranks []int, base Hyperparameters) (RankSelection, error) {
	if len(ranks) == 0 {
		return RankSelection{}, errors.New("at least one candidate rank is required")
	}

	selection := RankSelection{Best: RankResult{RMSE: math.Inf(1)}}
	for _, rank := range ranks {
		params := base
		params.Rank = rank

		model, err := trainer.Train(ctx, train, params)
		if err != nil {
			return RankSelection{}, fmt.Errorf("train rank %d: %w", rank, err)
		}

		rmse, _, err := RMSE(ctx, model, validation)
		if err != nil {
			return RankSelection{}, fmt.Errorf("evaluate rank %d: %w", rank, err)
		}

		result := RankResult{Rank: rank, RMSE: rmse}
		selection.Candidates = append(selection.Candidates, result)
		if rmse < selection.Best.RMSE {
			selection.Best = result
		}
	}

	return selection, nil
}
