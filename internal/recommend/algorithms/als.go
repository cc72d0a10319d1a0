// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/tomtom215/cinerank/internal/recommend"
)

// DefaultALSWorkers is used when NewALSTrainer is given a non-positive worker count.
const DefaultALSWorkers = 4

// ALSTrainer implements Alternating Least Squares for explicit ratings.
//
// The objective function minimizes:
// sum_{(u,i) observed} (r_ui - x_u' * y_i)^2 + lambda * (sum_u n_u ||x_u||^2 + sum_i n_i ||y_i||^2)
//
// where n_u and n_i are the number of ratings of user u and item i.
// Every observation contributes, including repeated (user, item) ratings.
type ALSTrainer struct {
	BaseAlgorithm
	numWorkers int
}

// NewALSTrainer creates an ALS trainer that solves rows on numWorkers goroutines.
func NewALSTrainer(numWorkers int) *ALSTrainer {
	if numWorkers <= 0 {
		numWorkers = DefaultALSWorkers
	}
	return &ALSTrainer{
		BaseAlgorithm: NewBaseAlgorithm("als"),
		numWorkers:    numWorkers,
	}
}

// ALSModel is an immutable trained factorization.
type ALSModel struct {
	rank int

	// X is the user factor matrix (numUsers x rank)
	X [][]float64

	// Y is the item factor matrix (numItems x rank)
	Y [][]float64

	userIndex map[int]int
	itemIndex map[int]int
}

// observation is one rating mapped to matrix coordinates.
type observation struct {
	row   int
	score float64
}

// Train fits a model and returns it as a recommend.Model.
func (a *ALSTrainer) Train(ctx context.Context, ratings []recommend.Rating, params recommend.Hyperparameters) (recommend.Model, error) {
	model, err := a.Fit(ctx, ratings, params)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// Fit runs alternating least squares over ratings.
// An empty rating slice produces an empty model whose Predict returns nothing.
//
//nolint:gocritic // hugeParam: params passed by value for immutability
func (a *ALSTrainer) Fit(ctx context.Context, ratings []recommend.Rating, params recommend.Hyperparameters) (*ALSModel, error) {
	if params.Rank < 1 {
		return nil, fmt.Errorf("als: rank must be positive, got %d", params.Rank)
	}
	if params.Iterations < 1 {
		return nil, fmt.Errorf("als: iterations must be positive, got %d", params.Iterations)
	}
	if params.Regularization < 0 {
		return nil, fmt.Errorf("als: regularization must be non-negative, got %f", params.Regularization)
	}

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	m := &ALSModel{
		rank:      params.Rank,
		userIndex: make(map[int]int),
		itemIndex: make(map[int]int),
	}

	// Index users and items in first-seen order
	var userItems, itemUsers [][]observation
	for _, r := range ratings {
		if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
			return nil, fmt.Errorf("als: non-finite score for user %d movie %d", r.UserID, r.MovieID)
		}
		ui, ok := m.userIndex[r.UserID]
		if !ok {
			ui = len(userItems)
			m.userIndex[r.UserID] = ui
			userItems = append(userItems, nil)
		}
		ii, ok := m.itemIndex[r.MovieID]
		if !ok {
			ii = len(itemUsers)
			m.itemIndex[r.MovieID] = ii
			itemUsers = append(itemUsers, nil)
		}
		userItems[ui] = append(userItems[ui], observation{row: ii, score: r.Score})
		itemUsers[ii] = append(itemUsers[ii], observation{row: ui, score: r.Score})
	}

	numUsers := len(userItems)
	numItems := len(itemUsers)

	if numUsers == 0 || numItems == 0 {
		a.markTrained()
		return m, nil
	}

	m.X = newFactorMatrix(numUsers, params.Rank)
	m.Y = initItemFactors(numItems, params.Rank, params.Seed)

	lambda := params.Regularization
	for iter := 0; iter < params.Iterations; iter++ {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		// Fix Y, solve for X
		a.solveRows(m.X, m.Y, userItems, params.Rank, lambda)

		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		// Fix X, solve for Y
		a.solveRows(m.Y, m.X, itemUsers, params.Rank, lambda)
	}

	a.markTrained()
	return m, nil
}

// solveRows recomputes every row of target from the fixed matrix and the
// observations attached to each row.
func (a *ALSTrainer) solveRows(target, fixed [][]float64, obs [][]observation, rank int, lambda float64) {
	parallelRange(len(target), a.numWorkers, func(start, end int) {
		A := make([][]float64, rank)
		for f := range A {
			A[f] = make([]float64, rank)
		}
		b := make([]float64, rank)

		for row := start; row < end; row++ {
			target[row] = solveRow(A, b, fixed, obs[row], rank, lambda)
		}
	})
}

// solveRow computes (F' F + lambda * n * I)^-1 F' r for one row, where F holds
// the fixed factors of the n observed counterparts. A and b are scratch space.
//
//nolint:gocritic // A follows standard linear algebra notation
func solveRow(A [][]float64, b []float64, fixed [][]float64, obs []observation, rank int, lambda float64) []float64 {
	for f1 := 0; f1 < rank; f1++ {
		for f2 := 0; f2 < rank; f2++ {
			A[f1][f2] = 0
		}
		b[f1] = 0
	}

	for _, o := range obs {
		y := fixed[o.row]
		for f1 := 0; f1 < rank; f1++ {
			for f2 := f1; f2 < rank; f2++ {
				A[f1][f2] += y[f1] * y[f2]
			}
			b[f1] += o.score * y[f1]
		}
	}

	reg := lambda * float64(len(obs))
	for f1 := 0; f1 < rank; f1++ {
		A[f1][f1] += reg
		for f2 := f1 + 1; f2 < rank; f2++ {
			A[f2][f1] = A[f1][f2]
		}
	}

	return solveLinearSystem(A, b)
}

func newFactorMatrix(rows, rank int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, rank)
	}
	return m
}

// initItemFactors fills each row with Gaussian noise normalized to unit length.
func initItemFactors(rows, rank int, seed int64) [][]float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)) //nolint:gosec // deterministic init, not security sensitive
	m := newFactorMatrix(rows, rank)

	for i := range m {
		var norm float64
		for f := range m[i] {
			v := rng.NormFloat64()
			m[i][f] = v
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		for f := range m[i] {
			m[i][f] /= norm
		}
	}

	return m
}

// solveLinearSystem solves A*x = b using Cholesky decomposition.
//
//nolint:gocritic // A, L follow standard linear algebra notation
func solveLinearSystem(A [][]float64, b []float64) []float64 {
	n := len(b)

	// Cholesky decomposition: A = L * L'
	L := make([][]float64, n)
	for i := range L {
		L[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := A[i][j]
			for k := 0; k < j; k++ {
				sum -= L[i][k] * L[j][k]
			}

			if i == j {
				if sum <= 0 {
					// Not positive definite (lambda == 0 with too few observations)
					sum = 1e-10
				}
				L[i][j] = math.Sqrt(sum)
			} else if L[j][j] != 0 {
				L[i][j] = sum / L[j][j]
			}
		}
	}

	// Solve L * z = b (forward substitution)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= L[i][j] * z[j]
		}
		if L[i][i] != 0 {
			z[i] = sum / L[i][i]
		}
	}

	// Solve L' * x = z (back substitution)
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := z[i]
		for j := i + 1; j < n; j++ {
			sum -= L[j][i] * x[j]
		}
		if L[i][i] != 0 {
			x[i] = sum / L[i][i]
		}
	}

	return x
}

// Predict returns x_u' * y_i for every pair whose user and movie were seen in training.
func (m *ALSModel) Predict(ctx context.Context, pairs []recommend.Pair) ([]recommend.Prediction, error) {
	out := make([]recommend.Prediction, 0, len(pairs))

	for n, p := range pairs {
		if n%4096 == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		ui, ok := m.userIndex[p.UserID]
		if !ok {
			continue
		}
		ii, ok := m.itemIndex[p.MovieID]
		if !ok {
			continue
		}

		userVec := m.X[ui]
		itemVec := m.Y[ii]
		var score float64
		for f := range userVec {
			score += userVec[f] * itemVec[f]
		}

		out = append(out, recommend.Prediction{
			UserID:  p.UserID,
			MovieID: p.MovieID,
			Score:   score,
		})
	}

	return out, nil
}

// Rank returns the latent factor dimension.
func (m *ALSModel) Rank() int {
	return m.rank
}

// UserCount returns the number of users with factors.
func (m *ALSModel) UserCount() int {
	return len(m.userIndex)
}

// ItemCount returns the number of items with factors.
func (m *ALSModel) ItemCount() int {
	return len(m.itemIndex)
}

// Ensure interface compliance.
var (
	_ recommend.Trainer = (*ALSTrainer)(nil)
	_ recommend.Model   = (*ALSModel)(nil)
)
