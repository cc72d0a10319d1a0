// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package algorithms implements the model trainers used by the recommendation engine.
//
// Each trainer implements recommend.Trainer and returns an immutable
// recommend.Model, so a model can be published to concurrent readers without
// locking while the next one trains.
//
// # Explicit ALS
//
// ALSTrainer factorizes the explicit rating matrix R ≈ X·Yᵀ by alternating
// least squares with weighted-lambda regularization: every user (and item)
// row is solved in closed form with the penalty scaled by its number of
// ratings. Item factors are initialized from a seeded random source, so equal
// inputs and hyperparameters produce equal models.
//
// # Thread Safety
//
// Trainers keep only counters and are safe for concurrent use. Row solves
// within one training run are spread across a fixed number of goroutines.
package algorithms
