// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import "errors"

var (
	// ErrNotReady is returned when a query arrives before the initial model is published.
	ErrNotReady = errors.New("recommendation engine not ready")

	// ErrAlreadyBootstrapped is returned when Bootstrap is called twice.
	ErrAlreadyBootstrapped = errors.New("recommendation engine already bootstrapped")

	// ErrInvalidRating is returned for write input that cannot be stored.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidCount is returned for a negative top-k count.
	ErrInvalidCount = errors.New("invalid recommendation count")

	// ErrTraining wraps failures raised by the trainer.
	ErrTraining = errors.New("model training failed")

	// ErrJournal wraps failures raised while persisting accepted ratings.
	ErrJournal = errors.New("ratings journal write failed")
)
