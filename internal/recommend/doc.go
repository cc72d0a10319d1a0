// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package recommend implements the collaborative-filtering recommendation engine.
//
// # Architecture
//
// The engine owns three derived views of the rating history and keeps them
// consistent with each other:
//
//   - Ratings Store: append-only (user, movie, score) observations
//   - Popularity Index: per-movie rating count and average, recomputed in full
//   - Model: latent-factor model trained on the complete Ratings Store
//
// The Catalog (movie id to title and genres) is loaded once and shared
// read-only.
//
// # Write Path
//
// AddRatings appends to a copy of the Ratings Store, recomputes the Popularity
// Index from that copy, retrains the Model, and only then publishes the three
// together as a new snapshot. A failed retrain publishes nothing, so readers
// never see a store that is ahead of its model.
//
// # Read Path
//
// RateForMovies and TopKForUser predict through the Model, inner-join the
// predictions with the Catalog and the Popularity Index, and reshape them into
// Recommendation records. Movies missing from either join are dropped.
// TopKForUser additionally excludes movies the user already rated, applies a
// minimum rating count and returns the k best scores.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, catalog, algorithms.NewALSTrainer(cfg.Workers), logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Bootstrap(ctx, ratings); err != nil {
//	    return err
//	}
//
//	recs, err := engine.TopKForUser(ctx, userID, 10)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Writers are serialized by a mutex for
// the full append, recompute and retrain sequence. Readers load the current
// snapshot through an atomic pointer and never block on a retrain.
package recommend
