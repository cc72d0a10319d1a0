// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Command evaluate picks the latent factor rank for the recommendation model.

It loads the same configuration and dataset as the server, splits the ratings
into training, validation and test partitions (evaluate.weights, 60/20/20 by
default), trains one ALS model per candidate in evaluate.ranks and keeps the
rank with the lowest validation RMSE. The winner is retrained on the training
partition and scored once against the test partition.

Usage:

	CONFIG_PATH=config.yaml evaluate

Results are written as structured log lines. Set recommend.rank to the
reported best rank to use it in the server.
*/
package main
