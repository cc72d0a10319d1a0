// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package models holds the JSON envelope and response bodies shared by the
// HTTP handlers. Domain types (Rating, Recommendation, MovieStats) live in
// the recommend package and are embedded in Data as-is.
package models
