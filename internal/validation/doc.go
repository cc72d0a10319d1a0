// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package validation wraps a shared go-playground/validator instance for
// HTTP request structs.
//
// Beyond the built-in tags it registers "finite", which rejects NaN and
// infinite floats. Rating scores are otherwise unconstrained.
//
//	type ratingInput struct {
//	    MovieID int     `json:"movie_id"`
//	    Score   float64 `json:"score" validate:"finite"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, validation.ErrorCode, verr.Error(), verr)
//	}
package validation
