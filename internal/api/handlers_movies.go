// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/cinerank/internal/models"
)

// MovieStats handles GET /movies/{movieID}/stats. A catalog movie without
// ratings reports zero counts; a movie that is neither rated nor in the
// catalog is 404.
func (h *Handler) MovieStats(w http.ResponseWriter, r *http.Request) {
	movieID, verr := parsePathInt(r, "movieID", "movie_id")
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	stats, found, err := h.engine.MovieStats(movieID)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if !found {
		respondError(w, r, http.StatusNotFound, codeNotFound, fmt.Sprintf("Movie %d not found", movieID), nil)
		return
	}

	respondSuccess(w, r, stats, models.Metadata{
		ModelVersion: h.engine.GetStatus().ModelVersion,
	})
}
