// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/models"
	"github.com/tomtom215/cinerank/internal/validation"
)

// TopRatings handles GET /{userID}/ratings/top/{count}.
func (h *Handler) TopRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, verr := parsePathInt(r, "userID", "user_id")
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	count, verr := parsePathInt(r, "count", "count")
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	req := TopRatingsRequest{UserID: userID, Count: count}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if req.Count > h.limits.MaxK {
		respondValidationError(w, r, maxLimitError("count", h.limits.MaxK))
		return
	}

	logging.CtxDebug(r.Context()).Int("user_id", req.UserID).Int("count", req.Count).Msg("Top ratings requested")

	recs, err := h.engine.GetTopRatings(r.Context(), req.UserID, req.Count)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, recs, models.Metadata{
		QueryTimeMS:  time.Since(start).Milliseconds(),
		ModelVersion: h.engine.GetStatus().ModelVersion,
		Count:        len(recs),
	})
}

// MovieRating handles GET /{userID}/ratings/{movieID}. The body is a list
// with zero or one prediction.
func (h *Handler) MovieRating(w http.ResponseWriter, r *http.Request) {
	userID, verr := parsePathInt(r, "userID", "user_id")
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	movieID, verr := parsePathInt(r, "movieID", "movie_id")
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	h.rateMovies(w, r, MovieRatingsRequest{UserID: userID, MovieIDs: []int{movieID}})
}

// MovieRatings handles GET /{userID}/ratings?movies=1,2,3.
func (h *Handler) MovieRatings(w http.ResponseWriter, r *http.Request) {
	userID, verr := parsePathInt(r, "userID", "user_id")
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	movieIDs, verr := parseIntList(r.URL.Query().Get("movies"), "movies")
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	h.rateMovies(w, r, MovieRatingsRequest{UserID: userID, MovieIDs: movieIDs})
}

func (h *Handler) rateMovies(w http.ResponseWriter, r *http.Request, req MovieRatingsRequest) {
	start := time.Now()

	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if len(req.MovieIDs) > h.limits.MaxMoviesPerQuery {
		respondValidationError(w, r, maxLimitError("movies", h.limits.MaxMoviesPerQuery))
		return
	}

	logging.CtxDebug(r.Context()).Int("user_id", req.UserID).Ints("movies", req.MovieIDs).Msg("Movie ratings requested")

	recs, err := h.engine.GetRatingsForMovieIDs(r.Context(), req.UserID, req.MovieIDs)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, recs, models.Metadata{
		QueryTimeMS:  time.Since(start).Milliseconds(),
		ModelVersion: h.engine.GetStatus().ModelVersion,
		Count:        len(recs),
	})
}

// AddRatings handles POST /{userID}/ratings. The engine retrains before the
// call returns; the request context is detached so a disconnect does not
// abort training.
func (h *Handler) AddRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, verr := parsePathInt(r, "userID", "user_id")
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	payload, err := readRatingsPayload(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, codeValidation, "Request body too large", nil)
			return
		}
		respondError(w, r, http.StatusBadRequest, codeValidation, "Could not read ratings", err)
		return
	}

	lines, verr := parseRatingLines(payload)
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	req := AddRatingsRequest{UserID: userID, Ratings: lines}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if len(req.Ratings) > h.limits.MaxRatingsPerWrite {
		respondValidationError(w, r, maxLimitError("ratings", h.limits.MaxRatingsPerWrite))
		return
	}

	accepted, err := h.engine.AddRatings(context.WithoutCancel(r.Context()), req.toRatings())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	version := h.engine.GetStatus().ModelVersion
	logging.CtxInfo(r.Context()).
		Int("user_id", req.UserID).
		Int("ratings", len(accepted)).
		Int64("model_version", version).
		Dur("duration", time.Since(start)).
		Msg("Ratings added")

	respondSuccess(w, r, models.AddRatingsResponse{
		Accepted:     accepted,
		Count:        len(accepted),
		ModelVersion: version,
	}, models.Metadata{
		QueryTimeMS:  time.Since(start).Milliseconds(),
		ModelVersion: version,
		Count:        len(accepted),
	})
}
