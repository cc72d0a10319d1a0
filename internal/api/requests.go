// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/tomtom215/cinerank/internal/recommend"
	"github.com/tomtom215/cinerank/internal/validation"
)

// maxRatingsBodyBytes caps POST /{userID}/ratings bodies.
const maxRatingsBodyBytes = 8 << 20

// ratingsFormField is the form field holding the rating lines.
const ratingsFormField = "key"

// TopRatingsRequest is the validated input of GET /{userID}/ratings/top/{count}.
type TopRatingsRequest struct {
	UserID int `json:"user_id" validate:"gte=0"`
	Count  int `json:"count" validate:"gte=0"`
}

// MovieRatingsRequest is the validated input of the prediction endpoints.
type MovieRatingsRequest struct {
	UserID   int   `json:"user_id" validate:"gte=0"`
	MovieIDs []int `json:"movies" validate:"required,min=1,dive,gte=0"`
}

// AddRatingsRequest is the validated input of POST /{userID}/ratings.
type AddRatingsRequest struct {
	UserID  int           `json:"user_id" validate:"gte=0"`
	Ratings []RatingInput `json:"ratings" validate:"required,min=1,dive"`
}

// RatingInput is one "movie_id,rating" line.
type RatingInput struct {
	MovieID int     `json:"movie_id" validate:"gte=0"`
	Score   float64 `json:"rating" validate:"finite"`
}

// toRatings attaches the path user to every line.
func (req *AddRatingsRequest) toRatings() []recommend.Rating {
	return lo.Map(req.Ratings, func(in RatingInput, _ int) recommend.Rating {
		return recommend.Rating{UserID: req.UserID, MovieID: in.MovieID, Score: in.Score}
	})
}

// readRatingsPayload returns the raw rating lines from the "key" form field
// of a form body, or the whole body otherwise.
func readRatingsPayload(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRatingsBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxRatingsBodyBytes); err != nil {
			return "", fmt.Errorf("parse multipart form: %w", err)
		}
		return r.PostForm.Get(ratingsFormField), nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return "", fmt.Errorf("parse form: %w", err)
		}
		return r.PostForm.Get(ratingsFormField), nil
	default:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return "", fmt.Errorf("read body: %w", err)
		}
		return string(body), nil
	}
}

// parseRatingLines parses newline-separated "movie_id,rating" lines. Blank
// lines and surrounding whitespace are ignored. The first malformed line
// fails the whole payload.
func parseRatingLines(payload string) ([]RatingInput, *validation.RequestValidationError) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, nil
	}

	var out []RatingInput
	for i, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lineNo := i + 1
		field := fmt.Sprintf("ratings[line %d]", lineNo)

		movieRaw, scoreRaw, ok := strings.Cut(line, ",")
		if !ok || strings.Contains(scoreRaw, ",") {
			return nil, fieldError(field, "format", "movie_id,rating",
				fmt.Sprintf("line %d must be \"movie_id,rating\", got %q", lineNo, line))
		}

		movieID, err := strconv.Atoi(strings.TrimSpace(movieRaw))
		if err != nil {
			return nil, fieldError(field, "int", "",
				fmt.Sprintf("line %d: movie_id must be an integer, got %q", lineNo, movieRaw))
		}

		score, err := strconv.ParseFloat(strings.TrimSpace(scoreRaw), 64)
		if err != nil {
			return nil, fieldError(field, "float", "",
				fmt.Sprintf("line %d: rating must be a number, got %q", lineNo, scoreRaw))
		}

		out = append(out, RatingInput{MovieID: movieID, Score: score})
	}
	return out, nil
}
