// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/recommend"
)

// CSVLoader reads both files with encoding/csv so quoted titles containing
// commas parse correctly.
type CSVLoader struct {
	RatingsPath string
	MoviesPath  string
}

// Load reads the ratings and movies files.
func (l *CSVLoader) Load(ctx context.Context) (*Dataset, error) {
	ratings, err := readCSV(ctx, l.RatingsPath, 3, parseRatingRecord)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	movies, err := readCSV(ctx, l.MoviesPath, 3, parseMovieRecord)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}

	logging.Info().
		Str("loader", LoaderCSV).
		Int("ratings", len(ratings)).
		Int("movies", len(movies)).
		Msg("Dataset loaded")
	return &Dataset{Ratings: ratings, Movies: movies}, nil
}

// readCSV skips the header row and parses every following record.
func readCSV[T any](ctx context.Context, path string, minFields int, parse func([]string) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var out []T
	for line := 2; ; line++ {
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		if len(rec) < minFields {
			return nil, fmt.Errorf("%w: %s line %d: want %d fields, got %d", ErrMalformedRow, path, line, minFields, len(rec))
		}

		v, err := parse(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrMalformedRow, path, line, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseRatingRecord(rec []string) (recommend.Rating, error) {
	userID, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return recommend.Rating{}, fmt.Errorf("user id: %w", err)
	}
	movieID, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil {
		return recommend.Rating{}, fmt.Errorf("movie id: %w", err)
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil {
		return recommend.Rating{}, fmt.Errorf("rating: %w", err)
	}
	return recommend.Rating{UserID: userID, MovieID: movieID, Score: score}, nil
}

func parseMovieRecord(rec []string) (recommend.Movie, error) {
	id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return recommend.Movie{}, fmt.Errorf("movie id: %w", err)
	}
	return recommend.Movie{ID: id, Title: rec[1], Genres: rec[2]}, nil
}
