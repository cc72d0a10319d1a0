// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package dataset loads the MovieLens-style source of truth: a ratings file
// (userId,movieId,rating[,timestamp]) and a movies file (movieId,title,genres),
// each with a header row.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tomtom215/cinerank/internal/recommend"
)

// Loader names accepted by NewLoader.
const (
	LoaderCSV    = "csv"
	LoaderDuckDB = "duckdb"
)

var (
	// ErrMalformedRow is returned when a row has missing or non-numeric fields.
	ErrMalformedRow = errors.New("malformed dataset row")

	// ErrUnknownLoader is returned by NewLoader for an unsupported loader name.
	ErrUnknownLoader = errors.New("unknown dataset loader")
)

// Dataset is the initial ratings and catalog read at startup.
type Dataset struct {
	Ratings []recommend.Rating
	Movies  []recommend.Movie
}

// Loader reads a Dataset from its source.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Config locates the dataset files.
type Config struct {
	// Loader is "csv" or "duckdb".
	Loader string

	// Path is the dataset directory.
	Path string

	// RatingsFile and MoviesFile are relative to Path.
	RatingsFile string
	MoviesFile  string
}

// RatingsPath returns the full path of the ratings file.
func (c Config) RatingsPath() string {
	return filepath.Join(c.Path, c.RatingsFile)
}

// MoviesPath returns the full path of the movies file.
func (c Config) MoviesPath() string {
	return filepath.Join(c.Path, c.MoviesFile)
}

// NewLoader returns the loader selected by cfg.Loader. An empty name selects CSV.
func NewLoader(cfg Config) (Loader, error) {
	if cfg.RatingsFile == "" {
		cfg.RatingsFile = "ratings.csv"
	}
	if cfg.MoviesFile == "" {
		cfg.MoviesFile = "movies.csv"
	}

	switch cfg.Loader {
	case "", LoaderCSV:
		return &CSVLoader{RatingsPath: cfg.RatingsPath(), MoviesPath: cfg.MoviesPath()}, nil
	case LoaderDuckDB:
		return &DuckDBLoader{RatingsPath: cfg.RatingsPath(), MoviesPath: cfg.MoviesPath()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLoader, cfg.Loader)
	}
}
