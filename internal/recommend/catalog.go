// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"github.com/samber/lo"
)

// Catalog is the read-only movie metadata store.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	movies map[int]Movie
}

// NewCatalog indexes movies by ID. When an ID repeats, the last entry wins.
func NewCatalog(movies []Movie) *Catalog {
	return &Catalog{
		movies: lo.SliceToMap(movies, func(m Movie) (int, Movie) {
			return m.ID, m
		}),
	}
}

// Movie returns the catalog entry for id.
func (c *Catalog) Movie(id int) (Movie, bool) {
	m, ok := c.movies[id]
	return m, ok
}

// Title returns the title for id.
func (c *Catalog) Title(id int) (string, bool) {
	m, ok := c.movies[id]
	return m.Title, ok
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}
