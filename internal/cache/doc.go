// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package cache provides a thread-safe in-memory LRU cache with TTL support.

The recommendation engine uses it to memoize top-k results between writes.
Keys embed the snapshot version, so entries for an older model are never
returned after a retrain; the engine also clears the cache on every publish.

# Usage

	c := cache.NewLRU[[]recommend.Recommendation](1024, 10*time.Minute)
	c.Set("v3:user:42:k:10", recs)
	if recs, ok := c.Get("v3:user:42:k:10"); ok {
	    // use cached value
	}

# Thread Safety

All methods take a single mutex. Get mutates recency order, so there is no
read-only fast path.
*/
package cache
