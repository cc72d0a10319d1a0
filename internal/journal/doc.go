// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package journal persists accepted rating batches to BadgerDB so that
// ratings added over HTTP survive a restart.
//
// The recommendation engine writes a batch to the journal after the new
// model has trained and before the snapshot is published. On startup the
// server replays every journaled batch on top of the CSV dataset before
// bootstrapping the engine:
//
//	dataset ratings + Replay() -> engine.Bootstrap
//	POST ratings -> train -> Append -> publish
//
// Keys are "rating:<unix-nano>:<uuid>", so a prefix scan returns batches in
// the order they were accepted. Each value is a JSON-encoded batch.
//
// # Usage
//
//	j, err := journal.Open(journal.Config{Path: "./data/journal", SyncWrites: true})
//	if err != nil {
//	    return err
//	}
//	defer j.Close()
//
//	replayed, err := j.Replay(ctx)
//
// RunGC reclaims value log space and is driven periodically by the
// supervisor's journal GC service.
package journal
