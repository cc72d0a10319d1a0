// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinerank/internal/config"
	"github.com/tomtom215/cinerank/internal/journal"
	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/recommend"
)

// initJournal opens the ratings journal and replays it. A disabled journal
// returns nil for both values.
func initJournal(ctx context.Context, cfg *config.JournalConfig) (*journal.Journal, []recommend.Rating, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Ratings journal disabled, added ratings will not survive restarts")
		return nil, nil, nil
	}

	jnl, err := journal.Open(journal.Config{
		Path:       cfg.Path,
		SyncWrites: cfg.SyncWrites,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}

	replayed, err := jnl.Replay(ctx)
	if err != nil {
		closeJournal(jnl)
		return nil, nil, fmt.Errorf("replay journal: %w", err)
	}

	logging.Info().Int("ratings", len(replayed)).Msg("Ratings journal replayed")

	return jnl, replayed, nil
}

func closeJournal(jnl *journal.Journal) {
	if jnl == nil {
		return
	}
	if err := jnl.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing ratings journal")
	}
}
