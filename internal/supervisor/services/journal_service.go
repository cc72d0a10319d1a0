// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cinerank/internal/logging"
)

// JournalCollector is satisfied by *journal.Journal.
type JournalCollector interface {
	RunGC() (string, error)
}

// JournalGCService periodically reclaims BadgerDB value-log space held by the
// ratings journal. A failed GC pass is logged and retried on the next tick;
// it never stops the service.
type JournalGCService struct {
	journal  JournalCollector
	interval time.Duration
	name     string
}

// NewJournalGCService runs j.RunGC every interval. A non-positive interval
// means 5m.
func NewJournalGCService(j JournalCollector, interval time.Duration) *JournalGCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &JournalGCService{
		journal:  j,
		interval: interval,
		name:     "journal-gc",
	}
}

// Serve implements suture.Service.
func (s *JournalGCService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(s.name)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			result, err := s.journal.RunGC()
			if err != nil {
				logger.Warn().Err(err).Msg("journal GC failed")
				continue
			}
			logger.Debug().
				Str("result", result).
				Dur("duration", time.Since(start)).
				Msg("journal GC complete")
		}
	}
}

// String names the service in supervisor events.
func (s *JournalGCService) String() string {
	return s.name
}
