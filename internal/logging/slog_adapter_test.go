// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))

	logger.Warn("service restarted",
		"service", "http-server",
		"attempt", 3,
		"ok", false,
		"backoff", 2*time.Second,
		"err", errors.New("listen failed"),
	)

	m := decodeLine(t, &buf)
	if m["level"] != "warn" || m["message"] != "service restarted" {
		t.Errorf("entry = %v", m)
	}
	if m["service"] != "http-server" || m["attempt"] != float64(3) || m["ok"] != false {
		t.Errorf("attrs = %v", m)
	}
	if m["err"] != "listen failed" {
		t.Errorf("err = %v, want listen failed", m["err"])
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf))).
		With("supervisor", "cinerank").
		WithGroup("event")

	logger.Info("stop", "name", "journal-gc", slog.Group("timing", "ms", 5))

	m := decodeLine(t, &buf)
	if m["supervisor"] != "cinerank" {
		t.Errorf("supervisor = %v", m["supervisor"])
	}
	if m["event.name"] != "journal-gc" {
		t.Errorf("event.name = %v", m["event.name"])
	}
	if m["event.timing.ms"] != float64(5) {
		t.Errorf("event.timing.ms = %v", m["event.timing.ms"])
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandler(NewTestLogger(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("Enabled(Info) = true for warn-level logger")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("Enabled(Error) = false for warn-level logger")
	}
}

func TestZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := zerologLevel(tt.in); got != tt.want {
			t.Errorf("zerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
