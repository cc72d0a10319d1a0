// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinerank/internal/api"
	"github.com/tomtom215/cinerank/internal/config"
	"github.com/tomtom215/cinerank/internal/dataset"
	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/metrics"
	"github.com/tomtom215/cinerank/internal/supervisor"
	"github.com/tomtom215/cinerank/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("dataset", cfg.Dataset.Path).
		Str("loader", cfg.Dataset.Loader).
		Bool("journal", cfg.Journal.Enabled).
		Msg("Starting Cinerank")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === DATASET ===

	loader, err := dataset.NewLoader(dataset.Config{
		Loader:      cfg.Dataset.Loader,
		Path:        cfg.Dataset.Path,
		RatingsFile: cfg.Dataset.RatingsFile,
		MoviesFile:  cfg.Dataset.MoviesFile,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid dataset configuration")
	}

	loadStart := time.Now()
	ds, err := loader.Load(ctx)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("Failed to load dataset")
	}
	logging.Info().
		Int("ratings", len(ds.Ratings)).
		Int("movies", len(ds.Movies)).
		Dur("duration", time.Since(loadStart)).
		Msg("Dataset loaded")

	// === JOURNAL ===

	jnl, replayed, err := initJournal(ctx, &cfg.Journal)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize ratings journal")
	}
	if jnl != nil {
		defer closeJournal(jnl)
		ds.Ratings = append(ds.Ratings, replayed...)
	}

	// === ENGINE ===

	engine, err := initEngine(ctx, cfg, ds, jnl)
	if err != nil {
		closeJournal(jnl)
		logging.Fatal().Err(err).Msg("Failed to train initial model")
	}

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		closeJournal(jnl)
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if jnl != nil {
		tree.AddDataService(services.NewJournalGCService(jnl, cfg.Journal.GCInterval))
		logging.Info().Dur("interval", cfg.Journal.GCInterval).Msg("Journal GC service added")
	}

	handler := api.NewHandler(engine, engine.Config().Limits, version)
	router := api.NewRouter(handler, api.RouterConfig{
		Middleware:     api.ChiMiddlewareConfigFromSecurity(&cfg.Security),
		RequestTimeout: cfg.Server.Timeout,
	})

	// No WriteTimeout: POST /{userID}/ratings retrains before responding.
	// Reads are bounded by the router's request timeout instead.
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// errCh receives exactly one value and is never closed.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Cinerank stopped")
}
