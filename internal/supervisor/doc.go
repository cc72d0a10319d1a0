// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package supervisor runs the server's long-lived components under a suture v4
supervisor tree.

# Tree

	cinerank (root)
	├── data-layer
	│   └── journal-gc          (services.JournalGCService, when the journal is enabled)
	└── api-layer
	    └── http-server         (services.HTTPServerService)

A service that returns an error is restarted with suture's backoff. When
FailureThreshold failures accumulate faster than FailureDecay lets them
expire, the supervisor waits FailureBackoff before the next restart.

The recommendation engine itself is not a service: the initial model is
trained before the tree starts, and retraining happens synchronously inside
write requests.

# Logging

Supervisor events (service panics, restarts, backoff) go through sutureslog,
which needs a *slog.Logger. Pass logging.NewSlogLogger() so they end up in
the same zerolog stream as everything else:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    ...
	}

# Shutdown

Canceling the context passed to Serve stops services in reverse order of
addition. Each has ShutdownTimeout to return; UnstoppedServiceReport names
any that did not.
*/
package supervisor
