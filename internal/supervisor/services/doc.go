// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package services adapts server components to suture.Service.

HTTPServerService turns http.Server's blocking ListenAndServe into a
context-aware Serve with graceful Shutdown. JournalGCService runs the ratings
journal's BadgerDB value-log GC on a ticker.

Both implement fmt.Stringer so supervisor events name them.
*/
package services
