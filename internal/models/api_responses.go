// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse wraps every JSON body the server returns.
//
// Example successful top-K response:
//
//	{
//	  "status": "success",
//	  "data": [{"movie_id": 318, "title": "Shawshank Redemption, The (1994)",
//	            "predicted_score": 4.71, "rating_count": 317}],
//	  "metadata": {"timestamp": "2026-10-16T12:00:00Z", "query_time_ms": 3, "model_version": 4}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "count must be non-negative"},
//	  "metadata": {"timestamp": "2026-10-16T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`

	// ModelVersion is the engine snapshot that answered a query.
	ModelVersion int64 `json:"model_version,omitempty"`

	Count int `json:"count,omitempty"`
}

// APIError is the error half of APIResponse.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status        string  `json:"status"`
	Ready         bool    `json:"ready"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// AddRatingsResponse echoes the ratings accepted by a write.
type AddRatingsResponse struct {
	Accepted     interface{} `json:"accepted"`
	Count        int         `json:"count"`
	ModelVersion int64       `json:"model_version"`
}
