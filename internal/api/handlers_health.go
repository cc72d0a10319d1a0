// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinerank/internal/metrics"
	"github.com/tomtom215/cinerank/internal/models"
	"github.com/tomtom215/cinerank/internal/recommend"
)

// Health status values.
const (
	healthHealthy  = "healthy"
	healthStarting = "starting"
)

// StatusResponse is the body of GET /api/v1/status.
type StatusResponse struct {
	Version       string                   `json:"version"`
	UptimeSeconds float64                  `json:"uptime_seconds"`
	Training      recommend.TrainingStatus `json:"training"`
	Metrics       recommend.Metrics        `json:"metrics"`
}

// Health returns liveness plus the readiness flag. It is always 200 so load
// balancers keep routing to a process that is still training.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ready := h.engine.Ready()
	status := healthHealthy
	if !ready {
		status = healthStarting
	}

	respondSuccess(w, r, models.HealthResponse{
		Status:        status,
		Ready:         ready,
		Version:       h.version,
		UptimeSeconds: h.uptime(),
	}, models.Metadata{})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]string{"status": "alive"}, models.Metadata{})
}

// HealthReady handles readiness probe requests. It is 503 until the initial
// model is published.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Ready() {
		respondError(w, r, http.StatusServiceUnavailable, codeNotReady, "Recommendation model is not ready yet", nil)
		return
	}
	respondSuccess(w, r, map[string]string{"status": "ready"}, models.Metadata{})
}

// Status reports the published snapshot and engine counters.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	metrics.UpdateUptime(h.startTime)

	training := h.engine.GetStatus()
	respondSuccess(w, r, StatusResponse{
		Version:       h.version,
		UptimeSeconds: h.uptime(),
		Training:      training,
		Metrics:       h.engine.GetMetrics(),
	}, models.Metadata{ModelVersion: training.ModelVersion})
}

// NotFound is the router's fallback for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, codeNotFound, "Route not found", nil)
}

// MethodNotAllowed is the router's fallback for known paths with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed", nil)
}

func (h *Handler) uptime() float64 {
	return time.Since(h.startTime).Seconds()
}
