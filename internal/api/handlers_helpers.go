// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/models"
	"github.com/tomtom215/cinerank/internal/recommend"
	"github.com/tomtom215/cinerank/internal/validation"
)

// Error codes returned in models.APIError.
const (
	codeValidation       = validation.ErrorCode
	codeNotReady         = "NOT_READY"
	codeTraining         = "TRAINING_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeRateLimited      = "RATE_LIMITED"
	codeTimeout          = "TIMEOUT"
	codeInternal         = "INTERNAL_ERROR"
)

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines in console output.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// respondJSON writes response with an ETag. A GET whose If-None-Match equals
// the ETag of a 200 body gets 304 and no body. Results change after every
// write, so clients must revalidate.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	etag := generateETag(data)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)

	if status == http.StatusOK && r.Method == http.MethodGet && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to write JSON response")
	}
}

// generateETag returns a quoted FNV-1a hash of data.
func generateETag(data []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(data)
	return `"` + strconv.FormatUint(uint64(h.Sum32()), 16) + `"`
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, meta models.Metadata) {
	meta.Timestamp = time.Now()
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: meta,
	})
}

// respondError sends an error envelope. err, when set, is logged but never
// sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		event := logging.CtxWarn(r.Context())
		if status >= http.StatusInternalServerError {
			event = logging.CtxErr(r.Context(), err)
		}
		event.
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("API error")
	}

	writeError(w, r, status, &models.APIError{Code: code, Message: message})
}

// respondValidationError sends 400 with per-field details.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	writeError(w, r, http.StatusBadRequest, &models.APIError{
		Code:    codeValidation,
		Message: verr.Error(),
		Details: verr.Details(),
	})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    apiErr,
	})
}

// respondEngineError maps engine errors to HTTP status and error code.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrNotReady):
		respondError(w, r, http.StatusServiceUnavailable, codeNotReady, "Recommendation model is not ready yet", nil)
	case errors.Is(err, recommend.ErrInvalidRating), errors.Is(err, recommend.ErrInvalidCount):
		respondError(w, r, http.StatusBadRequest, codeValidation, err.Error(), nil)
	case errors.Is(err, recommend.ErrTraining):
		respondError(w, r, http.StatusInternalServerError, codeTraining, "Model training failed; ratings were not stored", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, codeTimeout, "Request timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, codeInternal, "Internal server error", err)
	}
}

// parsePathInt parses a non-negative integer chi URL parameter. field names
// the parameter in validation errors.
func parsePathInt(r *http.Request, param, field string) (int, *validation.RequestValidationError) {
	raw := chi.URLParam(r, param)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldError(field, "int", "", field+" must be an integer")
	}
	if v < 0 {
		return 0, fieldError(field, "gte", "0", field+" must be greater than or equal to 0")
	}
	return v, nil
}

// parseIntList parses a comma-separated integer list. Blank items are skipped.
func parseIntList(value, field string) ([]int, *validation.RequestValidationError) {
	var out []int
	for i, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fieldError(fmt.Sprintf("%s[%d]", field, i), "int", "",
				fmt.Sprintf("%s[%d] must be an integer, got %q", field, i, part))
		}
		out = append(out, n)
	}
	return out, nil
}

// fieldError builds a single-field validation error.
func fieldError(field, tag, param, message string) *validation.RequestValidationError {
	return &validation.RequestValidationError{Fields: []validation.FieldError{{
		Field:   field,
		Tag:     tag,
		Param:   param,
		Message: message,
	}}}
}

// maxLimitError reports a list or count above a configured limit.
func maxLimitError(field string, limit int) *validation.RequestValidationError {
	return fieldError(field, "max", strconv.Itoa(limit),
		fmt.Sprintf("%s must be at most %d", field, limit))
}
