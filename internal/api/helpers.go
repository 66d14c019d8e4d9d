// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pelorus/internal/logging"
	"github.com/tomtom215/pelorus/internal/models"
	syncpkg "github.com/tomtom215/pelorus/internal/sync"
	"github.com/tomtom215/pelorus/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log
// injection. Newlines and other control characters could otherwise forge
// log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in the success envelope.
func respondSuccess(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// respondTriggerSuccess wraps data in the success envelope and records how
// long the triggered operation ran, for endpoints that proxy backend work.
func respondTriggerSuccess(w http.ResponseWriter, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			ElapsedMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondSyncError maps the sync error taxonomy onto HTTP statuses:
// busy is a caller-resolvable conflict, timeouts are gateway timeouts, and
// everything else the backend did wrong is a bad gateway.
func respondSyncError(w http.ResponseWriter, err error) {
	kind := syncpkg.Classify(err)
	switch kind {
	case syncpkg.KindBusy:
		respondError(w, http.StatusConflict, "SYNC_BUSY", "a load is already in progress", nil)
	case syncpkg.KindTimeout:
		respondError(w, http.StatusGatewayTimeout, "BACKEND_TIMEOUT", "backend request timed out", err)
	case syncpkg.KindRejected:
		respondError(w, http.StatusBadGateway, "BACKEND_REJECTED", err.Error(), err)
	case syncpkg.KindUnreachable:
		respondError(w, http.StatusBadGateway, "BACKEND_UNREACHABLE", "backend is unreachable", err)
	default:
		respondError(w, http.StatusBadGateway, "BACKEND_DECODE", "backend returned an unreadable response", err)
	}
}

// validateRequest validates a struct with go-playground/validator. Returns
// nil on success or a models.APIError with code VALIDATION_ERROR.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeBody decodes a JSON request body into v, limited to 1MB.
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
