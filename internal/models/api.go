// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package models

import "time"

// APIResponse is the standardized response wrapper used by all console
// HTTP endpoints.
//
// Status is "success" or "error". Data carries the payload on success;
// Error is populated only on failure.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "SYNC_BUSY", "message": "a load is already in progress"},
//	  "metadata": {"timestamp": "2026-08-26T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`

	// ElapsedMS is how long the triggered operation ran, for
	// trigger-style endpoints that proxy backend work.
	ElapsedMS int64 `json:"elapsed_ms,omitempty"`
}

// APIError is the structured error block of an APIResponse.
//
// Common codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - NOT_FOUND: resource doesn't exist
//   - SYNC_BUSY: a load is already in flight
//   - BACKEND_UNREACHABLE, BACKEND_TIMEOUT, BACKEND_REJECTED,
//     BACKEND_DECODE: backend failure taxonomy
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
