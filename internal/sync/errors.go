// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package sync

import (
	"context"
	"errors"
	"fmt"
	"net"

	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrBusy is returned by coordinator operations when a load is already in
// flight. The caller is not queued; the outstanding request is neither
// cancelled nor joined.
var ErrBusy = errors.New("sync: load already in progress")

// ErrBackendUnreachable indicates the backend cannot be connected to at all.
var ErrBackendUnreachable = errors.New("sync: backend unreachable")

// ErrRequestTimeout indicates a request exceeded its deadline. The
// previously held snapshot is retained.
var ErrRequestTimeout = errors.New("sync: request timed out")

// RejectedError indicates the backend answered but reported failure
// (success:false) for the operation.
type RejectedError struct {
	Op      string
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sync: backend rejected %s request", e.Op)
	}
	return fmt.Sprintf("sync: backend rejected %s request: %s", e.Op, e.Message)
}

// ErrorKind is the coarse failure classification used for metrics labels
// and API error codes.
type ErrorKind string

const (
	KindBusy        ErrorKind = "busy"
	KindUnreachable ErrorKind = "unreachable"
	KindTimeout     ErrorKind = "timeout"
	KindRejected    ErrorKind = "rejected"
	KindDecode      ErrorKind = "decode"
)

// Classify maps an error from the sync pipeline onto its taxonomy kind.
func Classify(err error) ErrorKind {
	var rejected *RejectedError
	switch {
	case errors.Is(err, ErrBusy):
		return KindBusy
	case errors.Is(err, ErrRequestTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &rejected):
		return KindRejected
	case errors.Is(err, ErrBackendUnreachable), isConnectionError(err):
		return KindUnreachable
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		// The breaker refuses requests while the backend is considered down.
		return KindUnreachable
	default:
		return KindDecode
	}
}

// isConnectionError reports whether err stems from a transport-level
// connection failure rather than an application-level response.
func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
