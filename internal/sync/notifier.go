// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package sync

// StatusKind classifies user-facing status notifications.
type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusWarning StatusKind = "warning"
	StatusError   StatusKind = "error"
)

// StatusNotifier receives human-readable progress and outcome messages from
// the sync pipeline. The WebSocket hub implements it for live dashboards;
// NopNotifier serves headless and test configurations.
//
// Implementations must be safe for concurrent use and must not block: the
// coordinator calls StatusChanged while holding the load guard.
type StatusNotifier interface {
	StatusChanged(message string, kind StatusKind)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// StatusChanged implements StatusNotifier.
func (NopNotifier) StatusChanged(string, StatusKind) {}
