// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package websocket pushes live map state to connected consoles.
//
// The Hub is the presentation bridge for the core's outbound ports: it
// implements sync.StatusNotifier for progress messages, layers.ViewProvider
// for entity attach/detach events, and viewport.Camera for camera moves.
// Broadcasts are advisory; a console that misses one resyncs through the
// REST API.
package websocket
