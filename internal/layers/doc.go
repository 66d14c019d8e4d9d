// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package layers reconciles surveillance snapshots into rendered map-layer
// state.
//
// The Manager rebuilds all entities wholesale on every applied snapshot,
// hands them to a ViewProvider for display, and answers queries: per-layer
// visibility toggles, bounding-box computation over attached points, and
// structured detail view-models for individual entities.
package layers
