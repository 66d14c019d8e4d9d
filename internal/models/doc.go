// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package models contains the shared data model for Pelorus: surveillance
// records, coverage regions, immutable snapshots, geographic bounds and
// the structured detail view-models consumed by the presentation layer.
//
// Wire-format types for the SDFS backend live in the sdfs subpackage;
// everything in this package is backend-agnostic.
package models
