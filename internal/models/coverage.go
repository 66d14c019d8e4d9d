// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package models

import (
	"math"
	"time"
)

// Position is a single WGS-84 coordinate pair, longitude first to match
// the backend's GeoJSON-style ordering.
type Position struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Valid reports whether the position is finite and within geodetic range.
func (p Position) Valid() bool {
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// CoverageMetadata carries the backend's bookkeeping for a coverage layer.
type CoverageMetadata struct {
	DataCount   int       `json:"data_count"`
	UpdateTime  time.Time `json:"update_time"`
	Description string    `json:"description,omitempty"`
}

// CoverageRegion is a sensor's service-area polygon.
//
// A region with fewer than MinBoundaryPoints boundary points is dropped at
// render time, never rendered.
type CoverageRegion struct {
	Category   Category         `json:"category"`
	ResourceID string           `json:"resource_id"`
	Label      string           `json:"label"`
	Boundary   []Position       `json:"boundary"`
	Online     bool             `json:"online"`
	Metadata   CoverageMetadata `json:"metadata"`
}

// MinBoundaryPoints is the minimum number of boundary points a coverage
// region needs to form a renderable polygon.
const MinBoundaryPoints = 3

// Renderable reports whether the region's boundary forms a valid polygon.
func (c *CoverageRegion) Renderable() bool {
	return len(c.Boundary) >= MinBoundaryPoints
}
