// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package models

import "time"

// Snapshot is the immutable bundle produced by one successful fetch.
//
// A new fetch produces a new Snapshot that fully supersedes the previous
// one; snapshots are never mutated after construction. Consumers must
// treat the contained slices as read-only.
type Snapshot struct {
	Records         []SurveillanceRecord `json:"records"`
	CoverageRegions []CoverageRegion     `json:"coverage_regions"`

	// FetchedAt is when this client completed the fetch.
	FetchedAt time.Time `json:"fetched_at"`

	// LastUpdate is the backend's own processing timestamp, when reported.
	LastUpdate time.Time `json:"last_update,omitempty"`
}

// CountByCategory returns the number of records in the given category.
func (s *Snapshot) CountByCategory(cat Category) int {
	n := 0
	for i := range s.Records {
		if s.Records[i].Category == cat {
			n++
		}
	}
	return n
}

// StatusSummary holds per-category online/offline counts derived from an
// applied snapshot. Broadcast to the presentation layer alongside every
// snapshot_applied event.
type StatusSummary struct {
	OnlineVessels   int `json:"online_vessels"`
	OfflineVessels  int `json:"offline_vessels"`
	OnlineAircraft  int `json:"online_aircraft"`
	OfflineAircraft int `json:"offline_aircraft"`
}
