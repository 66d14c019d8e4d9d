// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package classify derives presentation status from surveillance records:
// recency-based online/offline and a fail-safe quality tier. Everything in
// this package is a pure function of its inputs.
package classify

import (
	"time"

	"github.com/tomtom215/pelorus/internal/models"
)

// Tier is the presentation quality tier of a record.
type Tier string

const (
	TierNormal  Tier = "normal"
	TierWarning Tier = "warning"
	TierError   Tier = "error"
)

// DefaultOnlineThreshold is the recency window after which a record is
// considered offline when no explicit threshold is configured.
const DefaultOnlineThreshold = 24 * time.Hour

// OnlineStatus reports whether a record observed at ts counts as online at
// instant now: true iff now-ts < threshold, strict inequality. A record
// exactly at the threshold is offline, as is one with a zero timestamp or a
// timestamp in the future beyond clock skew (negative age is online since
// age < threshold still holds).
func OnlineStatus(ts, now time.Time, threshold time.Duration) bool {
	if ts.IsZero() {
		return false
	}
	return now.Sub(ts) < threshold
}

// QualityTier maps the backend's raw data status onto a presentation tier.
// Only the literal values "normal" and "warning" map to their tiers; every
// other value, including empty or unrecognized, is classified as error.
// The fallthrough is a deliberate fail-safe, not an oversight.
func QualityTier(status string) Tier {
	switch status {
	case models.QualityNormal:
		return TierNormal
	case models.QualityWarning:
		return TierWarning
	default:
		return TierError
	}
}

// Summarize computes per-category online/offline counts for a snapshot at
// instant now.
func Summarize(snap *models.Snapshot, now time.Time, threshold time.Duration) models.StatusSummary {
	var sum models.StatusSummary
	for i := range snap.Records {
		rec := &snap.Records[i]
		online := OnlineStatus(rec.Timestamp, now, threshold)
		switch rec.Category {
		case models.CategoryVessel:
			if online {
				sum.OnlineVessels++
			} else {
				sum.OfflineVessels++
			}
		case models.CategoryAircraft:
			if online {
				sum.OnlineAircraft++
			} else {
				sum.OfflineAircraft++
			}
		}
	}
	return sum
}
