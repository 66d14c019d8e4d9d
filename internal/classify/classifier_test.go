// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package classify

import (
	"testing"
	"time"

	"github.com/tomtom215/pelorus/internal/models"
)

func TestOnlineStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	threshold := 24 * time.Hour

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{
			name: "fresh record is online",
			ts:   now.Add(-1 * time.Hour),
			want: true,
		},
		{
			name: "record just inside threshold is online",
			ts:   now.Add(-threshold + time.Nanosecond),
			want: true,
		},
		{
			name: "record exactly at threshold is offline",
			ts:   now.Add(-threshold),
			want: false,
		},
		{
			name: "record older than threshold is offline",
			ts:   now.Add(-25 * time.Hour),
			want: false,
		},
		{
			name: "zero timestamp is offline",
			ts:   time.Time{},
			want: false,
		},
		{
			name: "future timestamp is online",
			ts:   now.Add(5 * time.Minute),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := OnlineStatus(tt.ts, now, threshold); got != tt.want {
				t.Errorf("OnlineStatus(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestQualityTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status string
		want   Tier
	}{
		{"normal maps to normal", "normal", TierNormal},
		{"warning maps to warning", "warning", TierWarning},
		{"error maps to error", "error", TierError},
		{"empty maps to error", "", TierError},
		{"unknown value maps to error", "degraded", TierError},
		{"case-sensitive - Normal maps to error", "Normal", TierError},
		{"whitespace maps to error", " normal", TierError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := QualityTier(tt.status); got != tt.want {
				t.Errorf("QualityTier(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-1 * time.Hour)
	stale := now.Add(-48 * time.Hour)

	snap := &models.Snapshot{
		Records: []models.SurveillanceRecord{
			{Category: models.CategoryVessel, Timestamp: fresh},
			{Category: models.CategoryVessel, Timestamp: fresh},
			{Category: models.CategoryVessel, Timestamp: stale},
			{Category: models.CategoryAircraft, Timestamp: fresh},
			{Category: models.CategoryAircraft, Timestamp: stale},
			{Category: models.CategoryAircraft, Timestamp: time.Time{}},
		},
	}

	sum := Summarize(snap, now, DefaultOnlineThreshold)

	if sum.OnlineVessels != 2 {
		t.Errorf("OnlineVessels = %d, want 2", sum.OnlineVessels)
	}
	if sum.OfflineVessels != 1 {
		t.Errorf("OfflineVessels = %d, want 1", sum.OfflineVessels)
	}
	if sum.OnlineAircraft != 1 {
		t.Errorf("OnlineAircraft = %d, want 1", sum.OnlineAircraft)
	}
	if sum.OfflineAircraft != 2 {
		t.Errorf("OfflineAircraft = %d, want 2", sum.OfflineAircraft)
	}
}

func TestSummarizeEmptySnapshot(t *testing.T) {
	t.Parallel()

	sum := Summarize(&models.Snapshot{}, time.Now(), DefaultOnlineThreshold)
	if sum != (models.StatusSummary{}) {
		t.Errorf("Summarize(empty) = %+v, want zero summary", sum)
	}
}
