// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package models

import (
	"math"
	"testing"
	"time"
)

func TestBoundsZeroValueIsEmpty(t *testing.T) {
	t.Parallel()

	var b Bounds
	if !b.IsEmpty() {
		t.Error("zero-value Bounds should be empty")
	}
	if b.Contains(Position{Lon: 0, Lat: 0}) {
		t.Error("empty bounds should contain nothing, even the origin")
	}
}

func TestBoundsExtend(t *testing.T) {
	t.Parallel()

	var b Bounds
	b.Extend(Position{Lon: 122.0, Lat: 30.0})

	if b.IsEmpty() {
		t.Fatal("bounds should not be empty after Extend")
	}
	if b.MinLon != 122.0 || b.MaxLon != 122.0 || b.MinLat != 30.0 || b.MaxLat != 30.0 {
		t.Errorf("single-point bounds = %+v, want degenerate box at the point", b)
	}

	b.Extend(Position{Lon: 121.0, Lat: 31.5})
	b.Extend(Position{Lon: 123.5, Lat: 29.0})

	if b.MinLon != 121.0 || b.MaxLon != 123.5 {
		t.Errorf("longitude range = [%v, %v], want [121, 123.5]", b.MinLon, b.MaxLon)
	}
	if b.MinLat != 29.0 || b.MaxLat != 31.5 {
		t.Errorf("latitude range = [%v, %v], want [29, 31.5]", b.MinLat, b.MaxLat)
	}

	center := b.Center()
	if center.Lon != 122.25 || center.Lat != 30.25 {
		t.Errorf("Center() = %+v, want {122.25 30.25}", center)
	}

	if !b.Contains(Position{Lon: 122.0, Lat: 30.0}) {
		t.Error("bounds should contain an interior point")
	}
	if !b.Contains(Position{Lon: 121.0, Lat: 29.0}) {
		t.Error("bounds edges are inclusive")
	}
	if b.Contains(Position{Lon: 120.0, Lat: 30.0}) {
		t.Error("bounds should not contain an exterior point")
	}
}

func TestPositionValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"origin", Position{0, 0}, true},
		{"extreme corners", Position{Lon: 180, Lat: 90}, true},
		{"negative extreme", Position{Lon: -180, Lat: -90}, true},
		{"latitude out of range", Position{Lon: 0, Lat: 90.1}, false},
		{"longitude out of range", Position{Lon: -180.1, Lat: 0}, false},
		{"NaN latitude", Position{Lon: 0, Lat: math.NaN()}, false},
		{"infinite longitude", Position{Lon: math.Inf(1), Lat: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.pos.Valid(); got != tt.want {
				t.Errorf("Valid(%+v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestSurveillanceRecordHasValidPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"valid mid-ocean fix", 30.5, 122.3, true},
		{"null island is still valid", 0, 0, true},
		{"latitude beyond pole", 91, 0, false},
		{"longitude beyond antimeridian", 0, 181, false},
		{"NaN coordinates", math.NaN(), math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := SurveillanceRecord{Latitude: tt.lat, Longitude: tt.lon}
			if got := r.HasValidPosition(); got != tt.want {
				t.Errorf("HasValidPosition(lat=%v lon=%v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestCoverageRegionRenderable(t *testing.T) {
	t.Parallel()

	region := CoverageRegion{Boundary: []Position{{0, 0}, {1, 0}}}
	if region.Renderable() {
		t.Error("two-point boundary should not be renderable")
	}

	region.Boundary = append(region.Boundary, Position{Lon: 1, Lat: 1})
	if !region.Renderable() {
		t.Error("three-point boundary should be renderable")
	}
}

func TestSnapshotCountByCategory(t *testing.T) {
	t.Parallel()

	snap := &Snapshot{
		Records: []SurveillanceRecord{
			{Category: CategoryVessel},
			{Category: CategoryVessel},
			{Category: CategoryAircraft},
		},
		FetchedAt: time.Now(),
	}

	if n := snap.CountByCategory(CategoryVessel); n != 2 {
		t.Errorf("CountByCategory(vessel) = %d, want 2", n)
	}
	if n := snap.CountByCategory(CategoryAircraft); n != 1 {
		t.Errorf("CountByCategory(aircraft) = %d, want 1", n)
	}
}

func TestCategoryValid(t *testing.T) {
	t.Parallel()

	if !CategoryVessel.Valid() || !CategoryAircraft.Valid() {
		t.Error("known categories should be valid")
	}
	if Category("submarine").Valid() || Category("").Valid() {
		t.Error("unknown categories should be invalid")
	}
}
