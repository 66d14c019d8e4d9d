// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package models

// Bounds is an axis-aligned bounding box over WGS-84 coordinates.
//
// The zero value is the explicit empty bound: it encloses nothing and
// IsEmpty reports true. Extend transitions it to a valid box.
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`

	valid bool
}

// NewBounds returns a bound enclosing exactly the given position.
func NewBounds(p Position) Bounds {
	return Bounds{MinLon: p.Lon, MinLat: p.Lat, MaxLon: p.Lon, MaxLat: p.Lat, valid: true}
}

// IsEmpty reports whether the bound encloses nothing.
func (b Bounds) IsEmpty() bool {
	return !b.valid
}

// Extend grows the bound to include the given position.
func (b *Bounds) Extend(p Position) {
	if !b.valid {
		*b = NewBounds(p)
		return
	}
	if p.Lon < b.MinLon {
		b.MinLon = p.Lon
	}
	if p.Lon > b.MaxLon {
		b.MaxLon = p.Lon
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
}

// Center returns the midpoint of the bound. Meaningless for empty bounds.
func (b Bounds) Center() Position {
	return Position{
		Lon: (b.MinLon + b.MaxLon) / 2,
		Lat: (b.MinLat + b.MaxLat) / 2,
	}
}

// Contains reports whether the position lies within the bound (inclusive).
func (b Bounds) Contains(p Position) bool {
	if !b.valid {
		return false
	}
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}
