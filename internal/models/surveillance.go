// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package models

import (
	"math"
	"time"
)

// Category identifies the surveillance source type of a record or region.
// A record's category never changes after construction.
type Category string

const (
	// CategoryVessel is the maritime AIS position-report category.
	CategoryVessel Category = "vessel"

	// CategoryAircraft is the aeronautical ADS-B position-report category.
	CategoryAircraft Category = "aircraft"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryVessel || c == CategoryAircraft
}

// Categories lists all known categories in stable order.
func Categories() []Category {
	return []Category{CategoryVessel, CategoryAircraft}
}

// Quality status values as delivered by the backend's cleaning pipeline.
// Any other value (including absent) is classified as an error tier.
const (
	QualityNormal  = "normal"
	QualityWarning = "warning"
	QualityError   = "error"
)

// SurveillanceRecord is one observed entity's position report.
//
// Latitude/Longitude are WGS-84 degrees. A record is renderable only when
// HasValidPosition reports true; invalid records are skipped at render time
// without aborting the enclosing snapshot.
type SurveillanceRecord struct {
	Category Category `json:"category"`

	// Identity is the category-specific key: MMSI for vessels,
	// aircraft id for aircraft.
	Identity string `json:"identity"`

	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`

	// QualityStatus is the raw cleaning status from the backend
	// (normal/warning/error, possibly empty on older payloads).
	QualityStatus string `json:"quality_status"`

	// QualityNotes carries the backend's free-text cleaning issues, if any.
	QualityNotes []string `json:"quality_notes,omitempty"`

	// Shared kinematics.
	SpeedKnots float64 `json:"speed_knots"`
	HeadingDeg float64 `json:"heading_deg"`

	// Vessel-only fields.
	CourseDeg  float64 `json:"course_deg,omitempty"`
	NavStatus  string  `json:"nav_status,omitempty"`
	VesselType string  `json:"vessel_type,omitempty"`

	// Richer vessel fields present only when the source format carries
	// static voyage data (CSV exports do, raw NMEA does not).
	VesselName       string  `json:"vessel_name,omitempty"`
	IMO              string  `json:"imo,omitempty"`
	CallSign         string  `json:"call_sign,omitempty"`
	LengthM          float64 `json:"length_m,omitempty"`
	WidthM           float64 `json:"width_m,omitempty"`
	DraftM           float64 `json:"draft_m,omitempty"`
	Cargo            string  `json:"cargo,omitempty"`
	TransceiverClass string  `json:"transceiver_class,omitempty"`

	// Aircraft-only fields.
	AltitudeFt float64 `json:"altitude_ft,omitempty"`
	TailNumber string  `json:"tail_number,omitempty"`
}

// HasValidPosition reports whether the record's coordinates are finite and
// within valid geodetic range. Records failing this check are not renderable.
func (r *SurveillanceRecord) HasValidPosition() bool {
	if math.IsNaN(r.Latitude) || math.IsInf(r.Latitude, 0) {
		return false
	}
	if math.IsNaN(r.Longitude) || math.IsInf(r.Longitude, 0) {
		return false
	}
	return r.Latitude >= -90 && r.Latitude <= 90 &&
		r.Longitude >= -180 && r.Longitude <= 180
}
