// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package sdfs defines the wire-format types of the SDFS backend HTTP API.
//
// Field names and shapes mirror the backend's JSON payloads exactly; the
// sync package maps them onto the backend-agnostic types in models.
package sdfs

import "github.com/goccy/go-json"

// Data type discriminators used by the backend.
const (
	DataTypeAIS  = "ais"
	DataTypeADSB = "adsb"
)

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status     string      `json:"status"`
	Service    string      `json:"service,omitempty"`
	Timestamp  string      `json:"timestamp,omitempty"`
	DataStatus *DataStatus `json:"data_status,omitempty"`
}

// DataStatus summarizes the backend's processing state inside a health probe.
type DataStatus struct {
	Processed  bool   `json:"processed"`
	LastUpdate string `json:"last_update,omitempty"`
	AISCount   int    `json:"ais_count"`
	ADSBCount  int    `json:"adsb_count"`
}

// Healthy reports whether the probe payload indicates a usable backend.
func (h *HealthResponse) Healthy() bool {
	return h.Status == "healthy"
}

// DataResponse is the payload of GET /data.
type DataResponse struct {
	Success    bool         `json:"success"`
	Data       *DataPayload `json:"data,omitempty"`
	LastUpdate string       `json:"last_update,omitempty"`
	Message    string       `json:"message,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// DataPayload bundles one backend processing run.
type DataPayload struct {
	Metadata       Metadata        `json:"metadata"`
	AISData        []AISRecord     `json:"ais_data"`
	ADSBData       []ADSBRecord    `json:"adsb_data"`
	CoverageLayers []CoverageLayer `json:"coverage_layers"`
	StatusSummary  StatusSummary   `json:"status_summary"`
}

// Metadata carries the backend's per-run statistics. Only the fields the
// console consumes are decoded; the rest of the object is ignored.
type Metadata struct {
	Version      string `json:"version,omitempty"`
	TotalRecords int    `json:"total_records"`
	AISCount     int    `json:"ais_count"`
	ADSBCount    int    `json:"adsb_count"`
}

// StatusSummary is the backend's own online/offline accounting. The console
// recomputes these with its local clock but keeps the wire values for
// diagnostics.
type StatusSummary struct {
	OnlineAIS   int `json:"online_ais"`
	OfflineAIS  int `json:"offline_ais"`
	OnlineADSB  int `json:"online_adsb"`
	OfflineADSB int `json:"offline_adsb"`
}

// AISRecord is one decoded maritime position report.
type AISRecord struct {
	MMSI       string   `json:"mmsi"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	SOG        float64  `json:"sog"`
	COG        float64  `json:"cog"`
	Heading    float64  `json:"heading"`
	NavStatus  string   `json:"nav_status"`
	VesselType string   `json:"vessel_type"`
	Timestamp  string   `json:"timestamp"`
	DataType   string   `json:"data_type"`
	DataStatus string   `json:"data_status,omitempty"`
	DataIssues []string `json:"data_issues,omitempty"`

	// Present only for records decoded from the richer CSV source format.
	VesselName       string  `json:"vessel_name,omitempty"`
	IMO              string  `json:"imo,omitempty"`
	CallSign         string  `json:"call_sign,omitempty"`
	Length           float64 `json:"length,omitempty"`
	Width            float64 `json:"width,omitempty"`
	Draft            float64 `json:"draft,omitempty"`
	Cargo            string  `json:"cargo,omitempty"`
	TransceiverClass string  `json:"transceiver_class,omitempty"`
}

// ADSBRecord is one decoded aeronautical position report.
type ADSBRecord struct {
	AircraftID     string   `json:"aircraft_id"`
	AircraftTail   string   `json:"aircraft_tail"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AltitudeFt     float64  `json:"altitude_ft"`
	GroundSpeedKts float64  `json:"ground_speed_kts"`
	HeadingDeg     float64  `json:"heading_deg"`
	Timestamp      string   `json:"timestamp"`
	DataType       string   `json:"data_type"`
	DataStatus     string   `json:"data_status,omitempty"`
	DataIssues     []string `json:"data_issues,omitempty"`
}

// CoverageLayer is one sensor service-area polygon as shipped by the backend.
// Coordinates are [lon, lat] pairs.
type CoverageLayer struct {
	ResourceID  string        `json:"resource_id"`
	DataType    string        `json:"data_type"`
	Coordinates [][]float64   `json:"coordinates"`
	Status      string        `json:"status"`
	Label       string        `json:"label"`
	Metadata    LayerMetadata `json:"metadata"`
}

// LayerMetadata is the coverage layer's bookkeeping block.
type LayerMetadata struct {
	DataCount   int    `json:"data_count"`
	UpdateTime  string `json:"update_time,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateResponse is the payload of POST /data/update.
type UpdateResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	LastUpdate string `json:"last_update,omitempty"`
}

// CacheClearResponse is the payload of POST /data/cache/clear.
type CacheClearResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
	ClearedFiles int    `json:"cleared_files"`
}

// StatsResponse is the payload of GET /data/stats. Stats is kept raw and
// passed through to the dashboard untouched.
type StatsResponse struct {
	Success bool            `json:"success"`
	Stats   json.RawMessage `json:"stats,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// CoverageResponse is the payload of GET /data/coverage.
type CoverageResponse struct {
	Success        bool            `json:"success"`
	CoverageLayers []CoverageLayer `json:"coverage_layers"`
	Message        string          `json:"message,omitempty"`
	Error          string          `json:"error,omitempty"`
}
