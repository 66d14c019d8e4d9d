// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package sync

import (
	"time"

	"github.com/tomtom215/pelorus/internal/logging"
	"github.com/tomtom215/pelorus/internal/models"
	"github.com/tomtom215/pelorus/internal/models/sdfs"
)

// buildSnapshot converts one backend data payload into a Snapshot.
//
// Conversion is total: records with unparseable timestamps keep a zero
// timestamp (and therefore classify as offline) rather than being dropped.
// Position validity is not checked here; the layer manager skips invalid
// positions at render time so a single bad record never loses the snapshot.
func buildSnapshot(resp *sdfs.DataResponse, fetchedAt time.Time) *models.Snapshot {
	payload := resp.Data
	if payload == nil {
		payload = &sdfs.DataPayload{}
	}

	records := make([]models.SurveillanceRecord, 0, len(payload.AISData)+len(payload.ADSBData))
	for i := range payload.AISData {
		records = append(records, mapAISRecord(&payload.AISData[i]))
	}
	for i := range payload.ADSBData {
		records = append(records, mapADSBRecord(&payload.ADSBData[i]))
	}

	regions := make([]models.CoverageRegion, 0, len(payload.CoverageLayers))
	for i := range payload.CoverageLayers {
		regions = append(regions, mapCoverageLayer(&payload.CoverageLayers[i]))
	}

	return &models.Snapshot{
		Records:         records,
		CoverageRegions: regions,
		FetchedAt:       fetchedAt,
		LastUpdate:      parseWireTimestamp(resp.LastUpdate, "last_update"),
	}
}

func mapAISRecord(rec *sdfs.AISRecord) models.SurveillanceRecord {
	return models.SurveillanceRecord{
		Category:         models.CategoryVessel,
		Identity:         rec.MMSI,
		Latitude:         rec.Latitude,
		Longitude:        rec.Longitude,
		Timestamp:        parseWireTimestamp(rec.Timestamp, "ais.timestamp"),
		QualityStatus:    rec.DataStatus,
		QualityNotes:     rec.DataIssues,
		SpeedKnots:       rec.SOG,
		HeadingDeg:       rec.Heading,
		CourseDeg:        rec.COG,
		NavStatus:        rec.NavStatus,
		VesselType:       rec.VesselType,
		VesselName:       rec.VesselName,
		IMO:              rec.IMO,
		CallSign:         rec.CallSign,
		LengthM:          rec.Length,
		WidthM:           rec.Width,
		DraftM:           rec.Draft,
		Cargo:            rec.Cargo,
		TransceiverClass: rec.TransceiverClass,
	}
}

func mapADSBRecord(rec *sdfs.ADSBRecord) models.SurveillanceRecord {
	return models.SurveillanceRecord{
		Category:      models.CategoryAircraft,
		Identity:      rec.AircraftID,
		Latitude:      rec.Latitude,
		Longitude:     rec.Longitude,
		Timestamp:     parseWireTimestamp(rec.Timestamp, "adsb.timestamp"),
		QualityStatus: rec.DataStatus,
		QualityNotes:  rec.DataIssues,
		SpeedKnots:    rec.GroundSpeedKts,
		HeadingDeg:    rec.HeadingDeg,
		AltitudeFt:    rec.AltitudeFt,
		TailNumber:    rec.AircraftTail,
	}
}

// mapCoverageLayer converts a wire coverage layer. Coordinate pairs that
// are not [lon, lat] two-element arrays are dropped from the boundary;
// degenerate boundaries are kept on the region and filtered at render time.
func mapCoverageLayer(layer *sdfs.CoverageLayer) models.CoverageRegion {
	boundary := make([]models.Position, 0, len(layer.Coordinates))
	for _, pair := range layer.Coordinates {
		if len(pair) < 2 {
			continue
		}
		boundary = append(boundary, models.Position{Lon: pair[0], Lat: pair[1]})
	}

	return models.CoverageRegion{
		Category:   dataTypeToCategory(layer.DataType),
		ResourceID: layer.ResourceID,
		Label:      layer.Label,
		Boundary:   boundary,
		Online:     layer.Status == "online",
		Metadata: models.CoverageMetadata{
			DataCount:   layer.Metadata.DataCount,
			UpdateTime:  parseWireTimestamp(layer.Metadata.UpdateTime, "coverage.update_time"),
			Description: layer.Metadata.Description,
		},
	}
}

// dataTypeToCategory maps the backend's data type discriminator onto a
// surveillance category. Unknown types default to vessel; the backend only
// ships the two known types.
func dataTypeToCategory(dataType string) models.Category {
	if dataType == sdfs.DataTypeADSB {
		return models.CategoryAircraft
	}
	return models.CategoryVessel
}

// parseWireTimestamp parses a backend timestamp, logging and returning the
// zero time on failure so the record classifies as offline instead of
// poisoning the whole payload.
func parseWireTimestamp(raw, field string) time.Time {
	ts, err := sdfs.ParseTimestamp(raw)
	if err != nil {
		logging.Debug().Str("field", field).Str("value", raw).Msg("Unparseable backend timestamp")
		return time.Time{}
	}
	return ts
}
