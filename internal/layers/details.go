// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package layers

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/pelorus/internal/models"
)

// BuildDetails assembles the structured detail view-model for one rendered
// entity. Absent optional fields are omitted rather than rendered empty.
func BuildDetails(entity RenderedEntity) models.EntityDetails {
	switch {
	case entity.Kind == KindPolygon && entity.Region != nil:
		return coverageDetails(entity)
	case entity.Record != nil && entity.Record.Category == models.CategoryAircraft:
		return aircraftDetails(entity)
	case entity.Record != nil:
		return vesselDetails(entity)
	default:
		return models.EntityDetails{
			Key:         entity.Key,
			Title:       entity.Key,
			Online:      entity.Online,
			QualityTier: string(entity.Tier),
		}
	}
}

func vesselDetails(entity RenderedEntity) models.EntityDetails {
	rec := entity.Record

	title := rec.VesselName
	if title == "" {
		title = "Vessel " + rec.Identity
	}

	fields := make([]models.DetailField, 0, 12)
	fields = appendField(fields, "MMSI", rec.Identity)
	fields = appendField(fields, "IMO", rec.IMO)
	fields = appendField(fields, "Call Sign", rec.CallSign)
	fields = appendField(fields, "Vessel Type", rec.VesselType)
	fields = appendField(fields, "Nav Status", rec.NavStatus)
	fields = append(fields,
		models.DetailField{Label: "Position", Value: formatPosition(entity.Position)},
		models.DetailField{Label: "Speed", Value: fmt.Sprintf("%.1f kn", rec.SpeedKnots)},
		models.DetailField{Label: "Course", Value: fmt.Sprintf("%.1f°", rec.CourseDeg)},
		models.DetailField{Label: "Heading", Value: fmt.Sprintf("%.1f°", rec.HeadingDeg)},
	)
	if rec.LengthM > 0 || rec.WidthM > 0 {
		fields = append(fields, models.DetailField{
			Label: "Dimensions",
			Value: fmt.Sprintf("%.0f m × %.0f m", rec.LengthM, rec.WidthM),
		})
	}
	if rec.DraftM > 0 {
		fields = append(fields, models.DetailField{Label: "Draft", Value: fmt.Sprintf("%.1f m", rec.DraftM)})
	}
	fields = appendField(fields, "Cargo", rec.Cargo)
	fields = appendField(fields, "Transceiver", rec.TransceiverClass)
	fields = appendTimestamp(fields, rec.Timestamp)
	fields = appendQualityNotes(fields, rec.QualityNotes)

	return models.EntityDetails{
		Key:         entity.Key,
		Category:    models.CategoryVessel,
		Title:       title,
		Online:      entity.Online,
		QualityTier: string(entity.Tier),
		Fields:      fields,
	}
}

func aircraftDetails(entity RenderedEntity) models.EntityDetails {
	rec := entity.Record

	title := "Aircraft " + rec.Identity
	if rec.TailNumber != "" {
		title = "Aircraft " + rec.TailNumber
	}

	fields := make([]models.DetailField, 0, 8)
	fields = appendField(fields, "ICAO Address", rec.Identity)
	fields = appendField(fields, "Tail Number", rec.TailNumber)
	fields = append(fields,
		models.DetailField{Label: "Position", Value: formatPosition(entity.Position)},
		models.DetailField{Label: "Altitude", Value: fmt.Sprintf("%.0f ft", rec.AltitudeFt)},
		models.DetailField{Label: "Ground Speed", Value: fmt.Sprintf("%.1f kn", rec.SpeedKnots)},
		models.DetailField{Label: "Heading", Value: fmt.Sprintf("%.1f°", rec.HeadingDeg)},
	)
	fields = appendTimestamp(fields, rec.Timestamp)
	fields = appendQualityNotes(fields, rec.QualityNotes)

	return models.EntityDetails{
		Key:         entity.Key,
		Category:    models.CategoryAircraft,
		Title:       title,
		Online:      entity.Online,
		QualityTier: string(entity.Tier),
		Fields:      fields,
	}
}

func coverageDetails(entity RenderedEntity) models.EntityDetails {
	region := entity.Region

	title := region.Label
	if title == "" {
		title = "Coverage " + region.ResourceID
	}

	status := "offline"
	if region.Online {
		status = "online"
	}

	fields := make([]models.DetailField, 0, 6)
	fields = appendField(fields, "Resource", region.ResourceID)
	fields = append(fields,
		models.DetailField{Label: "Source", Value: string(region.Category)},
		models.DetailField{Label: "Status", Value: status},
		models.DetailField{Label: "Boundary Points", Value: fmt.Sprintf("%d", len(region.Boundary))},
		models.DetailField{Label: "Data Count", Value: fmt.Sprintf("%d", region.Metadata.DataCount)},
	)
	if !region.Metadata.UpdateTime.IsZero() {
		fields = append(fields, models.DetailField{
			Label: "Updated",
			Value: region.Metadata.UpdateTime.UTC().Format(time.RFC3339),
		})
	}
	fields = appendField(fields, "Description", region.Metadata.Description)

	return models.EntityDetails{
		Key:         entity.Key,
		Category:    region.Category,
		Title:       title,
		Online:      region.Online,
		QualityTier: string(entity.Tier),
		Fields:      fields,
	}
}

func appendField(fields []models.DetailField, label, value string) []models.DetailField {
	if value == "" {
		return fields
	}
	return append(fields, models.DetailField{Label: label, Value: value})
}

func appendTimestamp(fields []models.DetailField, ts time.Time) []models.DetailField {
	if ts.IsZero() {
		return append(fields, models.DetailField{Label: "Last Seen", Value: "unknown"})
	}
	return append(fields, models.DetailField{Label: "Last Seen", Value: ts.UTC().Format(time.RFC3339)})
}

func appendQualityNotes(fields []models.DetailField, notes []string) []models.DetailField {
	if len(notes) == 0 {
		return fields
	}
	return append(fields, models.DetailField{Label: "Data Issues", Value: strings.Join(notes, "; ")})
}

func formatPosition(p models.Position) string {
	return fmt.Sprintf("%.5f, %.5f", p.Lat, p.Lon)
}
