// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package layers

import (
	"github.com/tomtom215/pelorus/internal/classify"
	"github.com/tomtom215/pelorus/internal/models"
)

// LayerCategory identifies one toggleable map layer. Vessels and aircraft
// are point layers; coverage is a polygon layer.
type LayerCategory string

const (
	LayerVessels  LayerCategory = "vessels"
	LayerAircraft LayerCategory = "aircraft"
	LayerCoverage LayerCategory = "coverage"
)

// Valid reports whether lc names a known layer.
func (lc LayerCategory) Valid() bool {
	return lc == LayerVessels || lc == LayerAircraft || lc == LayerCoverage
}

// LayerCategories lists all layers in stable order.
func LayerCategories() []LayerCategory {
	return []LayerCategory{LayerVessels, LayerAircraft, LayerCoverage}
}

// EntityKind distinguishes point markers from polygon overlays.
type EntityKind string

const (
	KindPoint   EntityKind = "point"
	KindPolygon EntityKind = "polygon"
)

// RenderedEntity is one map-ready entity derived from a snapshot. Exactly
// one of Record and Region is set, matching Kind.
//
// Key is positional within the source snapshot (vessel_0, aircraft_3,
// coverage_1) and is only stable until the next rebuild.
type RenderedEntity struct {
	Key      string        `json:"key"`
	Layer    LayerCategory `json:"layer"`
	Kind     EntityKind    `json:"kind"`
	Online   bool          `json:"online"`
	Tier     classify.Tier `json:"tier"`
	Position models.Position `json:"position"`

	Record *models.SurveillanceRecord `json:"record,omitempty"`
	Region *models.CoverageRegion     `json:"region,omitempty"`
}

// ViewProvider is the rendering collaborator the manager drives. The
// WebSocket hub implements it to mirror layer state to connected map
// consoles; NopView serves headless and test configurations.
//
// Calls arrive serialized from the manager; implementations need not add
// their own ordering but must not call back into the manager.
type ViewProvider interface {
	// AttachEntities makes entities visible on the given layer.
	AttachEntities(layer LayerCategory, entities []RenderedEntity)

	// DetachLayer hides all entities of the given layer.
	DetachLayer(layer LayerCategory)

	// ClearAll removes every entity from every layer.
	ClearAll()
}

// NopView discards all view updates.
type NopView struct{}

// AttachEntities implements ViewProvider.
func (NopView) AttachEntities(LayerCategory, []RenderedEntity) {}

// DetachLayer implements ViewProvider.
func (NopView) DetachLayer(LayerCategory) {}

// ClearAll implements ViewProvider.
func (NopView) ClearAll() {}
