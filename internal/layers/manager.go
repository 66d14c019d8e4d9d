// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

/*
manager.go - Map Layer State Manager

The Manager owns the console's rendered map state. Each applied snapshot
fully replaces the previous state: every entity is discarded and the new
snapshot is rebuilt from scratch. No per-entity diffing is attempted; a
snapshot is a few thousand entities at most and wholesale replacement is
both simpler and immune to drift between snapshot and map.

Entity keys are positional within the snapshot (vessel_0, aircraft_3,
coverage_1). A key is only meaningful until the next rebuild.

Visibility toggles are cheap: entities stay in the manager and are merely
attached to or detached from the view, so flipping a layer back on does
not rebuild anything.
*/

//nolint:staticcheck // File documentation, not package doc
package layers

import (
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/pelorus/internal/classify"
	"github.com/tomtom215/pelorus/internal/logging"
	"github.com/tomtom215/pelorus/internal/metrics"
	"github.com/tomtom215/pelorus/internal/models"
)

// Manager reconciles snapshot data into rendered map-layer state.
//
// Thread Safety: all exported methods are safe for concurrent use. View
// calls are made while the manager lock is held, so ViewProvider
// implementations must not call back into the manager.
type Manager struct {
	mu sync.RWMutex

	view ViewProvider

	// entities holds every built entity by key, visible or not.
	entities map[string]RenderedEntity

	// order holds each layer's keys in snapshot order.
	order map[LayerCategory][]string

	visible map[LayerCategory]bool

	onlineThreshold time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// NewManager creates a layer manager. view may be nil for headless use.
// initialVisibility decides which layers start attached; layers absent
// from the map default to visible.
func NewManager(view ViewProvider, onlineThreshold time.Duration, initialVisibility map[LayerCategory]bool) *Manager {
	if view == nil {
		view = NopView{}
	}
	if onlineThreshold <= 0 {
		onlineThreshold = classify.DefaultOnlineThreshold
	}

	visible := make(map[LayerCategory]bool, len(LayerCategories()))
	for _, layer := range LayerCategories() {
		if v, ok := initialVisibility[layer]; ok {
			visible[layer] = v
		} else {
			visible[layer] = true
		}
	}

	return &Manager{
		view:            view,
		entities:        make(map[string]RenderedEntity),
		order:           make(map[LayerCategory][]string),
		visible:         visible,
		onlineThreshold: onlineThreshold,
		now:             time.Now,
	}
}

// ReplaceSnapshot discards all current entities and rebuilds layer state
// from snap. Records without a valid position and coverage regions with
// degenerate boundaries are skipped, counted, and logged; they never abort
// the rebuild. Visibility settings survive the rebuild.
func (m *Manager) ReplaceSnapshot(snap *models.Snapshot) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.view.ClearAll()
	m.entities = make(map[string]RenderedEntity, len(snap.Records)+len(snap.CoverageRegions))
	m.order = make(map[LayerCategory][]string)

	skippedPositions := 0
	counters := map[models.Category]int{}
	for i := range snap.Records {
		rec := &snap.Records[i]
		// The positional index counts every record of the category,
		// including skipped ones, so keys stay aligned with the
		// snapshot's record order.
		idx := counters[rec.Category]
		counters[rec.Category]++

		if !rec.HasValidPosition() {
			skippedPositions++
			metrics.LayerSkippedRecords.WithLabelValues("invalid_position").Inc()
			continue
		}

		layer := recordLayer(rec.Category)
		key := fmt.Sprintf("%s_%d", rec.Category, idx)
		m.addEntity(layer, RenderedEntity{
			Key:      key,
			Layer:    layer,
			Kind:     KindPoint,
			Online:   classify.OnlineStatus(rec.Timestamp, now, m.onlineThreshold),
			Tier:     classify.QualityTier(rec.QualityStatus),
			Position: models.Position{Lon: rec.Longitude, Lat: rec.Latitude},
			Record:   rec,
		})
	}

	skippedBoundaries := 0
	for i := range snap.CoverageRegions {
		region := &snap.CoverageRegions[i]

		if !region.Renderable() {
			skippedBoundaries++
			metrics.LayerSkippedRecords.WithLabelValues("degenerate_boundary").Inc()
			continue
		}

		key := fmt.Sprintf("coverage_%d", i)
		tier := classify.TierNormal
		if !region.Online {
			tier = classify.TierWarning
		}
		m.addEntity(LayerCoverage, RenderedEntity{
			Key:      key,
			Layer:    LayerCoverage,
			Kind:     KindPolygon,
			Online:   region.Online,
			Tier:     tier,
			Position: region.Boundary[0],
			Region:   region,
		})
	}

	for _, layer := range LayerCategories() {
		if m.visible[layer] {
			m.view.AttachEntities(layer, m.layerEntitiesLocked(layer))
		}
		m.updateGaugesLocked(layer)
	}
	metrics.LayerRebuilds.Inc()

	if skippedPositions > 0 || skippedBoundaries > 0 {
		logging.Warn().
			Int("invalid_positions", skippedPositions).
			Int("degenerate_boundaries", skippedBoundaries).
			Msg("Skipped unrenderable snapshot entries")
	}
}

// SetVisibility attaches or detaches one layer. Toggling is cheap: no
// entities are rebuilt. Returns an error for unknown layers.
func (m *Manager) SetVisibility(layer LayerCategory, visible bool) error {
	if !layer.Valid() {
		return fmt.Errorf("layers: unknown layer %q", layer)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.visible[layer] == visible {
		return nil
	}
	m.visible[layer] = visible

	if visible {
		m.view.AttachEntities(layer, m.layerEntitiesLocked(layer))
	} else {
		m.view.DetachLayer(layer)
	}
	m.updateGaugesLocked(layer)

	logging.Info().Str("layer", string(layer)).Bool("visible", visible).Msg("Layer visibility changed")
	return nil
}

// Visibility returns the current per-layer visibility.
func (m *Manager) Visibility() map[LayerCategory]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[LayerCategory]bool, len(m.visible))
	for layer, v := range m.visible {
		out[layer] = v
	}
	return out
}

// ComputeBounds returns the bounding box of all attached point entities.
// Polygon layers and detached layers do not contribute. The returned
// Bounds is empty (IsEmpty reports true) when no point is attached.
func (m *Manager) ComputeBounds() models.Bounds {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var bounds models.Bounds
	for _, layer := range []LayerCategory{LayerVessels, LayerAircraft} {
		if !m.visible[layer] {
			continue
		}
		for _, key := range m.order[layer] {
			bounds.Extend(m.entities[key].Position)
		}
	}
	return bounds
}

// Entity looks up one rendered entity by key.
func (m *Manager) Entity(key string) (RenderedEntity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entity, ok := m.entities[key]
	return entity, ok
}

// LayerEntities returns the given layer's entities in snapshot order,
// regardless of visibility.
func (m *Manager) LayerEntities(layer LayerCategory) []RenderedEntity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.layerEntitiesLocked(layer)
}

// Counts returns the number of built entities per layer.
func (m *Manager) Counts() map[LayerCategory]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[LayerCategory]int, len(m.order))
	for _, layer := range LayerCategories() {
		out[layer] = len(m.order[layer])
	}
	return out
}

// Clear discards all entities. Visibility settings are kept.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.view.ClearAll()
	m.entities = make(map[string]RenderedEntity)
	m.order = make(map[LayerCategory][]string)
	for _, layer := range LayerCategories() {
		m.updateGaugesLocked(layer)
	}
}

func (m *Manager) addEntity(layer LayerCategory, entity RenderedEntity) {
	m.entities[entity.Key] = entity
	m.order[layer] = append(m.order[layer], entity.Key)
}

func (m *Manager) layerEntitiesLocked(layer LayerCategory) []RenderedEntity {
	keys := m.order[layer]
	out := make([]RenderedEntity, 0, len(keys))
	for _, key := range keys {
		out = append(out, m.entities[key])
	}
	return out
}

func (m *Manager) updateGaugesLocked(layer LayerCategory) {
	count := float64(len(m.order[layer]))
	if m.visible[layer] {
		metrics.LayerEntities.WithLabelValues(string(layer), "attached").Set(count)
		metrics.LayerEntities.WithLabelValues(string(layer), "detached").Set(0)
	} else {
		metrics.LayerEntities.WithLabelValues(string(layer), "attached").Set(0)
		metrics.LayerEntities.WithLabelValues(string(layer), "detached").Set(count)
	}
}

// recordLayer maps a record category onto its point layer.
func recordLayer(cat models.Category) LayerCategory {
	if cat == models.CategoryAircraft {
		return LayerAircraft
	}
	return LayerVessels
}
