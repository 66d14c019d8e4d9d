// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package layers

import (
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/pelorus/internal/classify"
	"github.com/tomtom215/pelorus/internal/models"
)

// recordingView captures view calls for assertions.
type recordingView struct {
	mu        sync.Mutex
	attached  map[LayerCategory][]RenderedEntity
	detached  []LayerCategory
	clearAlls int
}

func newRecordingView() *recordingView {
	return &recordingView{attached: make(map[LayerCategory][]RenderedEntity)}
}

func (v *recordingView) AttachEntities(layer LayerCategory, entities []RenderedEntity) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.attached[layer] = entities
}

func (v *recordingView) DetachLayer(layer LayerCategory) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.detached = append(v.detached, layer)
	delete(v.attached, layer)
}

func (v *recordingView) ClearAll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clearAlls++
	v.attached = make(map[LayerCategory][]RenderedEntity)
}

func testSnapshot(now time.Time) *models.Snapshot {
	ts := now.Add(-time.Hour)
	stale := now.Add(-48 * time.Hour)
	return &models.Snapshot{
		Records: []models.SurveillanceRecord{
			{Category: models.CategoryVessel, Identity: "V0", Latitude: 30.0, Longitude: 122.0, Timestamp: ts, QualityStatus: "normal"},
			{Category: models.CategoryVessel, Identity: "V1-bad", Latitude: 95.0, Longitude: 122.1, Timestamp: ts},
			{Category: models.CategoryVessel, Identity: "V2", Latitude: 30.2, Longitude: 122.2, Timestamp: stale, QualityStatus: "garbled"},
			{Category: models.CategoryAircraft, Identity: "A0", Latitude: 31.0, Longitude: 121.5, Timestamp: ts, QualityStatus: "warning"},
		},
		CoverageRegions: []models.CoverageRegion{
			{
				ResourceID: "degenerate",
				Boundary:   []models.Position{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}},
			},
			{
				ResourceID: "shore-1",
				Online:     true,
				Boundary:   []models.Position{{Lon: 121, Lat: 29}, {Lon: 123, Lat: 29}, {Lon: 123, Lat: 31}},
			},
		},
		FetchedAt: now,
	}
}

func TestReplaceSnapshotPositionalKeys(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	view := newRecordingView()
	m := NewManager(view, 24*time.Hour, nil)
	m.now = func() time.Time { return now }

	m.ReplaceSnapshot(testSnapshot(now))

	// vessel_1 has an invalid position and is skipped, but the key space
	// stays positional: the third vessel is vessel_2, not vessel_1.
	if _, ok := m.Entity("vessel_0"); !ok {
		t.Error("vessel_0 should exist")
	}
	if _, ok := m.Entity("vessel_1"); ok {
		t.Error("vessel_1 has an invalid position and should be skipped")
	}
	v2, ok := m.Entity("vessel_2")
	if !ok {
		t.Fatal("vessel_2 should exist despite vessel_1 being skipped")
	}
	if v2.Record == nil || v2.Record.Identity != "V2" {
		t.Errorf("vessel_2 = %+v, want record V2", v2.Record)
	}

	if _, ok := m.Entity("aircraft_0"); !ok {
		t.Error("aircraft_0 should exist")
	}

	// Coverage keys are positional too: region 0 is degenerate and skipped,
	// the surviving region keeps index 1.
	if _, ok := m.Entity("coverage_0"); ok {
		t.Error("coverage_0 is degenerate and should be skipped")
	}
	cov, ok := m.Entity("coverage_1")
	if !ok {
		t.Fatal("coverage_1 should exist")
	}
	if cov.Kind != KindPolygon {
		t.Errorf("coverage entity kind = %v, want polygon", cov.Kind)
	}

	counts := m.Counts()
	if counts[LayerVessels] != 2 || counts[LayerAircraft] != 1 || counts[LayerCoverage] != 1 {
		t.Errorf("Counts() = %v, want vessels=2 aircraft=1 coverage=1", counts)
	}
}

func TestReplaceSnapshotClassification(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	m := NewManager(nil, 24*time.Hour, nil)
	m.now = func() time.Time { return now }

	m.ReplaceSnapshot(testSnapshot(now))

	v0, _ := m.Entity("vessel_0")
	if !v0.Online || v0.Tier != classify.TierNormal {
		t.Errorf("vessel_0 online=%v tier=%v, want online normal", v0.Online, v0.Tier)
	}

	// Stale timestamp and unknown quality status: offline, error tier.
	v2, _ := m.Entity("vessel_2")
	if v2.Online || v2.Tier != classify.TierError {
		t.Errorf("vessel_2 online=%v tier=%v, want offline error", v2.Online, v2.Tier)
	}

	a0, _ := m.Entity("aircraft_0")
	if !a0.Online || a0.Tier != classify.TierWarning {
		t.Errorf("aircraft_0 online=%v tier=%v, want online warning", a0.Online, a0.Tier)
	}

	// Online coverage renders at normal tier, offline at warning.
	cov, _ := m.Entity("coverage_1")
	if cov.Tier != classify.TierNormal {
		t.Errorf("online coverage tier = %v, want normal", cov.Tier)
	}
}

func TestReplaceSnapshotClearsBeforeRebuild(t *testing.T) {
	t.Parallel()

	now := time.Now()
	view := newRecordingView()
	m := NewManager(view, 0, nil)

	m.ReplaceSnapshot(testSnapshot(now))
	m.ReplaceSnapshot(&models.Snapshot{FetchedAt: now})

	if view.clearAlls != 2 {
		t.Errorf("ClearAll called %d times, want once per rebuild", view.clearAlls)
	}
	if counts := m.Counts(); counts[LayerVessels] != 0 {
		t.Errorf("old entities survived the rebuild: %v", counts)
	}
	if _, ok := m.Entity("vessel_0"); ok {
		t.Error("keys from the previous snapshot must not survive a rebuild")
	}
}

func TestSetVisibility(t *testing.T) {
	t.Parallel()

	now := time.Now()
	view := newRecordingView()
	m := NewManager(view, 0, nil)
	m.ReplaceSnapshot(testSnapshot(now))

	if len(view.attached[LayerVessels]) != 2 {
		t.Fatalf("vessels attached = %d, want 2", len(view.attached[LayerVessels]))
	}

	if err := m.SetVisibility(LayerVessels, false); err != nil {
		t.Fatalf("SetVisibility failed: %v", err)
	}
	if _, ok := view.attached[LayerVessels]; ok {
		t.Error("hiding a layer should detach it from the view")
	}
	if !m.Visibility()[LayerAircraft] {
		t.Error("other layers should be untouched")
	}

	// Hidden entities stay queryable.
	if _, ok := m.Entity("vessel_0"); !ok {
		t.Error("hidden entities should remain in the manager")
	}

	// Re-showing re-attaches without a rebuild.
	if err := m.SetVisibility(LayerVessels, true); err != nil {
		t.Fatalf("SetVisibility failed: %v", err)
	}
	if len(view.attached[LayerVessels]) != 2 {
		t.Errorf("vessels re-attached = %d, want 2", len(view.attached[LayerVessels]))
	}

	if err := m.SetVisibility("heliports", true); err == nil {
		t.Error("unknown layers should be rejected")
	}
}

func TestVisibilitySurvivesRebuild(t *testing.T) {
	t.Parallel()

	now := time.Now()
	view := newRecordingView()
	m := NewManager(view, 0, map[LayerCategory]bool{LayerCoverage: false})

	m.ReplaceSnapshot(testSnapshot(now))

	if _, ok := view.attached[LayerCoverage]; ok {
		t.Error("initially hidden layer should not attach on rebuild")
	}
	if !m.Visibility()[LayerVessels] {
		t.Error("layers absent from initial visibility default to visible")
	}
}

func TestComputeBounds(t *testing.T) {
	t.Parallel()

	now := time.Now()
	m := NewManager(nil, 0, nil)
	m.ReplaceSnapshot(testSnapshot(now))

	bounds := m.ComputeBounds()
	if bounds.IsEmpty() {
		t.Fatal("bounds should not be empty with attached points")
	}
	// Points: (122,30), (122.2,30.2), (121.5,31). The coverage polygon and
	// the invalid-position vessel must not contribute.
	if bounds.MinLon != 121.5 || bounds.MaxLon != 122.2 {
		t.Errorf("longitude range = [%v, %v], want [121.5, 122.2]", bounds.MinLon, bounds.MaxLon)
	}
	if bounds.MinLat != 30.0 || bounds.MaxLat != 31.0 {
		t.Errorf("latitude range = [%v, %v], want [30, 31]", bounds.MinLat, bounds.MaxLat)
	}

	// Hidden layers do not contribute.
	if err := m.SetVisibility(LayerAircraft, false); err != nil {
		t.Fatal(err)
	}
	bounds = m.ComputeBounds()
	if bounds.MaxLat != 30.2 {
		t.Errorf("hidden aircraft still contribute to bounds: max lat %v", bounds.MaxLat)
	}

	if err := m.SetVisibility(LayerVessels, false); err != nil {
		t.Fatal(err)
	}
	if !m.ComputeBounds().IsEmpty() {
		t.Error("bounds should be empty with all point layers hidden")
	}
}

func TestClearKeepsVisibility(t *testing.T) {
	t.Parallel()

	view := newRecordingView()
	m := NewManager(view, 0, nil)
	m.ReplaceSnapshot(testSnapshot(time.Now()))

	if err := m.SetVisibility(LayerVessels, false); err != nil {
		t.Fatal(err)
	}
	m.Clear()

	if counts := m.Counts(); counts[LayerVessels] != 0 || counts[LayerCoverage] != 0 {
		t.Errorf("Clear left entities behind: %v", counts)
	}
	if m.Visibility()[LayerVessels] {
		t.Error("Clear must not reset visibility settings")
	}
}

func TestLayerEntitiesSnapshotOrder(t *testing.T) {
	t.Parallel()

	m := NewManager(nil, 0, nil)
	m.ReplaceSnapshot(testSnapshot(time.Now()))

	vessels := m.LayerEntities(LayerVessels)
	if len(vessels) != 2 {
		t.Fatalf("got %d vessels, want 2", len(vessels))
	}
	if vessels[0].Key != "vessel_0" || vessels[1].Key != "vessel_2" {
		t.Errorf("vessel order = %s, %s; want vessel_0, vessel_2", vessels[0].Key, vessels[1].Key)
	}
}
