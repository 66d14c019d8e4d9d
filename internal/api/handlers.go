// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/pelorus/internal/layers"
	"github.com/tomtom215/pelorus/internal/logging"
	"github.com/tomtom215/pelorus/internal/models"
	syncpkg "github.com/tomtom215/pelorus/internal/sync"
	"github.com/tomtom215/pelorus/internal/viewport"
	"github.com/tomtom215/pelorus/internal/websocket"
)

// Handlers bundles the console's HTTP endpoints and their collaborators.
type Handlers struct {
	coordinator *syncpkg.Coordinator
	backend     syncpkg.BackendAPI
	manager     *layers.Manager
	view        *viewport.Controller
	hub         *websocket.Hub
}

// NewHandlers wires the endpoint handlers. hub may be nil when the
// WebSocket surface is disabled.
func NewHandlers(
	coordinator *syncpkg.Coordinator,
	backend syncpkg.BackendAPI,
	manager *layers.Manager,
	view *viewport.Controller,
	hub *websocket.Hub,
) *Handlers {
	return &Handlers{
		coordinator: coordinator,
		backend:     backend,
		manager:     manager,
		view:        view,
		hub:         hub,
	}
}

// HealthLive reports console process liveness.
func (h *Handlers) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady reports whether the SDFS backend is reachable and healthy.
// Readiness is probe-only: it never triggers a load and is not gated by
// the single-flight guard.
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.coordinator.CheckHealth(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "BACKEND_UNHEALTHY", "backend health probe failed", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}

// StatusData is the payload of GET /api/v1/status.
type StatusData struct {
	Loading   bool   `json:"loading"`
	LastError string `json:"last_error,omitempty"`

	// Snapshot info; zero values when no load has succeeded yet.
	HasSnapshot       bool                 `json:"has_snapshot"`
	FetchedAt         *time.Time           `json:"fetched_at,omitempty"`
	BackendLastUpdate *time.Time           `json:"backend_last_update,omitempty"`
	Summary           models.StatusSummary `json:"summary"`

	Counts     map[layers.LayerCategory]int  `json:"counts"`
	Visibility map[layers.LayerCategory]bool `json:"visibility"`
	Camera     viewport.CameraState          `json:"camera"`

	ConnectedConsoles int `json:"connected_consoles"`
}

// Status returns the console's full presentation state. A stale snapshot
// is still reported, with its honest fetch timestamp; clients decide how
// to flag age.
func (h *Handlers) Status(w http.ResponseWriter, _ *http.Request) {
	snap, summary := h.coordinator.Snapshot()

	data := StatusData{
		Loading:    h.coordinator.Loading(),
		Summary:    summary,
		Counts:     h.manager.Counts(),
		Visibility: h.manager.Visibility(),
		Camera:     h.view.Current(),
	}
	if err := h.coordinator.LastError(); err != nil {
		data.LastError = err.Error()
	}
	if snap != nil {
		data.HasSnapshot = true
		data.FetchedAt = &snap.FetchedAt
		if !snap.LastUpdate.IsZero() {
			data.BackendLastUpdate = &snap.LastUpdate
		}
	}
	if h.hub != nil {
		data.ConnectedConsoles = h.hub.ClientCount()
	}

	respondSuccess(w, http.StatusOK, data)
}

// loadResultData summarizes an applied snapshot for trigger endpoints.
type loadResultData struct {
	Vessels         int       `json:"vessels"`
	Aircraft        int       `json:"aircraft"`
	CoverageRegions int       `json:"coverage_regions"`
	FetchedAt       time.Time `json:"fetched_at"`
}

func loadResult(snap *models.Snapshot) loadResultData {
	return loadResultData{
		Vessels:         snap.CountByCategory(models.CategoryVessel),
		Aircraft:        snap.CountByCategory(models.CategoryAircraft),
		CoverageRegions: len(snap.CoverageRegions),
		FetchedAt:       snap.FetchedAt,
	}
}

// DataReload triggers a snapshot load. ?force=true bypasses the backend
// cache. Responds 409 SYNC_BUSY when a load is already in flight.
func (h *Handlers) DataReload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	force := r.URL.Query().Get("force") == "true"

	snap, err := h.coordinator.Load(r.Context(), force)
	if err != nil {
		respondSyncError(w, err)
		return
	}
	respondTriggerSuccess(w, http.StatusOK, loadResult(snap), start)
}

// DataRefresh asks the backend to rescan its decoder input, then chains
// into a forced load.
func (h *Handlers) DataRefresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	snap, err := h.coordinator.Update(r.Context())
	if err != nil {
		respondSyncError(w, err)
		return
	}
	respondTriggerSuccess(w, http.StatusOK, loadResult(snap), start)
}

// CacheClear clears the backend cache and performs a single forced load.
func (h *Handlers) CacheClear(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	snap, err := h.coordinator.RetryAfterClearingCache(r.Context())
	if err != nil {
		respondSyncError(w, err)
		return
	}
	respondTriggerSuccess(w, http.StatusOK, loadResult(snap), start)
}

// Stats proxies the backend's statistics document verbatim.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.backend.FetchStats(r.Context())
	if err != nil {
		respondSyncError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, stats.Stats)
}

// Coverage proxies the backend's coverage polygons as-is. Unlike the
// snapshot path this never touches the load guard: a coverage-only refresh
// stays available while a full load is in flight.
func (h *Handlers) Coverage(w http.ResponseWriter, r *http.Request) {
	cov, err := h.backend.FetchCoverage(r.Context())
	if err != nil {
		respondSyncError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"coverage_layers": cov.CoverageLayers,
	})
}

// Entity returns the structured detail view-model for one rendered entity.
func (h *Handlers) Entity(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	entity, ok := h.manager.Entity(key)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "no rendered entity with key "+key, nil)
		return
	}
	respondSuccess(w, http.StatusOK, layers.BuildDetails(entity))
}

// Layers reports per-layer entity counts and visibility.
func (h *Handlers) Layers(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"counts":     h.manager.Counts(),
		"visibility": h.manager.Visibility(),
	})
}

// visibilityRequest is the body of PUT /layers/{layer}/visibility.
type visibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// SetLayerVisibility toggles one layer on or off.
func (h *Handlers) SetLayerVisibility(w http.ResponseWriter, r *http.Request) {
	layer := layers.LayerCategory(chi.URLParam(r, "layer"))
	if !layer.Valid() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown layer "+string(layer), nil)
		return
	}

	var req visibilityRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    apiErr,
		})
		return
	}

	if err := h.manager.SetVisibility(layer, *req.Visible); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"layer":   layer,
		"visible": *req.Visible,
	})
}

// ViewFit frames the camera to the attached point entities. An empty map
// leaves the camera where it is and reports moved=false.
func (h *Handlers) ViewFit(w http.ResponseWriter, _ *http.Request) {
	bounds := h.manager.ComputeBounds()
	moved := h.view.FitToBounds(bounds)

	data := map[string]interface{}{
		"moved":  moved,
		"camera": h.view.Current(),
	}
	if moved {
		data["bounds"] = bounds
	}
	respondSuccess(w, http.StatusOK, data)
}

// ViewReset returns the camera to the configured home view.
func (h *Handlers) ViewReset(w http.ResponseWriter, _ *http.Request) {
	camera := h.view.ResetView()
	respondSuccess(w, http.StatusOK, map[string]interface{}{"camera": camera})
}

// debugDecodeRequest carries the path parameter of POST /debug/decode.
type debugDecodeRequest struct {
	Category string `validate:"required,category"`
}

// DebugDecode triggers a raw decode run on the backend for one category
// and proxies the diagnostic document.
func (h *Handlers) DebugDecode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := debugDecodeRequest{Category: chi.URLParam(r, "category")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    apiErr,
		})
		return
	}
	category := models.Category(req.Category)

	raw, err := h.backend.DebugDecode(r.Context(), category)
	if err != nil {
		respondSyncError(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("category", string(category)).Msg("Debug decode triggered")
	respondTriggerSuccess(w, http.StatusOK, raw, start)
}
