// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

/*
coordinator.go - Snapshot Load Coordinator

The Coordinator owns the fetch lifecycle against the SDFS backend: health
probe, snapshot fetch, wire-to-model conversion, and publication of the
applied snapshot to downstream consumers (layer manager, WebSocket hub).

Concurrency model:
  - Single-flight guard: at most one load-class operation (Load, Update,
    RetryAfterClearingCache) runs at a time. A second caller is rejected
    immediately with ErrBusy; it is neither queued nor joined to the
    in-flight request.
  - The held snapshot is guarded by a read-write mutex and replaced
    wholesale on success. A failed load never clears it: stale data with an
    honest timestamp beats an empty map.

Failure policy:
  - A failed fetch triggers exactly one automatic recovery attempt: clear
    the backend cache, then force-refresh once. The retry never recurses.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/pelorus/internal/classify"
	"github.com/tomtom215/pelorus/internal/logging"
	"github.com/tomtom215/pelorus/internal/metrics"
	"github.com/tomtom215/pelorus/internal/models"
)

// SnapshotSink receives each applied snapshot together with its derived
// status summary. The layer manager implements it to rebuild map state.
type SnapshotSink func(snap *models.Snapshot, summary models.StatusSummary)

// Coordinator drives snapshot loads against the SDFS backend.
//
// Thread Safety: all exported methods are safe for concurrent use.
type Coordinator struct {
	client   BackendAPI
	notifier StatusNotifier

	onlineThreshold time.Duration

	// loading is the single-flight guard for load-class operations.
	loading atomic.Bool

	mu       sync.RWMutex
	snapshot *models.Snapshot
	summary  models.StatusSummary
	lastErr  error

	sinkMu sync.RWMutex
	sinks  []SnapshotSink

	// now is replaceable in tests.
	now func() time.Time
}

// NewCoordinator creates a coordinator over the given backend client.
// notifier may be nil, in which case notifications are discarded.
func NewCoordinator(client BackendAPI, notifier StatusNotifier, onlineThreshold time.Duration) *Coordinator {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if onlineThreshold <= 0 {
		onlineThreshold = classify.DefaultOnlineThreshold
	}
	return &Coordinator{
		client:          client,
		notifier:        notifier,
		onlineThreshold: onlineThreshold,
		now:             time.Now,
	}
}

// AddSnapshotSink registers a consumer for applied snapshots. Sinks are
// invoked synchronously, in registration order, while the load guard is
// held; they must not call back into load-class operations.
func (c *Coordinator) AddSnapshotSink(sink SnapshotSink) {
	c.sinkMu.Lock()
	defer c.sinkMu.Unlock()
	c.sinks = append(c.sinks, sink)
}

// Snapshot returns the currently held snapshot and its status summary.
// Returns nil when no load has succeeded yet. The snapshot is shared and
// must be treated as read-only.
func (c *Coordinator) Snapshot() (*models.Snapshot, models.StatusSummary) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, c.summary
}

// LastError returns the error of the most recent load-class operation, or
// nil if it succeeded.
func (c *Coordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Loading reports whether a load-class operation is currently in flight.
func (c *Coordinator) Loading() bool {
	return c.loading.Load()
}

// CheckHealth probes backend reachability. Health probes are read-only and
// deliberately not guarded by the single-flight flag: a dashboard polling
// health must not be starved by a long-running fetch.
func (c *Coordinator) CheckHealth(ctx context.Context) error {
	health, err := c.client.CheckHealth(ctx)
	if err != nil {
		return err
	}
	if !health.Healthy() {
		return &RejectedError{Op: "/health", Message: fmt.Sprintf("backend status %q", health.Status)}
	}
	return nil
}

// Load performs a guarded fetch-and-apply cycle. When forceRefresh is set
// the backend bypasses its cache. Returns ErrBusy without any network
// traffic if another load-class operation is in flight.
//
// On fetch failure Load makes exactly one automatic recovery attempt:
// clear the backend cache, then force-refresh once.
func (c *Coordinator) Load(ctx context.Context, forceRefresh bool) (*models.Snapshot, error) {
	if !c.loading.CompareAndSwap(false, true) {
		metrics.SyncBusyRejections.Inc()
		return nil, ErrBusy
	}
	defer c.loading.Store(false)

	return c.loadWithRecovery(ctx, forceRefresh)
}

// Update asks the backend to rescan its decoder input and, when the rescan
// is accepted, chains into a forced load. A rejected or failed rescan
// returns without fetching; the held snapshot is untouched.
func (c *Coordinator) Update(ctx context.Context) (*models.Snapshot, error) {
	if !c.loading.CompareAndSwap(false, true) {
		metrics.SyncBusyRejections.Inc()
		return nil, ErrBusy
	}
	defer c.loading.Store(false)

	c.notifier.StatusChanged("Requesting backend data rescan", StatusInfo)

	update, err := c.client.TriggerRescan(ctx)
	if err != nil {
		c.recordFailure(err)
		c.notifier.StatusChanged("Backend rescan failed", StatusError)
		return nil, err
	}

	logging.Info().Str("last_update", update.LastUpdate).Msg("Backend rescan accepted")
	return c.loadWithRecovery(ctx, true)
}

// RetryAfterClearingCache clears the backend cache and performs a single
// forced load. Unlike Load it makes no further recovery attempt on failure:
// this operation IS the recovery path, and chaining another clear-and-retry
// from it would recurse.
func (c *Coordinator) RetryAfterClearingCache(ctx context.Context) (*models.Snapshot, error) {
	if !c.loading.CompareAndSwap(false, true) {
		metrics.SyncBusyRejections.Inc()
		return nil, ErrBusy
	}
	defer c.loading.Store(false)

	if err := c.clearBackendCache(ctx); err != nil {
		c.recordFailure(err)
		return nil, err
	}
	return c.fetchAndApply(ctx, true)
}

// loadWithRecovery runs one fetch-and-apply cycle plus the one-shot
// clear-cache recovery. Callers must hold the load guard.
func (c *Coordinator) loadWithRecovery(ctx context.Context, forceRefresh bool) (*models.Snapshot, error) {
	snap, err := c.fetchAndApply(ctx, forceRefresh)
	if err == nil {
		return snap, nil
	}
	if ctx.Err() != nil {
		// The caller is gone; a recovery fetch would fail the same way.
		return nil, err
	}

	logging.Warn().Err(err).Msg("Load failed, clearing backend cache and retrying once")
	c.notifier.StatusChanged("Load failed, retrying after cache clear", StatusWarning)
	metrics.SyncRetries.Inc()

	if cerr := c.clearBackendCache(ctx); cerr != nil {
		logging.Error().Err(cerr).Msg("Cache clear during recovery failed")
		return nil, err
	}

	snap, rerr := c.fetchAndApply(ctx, true)
	if rerr != nil {
		c.notifier.StatusChanged("Backend data unavailable", StatusError)
		return nil, rerr
	}
	return snap, nil
}

// fetchAndApply performs one health-gated fetch, converts the payload, and
// publishes the resulting snapshot. Callers must hold the load guard.
func (c *Coordinator) fetchAndApply(ctx context.Context, forceRefresh bool) (*models.Snapshot, error) {
	start := c.now()

	if err := c.CheckHealth(ctx); err != nil {
		c.recordFailure(err)
		metrics.ObserveSyncDuration(start, false)
		metrics.SyncErrors.WithLabelValues(string(Classify(err))).Inc()
		return nil, err
	}

	c.notifier.StatusChanged("Fetching surveillance data", StatusInfo)

	resp, err := c.client.FetchData(ctx, forceRefresh)
	if err != nil {
		c.recordFailure(err)
		metrics.ObserveSyncDuration(start, false)
		metrics.SyncErrors.WithLabelValues(string(Classify(err))).Inc()
		return nil, err
	}

	snap := buildSnapshot(resp, c.now())
	summary := classify.Summarize(snap, c.now(), c.onlineThreshold)
	c.apply(snap, summary)

	vessels := snap.CountByCategory(models.CategoryVessel)
	aircraft := snap.CountByCategory(models.CategoryAircraft)
	metrics.SyncRecordsFetched.WithLabelValues(string(models.CategoryVessel)).Add(float64(vessels))
	metrics.SyncRecordsFetched.WithLabelValues(string(models.CategoryAircraft)).Add(float64(aircraft))
	metrics.ObserveSyncDuration(start, true)

	logging.Info().
		Int("vessels", vessels).
		Int("aircraft", aircraft).
		Int("coverage_regions", len(snap.CoverageRegions)).
		Time("backend_last_update", snap.LastUpdate).
		Msg("Snapshot applied")

	switch {
	case vessels+aircraft == 0:
		c.notifier.StatusChanged("Backend returned no position data", StatusWarning)
	case vessels == 0 || aircraft == 0:
		// One category empty while the other has data: the snapshot is
		// still applied, but the operator should know a source is dark.
		c.notifier.StatusChanged(
			fmt.Sprintf("Partial data: %d vessels and %d aircraft", vessels, aircraft),
			StatusWarning,
		)
	default:
		c.notifier.StatusChanged(
			fmt.Sprintf("Loaded %d vessels and %d aircraft", vessels, aircraft),
			StatusSuccess,
		)
	}

	return snap, nil
}

// apply replaces the held snapshot and fans it out to the registered sinks.
func (c *Coordinator) apply(snap *models.Snapshot, summary models.StatusSummary) {
	c.mu.Lock()
	c.snapshot = snap
	c.summary = summary
	c.lastErr = nil
	c.mu.Unlock()

	c.sinkMu.RLock()
	sinks := c.sinks
	c.sinkMu.RUnlock()

	for _, sink := range sinks {
		sink(snap, summary)
	}
}

func (c *Coordinator) recordFailure(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func (c *Coordinator) clearBackendCache(ctx context.Context) error {
	cleared, err := c.client.ClearCache(ctx)
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	logging.Info().Int("cleared_files", cleared.ClearedFiles).Msg("Backend cache cleared")
	return nil
}
