// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package metrics provides Prometheus instrumentation for Pelorus:
// snapshot sync operations, circuit breaker state, layer entity counts
// and trigger-surface API traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Sync Operation Metrics
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pelorus_sync_duration_seconds",
			Help:    "Duration of snapshot fetch operations in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SyncRecordsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelorus_sync_records_fetched_total",
			Help: "Total surveillance records fetched, by category",
		},
		[]string{"category"}, // "vessel", "aircraft"
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelorus_sync_errors_total",
			Help: "Total snapshot sync failures",
		},
		[]string{"error_type"}, // "unreachable", "timeout", "rejected", "decode"
	)

	SyncBusyRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pelorus_sync_busy_rejections_total",
			Help: "Loads rejected because another load was already in flight",
		},
	)

	SyncRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pelorus_sync_cache_clear_retries_total",
			Help: "Automatic cache-clear retries after a failed load",
		},
	)

	SyncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pelorus_sync_last_success_timestamp",
			Help: "Unix timestamp of the last successfully applied snapshot",
		},
	)

	// Layer State Metrics
	LayerEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pelorus_layer_entities",
			Help: "Rendered entities currently owned, by category and attachment",
		},
		[]string{"category", "state"}, // state: "attached", "detached"
	)

	LayerRebuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pelorus_layer_rebuilds_total",
			Help: "Full clear-then-rebuild passes over the layer state",
		},
	)

	LayerSkippedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelorus_layer_skipped_records_total",
			Help: "Records or regions skipped during rebuild for failing validity checks",
		},
		[]string{"reason"}, // "invalid_position", "degenerate_boundary"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pelorus_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelorus_circuit_breaker_requests_total",
			Help: "Circuit breaker request outcomes",
		},
		[]string{"name", "outcome"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelorus_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelorus_api_requests_total",
			Help: "Total trigger-surface API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pelorus_api_request_duration_seconds",
			Help:    "Trigger-surface API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// WebSocket Metrics
	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pelorus_websocket_clients",
			Help: "Currently connected presentation-layer WebSocket clients",
		},
	)

	WebSocketMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelorus_websocket_messages_sent_total",
			Help: "Messages broadcast to WebSocket clients, by type",
		},
		[]string{"message_type"},
	)
)

// ObserveSyncDuration records a completed fetch and stamps the success gauge.
func ObserveSyncDuration(start time.Time, success bool) {
	SyncDuration.Observe(time.Since(start).Seconds())
	if success {
		SyncLastSuccess.SetToCurrentTime()
	}
}

// RecordAPIRequest records one trigger-surface request outcome.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
