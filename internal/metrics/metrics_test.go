// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var m io_prometheus_client.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("reading counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()

	var m io_prometheus_client.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("reading gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func histogramSampleCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()

	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("reading histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	counter, err := APIRequestsTotal.GetMetricWithLabelValues("GET", "/api/v1/status", "200")
	if err != nil {
		t.Fatalf("resolving counter: %v", err)
	}
	before := counterValue(t, counter)

	RecordAPIRequest("GET", "/api/v1/status", 200, 15*time.Millisecond)

	if got := counterValue(t, counter); got != before+1 {
		t.Errorf("request counter = %v, want %v", got, before+1)
	}

	hist, err := APIRequestDuration.GetMetricWithLabelValues("GET", "/api/v1/status")
	if err != nil {
		t.Fatalf("resolving histogram: %v", err)
	}
	if histogramSampleCount(t, hist.(prometheus.Histogram)) == 0 {
		t.Error("duration histogram recorded no samples")
	}
}

func TestObserveSyncDurationStampsSuccess(t *testing.T) {
	beforeSamples := histogramSampleCount(t, SyncDuration)
	beforeStamp := gaugeValue(t, SyncLastSuccess)

	ObserveSyncDuration(time.Now().Add(-100*time.Millisecond), true)

	if got := histogramSampleCount(t, SyncDuration); got != beforeSamples+1 {
		t.Errorf("sync duration samples = %d, want %d", got, beforeSamples+1)
	}
	if got := gaugeValue(t, SyncLastSuccess); got <= beforeStamp {
		t.Errorf("last success gauge = %v, want > %v", got, beforeStamp)
	}
}

func TestObserveSyncDurationFailureKeepsStamp(t *testing.T) {
	SyncLastSuccess.Set(42)

	ObserveSyncDuration(time.Now(), false)

	if got := gaugeValue(t, SyncLastSuccess); got != 42 {
		t.Errorf("last success gauge = %v, want unchanged 42", got)
	}
}

func TestSyncCounters(t *testing.T) {
	busyBefore := counterValue(t, SyncBusyRejections)
	retryBefore := counterValue(t, SyncRetries)

	SyncBusyRejections.Inc()
	SyncRetries.Inc()

	if got := counterValue(t, SyncBusyRejections); got != busyBefore+1 {
		t.Errorf("busy rejections = %v, want %v", got, busyBefore+1)
	}
	if got := counterValue(t, SyncRetries); got != retryBefore+1 {
		t.Errorf("retries = %v, want %v", got, retryBefore+1)
	}

	errCounter, err := SyncErrors.GetMetricWithLabelValues("timeout")
	if err != nil {
		t.Fatalf("resolving error counter: %v", err)
	}
	errBefore := counterValue(t, errCounter)
	SyncErrors.WithLabelValues("timeout").Inc()
	if got := counterValue(t, errCounter); got != errBefore+1 {
		t.Errorf("timeout errors = %v, want %v", got, errBefore+1)
	}

	fetched, err := SyncRecordsFetched.GetMetricWithLabelValues("vessel")
	if err != nil {
		t.Fatalf("resolving fetched counter: %v", err)
	}
	fetchedBefore := counterValue(t, fetched)
	SyncRecordsFetched.WithLabelValues("vessel").Add(12)
	if got := counterValue(t, fetched); got != fetchedBefore+12 {
		t.Errorf("fetched vessels = %v, want %v", got, fetchedBefore+12)
	}
}

func TestLayerMetrics(t *testing.T) {
	rebuildsBefore := counterValue(t, LayerRebuilds)
	LayerRebuilds.Inc()
	if got := counterValue(t, LayerRebuilds); got != rebuildsBefore+1 {
		t.Errorf("rebuilds = %v, want %v", got, rebuildsBefore+1)
	}

	skipped, err := LayerSkippedRecords.GetMetricWithLabelValues("invalid_position")
	if err != nil {
		t.Fatalf("resolving skipped counter: %v", err)
	}
	skippedBefore := counterValue(t, skipped)
	LayerSkippedRecords.WithLabelValues("invalid_position").Inc()
	if got := counterValue(t, skipped); got != skippedBefore+1 {
		t.Errorf("skipped = %v, want %v", got, skippedBefore+1)
	}

	LayerEntities.WithLabelValues("vessel", "attached").Set(37)
	gauge, err := LayerEntities.GetMetricWithLabelValues("vessel", "attached")
	if err != nil {
		t.Fatalf("resolving entities gauge: %v", err)
	}
	if got := gaugeValue(t, gauge); got != 37 {
		t.Errorf("attached vessels = %v, want 37", got)
	}
}

func TestCircuitBreakerMetrics(t *testing.T) {
	CircuitBreakerState.WithLabelValues("sdfs-backend").Set(2)
	state, err := CircuitBreakerState.GetMetricWithLabelValues("sdfs-backend")
	if err != nil {
		t.Fatalf("resolving state gauge: %v", err)
	}
	if got := gaugeValue(t, state); got != 2 {
		t.Errorf("breaker state = %v, want 2 (open)", got)
	}

	transitions, err := CircuitBreakerTransitions.GetMetricWithLabelValues("sdfs-backend", "closed", "open")
	if err != nil {
		t.Fatalf("resolving transitions counter: %v", err)
	}
	before := counterValue(t, transitions)
	CircuitBreakerTransitions.WithLabelValues("sdfs-backend", "closed", "open").Inc()
	if got := counterValue(t, transitions); got != before+1 {
		t.Errorf("transitions = %v, want %v", got, before+1)
	}
}

func TestWebSocketMetrics(t *testing.T) {
	WebSocketClients.Set(0)
	WebSocketClients.Inc()
	WebSocketClients.Inc()
	WebSocketClients.Dec()
	if got := gaugeValue(t, WebSocketClients); got != 1 {
		t.Errorf("clients gauge = %v, want 1", got)
	}

	sent, err := WebSocketMessagesSent.GetMetricWithLabelValues("snapshot_applied")
	if err != nil {
		t.Fatalf("resolving sent counter: %v", err)
	}
	before := counterValue(t, sent)
	WebSocketMessagesSent.WithLabelValues("snapshot_applied").Inc()
	if got := counterValue(t, sent); got != before+1 {
		t.Errorf("messages sent = %v, want %v", got, before+1)
	}
}
