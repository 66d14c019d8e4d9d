// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package sync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/pelorus/internal/config"
	"github.com/tomtom215/pelorus/internal/models"
)

// testBackendConfig returns a client config pointed at the given test
// server, with generous limits so rate limiting never interferes.
func testBackendConfig(url string) *config.BackendConfig {
	return &config.BackendConfig{
		URL:               url,
		HealthTimeout:     2 * time.Second,
		FetchTimeout:      5 * time.Second,
		RequestsPerSecond: 1000,
		RequestBurst:      1000,
	}
}

func TestBackendClientCheckHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","service":"sdfs","data_status":{"processed":true,"ais_count":10,"adsb_count":4}}`))
	}))
	defer srv.Close()

	c := NewBackendClient(testBackendConfig(srv.URL))
	health, err := c.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.Healthy() {
		t.Errorf("health = %+v, want healthy", health)
	}
	if health.DataStatus == nil || health.DataStatus.AISCount != 10 {
		t.Errorf("data status = %+v, want ais_count 10", health.DataStatus)
	}
}

func TestBackendClientFetchDataForceUpdate(t *testing.T) {
	t.Parallel()

	var sawForce bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		sawForce = r.URL.Query().Get("force_update") == "true"
		_, _ = w.Write([]byte(`{"success":true,"data":{"ais_data":[],"adsb_data":[],"coverage_layers":[]}}`))
	}))
	defer srv.Close()

	c := NewBackendClient(testBackendConfig(srv.URL))

	if _, err := c.FetchData(context.Background(), false); err != nil {
		t.Fatalf("FetchData failed: %v", err)
	}
	if sawForce {
		t.Error("plain fetch must not set force_update")
	}

	if _, err := c.FetchData(context.Background(), true); err != nil {
		t.Fatalf("forced FetchData failed: %v", err)
	}
	if !sawForce {
		t.Error("forced fetch must set force_update=true")
	}
}

func TestBackendClientRejectedOnSuccessFalse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"no decoder output"}`))
	}))
	defer srv.Close()

	c := NewBackendClient(testBackendConfig(srv.URL))
	_, err := c.FetchData(context.Background(), false)

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("FetchData error = %v, want RejectedError", err)
	}
	if rejected.Message != "no decoder output" {
		t.Errorf("rejection message = %q", rejected.Message)
	}
	if Classify(err) != KindRejected {
		t.Errorf("Classify = %v, want rejected", Classify(err))
	}
}

func TestBackendClientRejectedOnHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal decoder fault", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewBackendClient(testBackendConfig(srv.URL))
	_, err := c.CheckHealth(context.Background())

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("CheckHealth error = %v, want RejectedError for HTTP 500", err)
	}
}

func TestBackendClientUnreachable(t *testing.T) {
	t.Parallel()

	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewBackendClient(testBackendConfig(srv.URL))
	_, err := c.CheckHealth(context.Background())
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("CheckHealth error = %v, want ErrBackendUnreachable", err)
	}
	if Classify(err) != KindUnreachable {
		t.Errorf("Classify = %v, want unreachable", Classify(err))
	}
}

func TestBackendClientTimeout(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	cfg := testBackendConfig(srv.URL)
	cfg.HealthTimeout = 50 * time.Millisecond

	c := NewBackendClient(cfg)
	_, err := c.CheckHealth(context.Background())
	if !errors.Is(err, ErrRequestTimeout) {
		t.Fatalf("CheckHealth error = %v, want ErrRequestTimeout", err)
	}
	if Classify(err) != KindTimeout {
		t.Errorf("Classify = %v, want timeout", Classify(err))
	}
}

func TestBackendClientTriggerRescan(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/data/update" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"rescan scheduled","last_update":"2026-08-26T09:00:00Z"}`))
	}))
	defer srv.Close()

	c := NewBackendClient(testBackendConfig(srv.URL))
	update, err := c.TriggerRescan(context.Background())
	if err != nil {
		t.Fatalf("TriggerRescan failed: %v", err)
	}
	if update.LastUpdate != "2026-08-26T09:00:00Z" {
		t.Errorf("last_update = %q", update.LastUpdate)
	}
}

func TestBackendClientClearCache(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/data/cache/clear" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"cleared_files":3}`))
	}))
	defer srv.Close()

	c := NewBackendClient(testBackendConfig(srv.URL))
	cleared, err := c.ClearCache(context.Background())
	if err != nil {
		t.Fatalf("ClearCache failed: %v", err)
	}
	if cleared.ClearedFiles != 3 {
		t.Errorf("cleared_files = %d, want 3", cleared.ClearedFiles)
	}
}

func TestBackendClientFetchStatsPassthrough(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"stats":{"decoder_runs":7,"nested":{"deep":true}}}`))
	}))
	defer srv.Close()

	c := NewBackendClient(testBackendConfig(srv.URL))
	stats, err := c.FetchStats(context.Background())
	if err != nil {
		t.Fatalf("FetchStats failed: %v", err)
	}
	if len(stats.Stats) == 0 {
		t.Error("stats document should be passed through raw")
	}
}

func TestBackendClientDebugDecode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/debug/ais", "/data/debug/adsb":
			_, _ = w.Write([]byte(`{"decoded":1}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewBackendClient(testBackendConfig(srv.URL))

	for _, cat := range models.Categories() {
		raw, err := c.DebugDecode(context.Background(), cat)
		if err != nil {
			t.Fatalf("DebugDecode(%s) failed: %v", cat, err)
		}
		if string(raw) != `{"decoded":1}` {
			t.Errorf("DebugDecode(%s) = %s", cat, raw)
		}
	}

	if _, err := c.DebugDecode(context.Background(), models.Category("submarine")); err == nil {
		t.Error("DebugDecode should reject unknown categories")
	}
}
