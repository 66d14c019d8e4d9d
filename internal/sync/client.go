// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

/*
client.go - SDFS Backend API Client

This file provides the HTTP communication layer for the SDFS surveillance
data backend. The backend aggregates AIS (maritime) and ADS-B (aeronautical)
decoder output into JSON snapshots served over a small REST surface.

Client Features:
  - Separate timeouts for health probes (short) and data fetches (long)
  - Client-side request rate limiting
  - JSON response parsing with typed wire structs
  - Context support for cancellation and timeouts

Endpoints covered:
  - GET  /health                 connectivity probe
  - GET  /data                   full snapshot (force_update to bypass cache)
  - POST /data/update            trigger a backend rescan
  - GET  /data/stats             backend-side statistics
  - GET  /data/coverage          coverage polygons only
  - POST /data/cache/clear       drop backend caches
  - GET  /data/debug/{category}  trigger a debug decode run
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/pelorus/internal/config"
	"github.com/tomtom215/pelorus/internal/models"
	"github.com/tomtom215/pelorus/internal/models/sdfs"
)

// maxErrorBodySize limits the amount of response body read for error
// reporting to prevent unbounded allocation on large error pages.
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB).
func readBodyForError(r io.Reader) []byte {
	limited := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// BackendAPI defines the operations the sync coordinator needs from the
// SDFS backend. It is implemented by BackendClient for production use, by
// CircuitBreakerClient when resilience wrapping is enabled, and by mock
// implementations in tests.
//
// All methods accept a context for cancellation and return typed wire
// structs from internal/models/sdfs.
//
// Thread Safety: implementations must be safe for concurrent use.
type BackendAPI interface {
	CheckHealth(ctx context.Context) (*sdfs.HealthResponse, error)
	FetchData(ctx context.Context, forceUpdate bool) (*sdfs.DataResponse, error)
	TriggerRescan(ctx context.Context) (*sdfs.UpdateResponse, error)
	FetchStats(ctx context.Context) (*sdfs.StatsResponse, error)
	FetchCoverage(ctx context.Context) (*sdfs.CoverageResponse, error)
	ClearCache(ctx context.Context) (*sdfs.CacheClearResponse, error)
	DebugDecode(ctx context.Context, category models.Category) (json.RawMessage, error)
}

// BackendClient handles communication with the SDFS backend HTTP API.
//
// Two timeouts apply: a short health timeout for the /health probe (the
// probe gates every load, so it must fail fast) and a longer fetch timeout
// for data endpoints (a cold backend decodes upstream dumps on demand).
//
// Thread Safety: safe for concurrent use. Each request creates its own
// HTTP request; the rate limiter is internally synchronized.
type BackendClient struct {
	baseURL       string
	client        *http.Client
	healthTimeout time.Duration
	fetchTimeout  time.Duration
	limiter       *rate.Limiter
}

// NewBackendClient creates a backend client from the provided configuration.
// The underlying http.Client carries no global timeout; per-call deadlines
// are applied from healthTimeout and fetchTimeout instead.
func NewBackendClient(cfg *config.BackendConfig) *BackendClient {
	return &BackendClient{
		baseURL:       cfg.URL,
		client:        &http.Client{},
		healthTimeout: cfg.HealthTimeout,
		fetchTimeout:  cfg.FetchTimeout,
		limiter:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
	}
}

// doRequest performs a rate-limited HTTP request and validates the status
// code. The caller owns the response body on success.
func (c *BackendClient) doRequest(ctx context.Context, method, path string, query url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%s %s: %w", method, path, ErrRequestTimeout)
		}
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, ErrBackendUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		_ = resp.Body.Close()
		return nil, &RejectedError{
			Op:      path,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	return resp, nil
}

// fetchJSON performs a request within the fetch timeout and decodes the
// JSON body into result.
func (c *BackendClient) fetchJSON(ctx context.Context, method, path string, query url.Values, result interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	resp, err := c.doRequest(ctx, method, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// CheckHealth probes the backend /health endpoint. The probe uses the
// short health timeout rather than the fetch timeout.
func (c *BackendClient) CheckHealth(ctx context.Context) (*sdfs.HealthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health sdfs.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode /health response: %w", err)
	}
	return &health, nil
}

// FetchData retrieves the full surveillance snapshot. When forceUpdate is
// set the backend bypasses its cache and re-reads decoder output.
func (c *BackendClient) FetchData(ctx context.Context, forceUpdate bool) (*sdfs.DataResponse, error) {
	var query url.Values
	if forceUpdate {
		query = url.Values{"force_update": []string{"true"}}
	}

	var data sdfs.DataResponse
	if err := c.fetchJSON(ctx, http.MethodGet, "/data", query, &data); err != nil {
		return nil, err
	}
	if !data.Success {
		return nil, &RejectedError{Op: "/data", Message: data.Message}
	}
	return &data, nil
}

// TriggerRescan asks the backend to rescan its decoder directories for
// fresh input files. The response reports whether new data was found; the
// caller is responsible for the follow-up fetch.
func (c *BackendClient) TriggerRescan(ctx context.Context) (*sdfs.UpdateResponse, error) {
	var update sdfs.UpdateResponse
	if err := c.fetchJSON(ctx, http.MethodPost, "/data/update", nil, &update); err != nil {
		return nil, err
	}
	if !update.Success {
		return nil, &RejectedError{Op: "/data/update", Message: update.Message}
	}
	return &update, nil
}

// FetchStats retrieves backend-side statistics as an opaque document for
// passthrough to the console API.
func (c *BackendClient) FetchStats(ctx context.Context) (*sdfs.StatsResponse, error) {
	var stats sdfs.StatsResponse
	if err := c.fetchJSON(ctx, http.MethodGet, "/data/stats", nil, &stats); err != nil {
		return nil, err
	}
	if !stats.Success {
		return nil, &RejectedError{Op: "/data/stats", Message: stats.Message}
	}
	return &stats, nil
}

// FetchCoverage retrieves coverage polygons without the position data.
func (c *BackendClient) FetchCoverage(ctx context.Context) (*sdfs.CoverageResponse, error) {
	var coverage sdfs.CoverageResponse
	if err := c.fetchJSON(ctx, http.MethodGet, "/data/coverage", nil, &coverage); err != nil {
		return nil, err
	}
	if !coverage.Success {
		return nil, &RejectedError{Op: "/data/coverage", Message: coverage.Message}
	}
	return &coverage, nil
}

// ClearCache drops the backend's snapshot cache so the next fetch rebuilds
// it from decoder output.
func (c *BackendClient) ClearCache(ctx context.Context) (*sdfs.CacheClearResponse, error) {
	var cleared sdfs.CacheClearResponse
	if err := c.fetchJSON(ctx, http.MethodPost, "/data/cache/clear", nil, &cleared); err != nil {
		return nil, err
	}
	if !cleared.Success {
		return nil, &RejectedError{Op: "/data/cache/clear", Message: cleared.Message}
	}
	return &cleared, nil
}

// DebugDecode triggers a raw decode run for one category and returns the
// backend's diagnostic document verbatim.
func (c *BackendClient) DebugDecode(ctx context.Context, category models.Category) (json.RawMessage, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("debug decode: unknown category %q", category)
	}

	path := "/data/debug/" + categoryToDataType(category)

	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", path, err)
	}
	return json.RawMessage(body), nil
}

// categoryToDataType maps a surveillance category onto the backend's data
// type path segment.
func categoryToDataType(category models.Category) string {
	if category == models.CategoryAircraft {
		return sdfs.DataTypeADSB
	}
	return sdfs.DataTypeAIS
}
