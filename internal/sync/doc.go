// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

/*
Package sync orchestrates snapshot loading from the SDFS surveillance backend.

This package implements the fetch side of the console: probing backend
health, retrieving AIS/ADS-B position snapshots and coverage polygons,
converting the wire payload into backend-agnostic models, and publishing
applied snapshots to downstream consumers.

Key Components:

  - Coordinator: single-flight load orchestration with a one-shot
    clear-cache recovery on failure
  - BackendClient: HTTP client for the SDFS REST API with split
    health/fetch timeouts and client-side rate limiting
  - CircuitBreakerClient: gobreaker wrapper preventing request storms
    against a dead or slow backend
  - Poller: supervised ticker driving periodic refreshes
  - StatusNotifier: outbound progress messages for live dashboards

Load Lifecycle:

 1. Probe: GET /health with a short deadline gates every load
 2. Fetch: GET /data (optionally force_update) with a long deadline
 3. Convert: wire records become models.SurveillanceRecord, coverage
    layers become models.CoverageRegion; bad timestamps degrade to the
    zero time instead of dropping records
 4. Apply: the held snapshot is replaced wholesale and fanned out to
    registered sinks, then a status summary is broadcast

Concurrency:

At most one load-class operation runs at a time. Concurrent callers get
ErrBusy immediately without network traffic. A failed load never clears
the held snapshot; stale data with an honest timestamp beats an empty map.
*/
package sync
