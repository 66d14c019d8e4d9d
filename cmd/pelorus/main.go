// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package main wires the Pelorus console together: configuration, logging,
// the SDFS backend client behind its circuit breaker, the sync coordinator,
// layer and viewport management, the WebSocket hub, the HTTP API, and the
// supervisor tree that keeps the long-running services alive.
//
//nolint:staticcheck // File documentation, not package doc
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/pelorus/internal/api"
	"github.com/tomtom215/pelorus/internal/config"
	"github.com/tomtom215/pelorus/internal/layers"
	"github.com/tomtom215/pelorus/internal/logging"
	"github.com/tomtom215/pelorus/internal/models"
	"github.com/tomtom215/pelorus/internal/supervisor"
	syncpkg "github.com/tomtom215/pelorus/internal/sync"
	"github.com/tomtom215/pelorus/internal/viewport"
	ws "github.com/tomtom215/pelorus/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available).
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Pelorus with supervisor tree")
	logging.Info().
		Str("backend_url", cfg.Backend.URL).
		Dur("refresh_interval", cfg.Sync.Interval).
		Dur("online_threshold", cfg.Map.OnlineThreshold).
		Msg("Configuration loaded")

	// WebSocket hub first: it is the console-facing port every other
	// component publishes through (status, layer updates, camera moves).
	hub := ws.NewHub()

	// SDFS backend client behind a circuit breaker so a flapping backend
	// cannot pile up requests during outages.
	backend := syncpkg.NewCircuitBreakerClient(&cfg.Backend)
	if _, err := backend.CheckHealth(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("SDFS backend not reachable at startup (will retry)")
	} else {
		logging.Info().Msg("Connected to SDFS backend successfully")
	}

	coordinator := syncpkg.NewCoordinator(backend, hub, cfg.Map.OnlineThreshold)

	manager := layers.NewManager(hub, cfg.Map.OnlineThreshold, map[layers.LayerCategory]bool{
		layers.LayerVessels:  cfg.Map.ShowVessels,
		layers.LayerAircraft: cfg.Map.ShowAircraft,
		layers.LayerCoverage: cfg.Map.ShowCoverage,
	})

	view := viewport.NewController(hub, viewport.CameraState{
		Center: models.Position{Lat: cfg.Map.InitialLat, Lon: cfg.Map.InitialLon},
		Zoom:   cfg.Map.InitialZoom,
	}, cfg.Map.FitPadding)

	// Every applied snapshot rebuilds the map layers and tells connected
	// consoles to re-render.
	coordinator.AddSnapshotSink(func(snap *models.Snapshot, summary models.StatusSummary) {
		manager.ReplaceSnapshot(snap)
		hub.BroadcastSnapshotApplied(snap, summary)
	})

	handlers := api.NewHandlers(coordinator, backend, manager, view, hub)
	router := api.NewRouter(handlers, &cfg.Server)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	// Create context for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Sync layer services.
	tree.AddSyncService(hub)
	logging.Info().Msg("WebSocket hub added to supervisor tree")

	tree.AddSyncService(syncpkg.NewPoller(coordinator, cfg.Sync.Interval, cfg.Sync.InitialLoad))
	logging.Info().
		Dur("interval", cfg.Sync.Interval).
		Bool("initial_load", cfg.Sync.InitialLoad).
		Msg("Refresh poller added to supervisor tree")

	// API layer services.
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error).
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished).
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout.
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
