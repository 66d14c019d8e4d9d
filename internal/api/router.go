// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package api provides the console's HTTP trigger surface using the Chi
// router: load triggers, layer visibility, view operations, status, and
// the WebSocket upgrade.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/pelorus/internal/config"
	"github.com/tomtom215/pelorus/internal/middleware"
)

// Router assembles the console's HTTP handler tree.
type Router struct {
	handlers *Handlers
	cfg      *config.ServerConfig
}

// NewRouter creates a router over the given handlers.
func NewRouter(handlers *Handlers, cfg *config.ServerConfig) *Router {
	return &Router{handlers: handlers, cfg: cfg}
}

// Setup configures all routes and middleware.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	// Health endpoints get a permissive limit so monitors can poll freely.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, router.cfg.RateLimitWindow))
		r.Get("/live", router.handlers.HealthLive)
		r.Get("/ready", router.handlers.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if router.cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(router.cfg.RateLimitReqs, router.cfg.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Get("/status", router.handlers.Status)
		r.Get("/stats", router.handlers.Stats)
		r.Get("/coverage", router.handlers.Coverage)
		r.Get("/entities/{key}", router.handlers.Entity)
		r.Get("/layers", router.handlers.Layers)
		r.Put("/layers/{layer}/visibility", router.handlers.SetLayerVisibility)

		r.Post("/data/reload", router.handlers.DataReload)
		r.Post("/data/refresh", router.handlers.DataRefresh)
		r.Post("/cache/clear", router.handlers.CacheClear)

		r.Post("/view/fit", router.handlers.ViewFit)
		r.Post("/view/reset", router.handlers.ViewReset)

		r.Post("/debug/decode/{category}", router.handlers.DebugDecode)

		r.Get("/ws", router.handlers.WebSocket)
	})

	// Prometheus scrape endpoint, outside the rate-limited API tree.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
