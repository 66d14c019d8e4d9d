// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/pelorus/internal/validation"
)

// Config is the root application configuration.
//
// Sources are layered defaults < YAML file < environment variables; see
// LoadWithKoanf. All fields are plain values so the struct can be copied
// safely after loading.
type Config struct {
	Backend BackendConfig `koanf:"backend"`
	Server  ServerConfig  `koanf:"server"`
	Sync    SyncConfig    `koanf:"sync"`
	Map     MapConfig     `koanf:"map"`
	Logging LoggingConfig `koanf:"logging"`
}

// BackendConfig points the console at the SDFS surveillance data backend.
type BackendConfig struct {
	// URL is the backend base URL without a trailing slash, e.g.
	// http://127.0.0.1:5000.
	URL string `koanf:"url" validate:"required"`

	// HealthTimeout bounds the /health probe that gates every load.
	HealthTimeout time.Duration `koanf:"health_timeout" validate:"gt=0"`

	// FetchTimeout bounds data-bearing requests. A cold backend decodes
	// upstream dumps on demand, so this is much longer than HealthTimeout.
	FetchTimeout time.Duration `koanf:"fetch_timeout" validate:"gt=0"`

	// RequestsPerSecond and RequestBurst configure client-side request
	// rate limiting toward the backend.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gt=0"`
	RequestBurst      int     `koanf:"request_burst" validate:"gte=1"`
}

// ServerConfig configures the console's own HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SyncConfig controls automatic snapshot refreshing.
type SyncConfig struct {
	// Interval between automatic refreshes. Zero disables the poller's
	// ticker; manual triggers keep working.
	Interval time.Duration `koanf:"interval" validate:"gte=0"`

	// InitialLoad performs a load on startup instead of waiting out the
	// first interval.
	InitialLoad bool `koanf:"initial_load"`
}

// MapConfig carries presentation defaults for the map console.
type MapConfig struct {
	// OnlineThreshold is the record age below which an entity counts as
	// online. The comparison is strict: exactly-threshold is offline.
	OnlineThreshold time.Duration `koanf:"online_threshold" validate:"gt=0"`

	// Initial camera position.
	InitialLat  float64 `koanf:"initial_lat" validate:"min=-90,max=90"`
	InitialLon  float64 `koanf:"initial_lon" validate:"min=-180,max=180"`
	InitialZoom float64 `koanf:"initial_zoom" validate:"gte=0,lte=22"`

	// FitPadding is the pixel margin kept around the bounding box when the
	// camera is framed to the data.
	FitPadding int `koanf:"fit_padding" validate:"gte=0"`

	// Startup visibility per layer category.
	ShowVessels  bool `koanf:"show_vessels"`
	ShowAircraft bool `koanf:"show_aircraft"`
	ShowCoverage bool `koanf:"show_coverage"`
}

// LoggingConfig configures the zerolog-backed logging package.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for consistency. Struct tags cover the
// per-field rules; cross-field rules are checked explicitly.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("config: %s", err.Error())
	}

	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: backend.url %q is not an absolute URL", c.Backend.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: backend.url scheme %q is not http or https", u.Scheme)
	}
	if strings.HasSuffix(c.Backend.URL, "/") {
		c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")
	}

	if c.Backend.HealthTimeout >= c.Backend.FetchTimeout {
		return fmt.Errorf("config: backend.health_timeout (%s) must be shorter than backend.fetch_timeout (%s)",
			c.Backend.HealthTimeout, c.Backend.FetchTimeout)
	}

	return nil
}
