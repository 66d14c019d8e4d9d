// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package config loads and validates the application configuration.
//
// Configuration is layered with koanf: built-in defaults, then an optional
// YAML file (config.yaml, or CONFIG_PATH), then environment variables.
// Later layers override earlier ones. Validation combines struct tags
// (go-playground/validator) with explicit cross-field checks.
package config
