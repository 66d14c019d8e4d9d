// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pelorus/internal/config"
	"github.com/tomtom215/pelorus/internal/logging"
	"github.com/tomtom215/pelorus/internal/metrics"
	"github.com/tomtom215/pelorus/internal/models"
	"github.com/tomtom215/pelorus/internal/models/sdfs"
)

// CircuitBreakerClient wraps BackendClient with the circuit breaker pattern
// to prevent hammering an SDFS backend that is down or decoding slowly.
//
// DETERMINISM NOTE: the circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. The timing determines when to
// recover from failures, not data integrity. Unit tests should exercise the
// wrapped client directly rather than waiting out breaker windows.
type CircuitBreakerClient struct {
	client BackendAPI
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a backend client with circuit breaker
// protection.
//
// Circuit breaker configuration:
//   - Max 2 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 1 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 5 requests
func NewCircuitBreakerClient(cfg *config.BackendConfig) *CircuitBreakerClient {
	return wrapWithBreaker(NewBackendClient(cfg), "sdfs-backend")
}

func wrapWithBreaker(client BackendAPI, cbName string) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a backend call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	return result, nil
}

// castResult safely type-casts the circuit breaker result with error
// checking.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// CheckHealth probes the backend through the circuit breaker.
func (cbc *CircuitBreakerClient) CheckHealth(ctx context.Context) (*sdfs.HealthResponse, error) {
	return castResult[sdfs.HealthResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.CheckHealth(ctx)
	}))
}

// FetchData retrieves the full snapshot through the circuit breaker.
func (cbc *CircuitBreakerClient) FetchData(ctx context.Context, forceUpdate bool) (*sdfs.DataResponse, error) {
	return castResult[sdfs.DataResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchData(ctx, forceUpdate)
	}))
}

// TriggerRescan triggers a backend rescan through the circuit breaker.
func (cbc *CircuitBreakerClient) TriggerRescan(ctx context.Context) (*sdfs.UpdateResponse, error) {
	return castResult[sdfs.UpdateResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.TriggerRescan(ctx)
	}))
}

// FetchStats retrieves backend statistics through the circuit breaker.
func (cbc *CircuitBreakerClient) FetchStats(ctx context.Context) (*sdfs.StatsResponse, error) {
	return castResult[sdfs.StatsResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchStats(ctx)
	}))
}

// FetchCoverage retrieves coverage polygons through the circuit breaker.
func (cbc *CircuitBreakerClient) FetchCoverage(ctx context.Context) (*sdfs.CoverageResponse, error) {
	return castResult[sdfs.CoverageResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchCoverage(ctx)
	}))
}

// ClearCache clears the backend cache through the circuit breaker.
func (cbc *CircuitBreakerClient) ClearCache(ctx context.Context) (*sdfs.CacheClearResponse, error) {
	return castResult[sdfs.CacheClearResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.ClearCache(ctx)
	}))
}

// DebugDecode triggers a debug decode run through the circuit breaker.
func (cbc *CircuitBreakerClient) DebugDecode(ctx context.Context, category models.Category) (json.RawMessage, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.DebugDecode(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	raw, ok := result.(json.RawMessage)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return raw, nil
}

// stateToFloat converts circuit breaker state to a numeric value for metrics.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a string for logging.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
