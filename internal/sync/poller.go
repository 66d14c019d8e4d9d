// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package sync

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/pelorus/internal/logging"
)

// Poller periodically refreshes the snapshot through a Coordinator. It
// implements suture.Service and is run under the process supervision tree.
//
// A tick that finds another load in flight is skipped, not queued: the next
// tick will pick up whatever that load produced.
type Poller struct {
	coordinator *Coordinator
	interval    time.Duration

	// initialLoad controls whether the poller performs an immediate load on
	// start rather than waiting out the first interval.
	initialLoad bool
}

// NewPoller creates a refresh poller. An interval of zero or less disables
// ticking; the poller then only performs the initial load (when enabled)
// and waits for shutdown.
func NewPoller(coordinator *Coordinator, interval time.Duration, initialLoad bool) *Poller {
	return &Poller{
		coordinator: coordinator,
		interval:    interval,
		initialLoad: initialLoad,
	}
}

// String identifies the service in supervisor logs.
func (p *Poller) String() string {
	return "refresh-poller"
}

// Serve implements suture.Service. It returns only when ctx is cancelled;
// load failures are logged and retried on the next tick rather than
// crashing the service.
func (p *Poller) Serve(ctx context.Context) error {
	if p.initialLoad {
		p.refresh(ctx)
	}

	if p.interval <= 0 {
		logging.Info().Msg("Auto-refresh disabled, poller idle")
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logging.Info().Dur("interval", p.interval).Msg("Auto-refresh poller started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	_, err := p.coordinator.Load(ctx, false)
	switch {
	case err == nil:
	case errors.Is(err, ErrBusy):
		logging.Debug().Msg("Refresh tick skipped, load already in flight")
	case ctx.Err() != nil:
		// Shutting down.
	default:
		logging.Warn().Err(err).Msg("Scheduled refresh failed")
	}
}
