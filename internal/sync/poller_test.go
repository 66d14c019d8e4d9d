// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package sync

import (
	"context"
	"testing"
	"time"
)

func TestPollerPerformsInitialLoad(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	c := NewCoordinator(backend, nil, 0)
	p := NewPoller(c, 0, true)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()

	// Wait for the initial load to land; zero interval means no ticking.
	deadline := time.After(2 * time.Second)
	for backend.fetchCalls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("initial load never happened")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil && err != context.Canceled {
		t.Fatalf("Serve returned %v", err)
	}

	if got := backend.fetchCalls.Load(); got != 1 {
		t.Errorf("fetch called %d times, want 1 (initial load only)", got)
	}
}

func TestPollerSkipsInitialLoadWhenDisabled(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	c := NewCoordinator(backend, nil, 0)
	p := NewPoller(c, 0, false)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	if err := <-done; err != nil && err != context.Canceled {
		t.Fatalf("Serve returned %v", err)
	}

	if got := backend.fetchCalls.Load(); got != 0 {
		t.Errorf("fetch called %d times, want 0", got)
	}
}

func TestPollerTicksAtInterval(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	c := NewCoordinator(backend, nil, 0)
	p := NewPoller(c, 20*time.Millisecond, false)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for backend.fetchCalls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("poller never ticked twice")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil && err != context.Canceled {
		t.Fatalf("Serve returned %v", err)
	}
}

func TestPollerString(t *testing.T) {
	t.Parallel()

	p := NewPoller(nil, 0, false)
	if p.String() != "refresh-poller" {
		t.Errorf("String() = %q", p.String())
	}
}
