// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

// Package viewport owns the map camera: the home view configured at
// startup, fit-to-data framing, and reset.
package viewport

import (
	"sync"

	"github.com/tomtom215/pelorus/internal/logging"
	"github.com/tomtom215/pelorus/internal/models"
)

// CameraState describes one map camera position.
type CameraState struct {
	Center models.Position `json:"center"`
	Zoom   float64         `json:"zoom"`

	// Bounds is set when the camera was framed to a bounding box rather
	// than an explicit center/zoom pair.
	Bounds *models.Bounds `json:"bounds,omitempty"`
}

// Camera is the rendering collaborator the controller drives. The
// WebSocket hub implements it to steer connected map consoles.
type Camera interface {
	// FlyTo moves the camera to an explicit center and zoom.
	FlyTo(center models.Position, zoom float64)

	// FitBounds frames the camera to the given non-empty bounding box,
	// keeping a pixel margin of padding around it.
	FitBounds(bounds models.Bounds, padding int)
}

// NopCamera discards all camera movements.
type NopCamera struct{}

// FlyTo implements Camera.
func (NopCamera) FlyTo(models.Position, float64) {}

// FitBounds implements Camera.
func (NopCamera) FitBounds(models.Bounds, int) {}

// Controller tracks the current camera state and applies view operations.
//
// The home view is fixed at construction; ResetView always returns there
// no matter how the camera moved since.
//
// Thread Safety: all methods are safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	camera     Camera
	home       CameraState
	current    CameraState
	fitPadding int
}

// NewController creates a controller with the given home view. camera may
// be nil for headless use. fitPadding is the pixel margin passed to the
// camera on every fit-to-bounds framing.
func NewController(camera Camera, home CameraState, fitPadding int) *Controller {
	if camera == nil {
		camera = NopCamera{}
	}
	if fitPadding < 0 {
		fitPadding = 0
	}
	return &Controller{
		camera:     camera,
		home:       home,
		current:    home,
		fitPadding: fitPadding,
	}
}

// Current returns the camera state the controller last applied.
func (c *Controller) Current() CameraState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// FitToBounds frames the camera to bounds. An empty bounding box is a
// deliberate no-op: fitting a view to nothing would fly the camera to a
// meaningless origin, so the current view is kept instead. Returns whether
// the camera moved.
func (c *Controller) FitToBounds(bounds models.Bounds) bool {
	if bounds.IsEmpty() {
		logging.Debug().Msg("Fit-to-bounds skipped, no attached points")
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = CameraState{
		Center: bounds.Center(),
		Zoom:   c.current.Zoom,
		Bounds: &bounds,
	}
	c.camera.FitBounds(bounds, c.fitPadding)
	return true
}

// ResetView returns the camera to the home view.
func (c *Controller) ResetView() CameraState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.home
	c.camera.FlyTo(c.home.Center, c.home.Zoom)
	return c.current
}
