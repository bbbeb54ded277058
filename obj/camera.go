package obj

import (
	"math"

	"github.com/milk9111/princeguard/common"
)

// CameraTarget is where the camera wants to be: the world-space top-left of
// the view and a zoom factor.
type CameraTarget struct {
	X, Y float64
	Zoom float64
}

// Camera moves a side-scrolling view toward a target with a bounded step per
// axis.
type Camera struct {
	PosX float64
	PosY float64

	// MaxSpeed is the largest per-axis move in pixels per frame.
	MaxSpeed float64

	screenW int
	screenH int
	zoom    float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64

	last    CameraTarget
	arrived bool
}

// NewCamera creates a camera with the given logical screen size.
func NewCamera(screenW, screenH int, maxSpeed float64) *Camera {
	if maxSpeed <= 0 {
		maxSpeed = 8
	}
	return &Camera{screenW: screenW, screenH: screenH, zoom: 1, MaxSpeed: maxSpeed}
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if c == nil || w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// SetWorldBounds sets the world pixel dimensions for clamping camera position.
func (c *Camera) SetWorldBounds(w, h float64) {
	if c == nil {
		return
	}
	c.worldW = w
	c.worldH = h
}

// ViewSize returns the world-space size of the view at the current zoom.
func (c *Camera) ViewSize() (float64, float64) {
	if c == nil || c.zoom == 0 {
		return 0, 0
	}
	return float64(c.screenW) / c.zoom, float64(c.screenH) / c.zoom
}

// Clamp limits a target x so the view stays inside the world.
func (c *Camera) Clamp(t CameraTarget) CameraTarget {
	if c == nil {
		return t
	}
	if t.Zoom < 1 {
		t.Zoom = 1
	}
	if c.worldW > 0 {
		maxX := math.Max(0, c.worldW-float64(c.screenW)/t.Zoom)
		t.X = common.Clamp(t.X, 0, maxX)
	}
	return t
}

// Step moves toward t by at most MaxSpeed*dt per axis and snaps when within
// one step. Zoom is taken from t directly.
func (c *Camera) Step(t CameraTarget, dt float64) {
	if c == nil {
		return
	}
	t = c.Clamp(t)
	c.zoom = t.Zoom
	step := c.MaxSpeed * dt
	c.PosX = common.Approach(c.PosX, t.X, step)
	c.PosY = common.Approach(c.PosY, t.Y, step)
	c.last = t
	c.arrived = c.PosX == t.X && c.PosY == t.Y
}

// Snap jumps straight to t.
func (c *Camera) Snap(t CameraTarget) {
	if c == nil {
		return
	}
	t = c.Clamp(t)
	c.zoom = t.Zoom
	c.PosX, c.PosY = t.X, t.Y
	c.last = t
	c.arrived = true
}

// Position returns the world-space top-left of the view.
func (c *Camera) Position() (float64, float64) {
	if c == nil {
		return 0, 0
	}
	return c.PosX, c.PosY
}

// Zoom returns the current camera zoom.
func (c *Camera) Zoom() float64 {
	if c == nil {
		return 1
	}
	return c.zoom
}

// Arrived reports whether the last Step reached its target.
func (c *Camera) Arrived() bool {
	return c != nil && c.arrived
}

// Target returns the last clamped target.
func (c *Camera) Target() CameraTarget {
	if c == nil {
		return CameraTarget{Zoom: 1}
	}
	return c.last
}

// WorldToScreen maps a world point into screen pixels.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	if c == nil {
		return x, y
	}
	return (x - c.PosX) * c.zoom, (y - c.PosY) * c.zoom
}
