package obj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraStepNeverOvershoots(t *testing.T) {
	c := NewCamera(1280, 720, 7)
	c.SetWorldBounds(4000, 800)
	target := CameraTarget{X: 100, Y: 0, Zoom: 1}

	prev := math.Abs(c.PosX - target.X)
	for i := 0; i < 40; i++ {
		c.Step(target, 1)
		d := math.Abs(c.PosX - target.X)
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
	assert.Equal(t, 100.0, c.PosX)
	assert.True(t, c.Arrived())
}

func TestCameraStepIsBounded(t *testing.T) {
	c := NewCamera(1280, 720, 5)
	c.Step(CameraTarget{X: 1000, Y: 30, Zoom: 1}, 2)

	assert.Equal(t, 10.0, c.PosX)
	assert.Equal(t, 10.0, c.PosY)
	assert.False(t, c.Arrived())
}

func TestCameraClampsToWorld(t *testing.T) {
	c := NewCamera(1280, 720, 1e6)
	c.SetWorldBounds(4000, 800)

	c.Step(CameraTarget{X: -50, Zoom: 1}, 1)
	assert.Equal(t, 0.0, c.PosX)

	c.Step(CameraTarget{X: 9000, Zoom: 1}, 1)
	assert.Equal(t, 4000.0-1280, c.PosX)

	c.Step(CameraTarget{X: 9000, Zoom: 2}, 1)
	assert.Equal(t, 4000.0-640, c.PosX)
	assert.Equal(t, 2.0, c.Zoom())
}

func TestCameraZoomFloor(t *testing.T) {
	c := NewCamera(1280, 720, 5)
	c.Step(CameraTarget{Zoom: 0.2}, 1)
	assert.Equal(t, 1.0, c.Zoom())
}

func TestCameraWorldToScreen(t *testing.T) {
	c := NewCamera(1280, 720, 5)
	c.Snap(CameraTarget{X: 100, Y: 50, Zoom: 2})

	x, y := c.WorldToScreen(110, 60)
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 20.0, y)
}
