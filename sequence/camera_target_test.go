package sequence

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
	"github.com/stretchr/testify/assert"
)

var testViewport = Viewport{Width: 640, Height: 360, BaseY: 300}

func princeView(phase Phase, x, zoom float64) View {
	return View{
		Phase:   phase,
		Prince:  common.Rect{X: x, Y: 557, Width: 48, Height: 64},
		Zoom:    zoom,
		MaxZoom: 2.5,
		PanTile: 62,
	}
}

func TestComputeTargetByPhase(t *testing.T) {
	v := princeView(PhaseWaiting, 1000, 1)
	v.HasControlled = true
	v.ControlledPos = cp.Vector{X: 800}
	assert.InDelta(t, 800-320, ComputeTarget(v, testViewport).X, 1e-9)

	v = princeView(PhaseProtection, 1500, 1)
	assert.InDelta(t, common.TileX(63)-640, ComputeTarget(v, testViewport).X, 1e-9)

	v = princeView(PhaseZoomOnTarget, 2400, 2)
	tgt := ComputeTarget(v, testViewport)
	assert.InDelta(t, 2424-160, tgt.X, 1e-9)
	assert.InDelta(t, 2, tgt.Zoom, 1e-9)

	v = princeView(PhaseFinalSequence, 3000, 1)
	assert.InDelta(t, 2980, ComputeTarget(v, testViewport).X, 1e-9)
}

func TestComputeTargetYFollowsZoom(t *testing.T) {
	at1 := ComputeTarget(princeView(PhaseZoomOnTarget, 2400, 1), testViewport)
	assert.InDelta(t, testViewport.BaseY, at1.Y, 1e-9)

	atMax := ComputeTarget(princeView(PhaseZoomOnTarget, 2400, 2.5), testViewport)
	assert.InDelta(t, 557+32-360/2.5/2, atMax.Y, 1e-9)
}

func TestComputeTargetClampsZoom(t *testing.T) {
	tgt := ComputeTarget(princeView(PhaseDone, 100, 0), testViewport)
	assert.Equal(t, 1.0, tgt.Zoom)
}

func TestCameraTrackingNeverOvershoots(t *testing.T) {
	cam := obj.NewCamera(640, 360, 5)
	cam.SetWorldBounds(4000, 800)
	target := ComputeTarget(princeView(PhaseProtection, 1500, 1), testViewport)
	start, _ := cam.Position()
	dist := math.Abs(target.X - start)

	for i := 0; i < 1000 && !cam.Arrived(); i++ {
		before, _ := cam.Position()
		cam.Step(target, 1)
		after, _ := cam.Position()
		assert.LessOrEqual(t, math.Abs(after-before), 5.0+1e-9)
		assert.LessOrEqual(t, math.Abs(after-start), dist+1e-9)
	}
	assert.True(t, cam.Arrived())
	x, _ := cam.Position()
	assert.InDelta(t, cam.Clamp(target).X, x, 1e-9)
}
