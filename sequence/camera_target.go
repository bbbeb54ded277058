package sequence

import (
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
)

// Viewport is the logical screen the camera frames.
type Viewport struct {
	Width  float64
	Height float64
	// BaseY is the view top at zoom 1.
	BaseY float64
}

// princeMargin keeps the prince this far from the left edge once the
// formation is on screen.
const princeMargin = 20

// ComputeTarget picks where the camera should be for view. It has no side
// effects; the camera steps toward the result.
func ComputeTarget(view View, vp Viewport) obj.CameraTarget {
	zoom := view.Zoom
	if zoom < 1 {
		zoom = 1
	}
	viewW := vp.Width / zoom
	viewH := vp.Height / zoom
	prince := view.Prince.Center()

	var x float64
	switch {
	case view.Phase <= PhasePauseAfterDeath:
		if view.HasControlled {
			x = view.ControlledPos.X - viewW/2
		} else {
			x = prince.X - viewW/2
		}
	case view.Phase <= PhaseProtection:
		x = common.TileX(view.PanTile+1) - viewW
	case view.Phase == PhaseZoomOnTarget:
		x = prince.X - viewW/2
	default:
		x = view.Prince.X - princeMargin
	}

	t := 0.0
	if view.MaxZoom > 1 {
		t = common.Clamp((zoom-1)/(view.MaxZoom-1), 0, 1)
	}
	y := common.Lerp(vp.BaseY, prince.Y-viewH/2, t)

	return obj.CameraTarget{X: x, Y: y, Zoom: zoom}
}
