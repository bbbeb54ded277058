package obj

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// ScreenMapper converts world coordinates to screen pixels.
type ScreenMapper interface {
	WorldToScreen(x, y float64) (float64, float64)
}

// DebugDraw outlines every collision surface as chipmunk sees it.
func (cw *CollisionWorld) DebugDraw(screen *ebiten.Image, view ScreenMapper) {
	if cw == nil || cw.space == nil || screen == nil || view == nil {
		return
	}
	cp.DrawSpace(cw.space, &surfaceDrawer{screen: screen, view: view})
}

// surfaceDrawer implements cp.Drawer for static boxes. Only polygons and
// segments occur in a CollisionWorld.
type surfaceDrawer struct {
	screen *ebiten.Image
	view   ScreenMapper
}

func (d *surfaceDrawer) line(a, b cp.Vector, c cp.FColor) {
	x0, y0 := d.view.WorldToScreen(a.X, a.Y)
	x1, y1 := d.view.WorldToScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, toRGBA(c), false)
}

func (d *surfaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, _ cp.FColor, _ interface{}) {
	x, y := d.view.WorldToScreen(pos.X, pos.Y)
	vector.StrokeCircle(d.screen, float32(x), float32(y), float32(radius), 1, toRGBA(outline), false)
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, outline)
}

func (d *surfaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, _ interface{}) {
	d.line(a, b, fill)
}

func (d *surfaceDrawer) DrawFatSegment(a, b cp.Vector, _ float64, outline, _ cp.FColor, _ interface{}) {
	d.line(a, b, outline)
}

func (d *surfaceDrawer) DrawPolygon(count int, verts []cp.Vector, _ float64, outline, _ cp.FColor, _ interface{}) {
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *surfaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, _ interface{}) {
	l := size / 2
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, fill)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, fill)
}

func (d *surfaceDrawer) Flags() uint { return cp.DRAW_SHAPES }

func (d *surfaceDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 1}
}

// ShapeColor marks indexed ground blue and anything else magenta.
func (d *surfaceDrawer) ShapeColor(shape *cp.Shape, _ interface{}) cp.FColor {
	if _, ok := shape.UserData.(int); ok && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1, A: 1}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1}
}

func (d *surfaceDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1}
}

func (d *surfaceDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.1, B: 0.1, A: 1}
}

func (d *surfaceDrawer) Data() interface{} { return nil }

func toRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(math.Max(0, math.Min(1, float64(v))) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
