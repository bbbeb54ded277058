package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
	"github.com/milk9111/princeguard/prefabs"
	"github.com/milk9111/princeguard/sequence"
	"golang.org/x/image/colornames"
)

// renderer draws every entity as a coloured rectangle.
type renderer struct {
	cam    *obj.Camera
	colors *prefabs.FrameTable
}

func (r renderer) rect(screen *ebiten.Image, b common.Rect, clr color.Color) {
	x, y := r.cam.WorldToScreen(b.X, b.Y)
	z := r.cam.Zoom()
	vector.FillRect(screen, float32(x), float32(y), float32(b.Width*z), float32(b.Height*z), clr, false)
}

func (r renderer) actor(screen *ebiten.Image, info obj.RenderInfo) {
	clr := r.colors.Color(string(info.Team))
	if info.Dead {
		clr = fade(clr, 0.35)
	}
	r.rect(screen, info.Bounds, clr)
	if info.Placeholder {
		x, y := r.cam.WorldToScreen(info.Bounds.X, info.Bounds.Y)
		z := r.cam.Zoom()
		vector.StrokeRect(screen, float32(x), float32(y), float32(info.Bounds.Width*z), float32(info.Bounds.Height*z), 1, colornames.Magenta, false)
	}
}

func (r renderer) arrow(screen *ebiten.Image, a *obj.Arrow) {
	z := r.cam.Zoom()
	half := a.Width / 2
	dx, dy := math.Cos(a.Rotation)*half, math.Sin(a.Rotation)*half
	x0, y0 := r.cam.WorldToScreen(a.Pos.X-dx, a.Pos.Y-dy)
	x1, y1 := r.cam.WorldToScreen(a.Pos.X+dx, a.Pos.Y+dy)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(math.Max(1, a.Height*z)), r.colors.Color("arrow"), true)
}

func (r renderer) draw(screen *ebiten.Image, g *Game) {
	screen.Fill(colornames.Lightsteelblue)
	s := g.scene
	view := s.Sequencer.View()

	for _, rc := range s.World.Collision.Rects() {
		r.rect(screen, rc, r.colors.Color("ground"))
	}
	for _, info := range s.World.Battlefield.ActorsForRender() {
		r.actor(screen, info)
	}
	for _, a := range s.World.Volley.Arrows.Arrows {
		r.arrow(screen, a)
	}

	for _, info := range view.Defenders {
		r.actor(screen, info)
	}
	for _, info := range view.Hostiles {
		r.actor(screen, info)
	}

	princeClr := r.colors.Color("prince")
	if view.PrinceInvulnerable && view.Tick/4%2 == 0 {
		princeClr = fade(princeClr, 0.5)
	}
	r.rect(screen, view.Prince, princeClr)

	playerClr := r.colors.Color("messenger")
	if s.Player.Dying() {
		playerClr = fade(playerClr, 0.35)
	}
	r.rect(screen, s.Player.Bounds(), playerClr)

	for _, a := range view.Arrows {
		r.arrow(screen, a)
	}

	if g.debug {
		s.World.Collision.DebugDraw(screen, r.cam)
	}

	if sw := view.Shockwave; sw.Active {
		cx, cy := r.cam.WorldToScreen(sw.Center.X, sw.Center.Y)
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(sw.Radius*r.cam.Zoom()), 4, fade(colornames.White, sw.Alpha), true)
	}

	track, vol := s.Audio.Music()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS %.1f  tick %d  phase %s\nprince %d/%d hits %d  defenders %d caught %d\nplayer hp %d  music %s %.2f\n[space] defender  [R] reset  [F2] copy log  [F3] surfaces",
		ebiten.ActualFPS(), view.Tick, view.Phase,
		view.PrinceHealth, view.PrinceMaxHealth, view.PrinceHits, view.DefendersSpawned, view.ArrowsCaught,
		s.Player.Health.CurrentHP(), track, vol,
	))
	if view.Phase == sequence.PhaseDone {
		ebitenutil.DebugPrintAt(screen, "the prince is safe", 20, 80)
	}
}

func fade(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	k := common.Clamp(alpha, 0, 1)
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}
