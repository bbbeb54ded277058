package obj

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
)

// ErrDegenerateGeometry reports an aim whose start and target coincide.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

var nextEntityID atomic.Int64

func newEntityID() int {
	return int(nextEntityID.Add(1))
}

// NextEntityID hands out an id from the counter every entity draws from.
func NextEntityID() int {
	return newEntityID()
}

// ArrowState is the lifecycle of an arrow. Stuck and Hit are exclusive
// terminal states.
type ArrowState int

const (
	ArrowFlying ArrowState = iota
	ArrowStuck
	ArrowHit
)

func (s ArrowState) String() string {
	switch s {
	case ArrowFlying:
		return "flying"
	case ArrowStuck:
		return "stuck"
	case ArrowHit:
		return "hit"
	}
	return "unknown"
}

// ArrowConfig holds the tunables shared by every arrow of a volley.
type ArrowConfig struct {
	Speed        float64
	Gravity      float64
	MaxRange     float64
	Width        float64
	Height       float64
	LingerFrames int
}

// DefaultArrowConfig mirrors prefabs/arrow.yaml.
func DefaultArrowConfig() ArrowConfig {
	return ArrowConfig{
		Speed:        15,
		Gravity:      0.05,
		MaxRange:     3000,
		Width:        25,
		Height:       2,
		LingerFrames: 300,
	}
}

// Arrow is a single ballistic projectile.
type Arrow struct {
	Pos      cp.Vector
	Vel      cp.Vector
	Gravity  float64
	Rotation float64
	Traveled float64
	MaxRange float64
	State    ArrowState
	Kind     string

	StuckFrames  int
	LingerFrames int
	Width        float64
	Height       float64

	// OnImpact fires once, the first time the arrow sticks.
	OnImpact func(a *Arrow)

	id           int
	impactPlayed bool
}

// AimDirection returns the unit vector from start to target. Coincident
// points yield straight down and ErrDegenerateGeometry.
func AimDirection(start, target cp.Vector) (cp.Vector, error) {
	d := target.Sub(start)
	l := d.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return cp.Vector{X: 0, Y: 1}, ErrDegenerateGeometry
	}
	return d.Mult(1 / l), nil
}

// NewArrow launches an arrow from start toward target.
func NewArrow(start, target cp.Vector, speed, gravity float64) *Arrow {
	dir, _ := AimDirection(start, target)
	cfg := DefaultArrowConfig()
	vel := dir.Mult(speed)
	return &Arrow{
		Pos:          start,
		Vel:          vel,
		Gravity:      gravity,
		Rotation:     math.Atan2(vel.Y, vel.X),
		MaxRange:     cfg.MaxRange,
		Kind:         "normal",
		LingerFrames: cfg.LingerFrames,
		Width:        cfg.Width,
		Height:       cfg.Height,
		id:           newEntityID(),
	}
}

// NewArrowFromConfig launches an arrow using cfg for every tunable.
func NewArrowFromConfig(cfg ArrowConfig, start, target cp.Vector) *Arrow {
	a := NewArrow(start, target, cfg.Speed, cfg.Gravity)
	a.MaxRange = cfg.MaxRange
	a.LingerFrames = cfg.LingerFrames
	if cfg.Width > 0 {
		a.Width = cfg.Width
	}
	if cfg.Height > 0 {
		a.Height = cfg.Height
	}
	return a
}

// Tick integrates one step. Stuck arrows only age.
func (a *Arrow) Tick(dt float64) {
	if a == nil {
		return
	}
	switch a.State {
	case ArrowStuck:
		a.StuckFrames++
		return
	case ArrowHit:
		return
	}
	a.Vel.Y += a.Gravity * dt
	step := a.Vel.Mult(dt)
	a.Pos = a.Pos.Add(step)
	a.Traveled += step.Length()
	a.Rotation = math.Atan2(a.Vel.Y, a.Vel.X)
}

// TryStick embeds a flying arrow in the ground whose top edge is groundY.
func (a *Arrow) TryStick(groundY float64) bool {
	if a == nil || a.State != ArrowFlying {
		return false
	}
	if !a.impactPlayed {
		a.impactPlayed = true
		if a.OnImpact != nil {
			a.OnImpact(a)
		}
	}
	a.State = ArrowStuck
	a.Pos.Y = groundY - a.Height
	a.Vel = cp.Vector{}
	a.StuckFrames = 0
	a.Rotation = math.Pi / 2
	return true
}

// MarkHit records that the arrow struck a target and must be removed.
func (a *Arrow) MarkHit() bool {
	if a == nil || a.State != ArrowFlying {
		return false
	}
	a.State = ArrowHit
	a.Vel = cp.Vector{}
	return true
}

// Expired reports whether the arrow should be removed. bottomY is the lowest
// world y an arrow may fall to.
func (a *Arrow) Expired(bottomY float64) bool {
	if a == nil {
		return true
	}
	switch a.State {
	case ArrowHit:
		return true
	case ArrowStuck:
		return a.StuckFrames > a.LingerFrames
	}
	return a.Pos.Y > bottomY || a.Traveled > a.MaxRange
}

// ImpactPlayed reports whether the impact cue has fired.
func (a *Arrow) ImpactPlayed() bool {
	return a != nil && a.impactPlayed
}

// Bounds returns the arrow's collision rectangle.
func (a *Arrow) Bounds() common.Rect {
	if a == nil {
		return common.Rect{}
	}
	return common.Rect{X: a.Pos.X, Y: a.Pos.Y, Width: a.Width, Height: a.Height}
}

func (a *Arrow) ProjectileID() int {
	if a == nil {
		return 0
	}
	return a.id
}

// Armed reports whether the arrow can still hit a mobile target.
func (a *Arrow) Armed() bool {
	return a != nil && a.State == ArrowFlying
}

// StickOnSurfaces embeds the arrow in the first surface it overlaps.
func (a *Arrow) StickOnSurfaces(surfaces Surfaces) bool {
	if a == nil || surfaces == nil || a.State != ArrowFlying {
		return false
	}
	hits := surfaces.Query(a.Bounds())
	if len(hits) == 0 {
		return false
	}
	return a.TryStick(hits[0].Top())
}
