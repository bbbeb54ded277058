package sequence

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
)

// PrinceConfig tunes the protected character.
type PrinceConfig struct {
	StartX float64
	Y      float64
	Width  float64
	Height float64

	BaseSpeed       float64
	PanBonus        float64
	MinSpeed        float64
	VariationMin    float64
	VariationMax    float64
	VariationFrames int

	MaxHealth   int
	HitDamage   int
	HealthFloor int
	IFrames     int

	TicksPerFrame int
}

// DefaultPrinceConfig mirrors the prince block of prefabs/sequence.yaml.
func DefaultPrinceConfig() PrinceConfig {
	return PrinceConfig{
		StartX:          common.TileX(33),
		Y:               655 - 100 + 2,
		Width:           48,
		Height:          64,
		BaseSpeed:       1.5,
		PanBonus:        0.2,
		MinSpeed:        0.1,
		VariationMin:    -0.2,
		VariationMax:    0.3,
		VariationFrames: 120,
		MaxHealth:       100,
		HitDamage:       10,
		HealthFloor:     1,
		IFrames:         60,
		TicksPerFrame:   8,
	}
}

// Prince walks toward the castle while arrows rain on him. His health never
// drops below the floor.
type Prince struct {
	Pos    cp.Vector
	Health *component.Health
	Clip   *component.Clip
	// Hits counts arrows that landed.
	Hits int

	cfg        PrinceConfig
	id         int
	variation  float64
	speedTimer int
}

// NewPrince places the prince at its configured start.
func NewPrince(cfg PrinceConfig, frames *component.FrameSource) *Prince {
	h := component.NewHealth(cfg.MaxHealth)
	h.Floor = cfg.HealthFloor
	p := &Prince{
		Pos:    cp.Vector{X: cfg.StartX, Y: cfg.Y},
		Health: h,
		cfg:    cfg,
		id:     obj.NextEntityID(),
	}
	p.Clip = component.NewClip(frames, "prince", cfg.TicksPerFrame)
	p.Clip.Play(obj.AnimIdle, true)
	return p
}

// Walk moves the prince right by speed*dt, never past limit.
func (p *Prince) Walk(dt, speed, limit float64) {
	if p == nil {
		return
	}
	if p.Pos.X >= limit {
		p.Clip.Play(obj.AnimIdle, true)
		return
	}
	p.Pos.X = math.Min(limit, p.Pos.X+math.Max(p.cfg.MinSpeed, speed)*dt)
	p.Clip.Play(obj.AnimRun, true)
}

// VariedSpeed returns the base speed with the periodic random variation,
// rerolled every VariationFrames calls.
func (p *Prince) VariedSpeed(rng common.RNG) float64 {
	if p == nil {
		return 0
	}
	p.speedTimer++
	if p.speedTimer >= p.cfg.VariationFrames {
		p.speedTimer = 0
		p.variation = common.RandFloat(rng, p.cfg.VariationMin, p.cfg.VariationMax)
	}
	return math.Max(p.cfg.MinSpeed, p.cfg.BaseSpeed+p.variation)
}

// Idle stops the run cycle.
func (p *Prince) Idle() {
	if p == nil {
		return
	}
	p.Clip.Play(obj.AnimIdle, true)
}

// Tick advances i-frames and the clip.
func (p *Prince) Tick() {
	if p == nil {
		return
	}
	p.Health.Tick()
	p.Clip.Update()
}

// TakeArrow applies one arrow hit and starts the invulnerability window.
func (p *Prince) TakeArrow() bool {
	if !p.CanBeHit() {
		return false
	}
	if !p.Health.ApplyDamage(p.cfg.HitDamage, component.CombatEvent{Type: component.EventHit, TargetID: p.id}) {
		return false
	}
	p.Hits++
	p.Health.StartIFrames(p.cfg.IFrames)
	return true
}

func (p *Prince) Bounds() common.Rect {
	if p == nil {
		return common.Rect{}
	}
	return common.Rect{X: p.Pos.X, Y: p.Pos.Y, Width: p.cfg.Width, Height: p.cfg.Height}
}

func (p *Prince) Center() cp.Vector { return p.Bounds().Center() }

func (p *Prince) HurtboxID() int {
	if p == nil {
		return 0
	}
	return p.id
}

func (p *Prince) CanBeHit() bool {
	return p != nil && !p.Health.Invulnerable()
}

// Tile returns the prince's fractional tile column.
func (p *Prince) Tile() float64 {
	if p == nil {
		return 0
	}
	return common.TileOf(p.Pos.X)
}
