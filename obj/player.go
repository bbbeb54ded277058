package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
)

// PlayerConfig tunes the messenger the player walks toward the prince.
type PlayerConfig struct {
	MoveSpeed     float64
	MaxHealth     int
	HitIFrames    int
	Width         float64
	Height        float64
	TicksPerFrame int
}

// DefaultPlayerConfig mirrors prefabs/player.yaml.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		MoveSpeed:     3,
		MaxHealth:     5,
		HitIFrames:    60,
		Width:         48,
		Height:        64,
		TicksPerFrame: 8,
	}
}

// Player is the controlled entity. Outside the cinematic it walks from
// input; once a script takes over it only moves where it is told.
type Player struct {
	Pos         cp.Vector
	FacingRight bool
	Health      *component.Health
	Clip        *component.Clip

	cfg             PlayerConfig
	id              int
	scripted        bool
	respawnDisabled bool
}

// NewPlayer places the player with its top-left corner at (x, y).
func NewPlayer(x, y float64, cfg PlayerConfig, frames *component.FrameSource) *Player {
	p := &Player{
		Pos:    cp.Vector{X: x, Y: y},
		Health: component.NewHealth(cfg.MaxHealth),
		cfg:    cfg,
		id:     newEntityID(),
	}
	p.Clip = component.NewClip(frames, "player", cfg.TicksPerFrame)
	p.Clip.Play(AnimIdle, true)
	return p
}

// Update advances one tick. moveX is the input axis in [-1, 1] and is
// ignored while scripted or dead.
func (p *Player) Update(dt, moveX float64) {
	if p == nil {
		return
	}
	p.Health.Tick()
	if p.Health.Dead || p.scripted {
		p.Clip.Update()
		return
	}
	moveX = common.Clamp(moveX, -1, 1)
	if moveX != 0 {
		p.Pos.X += moveX * p.cfg.MoveSpeed * dt
		p.FacingRight = moveX > 0
		p.Clip.Play(AnimRun, true)
	} else {
		p.Clip.Play(AnimIdle, true)
	}
	p.Clip.Update()
}

// SetScripted hands control to or from a script.
func (p *Player) SetScripted(v bool) {
	if p == nil {
		return
	}
	p.scripted = v
}

func (p *Player) Scripted() bool { return p != nil && p.scripted }

func (p *Player) Position() cp.Vector {
	if p == nil {
		return cp.Vector{}
	}
	return p.Pos
}

func (p *Player) SetPosition(v cp.Vector) {
	if p == nil {
		return
	}
	p.Pos = v
}

func (p *Player) Face(right bool) {
	if p == nil {
		return
	}
	p.FacingRight = right
}

func (p *Player) PlayAnim(name string) {
	if p == nil || p.Health.Dead {
		return
	}
	p.Clip.Play(name, true)
}

// Kill starts the death animation.
func (p *Player) Kill() {
	if p == nil || p.Health.Dead {
		return
	}
	p.Health.Kill(component.CombatEvent{Type: component.EventDeath, TargetID: p.id})
	p.Clip.Play(AnimDeath, false)
}

// Dying reports whether Kill ran or health hit zero.
func (p *Player) Dying() bool {
	return p != nil && p.Health.Dead
}

// DeathFinished reports whether the death animation has played out.
func (p *Player) DeathFinished() bool {
	return p != nil && p.Health.Dead && p.Clip.Name == AnimDeath && p.Clip.Finished
}

// DisableRespawn marks this entity line as ended.
func (p *Player) DisableRespawn() {
	if p == nil {
		return
	}
	p.respawnDisabled = true
}

func (p *Player) RespawnDisabled() bool { return p != nil && p.respawnDisabled }

func (p *Player) Bounds() common.Rect {
	if p == nil {
		return common.Rect{}
	}
	return common.Rect{X: p.Pos.X, Y: p.Pos.Y, Width: p.cfg.Width, Height: p.cfg.Height}
}

func (p *Player) HurtboxID() int {
	if p == nil {
		return 0
	}
	return p.id
}

func (p *Player) CanBeHit() bool {
	return p != nil && !p.Health.Dead && !p.Health.Invulnerable()
}

// TakeArrow applies an arrow hit and starts i-frames. A lethal hit also starts
// the death animation.
func (p *Player) TakeArrow(damage int) bool {
	if !p.CanBeHit() {
		return false
	}
	if !p.Health.ApplyDamage(damage, component.CombatEvent{Type: component.EventHit, TargetID: p.id}) {
		return false
	}
	if p.Health.Dead {
		p.Clip.Play(AnimDeath, false)
		return true
	}
	p.Health.StartIFrames(p.cfg.HitIFrames)
	return true
}

// Respawn revives the player at (x, y) unless respawn was disabled.
func (p *Player) Respawn(x, y float64) bool {
	if p == nil || p.respawnDisabled {
		return false
	}
	p.Pos = cp.Vector{X: x, Y: y}
	prev := p.Health
	p.Health = component.NewHealth(p.cfg.MaxHealth)
	if prev != nil {
		p.Health.OnDamage = prev.OnDamage
		p.Health.OnDeath = prev.OnDeath
	}
	p.scripted = false
	p.Clip.Play(AnimIdle, true)
	return true
}
