package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
)

// ActorState is the combat state of an Actor.
type ActorState int

const (
	ActorIdle ActorState = iota
	ActorPatrol
	ActorGuard
	ActorChase
	ActorAttack
	ActorTakingHit
	ActorDead
)

func (s ActorState) String() string {
	switch s {
	case ActorIdle:
		return "idle"
	case ActorPatrol:
		return "patrol"
	case ActorGuard:
		return "guard"
	case ActorChase:
		return "chase"
	case ActorAttack:
		return "attack"
	case ActorTakingHit:
		return "taking_hit"
	case ActorDead:
		return "dead"
	}
	return "unknown"
}

const (
	AnimIdle    = "idle"
	AnimRun     = "run"
	AnimAttack1 = "attack1"
	AnimAttack2 = "attack2"
	AnimHit     = "hit"
	AnimDeath   = "death"
)

// ActorConfig holds the tunables of a combat actor.
type ActorConfig struct {
	Kind           string
	MaxHealth      int
	Damage         int
	AggroRange     float64
	AttackRange    float64
	AttackFrames   int
	HitFrames      int
	AttackCooldown int
	ActionCooldown int

	SpeedMin     float64
	SpeedMax     float64
	AnimTicksMin int
	AnimTicksMax int
	BehaviorMin  int
	BehaviorMax  int

	Gravity  float64
	Friction float64
	Width    float64
	Height   float64

	AllyBlockDistance float64
	PatrolFactor      float64
	ChaseFactor       float64
	SidestepFactor    float64
	SidestepChance    float64
}

// DefaultActorConfig mirrors prefabs/actor.yaml.
func DefaultActorConfig() ActorConfig {
	return ActorConfig{
		Kind:              "soldier",
		MaxHealth:         6,
		Damage:            1,
		AggroRange:        120,
		AttackRange:       90,
		AttackFrames:      40,
		HitFrames:         30,
		AttackCooldown:    40,
		ActionCooldown:    120,
		SpeedMin:          1,
		SpeedMax:          3,
		AnimTicksMin:      6,
		AnimTicksMax:      10,
		BehaviorMin:       300,
		BehaviorMax:       600,
		Gravity:           0.8,
		Friction:          0.85,
		Width:             48,
		Height:            64,
		AllyBlockDistance: 50,
		PatrolFactor:      0.3,
		ChaseFactor:       1.5,
		SidestepFactor:    0.5,
		SidestepChance:    0.5,
	}
}

// Directive takes an actor out of AI control and walks it toward a point
// without gravity.
type Directive struct {
	TargetX      float64
	TargetY      float64
	Speed        float64
	StopDistance float64
	// FollowY also closes the vertical gap.
	FollowY bool
}

// RenderInfo is what the rendering layer needs to draw an actor.
type RenderInfo struct {
	ID          int
	Team        component.Team
	Bounds      common.Rect
	FacingRight bool
	Anim        string
	Frame       int
	Placeholder bool
	Dead        bool
}

// Actor is an AI-controlled combat entity.
type Actor struct {
	Pos         cp.Vector
	Vel         cp.Vector
	FacingRight bool
	State       ActorState
	Health      *component.Health
	Clip        *component.Clip
	Grounded    bool

	// DeathTimer counts frames since death. DeathEpoch is the shared tick a
	// scripted mass death used, or -1.
	DeathTimer int
	DeathEpoch int

	Emitter *component.CombatEventEmitter

	cfg    ActorConfig
	rng    common.RNG
	picker BehaviorPicker

	id             int
	team           component.Team
	speed          float64
	stateTimer     int
	attackCooldown int
	actionCooldown int
	behavior       string
	behaviorTimer  int
	behaviorFrames int

	directed  bool
	frozen    bool
	directive Directive
}

// NewActor creates an actor standing with its top-left corner at (x, y).
func NewActor(team component.Team, x, y float64, cfg ActorConfig, frames *component.FrameSource, rng common.RNG) *Actor {
	a := &Actor{
		Pos:        cp.Vector{X: x, Y: y},
		State:      ActorIdle,
		Health:     component.NewHealth(cfg.MaxHealth),
		DeathEpoch: -1,
		cfg:        cfg,
		rng:        rng,
		picker:     RandomPicker{},
		id:         newEntityID(),
		team:       team,
		speed:      common.RandFloat(rng, cfg.SpeedMin, cfg.SpeedMax),
		behavior:   BehaviorIdle,
	}
	a.FacingRight = common.Chance(rng, 0.5)
	a.behaviorFrames = common.RandInt(rng, cfg.BehaviorMin, cfg.BehaviorMax)
	a.Clip = component.NewClip(frames, cfg.Kind, common.RandInt(rng, cfg.AnimTicksMin, cfg.AnimTicksMax))
	a.Clip.Play(AnimIdle, true)
	return a
}

// SetPicker replaces the idle behavior picker.
func (a *Actor) SetPicker(p BehaviorPicker) {
	if a == nil || p == nil {
		return
	}
	a.picker = p
}

func (a *Actor) ID() int {
	if a == nil {
		return 0
	}
	return a.id
}

func (a *Actor) Team() component.Team {
	if a == nil {
		return ""
	}
	return a.team
}

// Speed returns the actor's randomized base speed.
func (a *Actor) Speed() float64 {
	if a == nil {
		return 0
	}
	return a.speed
}

// Behavior returns the current idle behavior name.
func (a *Actor) Behavior() string {
	if a == nil {
		return ""
	}
	return a.behavior
}

// Bounds returns the actor's collision rectangle.
func (a *Actor) Bounds() common.Rect {
	if a == nil {
		return common.Rect{}
	}
	return common.Rect{X: a.Pos.X, Y: a.Pos.Y, Width: a.cfg.Width, Height: a.cfg.Height}
}

// Center returns the middle of the actor's bounds.
func (a *Actor) Center() cp.Vector {
	return a.Bounds().Center()
}

// IsDead reports whether the actor has died.
func (a *Actor) IsDead() bool {
	return a == nil || a.State == ActorDead
}

// Directed reports whether a scripted directive controls the actor.
func (a *Actor) Directed() bool {
	return a != nil && a.directed
}

// Frozen reports whether the actor was frozen by a directive.
func (a *Actor) Frozen() bool {
	return a != nil && a.frozen
}

func (a *Actor) HurtboxID() int { return a.ID() }

// CanBeHit reports whether an arrow may strike the actor.
func (a *Actor) CanBeHit() bool {
	return a != nil && a.State != ActorDead
}

// TakeDamage applies damage. Dead actors and actors in hit-stun ignore it.
// Attacks are not interrupted: damage lands but the actor keeps swinging.
func (a *Actor) TakeDamage(amount int) bool {
	if a == nil || a.State == ActorDead || a.State == ActorTakingHit {
		return false
	}
	if !a.Health.ApplyDamage(amount, component.CombatEvent{Type: component.EventDamageApplied, TargetID: a.id}) {
		return false
	}
	if !a.Health.IsAlive() {
		a.die(-1)
		return true
	}
	if a.State == ActorAttack {
		return true
	}
	a.State = ActorTakingHit
	a.stateTimer = a.cfg.HitFrames
	a.Vel.X = 0
	a.Clip.Play(AnimHit, false)
	return true
}

// Kill forces a scripted death sharing epoch with other actors killed on the
// same tick.
func (a *Actor) Kill(epoch int) {
	if a == nil || a.State == ActorDead {
		return
	}
	a.Health.Kill(component.CombatEvent{Type: component.EventDeath, TargetID: a.id, Frame: epoch})
	a.die(epoch)
}

func (a *Actor) die(epoch int) {
	a.State = ActorDead
	a.DeathTimer = 0
	a.DeathEpoch = epoch
	a.Vel = cp.Vector{}
	a.directed = false
	a.Clip.Play(AnimDeath, false)
	a.Emitter.Emit(component.CombatEvent{Type: component.EventDeath, TargetID: a.id, Frame: epoch, Pos: a.Center()})
}

// SyncDeathFrame derives the death frame from the shared epoch:
// floor((now-epoch)/ticksPerFrame), capped at the last frame.
func (a *Actor) SyncDeathFrame(now, ticksPerFrame int) {
	if a == nil || a.State != ActorDead || a.DeathEpoch < 0 || ticksPerFrame <= 0 {
		return
	}
	elapsed := now - a.DeathEpoch
	if elapsed < 0 {
		elapsed = 0
	}
	frame := elapsed / ticksPerFrame
	if last := a.Clip.FrameCount() - 1; frame > last {
		frame = last
	}
	a.Clip.SetFrame(frame)
}

// Direct hands the actor to a script.
func (a *Actor) Direct(d Directive) {
	if a == nil || a.State == ActorDead {
		return
	}
	a.directed = true
	a.frozen = false
	a.directive = d
}

// Freeze stops a directed actor facing x.
func (a *Actor) Freeze(faceX float64) {
	if a == nil || a.State == ActorDead {
		return
	}
	a.directed = true
	a.frozen = true
	a.Vel = cp.Vector{}
	a.FacingRight = faceX > a.Center().X
	a.Clip.Play(AnimIdle, true)
}

// Release returns a directed actor to AI control.
func (a *Actor) Release() {
	if a == nil {
		return
	}
	a.directed = false
	a.frozen = false
}

// Update advances the actor one tick. hostiles and allies come from the
// population's proximity query; allies may include the actor itself.
func (a *Actor) Update(dt float64, surfaces Surfaces, hostiles, allies []component.Combatant) {
	if a == nil {
		return
	}
	if a.State == ActorDead {
		a.DeathTimer++
		if a.DeathEpoch < 0 {
			a.Clip.Update()
		}
		return
	}
	if a.directed {
		a.updateDirected(dt)
		a.Clip.Update()
		return
	}

	switch a.State {
	case ActorTakingHit, ActorAttack:
		a.stateTimer--
		if a.stateTimer > 0 {
			a.Clip.Update()
			return
		}
		if a.State == ActorAttack {
			a.attackCooldown = a.cfg.AttackCooldown
		}
		a.State = ActorIdle
		a.Clip.Play(AnimIdle, true)
	}

	if a.attackCooldown > 0 {
		a.attackCooldown--
	}
	if a.actionCooldown > 0 {
		a.actionCooldown--
	}

	switch {
	case a.actionCooldown == 0:
		a.think(hostiles, allies)
	case a.State != ActorPatrol:
		a.Vel.X = 0
		a.Clip.Play(AnimIdle, true)
	}

	a.integrate(dt, surfaces)
	a.Clip.Update()
}

// nearestHostile returns the closest living hostile by horizontal distance.
// Ties keep the first one in slice order.
func (a *Actor) nearestHostile(hostiles []component.Combatant) (component.Combatant, float64) {
	var best component.Combatant
	bestDist := math.Inf(1)
	cx := a.Center().X
	for _, h := range hostiles {
		if h == nil || h.IsDead() || !a.team.Opposes(h.Team()) {
			continue
		}
		d := math.Abs(h.Center().X - cx)
		if d < a.cfg.AggroRange && d < bestDist {
			best, bestDist = h, d
		}
	}
	return best, bestDist
}

func (a *Actor) blockedByAlly(target component.Combatant, allies []component.Combatant) bool {
	cx := a.Center().X
	dir := common.Sign(target.Center().X - cx)
	for _, al := range allies {
		if al == nil || al.ID() == a.id || al.IsDead() {
			continue
		}
		ax := al.Center().X
		if math.Abs(ax-cx) >= a.cfg.AllyBlockDistance {
			continue
		}
		if common.Sign(ax-cx) == dir {
			return true
		}
	}
	return false
}

func (a *Actor) think(hostiles, allies []component.Combatant) {
	a.behaviorTimer++
	target, dist := a.nearestHostile(hostiles)
	blocked := target != nil && a.blockedByAlly(target, allies)

	switch {
	case target != nil && !blocked && dist < a.cfg.AttackRange && a.attackCooldown == 0:
		a.attack(target)
	case target != nil && !blocked:
		a.chase(target)
	case blocked:
		a.avoid()
	default:
		if a.behaviorTimer >= a.behaviorFrames {
			a.changeBehavior()
		}
	}
}

func (a *Actor) attack(target component.Combatant) {
	a.State = ActorAttack
	a.stateTimer = a.cfg.AttackFrames
	a.Vel.X = 0
	a.FacingRight = target.Center().X >= a.Center().X
	if common.Chance(a.rng, 0.5) {
		a.Clip.Play(AnimAttack1, false)
	} else {
		a.Clip.Play(AnimAttack2, false)
	}
	if target.TakeDamage(a.cfg.Damage) {
		a.Emitter.Emit(component.CombatEvent{Type: component.EventHit, AttackerID: a.id, TargetID: target.ID(), Damage: a.cfg.Damage, Pos: target.Center()})
	}
	a.actionCooldown = a.cfg.ActionCooldown
}

func (a *Actor) chase(target component.Combatant) {
	a.State = ActorChase
	dx := target.Center().X - a.Center().X
	switch {
	case dx < 0:
		a.Vel.X = -a.speed * a.cfg.ChaseFactor
		a.FacingRight = false
		a.Clip.Play(AnimRun, true)
	case dx > 0:
		a.Vel.X = a.speed * a.cfg.ChaseFactor
		a.FacingRight = true
		a.Clip.Play(AnimRun, true)
	default:
		a.Vel.X = 0
		a.Clip.Play(AnimIdle, true)
	}
}

func (a *Actor) avoid() {
	a.State = ActorIdle
	if common.Chance(a.rng, a.cfg.SidestepChance) {
		dir := 1.0
		if common.Chance(a.rng, 0.5) {
			dir = -1
		}
		a.Vel.X = dir * a.speed * a.cfg.SidestepFactor
		a.Clip.Play(AnimRun, true)
		a.actionCooldown = a.cfg.ActionCooldown
		return
	}
	a.Vel.X = 0
	a.Clip.Play(AnimIdle, true)
}

func (a *Actor) changeBehavior() {
	a.behavior = a.picker.Pick(BehaviorContext{
		Team:    string(a.team),
		Current: a.behavior,
		Roll:    common.RandFloat(a.rng, 0, 1),
	})
	a.behaviorTimer = 0
	a.behaviorFrames = common.RandInt(a.rng, a.cfg.BehaviorMin, a.cfg.BehaviorMax)

	switch a.behavior {
	case BehaviorPatrol:
		a.State = ActorPatrol
		a.FacingRight = common.Chance(a.rng, 0.5)
		dir := -1.0
		if a.FacingRight {
			dir = 1
		}
		a.Vel.X = dir * a.speed * a.cfg.PatrolFactor
		a.Clip.Play(AnimRun, true)
	case BehaviorGuard:
		a.State = ActorGuard
		a.Vel.X = 0
		a.Clip.Play(AnimIdle, true)
	default:
		a.State = ActorIdle
		a.Vel.X = 0
		a.Clip.Play(AnimIdle, true)
	}
	a.actionCooldown = a.cfg.ActionCooldown
}

func (a *Actor) integrate(dt float64, surfaces Surfaces) {
	a.Vel.Y += a.cfg.Gravity * dt
	if a.Grounded {
		switch {
		case a.actionCooldown > 0 && a.State == ActorPatrol:
			// patrol keeps its pace until the cooldown runs out
		case a.actionCooldown > 0:
			a.Vel.X = 0
		default:
			a.Vel.X *= a.cfg.Friction
		}
	}
	prevBottom := a.Pos.Y + a.cfg.Height
	a.Pos = a.Pos.Add(a.Vel.Mult(dt))
	a.resolveVertical(surfaces, prevBottom)
}

// resolveVertical lands the actor on a surface when falling and stops it
// under a ceiling when rising. The query box reaches one pixel below the feet so
// an actor resting exactly on a surface stays grounded.
func (a *Actor) resolveVertical(surfaces Surfaces, prevBottom float64) {
	a.Grounded = false
	if surfaces == nil {
		return
	}
	box := a.Bounds()
	box.Height++
	for _, s := range surfaces.Query(box) {
		switch {
		case a.Vel.Y >= 0 && prevBottom <= s.Top()+1:
			a.Pos.Y = s.Top() - a.cfg.Height
			a.Vel.Y = 0
			a.Grounded = true
			return
		case a.Vel.Y < 0 && a.Pos.Y < s.Bottom():
			a.Pos.Y = s.Bottom()
			a.Vel.Y = 0
			return
		}
	}
}

func (a *Actor) updateDirected(dt float64) {
	if a.frozen {
		a.Vel = cp.Vector{}
		return
	}
	d := a.directive
	c := a.Center()
	dx := d.TargetX - c.X
	step := d.Speed * dt
	moving := false
	if math.Abs(dx) > d.StopDistance {
		goal := d.TargetX - common.Sign(dx)*d.StopDistance
		a.Pos.X += common.Approach(c.X, goal, step) - c.X
		a.FacingRight = dx > 0
		moving = true
	}
	if d.FollowY {
		dy := d.TargetY - c.Y
		if math.Abs(dy) > 1 {
			a.Pos.Y += common.Approach(c.Y, d.TargetY, step) - c.Y
			moving = true
		}
	}
	if moving {
		a.Clip.Play(AnimRun, true)
	} else {
		a.Clip.Play(AnimIdle, true)
	}
}

// RenderInfo returns the actor's render view.
func (a *Actor) RenderInfo() RenderInfo {
	if a == nil {
		return RenderInfo{}
	}
	return RenderInfo{
		ID:          a.id,
		Team:        a.team,
		Bounds:      a.Bounds(),
		FacingRight: a.FacingRight,
		Anim:        a.Clip.Name,
		Frame:       a.Clip.Frame,
		Placeholder: a.Clip.Placeholder,
		Dead:        a.State == ActorDead,
	}
}
