package sequence

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
	"github.com/milk9111/princeguard/system"
)

const (
	factionDefenders = "defenders"
	factionHostiles  = "hostiles"
)

// Controlled is the player-driven entity the cinematic takes over.
// *obj.Player satisfies it.
type Controlled interface {
	Position() cp.Vector
	SetPosition(v cp.Vector)
	SetScripted(v bool)
	Face(right bool)
	PlayAnim(name string)
	Kill()
	DeathFinished() bool
	DisableRespawn()
}

// AudioSink receives the sequence's sound directives.
type AudioSink interface {
	OnPhaseEnter(phase string)
	OnEvent(name string, instance int)
	FadeMusic(volume float64, frames int)
}

// PanObserver reports whether the camera reached its pan target.
type PanObserver interface {
	Arrived() bool
}

// Halter stops an external arrow source.
type Halter interface {
	Halt()
}

// Deps are the collaborators the sequencer drives. Only RNG is required.
type Deps struct {
	Controlled Controlled
	Audio      AudioSink
	Pan        PanObserver
	Volley     Halter
	Surfaces   obj.Surfaces
	Frames     *component.FrameSource
	RNG        common.RNG
	Logger     *log.Logger
}

// Shockwave is the radial effect of the climax.
type Shockwave struct {
	Active bool
	Center cp.Vector
	Radius float64
	Alpha  float64
	age    int
}

// View is a read-only snapshot for the camera and renderer.
type View struct {
	Phase       Phase
	Tick        int
	PhaseFrames int

	HasControlled bool
	ControlledPos cp.Vector

	Prince             common.Rect
	PrinceHealth       int
	PrinceMaxHealth    int
	PrinceInvulnerable bool
	PrinceHits         int
	PrinceAnim         string
	PrinceFrame        int

	Zoom    float64
	MaxZoom float64
	PanTile float64

	Shockwave        Shockwave
	MusicMuted       bool
	DefendersSpawned int
	ArrowsCaught     int

	Defenders []obj.RenderInfo
	Hostiles  []obj.RenderInfo
	Arrows    []*obj.Arrow
}

// Sequencer drives the protection sequence one frame at a time.
type Sequencer struct {
	cfg    Config
	deps   Deps
	logger *log.Logger
	reveal []RevealStep

	phase       Phase
	phaseFrames int
	tick        int
	history     []Transition
	state       phaseState

	prince    *Prince
	defenders *system.Population
	hostiles  *system.Population
	arrows    system.ArrowSet
	depop     *system.Depopulator
	resolver  *component.CombatResolver

	zoom       float64
	shockwave  Shockwave
	musicMuted bool
	space      edge
	panDone    bool
	deathEpoch int

	defendersSpawned int
	arrowsCaught     int
	missingLogged    bool
}

// NewSequencer validates cfg and builds a sequencer in PhaseWaiting.
func NewSequencer(cfg Config, deps Deps) (*Sequencer, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.RNG == nil {
		return nil, fmt.Errorf("sequence: new: rng is required")
	}
	if cfg.ZoomEndTile <= cfg.ZoomStartTile {
		return nil, fmt.Errorf("sequence: new: zoom tiles %v..%v: %w", cfg.ZoomStartTile, cfg.ZoomEndTile, obj.ErrDegenerateGeometry)
	}
	for _, st := range cfg.RevealSteps {
		if _, ok := revealActions[st.Label]; !ok {
			return nil, fmt.Errorf("sequence: reveal step %q: unknown action", st.Label)
		}
	}
	if cfg.MaxZoom < 1 {
		cfg.MaxZoom = 1
	}
	s := &Sequencer{cfg: cfg, deps: deps, logger: deps.Logger, reveal: cfg.RevealSteps}
	s.Reset()
	return s, nil
}

// Reset returns to PhaseWaiting with fresh entities. Call it between frames.
func (s *Sequencer) Reset() {
	if s == nil {
		return
	}
	s.phase = PhaseWaiting
	s.phaseFrames = 0
	s.tick = 0
	s.history = nil
	s.state = &waitingState{}
	s.prince = NewPrince(s.cfg.Prince, s.deps.Frames)
	hits := 0
	s.prince.Health.OnDamage = func(*component.Health, component.CombatEvent) {
		hits++
		s.event("prince_hit", hits)
	}
	s.defenders = system.NewPopulation(s.entityConfig(factionDefenders, component.TeamBlue, s.cfg.DefenderMax), s.deps.Frames, s.deps.RNG, s.logger)
	s.hostiles = system.NewPopulation(s.entityConfig(factionHostiles, component.TeamRed, s.cfg.Formation.Count), s.deps.Frames, s.deps.RNG, s.logger)
	s.arrows.Clear()
	s.depop = system.NewDepopulator(s.defenders.FactionList(factionDefenders), &s.arrows)
	if s.cfg.WaveDelay > 0 {
		s.depop.WaveDelay = s.cfg.WaveDelay
	}
	s.resolver = component.NewCombatResolver()
	s.zoom = 1
	s.shockwave = Shockwave{}
	s.musicMuted = false
	s.space = edge{}
	s.panDone = false
	s.deathEpoch = -1
	s.defendersSpawned = 0
	s.arrowsCaught = 0
	s.missingLogged = false
}

func (s *Sequencer) entityConfig(name string, team component.Team, maxCount int) system.PopulationConfig {
	return system.PopulationConfig{
		Factions:     []system.FactionConfig{{Name: name, Team: team, MaxCount: maxCount}},
		LingerFrames: s.cfg.CorpseLinger,
		Actor:        s.cfg.Actor,
	}
}

// SetControlled swaps the controlled entity, for hosts that respawn it.
func (s *Sequencer) SetControlled(c Controlled) {
	if s == nil {
		return
	}
	s.deps.Controlled = c
	s.missingLogged = false
}

// NotifyPanComplete tells the sequencer the camera finished panning.
func (s *Sequencer) NotifyPanComplete() {
	if s == nil {
		return
	}
	s.panDone = true
}

// Update advances one frame. It never fails: a phase that lacks what it
// needs stays where it is and retries next frame.
func (s *Sequencer) Update(dt float64, in Input) Status {
	if s == nil {
		return Complete
	}
	if in == nil {
		in = Keys{}
	}
	s.tick++
	s.phaseFrames++
	s.depop.Tick()

	s.state.update(s, dt, in)

	if s.phase >= PhaseZoomingOut {
		s.prince.Tick()
	}
	if s.phase >= PhaseProtection {
		s.updateEntities(dt)
	}
	s.updateShockwave()
	if s.phase == PhaseDone {
		return Complete
	}
	return Continue
}

// Phase returns the current phase.
func (s *Sequencer) Phase() Phase {
	if s == nil {
		return PhaseDone
	}
	return s.phase
}

// History returns every transition taken since construction or Reset.
func (s *Sequencer) History() []Transition {
	if s == nil {
		return nil
	}
	return append([]Transition(nil), s.history...)
}

// Prince exposes the protected character.
func (s *Sequencer) Prince() *Prince {
	if s == nil {
		return nil
	}
	return s.prince
}

// Hostiles returns the reveal formation.
func (s *Sequencer) Hostiles() []*obj.Actor {
	if s == nil {
		return nil
	}
	return s.hostiles.Actors(factionHostiles)
}

// Defenders returns the defenders spawned during protection.
func (s *Sequencer) Defenders() []*obj.Actor {
	if s == nil {
		return nil
	}
	return s.defenders.Actors(factionDefenders)
}

// View returns the current snapshot.
func (s *Sequencer) View() View {
	if s == nil {
		return View{Phase: PhaseDone, Zoom: 1, MaxZoom: 1}
	}
	v := View{
		Phase:              s.phase,
		Tick:               s.tick,
		PhaseFrames:        s.phaseFrames,
		Prince:             s.prince.Bounds(),
		PrinceHealth:       s.prince.Health.CurrentHP(),
		PrinceMaxHealth:    s.prince.Health.MaxHP(),
		PrinceInvulnerable: s.prince.Health.Invulnerable(),
		PrinceHits:         s.prince.Hits,
		PrinceAnim:         s.prince.Clip.Name,
		PrinceFrame:        s.prince.Clip.Frame,
		Zoom:               s.zoom,
		MaxZoom:            s.cfg.MaxZoom,
		PanTile:            s.cfg.PanTile,
		Shockwave:          s.shockwave,
		MusicMuted:         s.musicMuted,
		DefendersSpawned:   s.defendersSpawned,
		ArrowsCaught:       s.arrowsCaught,
		Defenders:          s.defenders.ActorsForRender(),
		Hostiles:           s.hostiles.ActorsForRender(),
		Arrows:             append([]*obj.Arrow(nil), s.arrows.Arrows...),
	}
	if c := s.deps.Controlled; c != nil {
		v.HasControlled = true
		v.ControlledPos = c.Position()
	}
	return v
}

// transition moves to next, refusing anything that is not strictly forward.
func (s *Sequencer) transition(next Phase) error {
	if next <= s.phase {
		err := fmt.Errorf("sequence: %s -> %s: %w", s.phase, next, ErrInvalidTransition)
		s.logger.Printf("%v", err)
		return err
	}
	s.history = append(s.history, Transition{From: s.phase, To: next, Tick: s.tick})
	s.logger.Printf("sequence: %s -> %s at tick %d", s.phase, next, s.tick)
	s.phase = next
	s.phaseFrames = 0
	s.state = s.enter(next)
	if s.deps.Audio != nil {
		s.deps.Audio.OnPhaseEnter(next.String())
	}
	return nil
}

// controlled returns the controlled entity, logging once while it is absent.
func (s *Sequencer) controlled() (Controlled, bool) {
	c := s.deps.Controlled
	if c == nil {
		if !s.missingLogged {
			s.missingLogged = true
			s.logger.Printf("sequence: %s waiting for a controlled entity", s.phase)
		}
		return nil, false
	}
	return c, true
}

func (s *Sequencer) event(name string, instance int) {
	if s.deps.Audio != nil {
		s.deps.Audio.OnEvent(name, instance)
	}
}

// updateEntities moves everything that outlives the protection phase:
// defenders, protection arrows and the reveal formation.
func (s *Sequencer) updateEntities(dt float64) {
	s.defenders.Update(dt, nil)
	s.hostiles.Update(dt, nil)
	if s.deathEpoch >= 0 {
		for _, a := range s.hostiles.Actors(factionHostiles) {
			a.SyncDeathFrame(s.tick, s.cfg.DeathFrameTicks)
		}
	}

	door := s.cfg.DoorX + s.cfg.ArrowPastDoor
	s.arrows.Update(dt, s.deps.Surfaces, s.cfg.ArrowBottomY, func(a *obj.Arrow) bool {
		return a.Pos.X > door
	})

	targets := make([]component.Hurtbox, 0, s.defenders.Len(factionDefenders)+1)
	for _, d := range s.defenders.Actors(factionDefenders) {
		targets = append(targets, d)
	}
	targets = append(targets, s.prince)
	system.ResolveArrowHits(s.resolver, &s.arrows, targets, func(a *obj.Arrow, target component.Hurtbox) bool {
		if p, ok := target.(*Prince); ok {
			return p.TakeArrow()
		}
		d, ok := target.(*obj.Actor)
		if !ok || d.IsDead() {
			return false
		}
		d.Kill(-1)
		s.arrowsCaught++
		s.event("defender_catch", a.ProjectileID())
		return true
	})
	s.arrows.Sweep(func(a *obj.Arrow) bool { return a.Expired(s.cfg.ArrowBottomY) })
}

func (s *Sequencer) updateShockwave() {
	sw := &s.shockwave
	if !sw.Active {
		return
	}
	sw.age++
	sw.Radius += s.cfg.ShockwaveGrowth
	if s.cfg.ShockwaveFrames <= 0 || sw.age >= s.cfg.ShockwaveFrames {
		*sw = Shockwave{}
		return
	}
	sw.Alpha = 1 - float64(sw.age)/float64(s.cfg.ShockwaveFrames)
}
