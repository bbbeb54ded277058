package sequence

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
)

// phaseState is the per-phase scratch data. Each phase owns one variant and
// drops it on exit.
type phaseState interface {
	update(s *Sequencer, dt float64, in Input)
}

type waitingState struct{}

type slowdownState struct {
	covered float64
}

type playerDeathState struct{}

type pauseState struct{}

type zoomOutState struct{}

type protectionState struct {
	arrowTimer    int
	arrowInterval int
}

type zoomOnTargetState struct {
	entry  *ActionList
	settle *ActionList
	done   bool
}

type finalState struct{}

type doneState struct{}

// enter builds the scratch state of next and runs its entry effects.
func (s *Sequencer) enter(next Phase) phaseState {
	switch next {
	case PhaseCinematicSlowdown:
		if c, ok := s.controlled(); ok {
			c.SetScripted(true)
			c.Face(false)
		}
		return &slowdownState{}
	case PhasePlayerDeath:
		if c, ok := s.controlled(); ok {
			c.DisableRespawn()
			c.Kill()
			s.event("messenger_death", 0)
		}
		return &playerDeathState{}
	case PhasePauseAfterDeath:
		return &pauseState{}
	case PhaseZoomingOut:
		s.panDone = false
		return &zoomOutState{}
	case PhaseProtection:
		return &protectionState{arrowInterval: common.RandInt(s.deps.RNG, s.cfg.ArrowIntervalMin, s.cfg.ArrowIntervalMax)}
	case PhaseZoomOnTarget:
		st := &zoomOnTargetState{}
		st.entry = NewActionList().
			Then(0, "halt_volleys", s.haltVolleys).
			Then(0, "depopulate", s.depop.Start)
		st.entry.Start()
		return st
	case PhaseDezoomRevealEnemies:
		return s.enterReveal()
	case PhaseFinalSequence:
		s.prince.Idle()
		s.haltVolleys()
		return &finalState{}
	case PhaseDone:
		return &doneState{}
	}
	return &waitingState{}
}

func (s *Sequencer) haltVolleys() {
	if s.deps.Volley != nil {
		s.deps.Volley.Halt()
	}
}

func (st *waitingState) update(s *Sequencer, _ float64, _ Input) {
	c, ok := s.controlled()
	if !ok {
		return
	}
	trigger := s.cfg.TriggerTiles * common.TileSize
	if math.Abs(c.Position().X-s.prince.Pos.X) <= trigger {
		s.transition(PhaseCinematicSlowdown)
	}
}

func (st *slowdownState) update(s *Sequencer, dt float64, _ Input) {
	c, ok := s.controlled()
	if !ok {
		return
	}
	target := s.cfg.CinematicTiles * common.TileSize
	progress := 0.0
	if target > 0 {
		progress = st.covered / target
	}
	speed := s.cfg.CinematicSpeed * (1 - progress*s.cfg.CinematicSlowing)
	pos := c.Position()
	pos.X -= speed * dt
	c.SetPosition(pos)
	c.Face(false)
	st.covered += speed * dt
	if speed > 1 {
		c.PlayAnim(obj.AnimRun)
	} else {
		c.PlayAnim(obj.AnimIdle)
	}
	if st.covered >= target {
		s.transition(PhasePlayerDeath)
	}
}

func (st *playerDeathState) update(s *Sequencer, _ float64, _ Input) {
	c, ok := s.controlled()
	if !ok {
		return
	}
	if c.DeathFinished() || s.phaseFrames >= s.cfg.DeathTimeout {
		s.transition(PhasePauseAfterDeath)
	}
}

func (st *pauseState) update(s *Sequencer, _ float64, _ Input) {
	if s.phaseFrames >= s.cfg.PauseFrames {
		s.transition(PhaseZoomingOut)
	}
}

func (st *zoomOutState) update(s *Sequencer, dt float64, _ Input) {
	s.prince.Walk(dt, s.cfg.Prince.BaseSpeed+s.cfg.Prince.PanBonus, s.cfg.DoorX)
	// The camera has not stepped toward the pan target before the second
	// frame, so an earlier Arrived is stale.
	if !s.panDone && s.deps.Pan != nil && s.phaseFrames > 1 && s.deps.Pan.Arrived() {
		s.panDone = true
	}
	if s.panDone {
		s.transition(PhaseProtection)
	}
}

func (st *protectionState) update(s *Sequencer, dt float64, in Input) {
	if s.space.pressed(in.Down(KeySpace)) {
		s.spawnDefender()
	}

	s.prince.Walk(dt, s.prince.VariedSpeed(s.deps.RNG), s.cfg.DoorX)

	st.arrowTimer++
	if st.arrowTimer >= st.arrowInterval {
		st.arrowTimer = 0
		st.arrowInterval = common.RandInt(s.deps.RNG, s.cfg.ArrowIntervalMin, s.cfg.ArrowIntervalMax)
		s.fireProtectionArrow()
	}

	switch {
	case s.prince.Pos.X >= common.TileX(s.cfg.ZoomStartTile):
		s.transition(PhaseZoomOnTarget)
	case s.prince.Pos.X >= s.cfg.DoorX:
		s.transition(PhaseFinalSequence)
	}
}

func (s *Sequencer) spawnDefender() {
	d, err := s.defenders.SpawnAt(factionDefenders, s.cfg.DefenderSpawn.X, s.cfg.DefenderSpawn.Y)
	if err != nil {
		return
	}
	d.Direct(obj.Directive{TargetX: s.cfg.DefenderTargetX, Speed: s.cfg.DefenderSpeed})
	s.defendersSpawned++
	s.event("defender_spawn", d.ID())
}

func (s *Sequencer) fireProtectionArrow() {
	c := s.prince.Center()
	aim := cp.Vector{
		X: c.X + float64(common.RandInt(s.deps.RNG, -s.cfg.ArrowJitterX, s.cfg.ArrowJitterX)),
		Y: c.Y + float64(common.RandInt(s.deps.RNG, -s.cfg.ArrowJitterY, s.cfg.ArrowJitterY)),
	}
	a := obj.NewArrowFromConfig(s.cfg.Arrow, s.cfg.ArrowOrigin, aim)
	a.OnImpact = func(a *obj.Arrow) { s.event("arrow_impact", a.ProjectileID()) }
	s.arrows.Add(a)
	s.event("arrow_fire", a.ProjectileID())
}

func (st *zoomOnTargetState) update(s *Sequencer, dt float64, _ Input) {
	st.entry.Tick()
	end := common.TileX(s.cfg.ZoomEndTile)
	s.prince.Walk(dt, s.cfg.Prince.BaseSpeed, end)

	progress := common.Clamp((s.prince.Tile()-s.cfg.ZoomStartTile)/(s.cfg.ZoomEndTile-s.cfg.ZoomStartTile), 0, 1)
	s.zoom = common.Lerp(1, s.cfg.MaxZoom, progress)

	if s.prince.Pos.X >= end && st.settle == nil {
		st.settle = NewActionList().Then(s.cfg.SettleFrames, "settled", func() { st.done = true })
		st.settle.Start()
	}
	st.settle.Tick()
	if st.done {
		s.transition(PhaseDezoomRevealEnemies)
	}
}

func (st *finalState) update(s *Sequencer, _ float64, _ Input) {
	s.prince.Idle()
	if s.phaseFrames > s.cfg.FinalFrames {
		s.transition(PhaseDone)
	}
}

func (st *doneState) update(*Sequencer, float64, Input) {}
