package sequence

import (
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
)

// Reveal step labels. Each names an entry of revealActions.
const (
	StepMuteMusic      = "mute_music"
	StepDezoom         = "dezoom"
	StepRush           = "rush"
	StepReaction       = "reaction"
	StepFreezeHostiles = "freeze_hostiles"
	StepClimax         = "climax"
	StepMassDeath      = "mass_death"
	StepComplete       = "complete"
)

type revealAction func(s *Sequencer, st *revealState)

var revealActions = map[string]revealAction{
	StepMuteMusic: func(s *Sequencer, _ *revealState) {
		s.musicMuted = true
		if s.deps.Audio != nil {
			s.deps.Audio.FadeMusic(0, s.cfg.MusicFadeFrames)
		}
	},
	StepDezoom: func(s *Sequencer, st *revealState) {
		st.dezooming = true
		st.dezoomFrame = 0
		st.dezoomFrom = s.zoom
	},
	StepRush: func(s *Sequencer, _ *revealState) {
		target := s.prince.Center().X
		for _, h := range s.hostiles.Actors(factionHostiles) {
			h.Direct(obj.Directive{
				TargetX:      target,
				Speed:        s.cfg.Formation.RushSpeed,
				StopDistance: s.cfg.Formation.StopDistance,
			})
		}
		s.event("hostiles_rush", 0)
	},
	StepReaction: func(s *Sequencer, _ *revealState) {
		s.event("prince_reaction", 0)
	},
	StepFreezeHostiles: func(s *Sequencer, _ *revealState) {
		face := s.prince.Center().X
		for _, h := range s.hostiles.Actors(factionHostiles) {
			h.Freeze(face)
		}
	},
	StepClimax: func(s *Sequencer, _ *revealState) {
		s.shockwave = Shockwave{Active: true, Center: s.prince.Center(), Alpha: 1}
		s.event("climax", 0)
	},
	StepMassDeath: func(s *Sequencer, _ *revealState) {
		s.deathEpoch = s.tick
		for _, h := range s.hostiles.Actors(factionHostiles) {
			h.Kill(s.deathEpoch)
		}
		s.event("mass_death", 0)
	},
	StepComplete: func(_ *Sequencer, st *revealState) {
		st.complete = true
	},
}

type revealState struct {
	steps       *ActionList
	dezooming   bool
	dezoomFrom  float64
	dezoomFrame int
	complete    bool
}

func (s *Sequencer) enterReveal() phaseState {
	s.prince.Idle()
	s.depop.Start()
	s.spawnFormation()

	st := &revealState{}
	st.steps = NewActionList()
	for _, step := range s.reveal {
		do := revealActions[step.Label]
		delay := step.Delay
		if step.WaitDezoom {
			delay += s.cfg.DezoomFrames
		}
		st.steps.Then(delay, step.Label, func() { do(s, st) })
	}
	st.steps.Start()
	return st
}

// spawnFormation lines the hostiles up in rows ahead of the prince, each row
// shifted right of the one before.
func (s *Sequencer) spawnFormation() {
	f := s.cfg.Formation
	cols := f.Columns
	if cols <= 0 {
		cols = 1
	}
	face := s.prince.Center().X
	for i := 0; i < f.Count; i++ {
		row, col := i/cols, i%cols
		x := s.prince.Pos.X + f.OffsetX + float64(col)*f.ColumnStep + float64(row)*f.RowShift
		a, err := s.hostiles.SpawnAt(factionHostiles, x, f.Y)
		if err != nil {
			return
		}
		a.Freeze(face)
	}
	s.event("hostiles_reveal", f.Count)
}

func (st *revealState) update(s *Sequencer, _ float64, _ Input) {
	st.steps.Tick()
	if st.dezooming {
		st.dezoomFrame++
		t := 1.0
		if s.cfg.DezoomFrames > 0 {
			t = common.Clamp(float64(st.dezoomFrame)/float64(s.cfg.DezoomFrames), 0, 1)
		}
		s.zoom = common.Lerp(st.dezoomFrom, 1, t)
		if t >= 1 {
			st.dezooming = false
		}
	}
	if st.complete || st.steps.Done() {
		s.transition(PhaseDone)
	}
}
