package sequence

import "errors"

// ErrInvalidTransition reports an attempt to move the sequence backward or
// to re-enter a phase.
var ErrInvalidTransition = errors.New("invalid transition")

// Phase is a stage of the protection sequence. Phases only move forward.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseCinematicSlowdown
	PhasePlayerDeath
	PhasePauseAfterDeath
	PhaseZoomingOut
	PhaseProtection
	PhaseZoomOnTarget
	PhaseDezoomRevealEnemies
	PhaseFinalSequence
	PhaseDone
)

var phaseNames = [...]string{
	PhaseWaiting:             "waiting",
	PhaseCinematicSlowdown:   "cinematic_slowdown",
	PhasePlayerDeath:         "player_death",
	PhasePauseAfterDeath:     "pause_after_death",
	PhaseZoomingOut:          "zooming_out",
	PhaseProtection:          "protection",
	PhaseZoomOnTarget:        "zoom_on_target",
	PhaseDezoomRevealEnemies: "dezoom_reveal_enemies",
	PhaseFinalSequence:       "final_sequence",
	PhaseDone:                "done",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(name string) (Phase, bool) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), true
		}
	}
	return 0, false
}

// Status is what Update reports to the caller.
type Status int

const (
	Continue Status = iota
	Complete
)

// Transition is one entry of the phase log.
type Transition struct {
	From Phase
	To   Phase
	Tick int
}
