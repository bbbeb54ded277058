package scene

import "github.com/milk9111/princeguard/sequence"

// Autopilot plays the scene without a keyboard: it walks the messenger to
// the prince and calls a defender every SpawnEvery frames of the protection
// phase.
type Autopilot struct {
	SpawnEvery int
	frame      int
}

func NewAutopilot(spawnEvery int) *Autopilot {
	if spawnEvery < 2 {
		spawnEvery = 2
	}
	return &Autopilot{SpawnEvery: spawnEvery}
}

// Next returns the input for the frame after view.
func (a *Autopilot) Next(view sequence.View) sequence.Keys {
	keys := sequence.Keys{}
	if a == nil {
		return keys
	}
	switch view.Phase {
	case sequence.PhaseWaiting:
		keys[sequence.KeyLeft] = true
		a.frame = 0
	case sequence.PhaseProtection:
		a.frame++
		// one frame down, the rest up, so every press is a new edge
		keys[sequence.KeySpace] = a.frame%a.SpawnEvery == 0
	}
	return keys
}
