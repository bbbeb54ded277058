package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/milk9111/princeguard/sequence"
	"github.com/milk9111/princeguard/system"
)

// Report summarizes a run.
type Report struct {
	Seed        int64
	Ticks       int
	Phase       sequence.Phase
	Complete    bool
	Transitions []sequence.Transition

	PrinceHealth     int
	PrinceHits       int
	DefendersSpawned int
	ArrowsCaught     int
	HostilesDead     int
	PlayerHits       int
	PlayerDeaths     int
	Respawns         int
	Battlefield      []system.FactionStats
}

// Report snapshots the scene.
func (s *Scene) Report() Report {
	if s == nil {
		return Report{}
	}
	view := s.Sequencer.View()
	r := Report{
		Seed:             s.seed,
		Ticks:            s.tick,
		Phase:            view.Phase,
		Complete:         s.status == sequence.Complete,
		Transitions:      s.Sequencer.History(),
		PrinceHealth:     view.PrinceHealth,
		PrinceHits:       view.PrinceHits,
		DefendersSpawned: view.DefendersSpawned,
		ArrowsCaught:     view.ArrowsCaught,
		PlayerHits:       s.World.PlayerHits,
		PlayerDeaths:     s.deaths,
		Respawns:         s.respawns,
		Battlefield:      s.World.Battlefield.Stats(),
	}
	for _, h := range s.Sequencer.Hostiles() {
		if h.IsDead() {
			r.HostilesDead++
		}
	}
	return r
}

// PhaseLog renders the transitions one per line, oldest first.
func (r Report) PhaseLog() string {
	var b strings.Builder
	for _, t := range r.Transitions {
		fmt.Fprintf(&b, "%6d  %s -> %s\n", t.Tick, t.From, t.To)
	}
	return b.String()
}

// PhaseTick returns the tick phase was entered, or -1.
func (r Report) PhaseTick(p sequence.Phase) int {
	for _, t := range r.Transitions {
		if t.To == p {
			return t.Tick
		}
	}
	return -1
}

// Write prints the report in key=value lines.
func (r Report) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "seed=%d ticks=%d phase=%s complete=%t\n", r.Seed, r.Ticks, r.Phase, r.Complete)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "prince: health=%d hits=%d\n", r.PrinceHealth, r.PrinceHits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "defenders: spawned=%d caught=%d hostiles_dead=%d\n", r.DefendersSpawned, r.ArrowsCaught, r.HostilesDead); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "player: hits=%d deaths=%d respawns=%d\n", r.PlayerHits, r.PlayerDeaths, r.Respawns); err != nil {
		return err
	}
	for _, f := range r.Battlefield {
		if _, err := fmt.Fprintf(w, "faction %s: alive=%d total=%d spawned=%d killed=%d\n", f.Name, f.Alive, f.Total, f.Spawned, f.Killed); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, r.PhaseLog())
	return err
}
