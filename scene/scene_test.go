package scene

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
	"github.com/milk9111/princeguard/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietConfig() Config {
	cfg := DefaultConfig()
	// keep the archer out of the messenger's way
	cfg.World.Volley.ActiveAfterX = cfg.World.Width * 2
	return cfg
}

func newTestScene(t *testing.T, cfg Config) (*Scene, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s, err := New(cfg, Options{Seed: 7, Logger: log.New(&buf, "", 0)})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, &buf
}

func run(s *Scene, pilot *Autopilot, maxTicks int) {
	for i := 0; i < maxTicks; i++ {
		if s.Update(pilot.Next(s.Sequencer.View())) == sequence.Complete {
			return
		}
	}
}

func TestSceneRunsToCompletion(t *testing.T) {
	s, _ := newTestScene(t, quietConfig())

	run(s, NewAutopilot(30), 20000)

	r := s.Report()
	require.True(t, r.Complete, "stopped in %s after %d ticks", r.Phase, r.Ticks)
	assert.Equal(t, sequence.PhaseDone, r.Phase)
	assert.Positive(t, r.DefendersSpawned)
	assert.Equal(t, s.Config().Sequence.Formation.Count, r.HostilesDead)
	assert.GreaterOrEqual(t, r.PrinceHealth, s.Config().Sequence.Prince.HealthFloor)
	assert.True(t, s.Player.RespawnDisabled())

	for _, p := range []sequence.Phase{
		sequence.PhaseCinematicSlowdown,
		sequence.PhaseProtection,
		sequence.PhaseZoomOnTarget,
		sequence.PhaseDezoomRevealEnemies,
	} {
		assert.NotEqual(t, -1, r.PhaseTick(p), p.String())
	}
	assert.Equal(t, 1.0, s.Camera.Zoom())
}

func TestSceneIsDeterministicPerSeed(t *testing.T) {
	a, _ := newTestScene(t, DefaultConfig())
	b, _ := newTestScene(t, DefaultConfig())
	pa, pb := NewAutopilot(25), NewAutopilot(25)

	for i := 0; i < 1500; i++ {
		a.Update(pa.Next(a.Sequencer.View()))
		b.Update(pb.Next(b.Sequencer.View()))
	}
	assert.Equal(t, a.Report(), b.Report())
}

func TestSceneWaitsForPlayer(t *testing.T) {
	s, _ := newTestScene(t, quietConfig())

	for i := 0; i < 120; i++ {
		s.Update(sequence.Keys{})
	}
	assert.Equal(t, sequence.PhaseWaiting, s.Sequencer.Phase())
	assert.Equal(t, s.Config().PlayerStart.X, s.Player.Position().X)
	assert.True(t, s.Camera.Arrived())
}

func TestSceneKeepsPlayerOnMap(t *testing.T) {
	s, _ := newTestScene(t, quietConfig())

	for i := 0; i < 2000; i++ {
		s.Update(sequence.Keys{sequence.KeyRight: true})
	}
	w, _ := s.World.Size()
	assert.Equal(t, w-s.Config().Player.Width, s.Player.Position().X)
}

func TestSceneRespawnsPlayerBeforeCinematic(t *testing.T) {
	s, logs := newTestScene(t, quietConfig())
	start := s.Config().PlayerStart

	s.Player.SetPosition(cp.Vector{X: start.X - common.TileSize, Y: start.Y})
	s.Player.Kill()
	for i := 0; i < 200 && s.Player.Dying(); i++ {
		s.Update(sequence.Keys{})
	}

	assert.False(t, s.Player.Dying())
	assert.Equal(t, start, s.Player.Position())
	assert.Equal(t, 1, s.Report().Respawns)
	assert.Equal(t, 1, s.Report().PlayerDeaths)
	assert.Contains(t, logs.String(), "scene: player died (1)")
	assert.Contains(t, logs.String(), "scene: player respawned")
}

func TestScenePlayerHurtSurvivesRespawn(t *testing.T) {
	s, _ := newTestScene(t, quietConfig())
	start := s.Config().PlayerStart

	require.True(t, s.Player.TakeArrow(1))
	assert.Equal(t, 1, s.hurts)

	s.Player.Kill()
	require.True(t, s.Player.Respawn(start.X, start.Y))
	require.True(t, s.Player.TakeArrow(1))

	assert.Equal(t, 2, s.hurts)
	assert.Equal(t, 1, s.Report().PlayerDeaths)
}

func TestNewRejectsStartOutsideMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlayerStart.X = cfg.World.Width + 1

	_, err := New(cfg, Options{Logger: log.New(&bytes.Buffer{}, "", 0)})
	assert.True(t, errors.Is(err, obj.ErrDegenerateGeometry))
}

func TestReportWrite(t *testing.T) {
	r := Report{
		Seed:        3,
		Ticks:       10,
		Phase:       sequence.PhaseProtection,
		Transitions: []sequence.Transition{{From: sequence.PhaseWaiting, To: sequence.PhaseCinematicSlowdown, Tick: 4}},
	}
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "seed=3 ticks=10 phase=protection complete=false\n"))
	assert.Contains(t, out, "4  waiting -> cinematic_slowdown")
	assert.Contains(t, out, "player: hits=0 deaths=0 respawns=0")
	assert.Equal(t, 4, r.PhaseTick(sequence.PhaseCinematicSlowdown))
	assert.Equal(t, -1, r.PhaseTick(sequence.PhaseDone))
}

func TestAutopilotSpawnEdges(t *testing.T) {
	p := NewAutopilot(3)
	view := sequence.View{Phase: sequence.PhaseProtection}

	var presses int
	for i := 0; i < 9; i++ {
		if p.Next(view).Down(sequence.KeySpace) {
			presses++
		}
	}
	assert.Equal(t, 3, presses)
	assert.True(t, p.Next(sequence.View{Phase: sequence.PhaseWaiting}).Down(sequence.KeyLeft))
}
