package main

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/milk9111/princeguard/scene"
	"github.com/milk9111/princeguard/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	assert.Equal(t, "n/a", describe(nil))
	assert.Equal(t, "min=1 median=5 max=9", describe([]int{9, 1, 5}))
}

func TestSummarize(t *testing.T) {
	reports := []scene.Report{
		{
			Complete:         true,
			Ticks:            3000,
			DefendersSpawned: 4,
			Transitions:      []sequence.Transition{{From: sequence.PhaseWaiting, To: sequence.PhaseCinematicSlowdown, Tick: 700}},
		},
		{
			Ticks:            500,
			DefendersSpawned: 1,
			Respawns:         2,
		},
	}

	agg := summarize(reports)
	assert.Equal(t, 2, agg.runs)
	assert.Equal(t, 1, agg.completed)
	assert.Equal(t, []int{3000}, agg.ticks)
	assert.Equal(t, 5, agg.defenders)
	assert.Equal(t, 2, agg.respawns)
	assert.Equal(t, []int{700}, agg.phaseTicks[sequence.PhaseCinematicSlowdown])

	var buf bytes.Buffer
	printAggregate(&buf, agg)
	assert.Contains(t, buf.String(), "completed=1/2")
	assert.Contains(t, buf.String(), "cinematic_slowdown")
}

func TestRunOnceReachesDone(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.World.Volley.ActiveAfterX = cfg.World.Width * 2

	r, err := runOnce(cfg, 11, options{maxTicks: 20000, spawnEvery: 20}, log.New(&bytes.Buffer{}, "", 0))
	require.NoError(t, err)
	assert.True(t, r.Complete)
	assert.Equal(t, sequence.PhaseDone, r.Phase)
	assert.True(t, strings.Contains(r.PhaseLog(), "dezoom_reveal_enemies -> done"))
}
