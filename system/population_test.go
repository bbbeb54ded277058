package system

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testFrames() *component.FrameSource {
	return component.NewFrameSource(component.StaticFrames{"idle": 4, "run": 8, "death": 4}, quietLogger())
}

func singleFaction(maxCount, low, initial int) PopulationConfig {
	return PopulationConfig{
		Factions: []FactionConfig{{
			Name:         "red",
			Team:         component.TeamRed,
			MaxCount:     maxCount,
			LowWatermark: low,
			InitialCount: initial,
			MinX:         100,
			MaxX:         200,
			SpawnY:       500,
		}},
		SpawnInterval: 2,
		LingerFrames:  300,
		NearbyRadius:  200,
		Actor:         obj.DefaultActorConfig(),
	}
}

func newTestPopulation(cfg PopulationConfig) *Population {
	return NewPopulation(cfg, testFrames(), common.NewRNG(7), quietLogger())
}

func TestSpawnIfNeededHonorsWatermarkAndCap(t *testing.T) {
	p := newTestPopulation(singleFaction(3, 2, 0))

	assert.Equal(t, 1, p.SpawnIfNeeded())
	assert.Equal(t, 1, p.SpawnIfNeeded())
	assert.Equal(t, 0, p.SpawnIfNeeded(), "two alive is not below the watermark")

	for _, a := range p.Actors("red") {
		a.Kill(0)
	}
	assert.Equal(t, 1, p.SpawnIfNeeded())
	assert.Equal(t, 3, p.Len("red"))
	assert.Equal(t, 0, p.SpawnIfNeeded(), "corpses still count against MaxCount")
	assert.Equal(t, 3, p.Len("red"))
}

func TestSpawnAtOverflow(t *testing.T) {
	p := newTestPopulation(singleFaction(1, 0, 0))

	a, err := p.SpawnAt("red", 10, 20)
	require.NoError(t, err)
	assert.Equal(t, cp.Vector{X: 10, Y: 20}, a.Pos)

	_, err = p.SpawnAt("red", 10, 20)
	assert.True(t, errors.Is(err, ErrPopulationOverflow))
	assert.Equal(t, 1, p.Len("red"))

	_, err = p.SpawnAt("green", 0, 0)
	assert.Error(t, err)
}

func TestSeedSpawnsInsideZone(t *testing.T) {
	p := newTestPopulation(singleFaction(15, 10, 10))
	p.Seed()

	require.Equal(t, 10, p.Len("red"))
	for _, a := range p.Actors("red") {
		assert.GreaterOrEqual(t, a.Pos.X, 100.0)
		assert.Less(t, a.Pos.X, 200.0)
		assert.Equal(t, 500.0, a.Pos.Y)
	}
}

func TestCullAfterLinger(t *testing.T) {
	p := newTestPopulation(singleFaction(5, 0, 0))
	dead, _ := p.SpawnAt("red", 0, 0)
	fresh, _ := p.SpawnAt("red", 50, 0)
	_, _ = p.SpawnAt("red", 100, 0)

	dead.Kill(0)
	dead.DeathTimer = 299
	fresh.Kill(0)
	assert.Equal(t, 0, p.Cull())

	dead.DeathTimer = 300
	assert.Equal(t, 1, p.Cull())
	assert.Equal(t, 2, p.Len("red"))
	assert.Equal(t, fresh, p.Actors("red")[0])
}

func TestNearbySplitsByTeam(t *testing.T) {
	cfg := DefaultBattlefieldConfig()
	for i := range cfg.Factions {
		cfg.Factions[i].InitialCount = 0
	}
	p := newTestPopulation(cfg)
	r1, _ := p.SpawnAt("red", 0, 0)
	b1, _ := p.SpawnAt("blue", 100, 0)
	b2, _ := p.SpawnAt("blue", 150, 0)
	_, _ = p.SpawnAt("blue", 1000, 0)
	b2.Kill(0)

	hostiles, allies := p.Nearby(r1.Center(), 200, component.TeamRed)

	assert.Equal(t, []component.Combatant{b1}, hostiles)
	assert.Equal(t, []component.Combatant{r1}, allies)
}

func TestStatsCountSpawnsAndDeaths(t *testing.T) {
	p := newTestPopulation(singleFaction(5, 0, 0))
	var deaths int
	p.Emitter = &component.CombatEventEmitter{Handlers: []component.CombatEventHandler{
		func(e component.CombatEvent) {
			if e.Type == component.EventDeath {
				deaths++
			}
		},
	}}
	a, _ := p.SpawnAt("red", 0, 0)
	_, _ = p.SpawnAt("red", 60, 0)
	a.Kill(3)

	stats := p.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, FactionStats{Name: "red", Total: 2, Alive: 1, Spawned: 2, Killed: 1}, stats[0])
	assert.Equal(t, 1, deaths)
}

func TestUpdateSpawnsOnInterval(t *testing.T) {
	p := newTestPopulation(singleFaction(5, 3, 0))

	p.Update(1, nil)
	assert.Equal(t, 0, p.Len("red"))
	p.Update(1, nil)
	assert.Equal(t, 1, p.Len("red"))
}

func TestRemoveFrontAndRender(t *testing.T) {
	p := newTestPopulation(singleFaction(5, 0, 0))
	first, _ := p.SpawnAt("red", 0, 0)
	second, _ := p.SpawnAt("red", 60, 0)

	assert.Len(t, p.ActorsForRender(), 2)
	list := p.FactionList("red")
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, 1, list.RemoveFront(1))
	assert.Equal(t, []*obj.Actor{second}, p.Actors("red"))
	assert.NotEqual(t, first.ID(), p.ActorsForRender()[0].ID)
	assert.Equal(t, 1, list.RemoveFront(10))
	assert.Empty(t, p.ActorsForRender())
}
