package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
)

// ErrPopulationOverflow reports a spawn into a faction already at MaxCount.
var ErrPopulationOverflow = errors.New("population overflow")

// FactionConfig describes one side of a population.
type FactionConfig struct {
	Name         string
	Team         component.Team
	MaxCount     int
	LowWatermark int
	InitialCount int
	MinX         float64
	MaxX         float64
	SpawnY       float64
	// Actor replaces PopulationConfig.Actor for this faction when set.
	Actor *obj.ActorConfig
}

// PopulationConfig holds the spawn and cleanup policy shared by all factions.
type PopulationConfig struct {
	Factions      []FactionConfig
	SpawnInterval int
	// LingerFrames is how long a corpse stays before Cull removes it.
	LingerFrames int
	NearbyRadius float64
	Actor        obj.ActorConfig
}

// DefaultBattlefieldConfig mirrors prefabs/battlefield.yaml: red and blue
// fighting between tiles 70 and 100.
func DefaultBattlefieldConfig() PopulationConfig {
	zone := func(name string, team component.Team) FactionConfig {
		return FactionConfig{
			Name:         name,
			Team:         team,
			MaxCount:     15,
			LowWatermark: 10,
			InitialCount: 10,
			MinX:         common.TileX(70),
			MaxX:         common.TileX(100),
			SpawnY:       500,
		}
	}
	return PopulationConfig{
		Factions:      []FactionConfig{zone("red", component.TeamRed), zone("blue", component.TeamBlue)},
		SpawnInterval: 180,
		LingerFrames:  300,
		NearbyRadius:  200,
		Actor:         obj.DefaultActorConfig(),
	}
}

// FactionStats is a snapshot of one faction's counters.
type FactionStats struct {
	Name    string
	Total   int
	Alive   int
	Spawned int
	Killed  int
}

type faction struct {
	cfg     FactionConfig
	actors  []*obj.Actor
	spawned int
	killed  int
}

// Population owns bounded lists of actors grouped by faction.
type Population struct {
	// Emitter receives every combat event raised by the population's actors.
	Emitter *component.CombatEventEmitter
	// Picker, when set, is handed to each new actor.
	Picker obj.BehaviorPicker

	cfg        PopulationConfig
	frames     *component.FrameSource
	rng        common.RNG
	logger     *log.Logger
	factions   []*faction
	spawnTimer int
	overflowed map[string]bool
}

// NewPopulation creates an empty population. Call Seed for the initial wave.
func NewPopulation(cfg PopulationConfig, frames *component.FrameSource, rng common.RNG, logger *log.Logger) *Population {
	if logger == nil {
		logger = log.Default()
	}
	p := &Population{
		cfg:        cfg,
		frames:     frames,
		rng:        rng,
		logger:     logger,
		overflowed: make(map[string]bool),
	}
	for _, fc := range cfg.Factions {
		p.factions = append(p.factions, &faction{cfg: fc})
	}
	return p
}

func (p *Population) faction(name string) *faction {
	if p == nil {
		return nil
	}
	for _, f := range p.factions {
		if f.cfg.Name == name {
			return f
		}
	}
	return nil
}

// Seed spawns each faction's initial count.
func (p *Population) Seed() {
	if p == nil {
		return
	}
	for _, f := range p.factions {
		for i := 0; i < f.cfg.InitialCount && len(f.actors) < f.cfg.MaxCount; i++ {
			p.spawnRandom(f)
		}
	}
}

// SpawnIfNeeded adds one actor to every faction that is under its low
// watermark and still below MaxCount. Returns the number spawned.
func (p *Population) SpawnIfNeeded() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, f := range p.factions {
		if len(f.actors) >= f.cfg.MaxCount || f.alive() >= f.cfg.LowWatermark {
			continue
		}
		p.spawnRandom(f)
		n++
	}
	return n
}

// SpawnAt places a new actor of the named faction at (x, y).
func (p *Population) SpawnAt(name string, x, y float64) (*obj.Actor, error) {
	f := p.faction(name)
	if f == nil {
		return nil, fmt.Errorf("population: spawn %s: unknown faction", name)
	}
	if len(f.actors) >= f.cfg.MaxCount {
		if !p.overflowed[name] {
			p.overflowed[name] = true
			p.logger.Printf("population: faction %s full at %d", name, f.cfg.MaxCount)
		}
		return nil, fmt.Errorf("population: spawn %s: %w", name, ErrPopulationOverflow)
	}
	return p.spawn(f, x, y), nil
}

// Cull removes corpses older than the linger duration.
func (p *Population) Cull() int {
	if p == nil {
		return 0
	}
	removed := 0
	for _, f := range p.factions {
		kept := f.actors[:0]
		for _, a := range f.actors {
			if a.IsDead() && a.DeathTimer >= p.cfg.LingerFrames {
				removed++
				continue
			}
			kept = append(kept, a)
		}
		clear(f.actors[len(kept):])
		f.actors = kept
	}
	return removed
}

// Nearby returns living actors within radius of pos, split by whether they
// oppose team.
func (p *Population) Nearby(pos cp.Vector, radius float64, team component.Team) (hostiles, allies []component.Combatant) {
	if p == nil {
		return nil, nil
	}
	for _, f := range p.factions {
		for _, a := range f.actors {
			if a.IsDead() {
				continue
			}
			if a.Center().Distance(pos) > radius {
				continue
			}
			if team.Opposes(a.Team()) {
				hostiles = append(hostiles, a)
			} else {
				allies = append(allies, a)
			}
		}
	}
	return hostiles, allies
}

// Update runs one tick: corpse cleanup, the spawn timer and every actor's AI.
func (p *Population) Update(dt float64, surfaces obj.Surfaces) {
	if p == nil {
		return
	}
	p.Cull()
	p.spawnTimer++
	if p.cfg.SpawnInterval > 0 && p.spawnTimer >= p.cfg.SpawnInterval {
		p.spawnTimer = 0
		p.SpawnIfNeeded()
	}
	for _, f := range p.factions {
		for _, a := range f.actors {
			if a.IsDead() || a.Directed() {
				a.Update(dt, surfaces, nil, nil)
				continue
			}
			hostiles, allies := p.Nearby(a.Center(), p.cfg.NearbyRadius, a.Team())
			a.Update(dt, surfaces, hostiles, allies)
		}
	}
}

// Actors returns the named faction's actors in spawn order.
func (p *Population) Actors(name string) []*obj.Actor {
	if f := p.faction(name); f != nil {
		return f.actors
	}
	return nil
}

// Len returns the named faction's size, corpses included.
func (p *Population) Len(name string) int {
	return len(p.Actors(name))
}

// Alive returns the named faction's living count.
func (p *Population) Alive(name string) int {
	if f := p.faction(name); f != nil {
		return f.alive()
	}
	return 0
}

// RemoveFront drops up to n of the named faction's oldest actors.
func (p *Population) RemoveFront(name string, n int) int {
	f := p.faction(name)
	if f == nil || n <= 0 {
		return 0
	}
	if n > len(f.actors) {
		n = len(f.actors)
	}
	clear(f.actors[:n])
	f.actors = f.actors[n:]
	return n
}

// Clear removes every actor and restarts the spawn timer.
func (p *Population) Clear() {
	if p == nil {
		return
	}
	for _, f := range p.factions {
		f.actors = nil
	}
	p.spawnTimer = 0
}

// ActorsForRender returns a render view of every actor, faction by faction.
func (p *Population) ActorsForRender() []obj.RenderInfo {
	if p == nil {
		return nil
	}
	var out []obj.RenderInfo
	for _, f := range p.factions {
		for _, a := range f.actors {
			out = append(out, a.RenderInfo())
		}
	}
	return out
}

// Stats returns per-faction counters in configuration order.
func (p *Population) Stats() []FactionStats {
	if p == nil {
		return nil
	}
	out := make([]FactionStats, 0, len(p.factions))
	for _, f := range p.factions {
		out = append(out, FactionStats{
			Name:    f.cfg.Name,
			Total:   len(f.actors),
			Alive:   f.alive(),
			Spawned: f.spawned,
			Killed:  f.killed,
		})
	}
	return out
}

// FactionList adapts one faction to the depopulator.
func (p *Population) FactionList(name string) Trimmable {
	return factionList{pop: p, name: name}
}

type factionList struct {
	pop  *Population
	name string
}

func (l factionList) Len() int               { return l.pop.Len(l.name) }
func (l factionList) RemoveFront(n int) int { return l.pop.RemoveFront(l.name, n) }

func (f *faction) alive() int {
	n := 0
	for _, a := range f.actors {
		if !a.IsDead() {
			n++
		}
	}
	return n
}
