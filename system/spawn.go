package system

import (
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
)

func (p *Population) spawnRandom(f *faction) *obj.Actor {
	x := common.RandFloat(p.rng, f.cfg.MinX, f.cfg.MaxX)
	return p.spawn(f, x, f.cfg.SpawnY)
}

func (p *Population) spawn(f *faction, x, y float64) *obj.Actor {
	cfg := p.cfg.Actor
	if f.cfg.Actor != nil {
		cfg = *f.cfg.Actor
	}
	a := obj.NewActor(f.cfg.Team, x, y, cfg, p.frames, p.rng)
	if p.Picker != nil {
		a.SetPicker(p.Picker)
	}
	a.Emitter = p.actorEmitter(f)
	f.actors = append(f.actors, a)
	f.spawned++
	return a
}

// actorEmitter counts deaths for the faction and forwards everything to the
// population's emitter.
func (p *Population) actorEmitter(f *faction) *component.CombatEventEmitter {
	em := component.CombatEventEmitter{}
	em.Handlers = append(em.Handlers, func(evt component.CombatEvent) {
		if evt.Type == component.EventDeath {
			f.killed++
		}
		p.Emitter.Emit(evt)
	})
	return &em
}
