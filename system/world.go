package system

import (
	"fmt"
	"log"

	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
)

// WorldConfig describes the battlefield map and what lives on it.
type WorldConfig struct {
	Width    float64
	Height   float64
	Surfaces []common.Rect

	Battlefield PopulationConfig
	Volley      VolleyConfig
	// ArrowDamage is what a volley arrow costs the player.
	ArrowDamage int
	// Picker chooses idle behaviors for battlefield actors. Nil is uniform.
	Picker obj.BehaviorPicker
}

// DefaultWorldConfig is a flat 100x20 tile map with the ground at y=600.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Width:       common.TileX(100),
		Height:      common.TileX(20),
		Surfaces:    []common.Rect{{X: 0, Y: 600, Width: common.TileX(100), Height: 200}},
		Battlefield: DefaultBattlefieldConfig(),
		Volley:      DefaultVolleyConfig(),
		ArrowDamage: 1,
	}
}

// World owns the collision surfaces, the background battle and the archer.
type World struct {
	Collision   *obj.CollisionWorld
	Battlefield *Population
	Volley      *Volley
	Resolver    *component.CombatResolver

	cfg    WorldConfig
	logger *log.Logger
	// PlayerHits counts volley arrows that struck the player.
	PlayerHits int
}

// NewWorld builds the world and seeds the battlefield.
func NewWorld(cfg WorldConfig, frames *component.FrameSource, rng common.RNG, logger *log.Logger) (*World, error) {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("world: new %vx%v: %w", cfg.Width, cfg.Height, obj.ErrDegenerateGeometry)
	}
	cw := obj.NewCollisionWorld(cfg.Surfaces)
	if len(cw.Rects()) == 0 {
		logger.Printf("world: no usable surfaces, actors will fall through")
	}
	w := &World{
		Collision:   cw,
		Battlefield: NewPopulation(cfg.Battlefield, frames, rng, logger),
		Volley:      NewVolley(cfg.Volley, rng),
		Resolver:    component.NewCombatResolver(),
		cfg:         cfg,
		logger:      logger,
	}
	w.Battlefield.Picker = cfg.Picker
	w.Battlefield.Seed()
	return w, nil
}

// Size returns the map dimensions in pixels.
func (w *World) Size() (float64, float64) {
	if w == nil {
		return 0, 0
	}
	return w.cfg.Width, w.cfg.Height
}

// Update advances the battle and the archer. Volley arrows that reach the
// player cost it ArrowDamage.
func (w *World) Update(dt float64, player *obj.Player) {
	if w == nil {
		return
	}
	w.Battlefield.Update(dt, w.Collision)
	if player == nil {
		w.Volley.Arrows.Update(dt, w.Collision, w.cfg.Volley.BottomY, nil)
		return
	}
	w.Volley.Update(dt, player.Bounds().Center(), w.Collision)
	w.PlayerHits += ResolveArrowHits(w.Resolver, &w.Volley.Arrows, []component.Hurtbox{player}, func(_ *obj.Arrow, _ component.Hurtbox) bool {
		return player.TakeArrow(w.cfg.ArrowDamage)
	})
}

// HaltVolley stops the archer for good.
func (w *World) HaltVolley() {
	if w == nil {
		return
	}
	w.Volley.Halt()
}
