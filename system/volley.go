package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
)

// VolleyConfig tunes the archer that harasses the player before the
// protection sequence.
type VolleyConfig struct {
	Origin cp.Vector
	Arrow  obj.ArrowConfig

	DelayMin int
	DelayMax int
	Cooldown int
	JitterX  int
	JitterY  int

	CurtainMin     int
	CurtainMax     int
	CurtainCount   int
	CurtainSpacing int
	CurtainStep    float64
	CurtainOffset  float64
	CurtainJitterY int

	// ActiveAfterX stops normal shots once the target is at or left of it.
	ActiveAfterX float64
	BottomY      float64
}

// DefaultVolleyConfig mirrors the volley block of prefabs/arrow.yaml.
func DefaultVolleyConfig() VolleyConfig {
	return VolleyConfig{
		Origin:         cp.Vector{X: common.TileX(62), Y: -200},
		Arrow:          obj.DefaultArrowConfig(),
		DelayMin:       40,
		DelayMax:       80,
		Cooldown:       30,
		JitterX:        30,
		JitterY:        15,
		CurtainMin:     300,
		CurtainMax:     600,
		CurtainCount:   8,
		CurtainSpacing: 10,
		CurtainStep:    80,
		CurtainOffset:  -300,
		CurtainJitterY: 30,
		ActiveAfterX:   common.TileX(70),
		BottomY:        800,
	}
}

type curtainShot struct {
	at     int
	target cp.Vector
}

// Volley fires aimed arrows at a target with a periodic curtain of arrows
// sweeping across the target's path.
type Volley struct {
	Arrows ArrowSet
	// OnFire runs for every arrow launched.
	OnFire func(a *obj.Arrow)

	cfg VolleyConfig
	rng common.RNG

	spawnTimer   int
	spawnDelay   int
	sinceLast    int
	typeTimer    int
	curtainDelay int
	nextCurtain  bool

	curtain      []curtainShot
	curtainTimer int
	halted       bool
}

// NewVolley creates an archer with freshly rolled timers.
func NewVolley(cfg VolleyConfig, rng common.RNG) *Volley {
	return &Volley{
		cfg:          cfg,
		rng:          rng,
		spawnDelay:   common.RandInt(rng, cfg.DelayMin, cfg.DelayMax),
		curtainDelay: common.RandInt(rng, cfg.CurtainMin, cfg.CurtainMax),
		sinceLast:    cfg.Cooldown,
	}
}

// Update advances the archer's timers, fires at target when due and moves
// the arrows already in flight.
func (v *Volley) Update(dt float64, target cp.Vector, surfaces obj.Surfaces) {
	if v == nil {
		return
	}
	if !v.halted {
		v.schedule(target)
	}
	v.Arrows.Update(dt, surfaces, v.cfg.BottomY, nil)
}

func (v *Volley) schedule(target cp.Vector) {
	v.sinceLast++

	v.typeTimer++
	if v.typeTimer >= v.curtainDelay && !v.CurtainActive() {
		v.nextCurtain = true
		v.typeTimer = 0
		v.curtainDelay = common.RandInt(v.rng, v.cfg.CurtainMin, v.cfg.CurtainMax)
	}

	if v.CurtainActive() {
		v.curtainTimer++
		pending := v.curtain[:0]
		for _, s := range v.curtain {
			if v.curtainTimer >= s.at {
				v.fire(s.target, "curtain")
				continue
			}
			pending = append(pending, s)
		}
		v.curtain = pending
		if len(v.curtain) == 0 {
			v.curtain = nil
			v.curtainTimer = 0
		}
		return
	}

	if target.X <= v.cfg.ActiveAfterX {
		return
	}
	v.spawnTimer++
	if v.spawnTimer < v.spawnDelay {
		return
	}
	if v.nextCurtain {
		v.prepareCurtain(target)
		v.nextCurtain = false
		v.spawnTimer = 0
		return
	}
	if v.sinceLast < v.cfg.Cooldown {
		return
	}
	aim := cp.Vector{
		X: target.X + float64(common.RandInt(v.rng, -v.cfg.JitterX, v.cfg.JitterX)),
		Y: target.Y + float64(common.RandInt(v.rng, -v.cfg.JitterY, v.cfg.JitterY)),
	}
	v.fire(aim, "normal")
	v.sinceLast = 0
	v.spawnTimer = 0
	v.spawnDelay = common.RandInt(v.rng, v.cfg.DelayMin, v.cfg.DelayMax)
}

func (v *Volley) prepareCurtain(target cp.Vector) {
	start := target.X + v.cfg.CurtainOffset
	v.curtain = make([]curtainShot, 0, v.cfg.CurtainCount)
	v.curtainTimer = 0
	for i := 0; i < v.cfg.CurtainCount; i++ {
		v.curtain = append(v.curtain, curtainShot{
			at: i * v.cfg.CurtainSpacing,
			target: cp.Vector{
				X: start + float64(i)*v.cfg.CurtainStep,
				Y: target.Y + float64(common.RandInt(v.rng, -v.cfg.CurtainJitterY, v.cfg.CurtainJitterY)),
			},
		})
	}
}

func (v *Volley) fire(aim cp.Vector, kind string) {
	a := obj.NewArrowFromConfig(v.cfg.Arrow, v.cfg.Origin, aim)
	a.Kind = kind
	v.Arrows.Add(a)
	if v.OnFire != nil {
		v.OnFire(a)
	}
}

// CurtainActive reports whether curtain arrows are still queued.
func (v *Volley) CurtainActive() bool {
	return v != nil && len(v.curtain) > 0
}

// Halt stops new shots. Arrows in flight keep moving.
func (v *Volley) Halt() {
	if v == nil {
		return
	}
	v.halted = true
	v.curtain = nil
	v.nextCurtain = false
}

func (v *Volley) Halted() bool { return v != nil && v.halted }
