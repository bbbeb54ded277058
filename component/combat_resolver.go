package component

import "github.com/milk9111/princeguard/common"

// Projectile is anything that can strike a Hurtbox.
type Projectile interface {
	ProjectileID() int
	Bounds() common.Rect
	// Armed reports whether the projectile can still hit (flying, not stuck).
	Armed() bool
}

// Hurtbox is anything a projectile can strike.
type Hurtbox interface {
	HurtboxID() int
	Bounds() common.Rect
	// CanBeHit reports whether a contact would be accepted right now.
	CanBeHit() bool
}

// Contact pairs a projectile with the first hurtbox it overlaps.
type Contact struct {
	Projectile Projectile
	Target     Hurtbox
	// Index is the position of Target in the slice passed to Resolve.
	Index int
}

// CombatResolver finds projectile contacts for a frame.
type CombatResolver struct {
	Emitter *CombatEventEmitter

	frame int
	// Recent holds the contacts found by the last Resolve call.
	Recent []Contact
}

// NewCombatResolver creates a resolver instance.
func NewCombatResolver() *CombatResolver {
	return &CombatResolver{}
}

// Tick advances internal frame counters (call once per game frame).
func (r *CombatResolver) Tick() {
	if r == nil {
		return
	}
	r.frame++
}

// Resolve finds, for each armed projectile, the first hurtbox in targets order
// that it overlaps and that can be hit, and hands the contact to apply
// immediately. Target order is the priority order: callers list interceptors
// before the protected entity. When apply returns false the projectile keeps
// looking further down the list. A nil apply accepts every contact.
func (r *CombatResolver) Resolve(projectiles []Projectile, targets []Hurtbox, apply func(Contact) bool) []Contact {
	if r == nil {
		return nil
	}
	r.Recent = nil
	for _, p := range projectiles {
		if p == nil || !p.Armed() {
			continue
		}
		pb := p.Bounds()
		for i, t := range targets {
			if t == nil || !t.CanBeHit() {
				continue
			}
			if !pb.Intersects(t.Bounds()) {
				continue
			}
			c := Contact{Projectile: p, Target: t, Index: i}
			if apply != nil && !apply(c) {
				continue
			}
			r.Recent = append(r.Recent, c)
			r.Emitter.Emit(CombatEvent{
				Type:       EventHit,
				AttackerID: p.ProjectileID(),
				TargetID:   t.HurtboxID(),
				Frame:      r.frame,
				Pos:        t.Bounds().Center(),
			})
			break
		}
	}
	return r.Recent
}
