package system

import (
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
)

// ResolveArrowHits checks every flying arrow against targets in priority
// order. For the first overlapping target apply decides whether the hit
// lands; a landed hit marks the arrow Hit so the next sweep removes it.
// Returns the number of hits.
func ResolveArrowHits(resolver *component.CombatResolver, arrows *ArrowSet, targets []component.Hurtbox, apply func(a *obj.Arrow, target component.Hurtbox) bool) int {
	if resolver == nil || arrows.Len() == 0 || len(targets) == 0 {
		return 0
	}
	resolver.Tick()
	contacts := resolver.Resolve(arrows.Projectiles(), targets, func(c component.Contact) bool {
		a, ok := c.Projectile.(*obj.Arrow)
		if !ok {
			return false
		}
		if apply != nil && !apply(a, c.Target) {
			return false
		}
		return a.MarkHit()
	})
	return len(contacts)
}
