package component

import (
	"testing"

	"github.com/milk9111/princeguard/common"
	"github.com/stretchr/testify/assert"
)

type testProjectile struct {
	id    int
	rect  common.Rect
	armed bool
}

func (p *testProjectile) ProjectileID() int   { return p.id }
func (p *testProjectile) Bounds() common.Rect { return p.rect }
func (p *testProjectile) Armed() bool         { return p.armed }

type testHurtbox struct {
	id    int
	rect  common.Rect
	alive bool
}

func (h *testHurtbox) HurtboxID() int      { return h.id }
func (h *testHurtbox) Bounds() common.Rect { return h.rect }
func (h *testHurtbox) CanBeHit() bool      { return h.alive }

func TestResolvePrefersEarlierTargets(t *testing.T) {
	arrow := &testProjectile{id: 1, rect: common.Rect{X: 10, Y: 10, Width: 25, Height: 2}, armed: true}
	defender := &testHurtbox{id: 2, rect: common.Rect{X: 0, Y: 0, Width: 48, Height: 64}, alive: true}
	prince := &testHurtbox{id: 3, rect: common.Rect{X: 5, Y: 0, Width: 48, Height: 64}, alive: true}

	var events []CombatEvent
	r := NewCombatResolver()
	r.Emitter = &CombatEventEmitter{Handlers: []CombatEventHandler{func(e CombatEvent) { events = append(events, e) }}}

	contacts := r.Resolve([]Projectile{arrow}, []Hurtbox{defender, prince}, nil)

	if assert.Len(t, contacts, 1) {
		assert.Equal(t, 0, contacts[0].Index)
	}
	if assert.Len(t, events, 1) {
		assert.Equal(t, 2, events[0].TargetID)
	}
}

func TestResolveRejectedContactFallsThrough(t *testing.T) {
	arrow := &testProjectile{id: 1, rect: common.Rect{X: 10, Y: 10, Width: 25, Height: 2}, armed: true}
	first := &testHurtbox{id: 2, rect: common.Rect{Width: 48, Height: 64}, alive: true}
	second := &testHurtbox{id: 3, rect: common.Rect{Width: 48, Height: 64}, alive: true}

	contacts := NewCombatResolver().Resolve([]Projectile{arrow}, []Hurtbox{first, second}, func(c Contact) bool {
		return c.Target.HurtboxID() == 3
	})

	if assert.Len(t, contacts, 1) {
		assert.Equal(t, 3, contacts[0].Target.HurtboxID())
	}
}

func TestResolveSkipsDisarmedAndUnhittable(t *testing.T) {
	stuck := &testProjectile{id: 1, rect: common.Rect{Width: 25, Height: 2}}
	flying := &testProjectile{id: 2, rect: common.Rect{Width: 25, Height: 2}, armed: true}
	dead := &testHurtbox{id: 3, rect: common.Rect{Width: 48, Height: 64}}

	contacts := NewCombatResolver().Resolve([]Projectile{stuck, flying}, []Hurtbox{dead}, nil)
	assert.Empty(t, contacts)
}
