package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthFloorKeepsOwnerAlive(t *testing.T) {
	h := NewHealth(100)
	h.Floor = 1

	for i := 0; i < 20; i++ {
		h.ApplyDamage(10, CombatEvent{})
	}

	assert.Equal(t, 1, h.CurrentHP())
	assert.True(t, h.IsAlive())
}

func TestHealthIFramesBlockDamage(t *testing.T) {
	h := NewHealth(10)
	assert.True(t, h.ApplyDamage(3, CombatEvent{}))
	h.StartIFrames(2)

	assert.False(t, h.ApplyDamage(3, CombatEvent{}))
	assert.Equal(t, 7, h.CurrentHP())

	h.Tick()
	h.Tick()
	assert.False(t, h.Invulnerable())
	assert.True(t, h.ApplyDamage(3, CombatEvent{}))
	assert.Equal(t, 4, h.CurrentHP())
}

func TestHealthDeathIsFinal(t *testing.T) {
	deaths := 0
	h := NewHealth(2)
	h.OnDeath = func(*Health, CombatEvent) { deaths++ }

	h.ApplyDamage(5, CombatEvent{})
	h.ApplyDamage(5, CombatEvent{})
	h.Kill(CombatEvent{})

	assert.True(t, h.Dead)
	assert.Equal(t, 0, h.CurrentHP())
	assert.Equal(t, 1, deaths)
}

func TestHealthKillIgnoresFloor(t *testing.T) {
	h := NewHealth(5)
	h.Floor = 1
	h.StartIFrames(30)

	h.Kill(CombatEvent{})

	assert.True(t, h.Dead)
	assert.Equal(t, 0, h.IFrames)
}

func TestHealthRatio(t *testing.T) {
	h := NewHealth(100)
	h.ApplyDamage(25, CombatEvent{})
	assert.InDelta(t, 0.75, h.Ratio(), 1e-9)

	var nilHealth *Health
	assert.Zero(t, nilHealth.Ratio())
}
