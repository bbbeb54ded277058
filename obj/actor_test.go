package obj

import (
	"io"
	"log"
	"math"
	"testing"

	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrames() *component.FrameSource {
	return component.NewFrameSource(component.StaticFrames{
		AnimIdle:    4,
		AnimRun:     8,
		AnimAttack1: 4,
		AnimAttack2: 4,
		AnimHit:     2,
		AnimDeath:   4,
	}, log.New(io.Discard, "", 0))
}

func newTestActor(team component.Team, x, y float64) *Actor {
	return NewActor(team, x, y, DefaultActorConfig(), testFrames(), common.NewRNG(1))
}

func TestActorAttacksHostileInRange(t *testing.T) {
	attacker := newTestActor(component.TeamRed, 100, 100)
	target := newTestActor(component.TeamBlue, 140, 100)

	attacker.Update(1, nil, []component.Combatant{target}, []component.Combatant{attacker})

	assert.Equal(t, ActorAttack, attacker.State)
	assert.Equal(t, 5, target.Health.CurrentHP())
	assert.Equal(t, ActorTakingHit, target.State)
}

func TestActorAttackIsNotInterruptible(t *testing.T) {
	attacker := newTestActor(component.TeamRed, 100, 100)
	target := newTestActor(component.TeamBlue, 140, 100)
	hostiles := []component.Combatant{target}

	attacker.Update(1, nil, hostiles, nil)
	require.Equal(t, ActorAttack, attacker.State)

	for i := 0; i < DefaultActorConfig().AttackFrames-2; i++ {
		attacker.Update(1, nil, hostiles, nil)
		assert.Equal(t, ActorAttack, attacker.State)
	}
	assert.Equal(t, 5, target.Health.CurrentHP(), "one swing, one point of damage")

	attacker.TakeDamage(1)
	assert.Equal(t, ActorAttack, attacker.State)
	assert.Equal(t, 5, attacker.Health.CurrentHP())
}

func TestActorTieBreakKeepsFirstHostile(t *testing.T) {
	attacker := newTestActor(component.TeamRed, 100, 100)
	left := newTestActor(component.TeamBlue, 60, 100)
	right := newTestActor(component.TeamBlue, 140, 100)

	attacker.Update(1, nil, []component.Combatant{right, left}, nil)

	assert.Equal(t, 5, right.Health.CurrentHP())
	assert.Equal(t, 6, left.Health.CurrentHP())
}

func TestActorIgnoresAlliesAsTargets(t *testing.T) {
	a := newTestActor(component.TeamRed, 100, 100)
	friend := newTestActor(component.TeamRed, 140, 100)

	a.Update(1, nil, []component.Combatant{friend}, nil)

	assert.NotEqual(t, ActorAttack, a.State)
	assert.Equal(t, 6, friend.Health.CurrentHP())
}

func TestActorBlockedByAllyDoesNotAdvance(t *testing.T) {
	a := newTestActor(component.TeamRed, 100, 100)
	ally := newTestActor(component.TeamRed, 130, 100)
	target := newTestActor(component.TeamBlue, 160, 100)

	a.Update(1, nil, []component.Combatant{target}, []component.Combatant{a, ally})

	assert.NotEqual(t, ActorAttack, a.State)
	assert.NotEqual(t, ActorChase, a.State)
	assert.Equal(t, 6, target.Health.CurrentHP())
	assert.LessOrEqual(t, a.Vel.X, a.Speed()*DefaultActorConfig().SidestepFactor)
}

func TestActorChasesWithinAggro(t *testing.T) {
	a := newTestActor(component.TeamRed, 100, 100)
	target := newTestActor(component.TeamBlue, 210, 100)

	a.Update(1, nil, []component.Combatant{target}, nil)

	assert.Equal(t, ActorChase, a.State)
	assert.True(t, a.FacingRight)
	assert.Greater(t, a.Pos.X, 100.0)
	assert.Equal(t, AnimRun, a.Clip.Name)
}

func TestActorChaseRetargetsEveryFrame(t *testing.T) {
	a := newTestActor(component.TeamRed, 100, 100)
	target := newTestActor(component.TeamBlue, 210, 100)
	hostiles := []component.Combatant{target}

	a.Update(1, nil, hostiles, nil)
	require.Equal(t, ActorChase, a.State)
	require.True(t, a.FacingRight)

	target.Pos.X = a.Pos.X - 110
	a.Update(1, nil, hostiles, nil)

	assert.Equal(t, ActorChase, a.State)
	assert.False(t, a.FacingRight)
	assert.Less(t, a.Vel.X, 0.0)
}

func TestActorPatrolWalksThroughCooldown(t *testing.T) {
	cfg := DefaultActorConfig()
	ground := NewCollisionWorld([]common.Rect{{X: 0, Y: 600, Width: 4000, Height: 200}})
	a := newTestActor(component.TeamRed, 2000, 600-cfg.Height)
	a.Update(1, ground, nil, nil)
	require.True(t, a.Grounded)

	a.SetPicker(fixedPicker(BehaviorPatrol))
	a.changeBehavior()
	require.Equal(t, ActorPatrol, a.State)

	start := a.Pos.X
	for i := 0; i < cfg.ActionCooldown; i++ {
		a.Update(1, ground, nil, nil)
	}

	walked := math.Abs(a.Pos.X - start)
	assert.Greater(t, walked, a.Speed()*cfg.PatrolFactor*float64(cfg.ActionCooldown)/2)
	assert.Equal(t, AnimRun, a.Clip.Name)
}

func TestActorGuardHoldsStillThroughCooldown(t *testing.T) {
	cfg := DefaultActorConfig()
	ground := NewCollisionWorld([]common.Rect{{X: 0, Y: 600, Width: 4000, Height: 200}})
	a := newTestActor(component.TeamRed, 2000, 600-cfg.Height)
	a.Update(1, ground, nil, nil)

	a.SetPicker(fixedPicker(BehaviorGuard))
	a.changeBehavior()
	start := a.Pos.X
	for i := 0; i < 10; i++ {
		a.Update(1, ground, nil, nil)
	}

	assert.Equal(t, start, a.Pos.X)
}

func TestActorDeathIsIdempotent(t *testing.T) {
	a := newTestActor(component.TeamBlue, 0, 0)
	require.True(t, a.TakeDamage(10))
	require.True(t, a.IsDead())
	hp := a.Health.CurrentHP()

	assert.False(t, a.TakeDamage(1))
	a.Kill(5)
	assert.Equal(t, hp, a.Health.CurrentHP())
	assert.Equal(t, -1, a.DeathEpoch, "a later scripted kill does not rewrite the epoch")
	assert.Equal(t, ActorDead, a.State)
}

func TestActorLethalDamageKills(t *testing.T) {
	a := newTestActor(component.TeamBlue, 0, 0)
	require.True(t, a.TakeDamage(6))

	assert.Equal(t, ActorDead, a.State)
	assert.Equal(t, AnimDeath, a.Clip.Name)

	pos := a.Pos
	for i := 0; i < 20; i++ {
		a.Update(1, nil, nil, nil)
	}
	assert.Equal(t, pos, a.Pos, "dead actors skip physics")
	assert.Equal(t, 20, a.DeathTimer)
	assert.False(t, a.TakeDamage(1))
}

func TestActorHitStunBlocksDamage(t *testing.T) {
	a := newTestActor(component.TeamBlue, 0, 0)
	require.True(t, a.TakeDamage(1))
	assert.False(t, a.TakeDamage(1))
	assert.Equal(t, 5, a.Health.CurrentHP())

	for i := 0; i < DefaultActorConfig().HitFrames; i++ {
		a.Update(1, nil, nil, nil)
	}
	assert.NotEqual(t, ActorTakingHit, a.State)
	assert.True(t, a.TakeDamage(1))
}

func TestActorLandsOnSurface(t *testing.T) {
	ground := NewCollisionWorld([]common.Rect{{X: 0, Y: 600, Width: 4000, Height: 200}})
	a := newTestActor(component.TeamRed, 100, 500)

	for i := 0; i < 100; i++ {
		a.Update(1, ground, nil, nil)
	}

	assert.True(t, a.Grounded)
	assert.Equal(t, 600-DefaultActorConfig().Height, a.Pos.Y)
}

func TestActorStopsUnderCeiling(t *testing.T) {
	ceiling := NewCollisionWorld([]common.Rect{{X: 0, Y: 0, Width: 400, Height: 100}})
	a := newTestActor(component.TeamRed, 100, 102)
	a.Vel.Y = -10

	a.Update(1, ceiling, nil, nil)

	assert.Equal(t, 100.0, a.Pos.Y)
	assert.Equal(t, 0.0, a.Vel.Y)
}

func TestActorDirectiveWalksToTarget(t *testing.T) {
	a := newTestActor(component.TeamBlue, 0, 500)
	a.Direct(Directive{TargetX: 200, Speed: 4})

	for i := 0; i < 10; i++ {
		a.Update(1, nil, nil, nil)
	}
	assert.InDelta(t, 40, a.Pos.X, 1e-9)
	assert.Equal(t, 500.0, a.Pos.Y, "directed actors ignore gravity")
	assert.True(t, a.FacingRight)

	a.Freeze(-100)
	a.Update(1, nil, nil, nil)
	assert.InDelta(t, 40, a.Pos.X, 1e-9)
	assert.False(t, a.FacingRight)
	assert.True(t, a.Frozen())
}

func TestActorDirectiveStopsShort(t *testing.T) {
	a := newTestActor(component.TeamRed, 0, 0)
	a.Direct(Directive{TargetX: 124, Speed: 10, StopDistance: 50})

	for i := 0; i < 30; i++ {
		a.Update(1, nil, nil, nil)
	}
	assert.InDelta(t, 74, a.Center().X, 1e-9)
	assert.Equal(t, AnimIdle, a.Clip.Name)
}

func TestSyncDeathFrameFloorsAndCaps(t *testing.T) {
	a := newTestActor(component.TeamRed, 0, 0)
	a.Kill(100)
	require.Equal(t, 100, a.DeathEpoch)

	a.SyncDeathFrame(117, 8)
	assert.Equal(t, 2, a.Clip.Frame, "17/8 floors to 2")

	a.SyncDeathFrame(1000, 8)
	assert.Equal(t, 3, a.Clip.Frame)
}

func TestActorDeathEmitsEvent(t *testing.T) {
	var deaths []component.CombatEvent
	a := newTestActor(component.TeamRed, 0, 0)
	a.Emitter = &component.CombatEventEmitter{Handlers: []component.CombatEventHandler{
		func(e component.CombatEvent) {
			if e.Type == component.EventDeath {
				deaths = append(deaths, e)
			}
		},
	}}

	a.Kill(42)
	a.Kill(43)

	if assert.Len(t, deaths, 1) {
		assert.Equal(t, 42, deaths[0].Frame)
	}
}

func TestActorRenderInfo(t *testing.T) {
	a := newTestActor(component.TeamBlue, 10, 20)
	info := a.RenderInfo()

	assert.Equal(t, a.ID(), info.ID)
	assert.Equal(t, component.TeamBlue, info.Team)
	assert.Equal(t, common.Rect{X: 10, Y: 20, Width: 48, Height: 64}, info.Bounds)
	assert.Equal(t, AnimIdle, info.Anim)
	assert.False(t, info.Dead)
}
