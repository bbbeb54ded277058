package system

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorldSeedsBattlefield(t *testing.T) {
	w, err := NewWorld(DefaultWorldConfig(), testFrames(), common.NewRNG(1), quietLogger())
	require.NoError(t, err)

	assert.Equal(t, 10, w.Battlefield.Alive("red"))
	assert.Equal(t, 10, w.Battlefield.Alive("blue"))
	width, height := w.Size()
	assert.Equal(t, 4000.0, width)
	assert.Equal(t, 800.0, height)

	for i := 0; i < 120; i++ {
		w.Update(1, nil)
	}
	for _, a := range w.Battlefield.Actors("red") {
		if !a.IsDead() && !a.Directed() {
			assert.LessOrEqual(t, a.Pos.Y, 600-obj.DefaultActorConfig().Height+1)
		}
	}
}

func TestNewWorldRejectsEmptyMap(t *testing.T) {
	cfg := DefaultWorldConfig()
	cfg.Width = 0
	_, err := NewWorld(cfg, testFrames(), common.NewRNG(1), quietLogger())
	assert.True(t, errors.Is(err, obj.ErrDegenerateGeometry))
}

func TestResolveArrowHitsPriority(t *testing.T) {
	resolver := component.NewCombatResolver()
	defender := obj.NewActor(component.TeamBlue, 100, 500, obj.DefaultActorConfig(), testFrames(), common.NewRNG(1))
	prince := obj.NewPlayer(100, 500, obj.DefaultPlayerConfig(), testFrames())

	set := &ArrowSet{}
	arrow := obj.NewArrow(cp.Vector{X: 110, Y: 520}, cp.Vector{X: 200, Y: 520}, 1, 0)
	set.Add(arrow)

	var struck []int
	hits := ResolveArrowHits(resolver, set, []component.Hurtbox{defender, prince}, func(_ *obj.Arrow, target component.Hurtbox) bool {
		struck = append(struck, target.HurtboxID())
		return true
	})

	assert.Equal(t, 1, hits)
	assert.Equal(t, []int{defender.ID()}, struck)
	assert.Equal(t, obj.ArrowHit, arrow.State)

	set.Sweep(func(a *obj.Arrow) bool { return a.Expired(800) })
	assert.Equal(t, 0, set.Len())
}

func TestResolveArrowHitsFallsThroughRefusedTarget(t *testing.T) {
	resolver := component.NewCombatResolver()
	defender := obj.NewActor(component.TeamBlue, 100, 500, obj.DefaultActorConfig(), testFrames(), common.NewRNG(1))
	prince := obj.NewPlayer(100, 500, obj.DefaultPlayerConfig(), testFrames())

	set := &ArrowSet{}
	set.Add(obj.NewArrow(cp.Vector{X: 110, Y: 520}, cp.Vector{X: 200, Y: 520}, 1, 0))

	hits := ResolveArrowHits(resolver, set, []component.Hurtbox{defender, prince}, func(_ *obj.Arrow, target component.Hurtbox) bool {
		if target.HurtboxID() == defender.ID() {
			return false
		}
		return prince.TakeArrow(1)
	})

	assert.Equal(t, 1, hits)
	assert.Equal(t, 4, prince.Health.CurrentHP())
	assert.Equal(t, 6, defender.Health.CurrentHP())
}

func TestArrowSetUpdateSticksAndSweeps(t *testing.T) {
	ground := obj.NewCollisionWorld([]common.Rect{{X: 0, Y: 600, Width: 1000, Height: 200}})
	set := &ArrowSet{}
	falling := obj.NewArrow(cp.Vector{X: 100, Y: 596}, cp.Vector{X: 100, Y: 700}, 5, 0)
	falling.LingerFrames = 2
	set.Add(falling)

	set.Update(1, ground, 800, nil)
	assert.Equal(t, obj.ArrowStuck, falling.State)

	for i := 0; i < 3; i++ {
		set.Update(1, ground, 800, nil)
	}
	assert.Equal(t, 0, set.Len())
}
