package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
	"github.com/stretchr/testify/assert"
)

func quietVolley() VolleyConfig {
	cfg := DefaultVolleyConfig()
	cfg.DelayMin, cfg.DelayMax = 5, 5
	cfg.Cooldown = 0
	cfg.CurtainMin, cfg.CurtainMax = 100000, 100000
	return cfg
}

func TestVolleyFiresWhileTargetRightOfLine(t *testing.T) {
	v := NewVolley(quietVolley(), common.NewRNG(3))
	fired := 0
	v.OnFire = func(*obj.Arrow) { fired++ }
	target := cp.Vector{X: common.TileX(80), Y: 560}

	for i := 0; i < 4; i++ {
		v.Update(1, target, nil)
	}
	assert.Equal(t, 0, fired)
	v.Update(1, target, nil)
	assert.Equal(t, 1, fired)
	assert.Equal(t, "normal", v.Arrows.Arrows[0].Kind)
}

func TestVolleyHoldsFireLeftOfLine(t *testing.T) {
	v := NewVolley(quietVolley(), common.NewRNG(3))
	fired := 0
	v.OnFire = func(*obj.Arrow) { fired++ }

	for i := 0; i < 100; i++ {
		v.Update(1, cp.Vector{X: common.TileX(60), Y: 560}, nil)
	}
	assert.Equal(t, 0, fired)
}

func TestVolleyCurtainSweepsRight(t *testing.T) {
	cfg := quietVolley()
	cfg.DelayMin, cfg.DelayMax = 1, 1
	cfg.CurtainMin, cfg.CurtainMax = 1, 1
	v := NewVolley(cfg, common.NewRNG(5))

	var curtain []*obj.Arrow
	v.OnFire = func(a *obj.Arrow) {
		if a.Kind == "curtain" {
			curtain = append(curtain, a)
		}
	}
	target := cp.Vector{X: common.TileX(90), Y: 560}

	v.Update(1, target, nil)
	assert.True(t, v.CurtainActive())
	for i := 0; i < 7*cfg.CurtainSpacing; i++ {
		v.Update(1, target, nil)
	}

	assert.Len(t, curtain, cfg.CurtainCount)
	assert.False(t, v.CurtainActive())
}

func TestVolleyHalt(t *testing.T) {
	v := NewVolley(quietVolley(), common.NewRNG(3))
	fired := 0
	v.OnFire = func(*obj.Arrow) { fired++ }
	v.Halt()

	for i := 0; i < 50; i++ {
		v.Update(1, cp.Vector{X: common.TileX(80), Y: 560}, nil)
	}
	assert.Equal(t, 0, fired)
	assert.True(t, v.Halted())
}
