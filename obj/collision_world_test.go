package obj

import (
	"testing"

	"github.com/milk9111/princeguard/common"
	"github.com/stretchr/testify/assert"
)

func TestCollisionWorldQuery(t *testing.T) {
	ground := common.Rect{X: 0, Y: 600, Width: 4000, Height: 200}
	ledge := common.Rect{X: 1000, Y: 500, Width: 200, Height: 40}
	cw := NewCollisionWorld([]common.Rect{ground, ledge})

	hits := cw.Query(common.Rect{X: 1100, Y: 450, Width: 10, Height: 200})
	assert.Equal(t, []common.Rect{ledge, ground}, hits, "highest surface first")

	assert.Empty(t, cw.Query(common.Rect{X: 10, Y: 580, Width: 10, Height: 20}), "touching is not overlapping")
	assert.Len(t, cw.Query(common.Rect{X: 10, Y: 581, Width: 10, Height: 20}), 1)
}

func TestCollisionWorldGroundAt(t *testing.T) {
	cw := NewCollisionWorld([]common.Rect{
		{X: 0, Y: 600, Width: 4000, Height: 200},
		{X: 1000, Y: 500, Width: 200, Height: 40},
		{Width: 0, Height: 10},
	})

	y, ok := cw.GroundAt(1100)
	assert.True(t, ok)
	assert.Equal(t, 500.0, y)

	_, ok = cw.GroundAt(5000)
	assert.False(t, ok)
	assert.Len(t, cw.Rects(), 2, "degenerate rectangles are skipped")
}

func TestNilCollisionWorld(t *testing.T) {
	var cw *CollisionWorld
	assert.Nil(t, cw.Query(common.Rect{Width: 1, Height: 1}))
}
