package obj

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
)

const collisionTypeSolid cp.CollisionType = 1

// Surfaces is the read-only ground/platform geometry the simulation collides
// against.
type Surfaces interface {
	Query(r common.Rect) []common.Rect
}

// CollisionWorld indexes static ground rectangles in a chipmunk space and
// answers overlap queries through its spatial index.
type CollisionWorld struct {
	space *cp.Space
	rects []common.Rect
}

// NewCollisionWorld builds static shapes for each rectangle.
func NewCollisionWorld(rects []common.Rect) *CollisionWorld {
	cw := &CollisionWorld{space: cp.NewSpace()}
	for _, r := range rects {
		cw.Add(r)
	}
	return cw
}

// Add inserts another static rectangle. Degenerate rectangles are skipped.
func (cw *CollisionWorld) Add(r common.Rect) {
	if cw == nil || r.Width <= 0 || r.Height <= 0 {
		return
	}
	shape := cp.NewBox2(cw.space.StaticBody, r.BB(), 0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.UserData = len(cw.rects)
	cw.space.AddShape(shape)
	cw.rects = append(cw.rects, r)
}

// Query returns every rectangle overlapping r with positive area, sorted by
// top edge so the highest surface comes first.
func (cw *CollisionWorld) Query(r common.Rect) []common.Rect {
	if cw == nil || len(cw.rects) == 0 {
		return nil
	}
	var out []common.Rect
	cw.space.BBQuery(r.BB(), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		idx, ok := shape.UserData.(int)
		if !ok || idx < 0 || idx >= len(cw.rects) {
			return
		}
		if cand := cw.rects[idx]; cand.Intersects(r) {
			out = append(out, cand)
		}
	}, nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y < out[j].Y })
	return out
}

// Rects returns the static rectangles in insertion order.
func (cw *CollisionWorld) Rects() []common.Rect {
	if cw == nil {
		return nil
	}
	return cw.rects
}

// GroundAt returns the top of the highest surface spanning x.
func (cw *CollisionWorld) GroundAt(x float64) (float64, bool) {
	if cw == nil {
		return 0, false
	}
	best, found := 0.0, false
	for _, r := range cw.rects {
		if x < r.Left() || x > r.Right() {
			continue
		}
		if !found || r.Top() < best {
			best, found = r.Top(), true
		}
	}
	return best, found
}
