package system

import (
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
)

// ArrowSet is an ordered list of live arrows. Oldest arrows come first, which
// is the order the depopulator removes them in.
type ArrowSet struct {
	Arrows []*obj.Arrow
}

// Add appends an arrow.
func (s *ArrowSet) Add(a *obj.Arrow) {
	if s == nil || a == nil {
		return
	}
	s.Arrows = append(s.Arrows, a)
}

func (s *ArrowSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Arrows)
}

// RemoveFront drops up to n of the oldest arrows and returns how many went.
func (s *ArrowSet) RemoveFront(n int) int {
	if s == nil || n <= 0 {
		return 0
	}
	if n > len(s.Arrows) {
		n = len(s.Arrows)
	}
	for i := 0; i < n; i++ {
		s.Arrows[i] = nil
	}
	s.Arrows = s.Arrows[n:]
	return n
}

// Clear drops every arrow.
func (s *ArrowSet) Clear() {
	if s == nil {
		return
	}
	s.Arrows = nil
}

// Update integrates every arrow, embeds flying arrows in the surfaces they
// touch and removes arrows that expired or that gone reports true for.
func (s *ArrowSet) Update(dt float64, surfaces obj.Surfaces, bottomY float64, gone func(*obj.Arrow) bool) {
	if s == nil {
		return
	}
	for _, a := range s.Arrows {
		a.Tick(dt)
		a.StickOnSurfaces(surfaces)
	}
	s.Sweep(func(a *obj.Arrow) bool {
		return a.Expired(bottomY) || (gone != nil && gone(a))
	})
}

// Sweep removes every arrow for which drop reports true, keeping order.
func (s *ArrowSet) Sweep(drop func(*obj.Arrow) bool) {
	if s == nil {
		return
	}
	kept := s.Arrows[:0]
	for _, a := range s.Arrows {
		if a == nil || drop(a) {
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(s.Arrows); i++ {
		s.Arrows[i] = nil
	}
	s.Arrows = kept
}

// Projectiles returns the arrows as combat projectiles.
func (s *ArrowSet) Projectiles() []component.Projectile {
	if s == nil || len(s.Arrows) == 0 {
		return nil
	}
	out := make([]component.Projectile, 0, len(s.Arrows))
	for _, a := range s.Arrows {
		out = append(out, a)
	}
	return out
}
