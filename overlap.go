package monosprite

import (
	"github.com/bodgit/monosprite/framebuffer"
	"github.com/bodgit/monosprite/geom"
)

// FindOverlaps returns the sprite called name followed by every visible
// sprite connected to it through a chain of overlapping footprints. A
// wrapped sprite's footprint includes the pixels it wraps onto. It returns
// nil if there is no such sprite.
func (w *World) FindOverlaps(name string) []*Sprite {
	s, ok := w.sprites[name]
	if !ok {
		return nil
	}
	return w.findOverlaps(s)
}

// Depth-first over an explicit stack so the closure size, not the call
// stack, bounds the search.
func (w *World) findOverlaps(seed *Sprite) []*Sprite {
	found := []*Sprite{seed}
	visited := map[*Sprite]struct{}{seed: {}}

	stack := []*Sprite{seed}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fp := w.footprint(s)
		for _, o := range w.order {
			if _, ok := visited[o]; ok || o.hidden {
				continue
			}
			if !intersects(fp, w.footprint(o)) {
				continue
			}
			visited[o] = struct{}{}
			found = append(found, o)
			stack = append(stack, o)
		}
	}

	return found
}

func intersects(a, b []geom.Bounds) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Intersects(y) {
				return true
			}
		}
	}
	return false
}

// Take s off the framebuffer without disturbing its neighbours: erase it
// and its overlap closure, then redraw everything in the closure except s.
// The caller is free to change s before drawing it again.
func (w *World) lift(s *Sprite) {
	set := w.findOverlaps(s)
	for _, o := range set {
		if o == s && s.hidden {
			continue
		}
		w.composite(o, framebuffer.Erase)
	}
	for _, o := range set[1:] {
		w.composite(o, framebuffer.Draw)
	}
}
