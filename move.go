package monosprite

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/bodgit/monosprite/framebuffer"
	"github.com/bodgit/monosprite/geom"
)

// Work out the whole pixel step a sub-pixel move commits to: -1 if the new
// position drops below the current floor, +1 if it passes the current
// ceiling, otherwise 0.
func fullPixelMove(p, d float64) int {
	switch next := p + d; {
	case next < math.Floor(p):
		return -1
	case next > math.Ceil(p):
		return 1
	}
	return 0
}

// Teleport a coordinate that crossed a wrap bound to the opposite bound,
// keeping the overshoot.
func wrapCoordinate(p float64, low, high int) float64 {
	switch {
	case p >= float64(high):
		return float64(low) + p - float64(high)
	case p < float64(low):
		return float64(high) - (float64(low) - p)
	}
	return p
}

func (w *World) wrapPosition(p geom.Vector) geom.Vector {
	return geom.Vec(
		wrapCoordinate(p.X, w.wrap.Low.X, w.wrap.High.X),
		wrapCoordinate(p.Y, w.wrap.Low.Y, w.wrap.High.Y),
	)
}

// Move displaces the sprite called name by d and redraws it and anything it
// overlapped. With wrap set a sprite crossing a wrap bound reappears at the
// opposite one. It returns the quantized whole-pixel step for each axis,
// which is never more than one pixel whatever the size of d.
func (w *World) Move(name string, d geom.Vector, wrap bool) (image.Point, error) {
	s, ok := w.sprites[name]
	if !ok {
		return image.Point{}, fmt.Errorf("move %q: %w", name, ErrNotFound)
	}
	if !d.Finite() {
		return image.Point{}, fmt.Errorf("move %q: %w", name, ErrInvalidGeometry)
	}

	step := image.Pt(fullPixelMove(s.position.X, d.X), fullPixelMove(s.position.Y, d.Y))

	w.lift(s)

	s.position = s.position.Add(d)
	s.wrap = wrap
	if wrap {
		s.position = w.wrapPosition(s.position)
	}

	if !s.hidden {
		w.composite(s, framebuffer.Draw)
	}

	return step, nil
}

// MoveTo places the sprite called name at pos, redrawing it and anything it
// overlapped.
func (w *World) MoveTo(name string, pos geom.Vector) error {
	s, ok := w.sprites[name]
	if !ok {
		return fmt.Errorf("move %q: %w", name, ErrNotFound)
	}
	if !pos.Finite() {
		return fmt.Errorf("move %q: %w", name, ErrInvalidGeometry)
	}

	w.lift(s)

	s.position = pos
	s.wrap = false

	if !s.hidden {
		w.composite(s, framebuffer.Draw)
	}

	return nil
}

// MoveAngle moves the sprite called name for dt at speed pixels per second
// along a compass heading in degrees, as given to geom.FromAngle.
func (w *World) MoveAngle(name string, degrees, speed float64, dt time.Duration, wrap bool) (image.Point, error) {
	return w.Move(name, geom.FromAngle(degrees, speed).Scale(dt.Seconds()), wrap)
}
