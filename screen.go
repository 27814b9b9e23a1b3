package monosprite

import (
	"fmt"

	"github.com/bodgit/monosprite/geom"
	"go.uber.org/zap"
)

// Axis names the screen edges a sprite can run into.
type Axis int

const (
	// AxisNone means no edge was hit.
	AxisNone Axis = iota
	// AxisX means the left or right edge.
	AxisX
	// AxisY means the top or bottom edge.
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return "none"
}

// Reflect returns the compass heading, as used by geom.FromAngle, that
// bounces a sprite travelling at degrees off an edge on axis a.
func (a Axis) Reflect(degrees float64) float64 {
	switch a {
	case AxisX:
		return geom.NormalizeDegrees(360 - degrees)
	case AxisY:
		return geom.NormalizeDegrees(180 - degrees)
	}
	return degrees
}

// EdgeHit reports which screen edge the sprite called name would cross if
// it were displaced by d. The left and right edges are checked before the
// top and bottom.
func (w *World) EdgeHit(name string, d geom.Vector) (Axis, error) {
	s, ok := w.sprites[name]
	if !ok {
		return AxisNone, fmt.Errorf("edge %q: %w", name, ErrNotFound)
	}

	p := s.position.Add(d)
	width, height := s.Size()

	switch {
	case p.X < 0, p.X+float64(width) > float64(w.fb.Width()):
		return AxisX, nil
	case p.Y < 0, p.Y+float64(height) > float64(w.fb.Height()):
		return AxisY, nil
	}
	return AxisNone, nil
}

// OnScreen reports whether the sprite called name lies entirely on screen.
func (w *World) OnScreen(name string) (bool, error) {
	a, err := w.EdgeHit(name, geom.Vector{})
	return a == AxisNone, err
}

// Reset removes every sprite and clears the framebuffer.
func (w *World) Reset() {
	clear(w.sprites)
	w.order = nil
	w.fb.Clear()

	w.logger.Debug("world reset", zap.Int("width", w.fb.Width()), zap.Int("height", w.fb.Height()))
}
