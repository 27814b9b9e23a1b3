package monosprite

import (
	"fmt"

	"github.com/bodgit/monosprite/bitmap"
	"github.com/bodgit/monosprite/framebuffer"
	"github.com/bodgit/monosprite/geom"
	"go.uber.org/zap"
)

// Sprite is a named bitmap placed in a World. It owns a private copy of its
// pixels so it can be rotated without touching the catalog.
type Sprite struct {
	name     string
	position geom.Vector
	rotation int
	wrap     bool
	hidden   bool

	bitmap bitmap.Bitmap
	pix    [bitmap.Capacity]byte
}

// Copy b into the sprite's own buffer. b must fit.
func (s *Sprite) load(b *bitmap.Bitmap) {
	s.bitmap = bitmap.Bitmap{
		Width:  b.Width,
		Height: b.Height,
		Pix:    s.pix[:copy(s.pix[:], b.Pix[:b.PackedSize()])],
	}
	s.rotation = 0
}

// Name returns the registry key.
func (s *Sprite) Name() string { return s.name }

// Position returns the top left corner.
func (s *Sprite) Position() geom.Vector { return s.position }

// Rotation returns the clockwise rotation from the original bitmap in
// degrees; always 0, 90, 180 or 270.
func (s *Sprite) Rotation() int { return s.rotation }

// Visible reports whether the sprite is drawn.
func (s *Sprite) Visible() bool { return !s.hidden }

// Wrapped reports whether the sprite was last placed with wrapping.
func (s *Sprite) Wrapped() bool { return s.wrap }

// Size returns the current width and height.
func (s *Sprite) Size() (int, int) { return s.bitmap.Width, s.bitmap.Height }

// Bitmap returns the sprite's own pixels. It must not be modified.
func (s *Sprite) Bitmap() *bitmap.Bitmap { return &s.bitmap }

// Bounds returns the pixels the sprite covers.
func (s *Sprite) Bounds() geom.Bounds {
	x, y := s.position.Floor()
	return geom.Bounds{X: x, Y: y, W: s.bitmap.Width, H: s.bitmap.Height}
}

// Split the run [p, p+n) into the runs the compositor draws it as once
// wrapped, each as a start and a length.
func wrapSpan(p, n, low, high int) [][2]int {
	var spans [][2]int
	add := func(from, to, shift int) {
		if to > from {
			spans = append(spans, [2]int{from + shift, to - from})
		}
	}
	add(p, min(p+n, low), high)
	add(max(p, low), min(p+n, high), 0)
	add(max(p, high), p+n, -high)
	return spans
}

// The rectangles s covers on the framebuffer, more than one if it is
// wrapped across a wrap bound.
func (w *World) footprint(s *Sprite) []geom.Bounds {
	b := s.Bounds()
	if !s.wrap {
		return []geom.Bounds{b}
	}

	var fp []geom.Bounds
	for _, x := range wrapSpan(b.X, b.W, w.wrap.Low.X, w.wrap.High.X) {
		for _, y := range wrapSpan(b.Y, b.H, w.wrap.Low.Y, w.wrap.High.Y) {
			fp = append(fp, geom.Bounds{X: x[0], Y: y[0], W: x[1], H: y[1]})
		}
	}
	return fp
}

func (w *World) composite(s *Sprite, mode framebuffer.Mode) {
	var wrap *framebuffer.Wrap
	if s.wrap {
		wrap = w.wrap
	}
	x, y := s.position.Floor()
	w.fb.Composite(&s.bitmap, x, y, mode, wrap)
}

// Create adds a sprite called name using the catalog bitmap of the same
// name, and draws it at pos.
func (w *World) Create(name string, pos geom.Vector) (*Sprite, error) {
	return w.CreateAs(name, name, pos)
}

// CreateAs adds a sprite called name using the catalog bitmap asset, and
// draws it at pos.
func (w *World) CreateAs(name, asset string, pos geom.Vector) (*Sprite, error) {
	b, err := w.catalog.Lookup(asset)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", name, err)
	}
	return w.CreateFromBitmap(name, b, pos)
}

// CreateFromBitmap adds a sprite called name with a copy of b, and draws
// it at pos.
func (w *World) CreateFromBitmap(name string, b *bitmap.Bitmap, pos geom.Vector) (*Sprite, error) {
	if _, ok := w.sprites[name]; ok {
		return nil, fmt.Errorf("create %q: %w", name, ErrExists)
	}
	if b == nil || !pos.Finite() {
		return nil, fmt.Errorf("create %q: %w", name, ErrInvalidGeometry)
	}
	if !bitmap.Fits(b.Width, b.Height) || len(b.Pix) < b.PackedSize() {
		return nil, fmt.Errorf("create %q: %w", name, bitmap.ErrBounds)
	}

	s := &Sprite{
		name:     name,
		position: pos,
	}
	s.load(b)

	w.sprites[name] = s
	w.order = append(w.order, s)
	w.composite(s, framebuffer.Draw)

	w.logger.Debug("created sprite", zap.String("name", name), zap.Int("width", b.Width), zap.Int("height", b.Height))

	return s, nil
}

// Get returns the sprite called name.
func (w *World) Get(name string) (*Sprite, bool) {
	s, ok := w.sprites[name]
	return s, ok
}

// Len returns the number of sprites.
func (w *World) Len() int {
	return len(w.order)
}

// Names returns the sprite names in creation order.
func (w *World) Names() []string {
	names := make([]string, len(w.order))
	for i, s := range w.order {
		names[i] = s.name
	}
	return names
}

// Remove erases the sprite called name, repairing any sprites it overlapped,
// and deletes it. It reports whether the sprite existed.
func (w *World) Remove(name string) bool {
	s, ok := w.sprites[name]
	if !ok {
		w.logger.Debug("remove of unknown sprite", zap.String("name", name))
		return false
	}

	w.lift(s)

	delete(w.sprites, name)
	for i, o := range w.order {
		if o == s {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	w.logger.Debug("removed sprite", zap.String("name", name))

	return true
}

// Erase hides the sprite called name, repairing any sprites it overlapped.
// The sprite stays registered and can be shown again with Draw. Unknown or
// already hidden sprites are ignored.
func (w *World) Erase(name string) {
	s, ok := w.sprites[name]
	if !ok {
		w.logger.Debug("erase of unknown sprite", zap.String("name", name))
		return
	}
	if s.hidden {
		return
	}
	w.lift(s)
	s.hidden = true
}

// Draw shows the sprite called name. Unknown sprites are ignored.
func (w *World) Draw(name string) {
	s, ok := w.sprites[name]
	if !ok {
		w.logger.Debug("draw of unknown sprite", zap.String("name", name))
		return
	}
	s.hidden = false
	w.composite(s, framebuffer.Draw)
}

// Redraw repaints every visible sprite into a cleared framebuffer.
func (w *World) Redraw() {
	w.fb.Clear()
	for _, s := range w.order {
		if !s.hidden {
			w.composite(s, framebuffer.Draw)
		}
	}
}
