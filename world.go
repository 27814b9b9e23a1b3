/*
Package monosprite is a sprite compositor for small monochrome paged
displays such as 128 by 64 OLED panels.

A World owns a registry of named sprites and the framebuffer they are drawn
into. Sprites are composited bit by bit; whenever one is erased, moved or
rotated every sprite transitively overlapping it is erased and redrawn so
no stale or missing pixels are left behind. A Scheduler drives chains of
timed movements from a millisecond clock.

A World is not safe for concurrent use. Every call that mutates it must
happen on one goroutine, typically the one calling Scheduler.Tick.
*/
package monosprite

import (
	"errors"
	"image"

	"github.com/bodgit/monosprite/catalog"
	"github.com/bodgit/monosprite/display"
	"github.com/bodgit/monosprite/font"
	"github.com/bodgit/monosprite/framebuffer"
	"github.com/bodgit/monosprite/geom"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a sprite name is not registered.
	ErrNotFound = errors.New("monosprite: sprite not found")
	// ErrExists is returned when creating a sprite whose name is taken.
	ErrExists = errors.New("monosprite: sprite already exists")
	// ErrDegenerate is returned when creating an animation with a zero or
	// negative duration.
	ErrDegenerate = errors.New("monosprite: animation duration must be positive")
	// ErrInvalidGeometry is returned for non-finite positions or
	// displacements.
	ErrInvalidGeometry = errors.New("monosprite: invalid geometry")
)

// World is the context every sprite operation runs against.
type World struct {
	fb      *framebuffer.Framebuffer
	sprites map[string]*Sprite
	order   []*Sprite

	wrap    *framebuffer.Wrap
	catalog catalog.Catalog
	font    font.Font
	display display.Display
	clock   Clock
	random  Random
	logger  *zap.Logger
}

// Option configures a World.
type Option func(*World)

// WithSize sets the framebuffer size; the default is 128 by 64.
func WithSize(width, height int) Option {
	return func(w *World) {
		w.fb = framebuffer.New(width, height)
	}
}

// WithWrap sets the wrap bounds used by sprites moved with wrapping
// enabled. The default wraps at the edges of the framebuffer.
func WithWrap(low, high image.Point) Option {
	return func(w *World) {
		w.wrap = framebuffer.NewWrap(low.X, low.Y, high.X, high.Y)
	}
}

// WithCatalog sets the catalog Create looks bitmaps up in.
func WithCatalog(c catalog.Catalog) Option {
	return func(w *World) {
		w.catalog = c
	}
}

// WithFont sets the font used by CreateText.
func WithFont(f font.Font) Option {
	return func(w *World) {
		w.font = f
	}
}

// WithDisplay sets where Flush sends the framebuffer.
func WithDisplay(d display.Display) Option {
	return func(w *World) {
		w.display = d
	}
}

// WithClock sets the clock used by schedulers.
func WithClock(c Clock) Option {
	return func(w *World) {
		w.clock = c
	}
}

// WithRandom sets the random source.
func WithRandom(r Random) Option {
	return func(w *World) {
		w.random = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}

// NewWorld returns an empty World.
func NewWorld(options ...Option) *World {
	w := &World{
		sprites: make(map[string]*Sprite),
		catalog: catalog.Map{},
		font:    font.Default(),
		clock:   NewSystemClock(),
		random:  NewRandom(0),
		logger:  zap.NewNop(),
	}
	for _, o := range options {
		o(w)
	}
	if w.fb == nil {
		w.fb = framebuffer.New(framebuffer.Width, framebuffer.Height)
	}
	if w.wrap == nil {
		w.wrap = framebuffer.NewWrap(0, 0, w.fb.Width(), w.fb.Height())
	}
	return w
}

// Framebuffer returns the framebuffer sprites are drawn into.
func (w *World) Framebuffer() *framebuffer.Framebuffer {
	return w.fb
}

// Clock returns the clock.
func (w *World) Clock() Clock {
	return w.clock
}

// Font returns the font text sprites are set in.
func (w *World) Font() font.Font {
	return w.font
}

// Random returns the random source.
func (w *World) Random() Random {
	return w.random
}

// Wrap returns the wrap bounds.
func (w *World) Wrap() *framebuffer.Wrap {
	return w.wrap
}

// Flush pushes whatever changed since the last Flush to the display, if
// there is one.
func (w *World) Flush() error {
	if w.display == nil {
		return nil
	}
	if err := w.fb.Flush(w.display); err != nil {
		w.logger.Warn("display render failed", zap.Error(err))
		return err
	}
	return nil
}

// RandomPosition returns a position at which a width by height sprite is
// entirely on screen, or as close as possible if it is larger than the
// screen.
func (w *World) RandomPosition(width, height int) geom.Vector {
	x := w.random.InRange(0, max(w.fb.Width()-width, 0))
	y := w.random.InRange(0, max(w.fb.Height()-height, 0))
	return geom.Vec(float64(x), float64(y))
}
