package monosprite

import (
	"fmt"

	"github.com/bodgit/monosprite/bitmap"
	"github.com/bodgit/monosprite/font"
	"github.com/bodgit/monosprite/framebuffer"
	"github.com/bodgit/monosprite/geom"
)

// CreateText adds a sprite called name showing lines of text in the World's
// font, and draws it at pos.
func (w *World) CreateText(name string, lines []string, pos geom.Vector, invert bool) (*Sprite, error) {
	b, err := font.Render(w.font, lines, invert)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", name, err)
	}
	return w.CreateFromBitmap(name, b, pos)
}

// CreateMenu adds a sprite called name showing one line of text per entry
// with the entry at index selected inverted, and draws it at pos.
func (w *World) CreateMenu(name string, entries []string, pos geom.Vector, selected int) (*Sprite, error) {
	b, err := font.RenderHighlighted(w.font, entries, selected)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", name, err)
	}
	return w.CreateFromBitmap(name, b, pos)
}

// SetText replaces the pixels of the sprite called name with lines of
// text, keeping its position and repairing anything it overlapped. Any
// rotation is reset.
func (w *World) SetText(name string, lines []string, invert bool) error {
	s, ok := w.sprites[name]
	if !ok {
		return fmt.Errorf("text %q: %w", name, ErrNotFound)
	}
	b, err := font.Render(w.font, lines, invert)
	if err != nil {
		return fmt.Errorf("text %q: %w", name, err)
	}
	w.replace(s, b)
	return nil
}

// SetMenu is SetText for a menu, changing the entries and the selection.
func (w *World) SetMenu(name string, entries []string, selected int) error {
	s, ok := w.sprites[name]
	if !ok {
		return fmt.Errorf("text %q: %w", name, ErrNotFound)
	}
	b, err := font.RenderHighlighted(w.font, entries, selected)
	if err != nil {
		return fmt.Errorf("text %q: %w", name, err)
	}
	w.replace(s, b)
	return nil
}

// Swap the pixels of s for b in place.
func (w *World) replace(s *Sprite, b *bitmap.Bitmap) {
	w.lift(s)
	s.load(b)
	if !s.hidden {
		w.composite(s, framebuffer.Draw)
	}
}
