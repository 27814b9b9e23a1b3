package monosprite

import (
	"fmt"

	"github.com/bodgit/monosprite/bitmap"
	"github.com/bodgit/monosprite/framebuffer"
)

// Rotate90 turns the sprite called name a quarter turn clockwise about its
// top left corner. If the rotated pixels would not fit the sprite's buffer
// nothing changes and bitmap.ErrBounds is returned.
func (w *World) Rotate90(name string) error {
	s, ok := w.sprites[name]
	if !ok {
		return fmt.Errorf("rotate %q: %w", name, ErrNotFound)
	}
	if !bitmap.Fits(s.bitmap.Height, s.bitmap.Width) {
		return fmt.Errorf("rotate %q: %w", name, bitmap.ErrBounds)
	}

	w.lift(s)

	if err := s.bitmap.Rotate90(); err != nil {
		if !s.hidden {
			w.composite(s, framebuffer.Draw)
		}
		return fmt.Errorf("rotate %q: %w", name, err)
	}
	s.rotation = (s.rotation + 90) % 360

	if !s.hidden {
		w.composite(s, framebuffer.Draw)
	}

	return nil
}
