/*
Package framebuffer implements the shared paged monochrome framebuffer that
sprites are composited into.

The buffer is organised the way small OLED controllers organise their
memory: the screen is split into pages eight pixels tall and each byte holds
one column of one page, least significant bit at the top. A pixel at (x, y)
lives in page y/8, column x, bit y%8.

Every write extends a dirty region which Flush pushes to a display.Display
and then resets.
*/
package framebuffer

import (
	"image"

	"github.com/bodgit/monosprite/bitmap"
	"github.com/bodgit/monosprite/display"
	"github.com/bodgit/monosprite/geom"
)

const (
	// Width and Height of the default panel.
	Width  = 128
	Height = 64

	pageHeight = 8
)

// Mode selects whether Composite sets or clears bits.
type Mode int

const (
	// Draw ORs the lit pixels of a bitmap into the framebuffer.
	Draw Mode = iota
	// Erase clears every framebuffer pixel covered by a lit bitmap pixel.
	Erase
)

func (m Mode) String() string {
	if m == Erase {
		return "erase"
	}
	return "draw"
}

// Wrap describes where composited pixels wrap around to the other side of
// the screen. A coordinate at or beyond High has High subtracted from it and
// a coordinate below Low has High added to it; it is a single wrap step, not
// a modulo, so a sprite more than a screen away from the edge is clipped.
type Wrap struct {
	Low, High image.Point
}

// NewWrap returns a Wrap between the points (lowX, lowY) and (highX, highY).
func NewWrap(lowX, lowY, highX, highY int) *Wrap {
	return &Wrap{
		Low:  image.Pt(lowX, lowY),
		High: image.Pt(highX, highY),
	}
}

func (w *Wrap) remap(v, low, high int) int {
	switch {
	case v >= high:
		return v - high
	case v < low:
		return v + high
	}
	return v
}

// Framebuffer is a paged 1-bit framebuffer.
type Framebuffer struct {
	width, height int
	pix           []byte
	dirty         geom.Bounds
}

// New returns a blank framebuffer. The height is rounded up to a whole
// number of pages.
func New(width, height int) *Framebuffer {
	pages := (height + pageHeight - 1) / pageHeight
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*pages),
	}
}

// Width returns the width in pixels.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the height in pixels.
func (f *Framebuffer) Height() int { return f.height }

// Pages returns the number of 8 pixel pages.
func (f *Framebuffer) Pages() int { return len(f.pix) / max(f.width, 1) }

// Bytes returns the underlying buffer. It is shared, not copied.
func (f *Framebuffer) Bytes() []byte { return f.pix }

// Bounds returns the visible area.
func (f *Framebuffer) Bounds() geom.Bounds {
	return geom.Bounds{W: f.width, H: f.height}
}

// SetPixel lights or clears a single bit of buf, a paged buffer width pixels
// wide. Coordinates outside buf are ignored.
func SetPixel(buf []byte, width, x, y int, on bool) {
	if x < 0 || y < 0 || x >= width {
		return
	}
	i := (y>>3)*width + x
	if i >= len(buf) {
		return
	}
	if on {
		buf[i] |= 1 << uint(y&7)
	} else {
		buf[i] &^= 1 << uint(y&7)
	}
}

// SetPixel lights or clears the pixel at (x, y).
func (f *Framebuffer) SetPixel(x, y int, on bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	SetPixel(f.pix, f.width, x, y, on)
	f.mark(geom.Bounds{X: x, Y: y, W: 1, H: 1})
}

// Pixel reports whether the pixel at (x, y) is lit.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return false
	}
	return f.pix[(y>>3)*f.width+x]&(1<<uint(y&7)) != 0
}

// Clear blanks the whole framebuffer and marks it dirty.
func (f *Framebuffer) Clear() {
	for i := range f.pix {
		f.pix[i] = 0
	}
	f.Invalidate()
}

// Invalidate marks the whole framebuffer dirty.
func (f *Framebuffer) Invalidate() {
	f.dirty = f.Bounds()
}

// Dirty returns the region written since the last Flush.
func (f *Framebuffer) Dirty() geom.Bounds {
	return f.dirty
}

func (f *Framebuffer) mark(b geom.Bounds) {
	f.dirty = f.dirty.Union(b)
}

// Composite draws or erases b with its top left corner at (x, y). Only lit
// source pixels are written so drawing ORs into what is already there and
// erasing clears exactly the source footprint. With a non-nil wrap,
// coordinates are remapped before clipping; pixels that still fall outside
// the framebuffer are skipped.
func (f *Framebuffer) Composite(b *bitmap.Bitmap, x, y int, mode Mode, wrap *Wrap) {
	x0, y0, x1, y1 := f.width, f.height, -1, -1

	for sx := 0; sx < b.Width; sx++ {
		dx := x + sx
		if wrap != nil {
			dx = wrap.remap(dx, wrap.Low.X, wrap.High.X)
		}
		if dx < 0 || dx >= f.width {
			continue
		}

		for sy := 0; sy < b.Height; sy++ {
			// Source bits are page-aligned to the bitmap's own top edge
			if b.Pix[(sy>>3)*b.Width+sx]&(1<<uint(sy&7)) == 0 {
				continue
			}

			dy := y + sy
			if wrap != nil {
				dy = wrap.remap(dy, wrap.Low.Y, wrap.High.Y)
			}
			if dy < 0 || dy >= f.height {
				continue
			}

			// Destination bit restarts at 0 on every global page boundary
			i, bit := (dy>>3)*f.width+dx, byte(1)<<uint(dy&7)
			if mode == Erase {
				f.pix[i] &^= bit
			} else {
				f.pix[i] |= bit
			}

			x0, y0, x1, y1 = min(x0, dx), min(y0, dy), max(x1, dx), max(y1, dy)
		}
	}

	if x1 >= 0 {
		f.mark(geom.Bounds{X: x0, Y: y0, W: x1 - x0 + 1, H: y1 - y0 + 1})
	}
}

// Flush renders the dirty region, widened to whole pages, to d and resets
// it. Nothing is rendered if nothing changed.
func (f *Framebuffer) Flush(d display.Display) error {
	r := f.dirty.Intersect(f.Bounds())
	if r.Empty() {
		f.dirty = geom.Bounds{}
		return nil
	}
	if err := d.Render(f.pix, r.X, r.X+r.W-1, r.Y>>3, (r.Y+r.H-1)>>3); err != nil {
		return err
	}
	f.dirty = geom.Bounds{}
	return nil
}

// Bitmap returns the framebuffer as a bitmap sharing its memory, suitable
// for image encoding.
func (f *Framebuffer) Bitmap() *bitmap.Bitmap {
	return &bitmap.Bitmap{
		Width:  f.width,
		Height: f.height,
		Pix:    f.pix,
	}
}
