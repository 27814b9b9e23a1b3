// Package font rasterises text into sprite bitmaps.
package font

import (
	"image"
	"unicode/utf8"

	"github.com/bodgit/monosprite/bitmap"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font writes fixed size glyph cells into a bitmap.
type Font interface {
	// Cell returns the size of one glyph cell in pixels.
	Cell() (w, h int)
	// WriteGlyph writes the cell for ch with its top left corner at
	// (x, y). With cursor set the bottom row of the cell is lit; with
	// invert set every pixel of the cell is flipped.
	WriteGlyph(dst *bitmap.Bitmap, x, y int, ch rune, cursor, invert bool)
}

// Layout returns the length in characters of the longest line.
func Layout(lines []string) int {
	var n int
	for _, l := range lines {
		n = max(n, utf8.RuneCountInString(l))
	}
	return n
}

// Size returns the size in pixels of lines set in f.
func Size(f Font, lines []string) (int, int) {
	w, h := f.Cell()
	return Layout(lines) * w, len(lines) * h
}

// AlignCenter returns the x at which to place s set in f so it is centred
// on center.
func AlignCenter(f Font, center int, s string) int {
	w, _ := f.Cell()
	return center - utf8.RuneCountInString(s)*w/2
}

// AlignRight returns the x at which to place s set in f so it ends at
// right.
func AlignRight(f Font, right int, s string) int {
	w, _ := f.Cell()
	return right - utf8.RuneCountInString(s)*w
}

// Render sets lines in f into a new bitmap, one line per row of cells.
func Render(f Font, lines []string, invert bool) (*bitmap.Bitmap, error) {
	return render(f, lines, func(int) bool { return invert })
}

// RenderHighlighted is like Render but inverts only the line at index
// line, as for the selected entry of a menu. An index outside lines
// inverts nothing.
func RenderHighlighted(f Font, lines []string, line int) (*bitmap.Bitmap, error) {
	return render(f, lines, func(i int) bool { return i == line })
}

func render(f Font, lines []string, inverted func(int) bool) (*bitmap.Bitmap, error) {
	w, h := Size(f, lines)
	b, err := bitmap.New(w, h)
	if err != nil {
		return nil, err
	}

	cw, ch := f.Cell()
	for row, l := range lines {
		invert := inverted(row)

		var col int
		for _, r := range l {
			f.WriteGlyph(b, col*cw, row*ch, r, false, invert)
			col++
		}
		// Pad short lines so an inverted block stays rectangular
		for ; invert && col < w/cw; col++ {
			f.WriteGlyph(b, col*cw, row*ch, ' ', false, invert)
		}
	}

	return b, nil
}

// Basic is a Font backed by a golang.org/x/image basicfont face.
type Basic struct {
	face *basicfont.Face
}

// Default returns the 7x13 fixed width face.
func Default() *Basic {
	return &Basic{face: basicfont.Face7x13}
}

// Cell implements Font.
func (f *Basic) Cell() (int, int) {
	return f.face.Advance, f.face.Height
}

// WriteGlyph implements Font.
func (f *Basic) WriteGlyph(dst *bitmap.Bitmap, x, y int, ch rune, cursor, invert bool) {
	w, h := f.Cell()
	dr, mask, mp, _, ok := f.face.Glyph(fixed.P(x, y+f.face.Ascent), ch)

	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			p := image.Pt(x+cx, y+cy)

			var on bool
			if ok && p.In(dr) {
				_, _, _, a := mask.At(mp.X+p.X-dr.Min.X, mp.Y+p.Y-dr.Min.Y).RGBA()
				on = a >= 0x8000
			}
			if cursor && cy == h-1 {
				on = true
			}

			dst.SetBit(p.X, p.Y, on != invert)
		}
	}
}
