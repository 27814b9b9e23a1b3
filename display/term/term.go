// Package term shows a framebuffer in a terminal using tcell. Each character
// cell holds two vertically stacked pixels drawn with half block glyphs, so
// a 128 by 64 panel needs a 128 by 32 terminal.
package term

import (
	"github.com/bodgit/monosprite/display"
	"github.com/gdamore/tcell/v2"
)

const (
	pixelsPerCell = 2
	cellsPerPage  = 8 / pixelsPerCell
)

var glyphs = [4]rune{' ', '▀', '▄', '█'}

// Display is a display.Display drawing into a tcell.Screen.
type Display struct {
	screen       tcell.Screen
	width, pages int
	style        tcell.Style
}

var _ display.Display = (*Display)(nil)

// New returns a Display for a width by height panel drawn at the top left
// of screen.
func New(screen tcell.Screen, width, height int) *Display {
	return &Display{
		screen: screen,
		width:  width,
		pages:  (height + 7) >> 3,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

// SetStyle changes the colours pixels are drawn with.
func (d *Display) SetStyle(style tcell.Style) {
	d.style = style
}

// Render implements display.Display.
func (d *Display) Render(buf []byte, startColumn, endColumn, startPage, endPage int) error {
	if err := display.CheckRegion(d.width, d.pages, startColumn, endColumn, startPage, endPage); err != nil {
		return err
	}

	for p := startPage; p <= endPage; p++ {
		for c := startColumn; c <= endColumn; c++ {
			b := buf[p*d.width+c]
			for i := 0; i < cellsPerPage; i++ {
				d.screen.SetContent(c, p*cellsPerPage+i, glyphs[b>>uint(i*pixelsPerCell)&0x03], nil, d.style)
			}
		}
	}
	d.screen.Show()

	return nil
}
