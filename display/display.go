/*
Package display defines the contract between the paged framebuffer and the
device that shows it, plus an in-memory implementation.

A framebuffer is a slice of bytes addressed by page and column: the byte for
column c of page p is at index p*width + c and holds eight vertically stacked
pixels, least significant bit at the top.
*/
package display

import "errors"

// ErrRegion is returned by a Display asked to render a region that falls
// outside the panel.
var ErrRegion = errors.New("display: region out of range")

// Display pushes a rectangular region of a framebuffer to a panel. Columns
// and pages are inclusive.
type Display interface {
	Render(buf []byte, startColumn, endColumn, startPage, endPage int) error
}

// Func adapts an ordinary function into a Display.
type Func func(buf []byte, startColumn, endColumn, startPage, endPage int) error

// Render calls f.
func (f Func) Render(buf []byte, startColumn, endColumn, startPage, endPage int) error {
	return f(buf, startColumn, endColumn, startPage, endPage)
}

// Multi renders to every Display in turn, stopping at the first error.
func Multi(displays ...Display) Display {
	return Func(func(buf []byte, startColumn, endColumn, startPage, endPage int) error {
		for _, d := range displays {
			if err := d.Render(buf, startColumn, endColumn, startPage, endPage); err != nil {
				return err
			}
		}
		return nil
	})
}

// CheckRegion returns ErrRegion unless the inclusive region lies within a
// panel width columns wide and pages pages tall.
func CheckRegion(width, pages, startColumn, endColumn, startPage, endPage int) error {
	if startColumn < 0 || endColumn >= width || startColumn > endColumn ||
		startPage < 0 || endPage >= pages || startPage > endPage {
		return ErrRegion
	}
	return nil
}
