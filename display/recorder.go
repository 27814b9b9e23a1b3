package display

import (
	"image/png"
	"io"

	"github.com/bodgit/monosprite/bitmap"
)

// Recorder is a Display that keeps its own copy of the panel memory, the
// way a real controller does. It is useful for tests and for writing
// snapshots.
type Recorder struct {
	width, pages int
	mem          []byte

	// Renders counts calls to Render and Bytes the number of bytes copied.
	Renders int
	Bytes   int
}

// NewRecorder returns a Recorder for a width by height panel.
func NewRecorder(width, height int) *Recorder {
	pages := (height + 7) >> 3
	return &Recorder{
		width: width,
		pages: pages,
		mem:   make([]byte, width*pages),
	}
}

// Render implements Display.
func (r *Recorder) Render(buf []byte, startColumn, endColumn, startPage, endPage int) error {
	if err := CheckRegion(r.width, r.pages, startColumn, endColumn, startPage, endPage); err != nil {
		return err
	}
	for p := startPage; p <= endPage; p++ {
		i, j := p*r.width+startColumn, p*r.width+endColumn+1
		r.Bytes += copy(r.mem[i:j], buf[i:j])
	}
	r.Renders++
	return nil
}

// Bitmap returns the panel memory as a bitmap. The memory is shared.
func (r *Recorder) Bitmap() *bitmap.Bitmap {
	return &bitmap.Bitmap{
		Width:  r.width,
		Height: r.pages << 3,
		Pix:    r.mem,
	}
}

// WritePNG writes the current panel contents to w as a PNG image.
func (r *Recorder) WritePNG(w io.Writer) error {
	return png.Encode(w, r.Bitmap())
}
