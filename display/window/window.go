// Package window shows a framebuffer in a desktop window using Ebitengine.
package window

import (
	"sync"

	"github.com/bodgit/monosprite/display"
	"github.com/hajimehoshi/ebiten/v2"
)

// Window is a display.Display and an ebiten.Game. Rendering only updates a
// copy of the panel memory; the window picks it up on its next frame.
type Window struct {
	width, height, pages int
	scale                int
	update               func() error

	mu     sync.Mutex
	mem    []byte
	pixels []byte
}

var (
	_ display.Display = (*Window)(nil)
	_ ebiten.Game     = (*Window)(nil)
)

// New returns a Window for a width by height panel, magnified scale times.
func New(width, height, scale int) *Window {
	pages := (height + 7) >> 3
	return &Window{
		width:  width,
		height: height,
		pages:  pages,
		scale:  max(scale, 1),
		mem:    make([]byte, width*pages),
		pixels: make([]byte, width*height*4),
	}
}

// Render implements display.Display.
func (w *Window) Render(buf []byte, startColumn, endColumn, startPage, endPage int) error {
	if err := display.CheckRegion(w.width, w.pages, startColumn, endColumn, startPage, endPage); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for p := startPage; p <= endPage; p++ {
		copy(w.mem[p*w.width+startColumn:p*w.width+endColumn+1], buf[p*w.width+startColumn:])
	}

	return nil
}

// Update implements ebiten.Game, calling the function passed to Run.
func (w *Window) Update() error {
	if w.update != nil {
		return w.update()
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			v := byte(0)
			if w.mem[(y>>3)*w.width+x]&(1<<uint(y&7)) != 0 {
				v = 0xff
			}
			i := (y*w.width + x) << 2
			w.pixels[i], w.pixels[i+1], w.pixels[i+2], w.pixels[i+3] = v, v, v, 0xff
		}
	}
	w.mu.Unlock()

	screen.WritePixels(w.pixels)
}

// Layout implements ebiten.Game.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}

// Run opens the window and blocks until it is closed or update returns an
// error. update is called once per frame on the window's goroutine, which
// makes it the place to tick a scheduler.
func (w *Window) Run(title string, update func() error) error {
	w.update = update
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w.width*w.scale, w.height*w.scale)
	return ebiten.RunGame(w)
}
