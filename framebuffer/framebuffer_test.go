package framebuffer

import (
	"testing"

	"github.com/bodgit/monosprite/bitmap"
	"github.com/bodgit/monosprite/display"
	"github.com/bodgit/monosprite/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, w, h int) *bitmap.Bitmap {
	b, err := bitmap.New(w, h)
	require.NoError(t, err)
	for i := range b.Pix {
		b.Pix[i] = 0xff
	}
	return b
}

func snapshot(f *Framebuffer) []byte {
	return append([]byte(nil), f.Bytes()...)
}

func TestSetPixel(t *testing.T) {
	f := New(Width, Height)
	assert.Equal(t, 8, f.Pages())
	assert.Len(t, f.Bytes(), 1024)

	f.SetPixel(5, 9, true)
	assert.Equal(t, byte(0x02), f.Bytes()[Width+5])
	assert.True(t, f.Pixel(5, 9))
	assert.Equal(t, geom.Bounds{X: 5, Y: 9, W: 1, H: 1}, f.Dirty())

	f.SetPixel(5, 9, false)
	assert.False(t, f.Pixel(5, 9))

	f.SetPixel(-1, 0, true)
	f.SetPixel(0, Height, true)
	assert.Equal(t, make([]byte, 1024), f.Bytes())
}

func TestCompositeAcrossPages(t *testing.T) {
	f := New(Width, Height)

	// An 8x8 sprite at y=4 straddles pages 0 and 1
	f.Composite(filled(t, 8, 8), 10, 4, Draw, nil)

	for x := 10; x < 18; x++ {
		assert.Equal(t, byte(0xf0), f.Bytes()[x])
		assert.Equal(t, byte(0x0f), f.Bytes()[Width+x])
	}
	assert.Equal(t, geom.Bounds{X: 10, Y: 4, W: 8, H: 8}, f.Dirty())
}

func TestCompositeOnlyLitBits(t *testing.T) {
	f := New(Width, Height)
	f.Composite(filled(t, 4, 4), 0, 0, Draw, nil)

	hollow, err := bitmap.New(4, 4)
	require.NoError(t, err)
	hollow.SetBit(0, 0, true)

	f.Composite(hollow, 0, 0, Erase, nil)
	assert.False(t, f.Pixel(0, 0))
	assert.True(t, f.Pixel(1, 1))
	assert.True(t, f.Pixel(3, 3))
}

func TestDrawEraseRestores(t *testing.T) {
	f := New(Width, Height)
	f.SetPixel(100, 50, true)
	before := snapshot(f)

	b := filled(t, 7, 11)
	f.Composite(b, 20, 13, Draw, nil)
	assert.NotEqual(t, before, snapshot(f))

	f.Composite(b, 20, 13, Erase, nil)
	assert.Equal(t, before, snapshot(f))

	// Erasing again changes nothing
	f.Composite(b, 20, 13, Erase, nil)
	assert.Equal(t, before, snapshot(f))
}

func TestCompositeClips(t *testing.T) {
	f := New(Width, Height)

	f.Composite(filled(t, 8, 8), -4, -4, Draw, nil)
	assert.True(t, f.Pixel(0, 0))
	assert.True(t, f.Pixel(3, 3))
	assert.False(t, f.Pixel(4, 4))

	before := snapshot(f)
	f.Composite(filled(t, 8, 8), 500, 500, Draw, nil)
	assert.Equal(t, before, snapshot(f))
}

func TestCompositeWrap(t *testing.T) {
	wrap := NewWrap(0, 0, Width, Height)

	f := New(Width, Height)
	f.Composite(filled(t, 8, 8), 124, 60, Draw, wrap)

	assert.True(t, f.Pixel(127, 63))
	assert.True(t, f.Pixel(0, 0))
	assert.True(t, f.Pixel(3, 3))
	assert.True(t, f.Pixel(0, 63))
	assert.True(t, f.Pixel(127, 0))
	assert.False(t, f.Pixel(4, 4))

	g := New(Width, Height)
	g.Composite(filled(t, 8, 8), -4, -4, Draw, wrap)
	assert.Equal(t, snapshot(f), snapshot(g))

	// Placing a sprite at the high bound is identical to the low bound
	h, l := New(Width, Height), New(Width, Height)
	h.Composite(filled(t, 3, 5), Width, 10, Draw, wrap)
	l.Composite(filled(t, 3, 5), 0, 10, Draw, wrap)
	assert.Equal(t, snapshot(l), snapshot(h))
}

func TestFlush(t *testing.T) {
	f := New(Width, Height)
	r := display.NewRecorder(Width, Height)

	require.NoError(t, f.Flush(r))
	assert.Equal(t, 0, r.Renders)

	f.Composite(filled(t, 4, 4), 10, 6, Draw, nil)
	require.NoError(t, f.Flush(r))
	assert.Equal(t, 1, r.Renders)
	// Columns 10-13 over pages 0 and 1
	assert.Equal(t, 8, r.Bytes)
	assert.Equal(t, f.Bytes(), r.Bitmap().Pix)
	assert.True(t, f.Dirty().Empty())

	f.Clear()
	require.NoError(t, f.Flush(r))
	assert.Equal(t, 1024+8, r.Bytes)
	assert.Equal(t, 0, r.Bitmap().Count())
}
