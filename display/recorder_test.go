package display

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderRender(t *testing.T) {
	r := NewRecorder(16, 16)
	buf := bytes.Repeat([]byte{0xff}, 32)

	require.NoError(t, r.Render(buf, 2, 3, 1, 1))
	assert.Equal(t, 1, r.Renders)
	assert.Equal(t, 2, r.Bytes)

	b := r.Bitmap()
	assert.Equal(t, 16, b.Count())
	assert.True(t, b.Bit(2, 8))
	assert.True(t, b.Bit(3, 15))
	assert.False(t, b.Bit(2, 7))
	assert.False(t, b.Bit(4, 8))
}

func TestRecorderRegion(t *testing.T) {
	r := NewRecorder(16, 16)
	buf := make([]byte, 32)

	assert.Equal(t, ErrRegion, r.Render(buf, 0, 16, 0, 0))
	assert.Equal(t, ErrRegion, r.Render(buf, 0, 1, 0, 2))
	assert.Equal(t, ErrRegion, r.Render(buf, 3, 1, 0, 0))
	assert.Equal(t, 0, r.Renders)
}

func TestMulti(t *testing.T) {
	a, b := NewRecorder(8, 8), NewRecorder(8, 8)
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	require.NoError(t, Multi(a, b).Render(buf, 0, 7, 0, 0))
	assert.Equal(t, a.Bitmap().Pix, b.Bitmap().Pix)
	assert.Equal(t, buf, a.Bitmap().Pix)
}

func TestRecorderWritePNG(t *testing.T) {
	r := NewRecorder(8, 8)
	require.NoError(t, r.Render([]byte{1, 0, 0, 0, 0, 0, 0, 0}, 0, 7, 0, 0))

	buf := new(bytes.Buffer)
	require.NoError(t, r.WritePNG(buf))

	m, format, err := image.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 8, 8), m.Bounds())
}
