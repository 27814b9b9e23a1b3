package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackedSize(t *testing.T) {
	tables := []struct {
		w, h, want int
	}{
		{8, 8, 8},
		{8, 9, 16},
		{3, 1, 3},
		{128, 64, 1024},
		{0, 10, 0},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, PackedSize(table.w, table.h))
	}

	assert.True(t, Fits(128, 64))
	assert.False(t, Fits(128, 65))
	assert.False(t, Fits(-1, 8))
}

func TestNew(t *testing.T) {
	b, err := New(5, 12)
	require.NoError(t, err)
	assert.Len(t, b.Pix, 10)

	_, err = New(129, 64)
	assert.Equal(t, ErrBounds, err)
}

func TestBitLayout(t *testing.T) {
	b, err := New(4, 16)
	require.NoError(t, err)

	b.SetBit(0, 0, true)
	b.SetBit(2, 7, true)
	b.SetBit(1, 8, true)
	b.SetBit(9, 9, true) // outside, ignored

	assert.Equal(t, []byte{0x01, 0x00, 0x80, 0x00, 0x00, 0x01, 0x00, 0x00}, b.Pix)
	assert.True(t, b.Bit(1, 8))
	assert.False(t, b.Bit(1, 9))
	assert.False(t, b.Bit(-1, 0))
	assert.Equal(t, 3, b.Count())

	b.SetBit(2, 7, false)
	assert.False(t, b.Bit(2, 7))
	assert.Equal(t, color.White, b.At(0, 0))
	assert.Equal(t, color.Black, b.At(3, 3))
}

func pattern(t *testing.T, w, h int) *Bitmap {
	b, err := New(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.SetBit(x, y, (x*7+y*3)%5 < 2)
		}
	}
	return b
}

func TestRotate90(t *testing.T) {
	b, err := New(3, 2)
	require.NoError(t, err)
	b.SetBit(0, 0, true) // top left
	b.SetBit(2, 1, true) // bottom right

	require.NoError(t, b.Rotate90())
	assert.Equal(t, 2, b.Width)
	assert.Equal(t, 3, b.Height)
	assert.True(t, b.Bit(1, 0))
	assert.True(t, b.Bit(0, 2))
	assert.Equal(t, 2, b.Count())
}

func TestRotate90FourTimes(t *testing.T) {
	for _, size := range []image.Point{{8, 8}, {5, 13}, {17, 3}, {1, 1}, {40, 20}} {
		b := pattern(t, size.X, size.Y)
		orig := b.Clone()

		for i := 0; i < 4; i++ {
			require.NoError(t, b.Rotate90())
		}

		assert.Equal(t, orig.Width, b.Width)
		assert.Equal(t, orig.Height, b.Height)
		assert.Equal(t, orig.Pix, b.Pix)
	}
}

func TestRotate90Bounds(t *testing.T) {
	// 9 by 900 packs into 1017 bytes but 900 by 9 needs 1800
	b, err := New(9, 900)
	require.NoError(t, err)
	assert.Equal(t, ErrBounds, b.Rotate90())
	assert.Equal(t, 9, b.Width)
	assert.Equal(t, 900, b.Height)
}

func TestEncodeDecode(t *testing.T) {
	b := pattern(t, 12, 10)

	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, b))
	assert.Equal(t, EncodedSize(12, 10), buf.Len())

	cfg, err := DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 10, cfg.Height)

	m, format, err := image.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "mbm", format)
	assert.Equal(t, b, m)
}

func TestDecodeErrors(t *testing.T) {
	b := pattern(t, 4, 4)
	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, b))
	data := buf.Bytes()

	_, err := Decode(bytes.NewReader(data[:len(data)-1]))
	assert.Equal(t, errNotEnough, err)

	_, err = Decode(bytes.NewReader(append(append([]byte(nil), data...), 0)))
	assert.Equal(t, errTooMuch, err)

	_, err = Decode(bytes.NewReader([]byte("XXXX\x01\x00\x01\x00\x00")))
	assert.Equal(t, errBadSignature, err)

	_, err = Decode(bytes.NewReader([]byte("MBM1\xff\x00\xff\x00")))
	assert.Equal(t, ErrBounds, err)
}

func TestFromImage(t *testing.T) {
	m := image.NewRGBA(image.Rect(10, 10, 18, 14))
	draw.Draw(m, m.Bounds(), image.NewUniform(color.RGBA{0x10, 0x10, 0x40, 0xff}), image.Point{}, draw.Src)
	for x := 10; x < 18; x++ {
		m.Set(x, 11, color.RGBA{0xf0, 0xe0, 0xd0, 0xff})
	}

	b, err := FromImage(m)
	require.NoError(t, err)
	assert.Equal(t, 8, b.Width)
	assert.Equal(t, 4, b.Height)
	assert.Equal(t, 8, b.Count())
	for x := 0; x < 8; x++ {
		assert.True(t, b.Bit(x, 1))
	}

	_, err = FromImage(image.NewGray(image.Rect(0, 0, 200, 200)))
	assert.Equal(t, ErrBounds, err)
}

func TestFromPalettedImage(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.White, color.Black})
	m.SetColorIndex(1, 1, 1)

	b, err := FromImage(m)
	require.NoError(t, err)
	assert.False(t, b.Bit(1, 1))
	assert.True(t, b.Bit(0, 0))
	assert.Equal(t, 3, b.Count())
}
