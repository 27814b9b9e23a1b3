package bitmap

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// Perceived luminance of c, 0-0xffff. Colours are alpha-premultiplied so a
// transparent pixel is always dark.
func luminance(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return (19595*r + 38470*g + 7471*b + 1<<15) >> 16
}

// Work out which palette entries become lit pixels. Everything brighter
// than halfway between the darkest and brightest entry is lit; a palette
// with a single colour is split at mid-grey.
func litIndices(p color.Palette) []bool {
	lo, hi := uint32(0xffff), uint32(0)
	for _, c := range p {
		l := luminance(c)
		if l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}

	threshold := (lo + hi) >> 1
	if lo == hi {
		threshold = 0x7fff
	}

	lit := make([]bool, len(p))
	for i, c := range p {
		lit[i] = luminance(c) > threshold
	}
	return lit
}

// FromImage converts an arbitrary image into a bitmap. Images with more than
// two colours are first reduced to two with a median cut quantizer.
func FromImage(m image.Image) (*Bitmap, error) {
	if bm, ok := m.(*Bitmap); ok {
		return bm.Clone(), nil
	}

	b := m.Bounds()
	dst, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > len(Palette) {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, len(Palette)), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	lit := litIndices(pm.Palette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if i := int(pm.ColorIndexAt(x, y)); i < len(lit) && lit[i] {
				dst.SetBit(x-b.Min.X, y-b.Min.Y, true)
			}
		}
	}

	return dst, nil
}

// Encode writes the image m to w in bitmap format, converting it first if it
// is not already a *Bitmap.
func Encode(w io.Writer, m image.Image) error {
	bm, ok := m.(*Bitmap)
	if !ok {
		var err error
		if bm, err = FromImage(m); err != nil {
			return err
		}
	}
	if !Fits(bm.Width, bm.Height) || bm.Width > 0xffff || bm.Height > 0xffff {
		return ErrBounds
	}

	var h [headerSize]byte
	copy(h[:], signature)
	binary.LittleEndian.PutUint16(h[4:], uint16(bm.Width))
	binary.LittleEndian.PutUint16(h[6:], uint16(bm.Height))

	if _, err := w.Write(h[:]); err != nil {
		return err
	}

	_, err := w.Write(bm.Pix[:bm.PackedSize()])
	return err
}
