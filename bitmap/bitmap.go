/*
Package bitmap implements the packed monochrome sprite bitmap and a small
codec for it.

Pixels are stored one bit each, page-aligned to the top edge of the bitmap:
the bitmap is split into horizontal pages eight pixels tall and every byte
holds one column of one page, least significant bit at the top. Bytes are
ordered page by page and column by column within a page, so a W by H bitmap
packs into W * ceil(H/8) bytes. This matches the memory layout of the paged
framebuffer sprites are composited into.

A bitmap may never pack into more than Capacity bytes.

The encoded form is the four byte signature "MBM1", the width and height as
little-endian 16-bit values and then the packed pixels. There is no
compression so an encoded bitmap is always 8 + W * ceil(H/8) bytes.
*/
package bitmap

import (
	"errors"
	"image"
	"image/color"
)

const (
	pageHeight = 8

	// Capacity is the maximum number of packed bytes a bitmap may occupy;
	// it is the size of a full 128 by 64 page.
	Capacity = 1024

	signature  = "MBM1"
	headerSize = len(signature) + 4
)

// ErrBounds is returned when a bitmap footprint would exceed Capacity or has
// a negative size.
var ErrBounds = errors.New("bitmap: footprint exceeds packed buffer capacity")

// Palette is the colour model of every Bitmap; index 0 is an unlit pixel
// and index 1 a lit one.
var Palette = color.Palette{color.Black, color.White}

// PackedSize returns the number of bytes a w by h bitmap occupies.
func PackedSize(w, h int) int {
	return w * ((h + pageHeight - 1) / pageHeight)
}

// EncodedSize returns the number of bytes Encode writes for a w by h
// bitmap.
func EncodedSize(w, h int) int {
	return headerSize + PackedSize(w, h)
}

// Fits reports whether a w by h bitmap is a legal size.
func Fits(w, h int) bool {
	return w >= 0 && h >= 0 && PackedSize(w, h) <= Capacity
}

// Bitmap is a packed 1-bit image. It implements image.Image and draw.Image.
type Bitmap struct {
	Width, Height int
	Pix           []byte
}

// New returns a blank w by h bitmap.
func New(w, h int) (*Bitmap, error) {
	if !Fits(w, h) {
		return nil, ErrBounds
	}
	return &Bitmap{
		Width:  w,
		Height: h,
		Pix:    make([]byte, PackedSize(w, h)),
	}, nil
}

// Clone returns a deep copy of b.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{
		Width:  b.Width,
		Height: b.Height,
		Pix:    append([]byte(nil), b.Pix...),
	}
}

// PackedSize returns the number of bytes of Pix in use.
func (b *Bitmap) PackedSize() int {
	return PackedSize(b.Width, b.Height)
}

func (b *Bitmap) offset(x, y int) (int, byte, bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, 0, false
	}
	return (y>>3)*b.Width + x, 1 << uint(y&7), true
}

// Bit reports whether the pixel at (x, y) is lit. Pixels outside the bitmap
// are unlit.
func (b *Bitmap) Bit(x, y int) bool {
	i, mask, ok := b.offset(x, y)
	return ok && b.Pix[i]&mask != 0
}

// SetBit lights or clears the pixel at (x, y); pixels outside the bitmap are
// ignored.
func (b *Bitmap) SetBit(x, y int, on bool) {
	i, mask, ok := b.offset(x, y)
	if !ok {
		return
	}
	if on {
		b.Pix[i] |= mask
	} else {
		b.Pix[i] &^= mask
	}
}

// Count returns the number of lit pixels.
func (b *Bitmap) Count() int {
	var n int
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Bit(x, y) {
				n++
			}
		}
	}
	return n
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model {
	return Palette
}

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	if b.Bit(x, y) {
		return Palette[1]
	}
	return Palette[0]
}

// Set implements draw.Image; the colour is snapped to the nearest entry in
// Palette.
func (b *Bitmap) Set(x, y int, c color.Color) {
	b.SetBit(x, y, Palette.Index(c) == 1)
}
