package bitmap

// Rotate90 turns b a quarter turn clockwise in place; the width and height
// are swapped and the source pixel at (x, y) lands at (H-1-y, x). If the
// rotated bitmap would not fit in Capacity bytes b is left untouched and
// ErrBounds returned.
func (b *Bitmap) Rotate90() error {
	w, h := b.Height, b.Width
	n := PackedSize(w, h)
	if n > Capacity {
		return ErrBounds
	}

	var tmp [Capacity]byte
	src := Bitmap{Width: b.Width, Height: b.Height, Pix: tmp[:copy(tmp[:], b.Pix[:b.PackedSize()])]}

	if cap(b.Pix) < n {
		b.Pix = make([]byte, n)
	}
	b.Pix = b.Pix[:n]
	for i := range b.Pix {
		b.Pix[i] = 0
	}
	b.Width, b.Height = w, h

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			if src.Bit(x, y) {
				b.SetBit(src.Height-1-y, x, true)
			}
		}
	}

	return nil
}
