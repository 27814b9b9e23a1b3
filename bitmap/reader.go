package bitmap

import (
	"encoding/binary"
	"errors"
	"image"
	"io"
)

var (
	errNotEnough    = errors.New("bitmap: not enough image data")
	errTooMuch      = errors.New("bitmap: too much image data")
	errBadSignature = errors.New("bitmap: invalid signature")
)

func init() {
	image.RegisterFormat("mbm", signature, func(r io.Reader) (image.Image, error) {
		return Decode(r)
	}, DecodeConfig)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	width, height int

	// Enough to hold the largest legal bitmap
	tmp [Capacity]byte
}

func (d *decoder) readHeader() error {
	var h [headerSize]byte
	if err := readFull(d.r, h[:]); err != nil {
		return err
	}
	if string(h[:len(signature)]) != signature {
		return errBadSignature
	}
	d.width = int(binary.LittleEndian.Uint16(h[4:]))
	d.height = int(binary.LittleEndian.Uint16(h[6:]))
	if !Fits(d.width, d.height) {
		return ErrBounds
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	if err := readFull(d.r, d.tmp[:PackedSize(d.width, d.height)]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if n, err := r.Read(d.tmp[:1]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	return nil
}

// Decode reads a bitmap from r.
func Decode(r io.Reader) (*Bitmap, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return &Bitmap{
		Width:  d.width,
		Height: d.height,
		Pix:    append([]byte(nil), d.tmp[:PackedSize(d.width, d.height)]...),
	}, nil
}

// DecodeConfig returns the colour model and dimensions of a bitmap without
// decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: Palette,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
