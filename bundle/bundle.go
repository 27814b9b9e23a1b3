/*
Package bundle implements a compact binary file holding a set of named
bitmaps, suitable for embedding into firmware or a program that should not
carry an SQLite catalog around.

The file starts with an index of up to 256 entries: the 64-bit xxhash of
each name, sorted, padded with 0xff bytes, followed by one 16-bit bitmap
number per entry, also padded with 0xff bytes. The encoded bitmaps follow
in bitmap number order. All integers are little-endian. Names themselves
are not stored.
*/
package bundle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/bodgit/monosprite/bitmap"
	"github.com/bodgit/monosprite/catalog"
	"github.com/cespare/xxhash/v2"
)

const (
	// Filename is the conventional filename used when writing to disk
	Filename   = "sprites.mbb"
	maxEntries = 256

	emptyKey   = 0xffffffffffffffff
	emptyIndex = 0xffff
)

var errInsufficient = errors.New("bundle: insufficient data")

// Bundle is a set of bitmaps keyed by name. It implements catalog.Catalog
// and the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Bundle struct {
	keys    map[uint64]uint16
	bitmaps []*bitmap.Bitmap
}

var _ catalog.Catalog = (*Bundle)(nil)

// New returns an empty bundle.
func New() *Bundle {
	return &Bundle{
		keys: make(map[uint64]uint16),
	}
}

func key(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Length returns the number of names in the bundle.
func (b *Bundle) Length() int {
	return len(b.keys)
}

// Set stores bm under name. Adding a name that is already present is a
// no-op.
func (b *Bundle) Set(name string, bm *bitmap.Bitmap) error {
	if !bitmap.Fits(bm.Width, bm.Height) {
		return bitmap.ErrBounds
	}
	k := key(name)
	if k == emptyKey {
		return fmt.Errorf("bundle: unusable name %q", name)
	}
	if _, ok := b.keys[k]; ok {
		return nil
	}
	if len(b.keys) >= maxEntries {
		return fmt.Errorf("bundle: more than %d entries", maxEntries)
	}
	b.bitmaps = append(b.bitmaps, bm.Clone())
	b.keys[k] = uint16(len(b.bitmaps) - 1)
	return nil
}

// Lookup implements catalog.Catalog.
func (b *Bundle) Lookup(name string) (*bitmap.Bitmap, error) {
	i, ok := b.keys[key(name)]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return b.bitmaps[i], nil
}

// MarshalBinary encodes the bundle into binary form and returns the result.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	length := len(b.keys)

	keys := make([]uint64, 0, length)
	for k := range b.keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	buf := new(bytes.Buffer)

	// Write out keys and pad
	if err := binary.Write(buf, binary.LittleEndian, keys); err != nil {
		return nil, err
	}
	buf.Write(bytes.Repeat([]byte{0xff}, 8*(maxEntries-length)))

	// Write out bitmap numbers and pad
	for _, k := range keys {
		if err := binary.Write(buf, binary.LittleEndian, b.keys[k]); err != nil {
			return nil, err
		}
	}
	buf.Write(bytes.Repeat([]byte{0xff}, 2*(maxEntries-length)))

	for _, bm := range b.bitmaps {
		if err := bitmap.Encode(buf, bm); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes the bundle from binary form.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	b.keys = make(map[uint64]uint16)
	b.bitmaps = nil

	var keys [maxEntries]uint64
	if err := binary.Read(r, binary.LittleEndian, &keys); err != nil {
		return errInsufficient
	}

	var indices [maxEntries]uint16
	if err := binary.Read(r, binary.LittleEndian, &indices); err != nil {
		return errInsufficient
	}

	count := -1
	for i, k := range keys {
		if k == emptyKey || indices[i] == emptyIndex {
			continue
		}
		b.keys[k] = indices[i]
		if int(indices[i]) > count {
			count = int(indices[i])
		}
	}

	rest := data[len(data)-r.Len():]
	for i := 0; i <= count; i++ {
		cfg, err := bitmap.DecodeConfig(bytes.NewReader(rest))
		if err != nil {
			return err
		}
		n := bitmap.EncodedSize(cfg.Width, cfg.Height)
		if n > len(rest) {
			return errInsufficient
		}
		bm, err := bitmap.Decode(bytes.NewReader(rest[:n]))
		if err != nil {
			return err
		}
		b.bitmaps = append(b.bitmaps, bm)
		rest = rest[n:]
	}

	return nil
}
