package catalog

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/monosprite/bitmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	b, err := bitmap.New(2, 2)
	require.NoError(t, err)

	m := Map{"b": b, "a": b}

	got, err := m.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = m.Lookup("missing")
	assert.Equal(t, ErrNotFound, err)

	assert.Equal(t, []string{"a", "b"}, m.Names())
}

func newDB(t *testing.T) *DB {
	db, err := NewDB(filepath.Join(t.TempDir(), "catalog.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDBAddLookup(t *testing.T) {
	db := newDB(t)

	b, err := bitmap.New(3, 9)
	require.NoError(t, err)
	b.SetBit(2, 8, true)

	require.NoError(t, db.Add("ship", "1234", b))

	got, err := db.Lookup("ship")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	hash, err := db.Hash("ship")
	require.NoError(t, err)
	assert.Equal(t, "1234", hash)

	hash, err = db.Hash("missing")
	require.NoError(t, err)
	assert.Empty(t, hash)

	_, err = db.Lookup("missing")
	assert.Equal(t, ErrNotFound, err)

	assert.Equal(t, bitmap.ErrBounds, db.Add("huge", "", &bitmap.Bitmap{Width: 200, Height: 200}))
}

func writePNG(t *testing.T, file string, w, h int) {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		m.SetGray(x, 0, color.Gray{Y: 0xff})
	}

	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func TestDBImport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".hidden"), 0o755))

	writePNG(t, filepath.Join(dir, "ship.png"), 8, 8)
	writePNG(t, filepath.Join(dir, "sub", "rock.png"), 5, 3)
	writePNG(t, filepath.Join(dir, ".hidden", "secret.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "huge.png"), 200, 200)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	db := newDB(t)

	n, err := db.Import(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	names, err := db.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"rock", "ship"}, names)

	ship, err := db.Lookup("ship")
	require.NoError(t, err)
	assert.Equal(t, 8, ship.Width)
	assert.Equal(t, 8, ship.Count())

	// Nothing changed so nothing is imported again
	n, err = db.Import(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	m, err := db.Map()
	require.NoError(t, err)
	assert.Len(t, m, 2)
}

func TestNameFor(t *testing.T) {
	assert.Equal(t, "ship", NameFor("/a/b/ship.png"))
	assert.Equal(t, "ship.big", NameFor("ship.big.gif"))
}
