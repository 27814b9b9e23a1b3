package monosprite

import (
	"errors"
	"testing"

	"github.com/bodgit/monosprite/bitmap"
	"github.com/bodgit/monosprite/font"
	"github.com/bodgit/monosprite/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetText(t *testing.T) {
	w := newTestWorld(t)
	s, err := w.CreateText("label", []string{"AB"}, geom.Vec(10, 10), false)
	require.NoError(t, err)
	mustCreate(t, w, "block", "block", 20, 12)

	require.NoError(t, w.Rotate90("label"))
	require.NoError(t, w.SetText("label", []string{"A"}, false))
	assert.Equal(t, geom.Vec(10, 10), s.Position())
	assert.Equal(t, 0, s.Rotation())
	width, height := s.Size()
	assert.Equal(t, 7, width)
	assert.Equal(t, 13, height)

	want := newTestWorld(t)
	_, err = want.CreateText("label", []string{"A"}, geom.Vec(10, 10), false)
	require.NoError(t, err)
	mustCreate(t, want, "block", "block", 20, 12)
	assert.Equal(t, fbBytes(want), fbBytes(w))

	assert.True(t, errors.Is(w.SetText("missing", []string{"A"}, false), ErrNotFound))

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	before := fbBytes(w)
	assert.True(t, errors.Is(w.SetText("label", []string{string(long)}, false), bitmap.ErrBounds))
	assert.Equal(t, before, fbBytes(w))
}

func TestMenu(t *testing.T) {
	w := newTestWorld(t)
	entries := []string{"start", "quit"}

	s, err := w.CreateMenu("menu", entries, geom.Vec(0, 0), 0)
	require.NoError(t, err)

	b, err := font.RenderHighlighted(w.Font(), entries, 0)
	require.NoError(t, err)
	assert.Equal(t, b, s.Bitmap())

	require.NoError(t, w.SetMenu("menu", entries, 1))

	want := newTestWorld(t)
	_, err = want.CreateMenu("menu", entries, geom.Vec(0, 0), 1)
	require.NoError(t, err)
	assert.Equal(t, fbBytes(want), fbBytes(w))

	assert.True(t, errors.Is(w.SetMenu("missing", entries, 0), ErrNotFound))
}
