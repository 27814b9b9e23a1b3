package monosprite

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/bodgit/monosprite/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeHit(t *testing.T) {
	w := newTestWorld(t)
	mustCreate(t, w, "left", "small", 0, 10)
	mustCreate(t, w, "corner", "small", 126, 62)

	tables := []struct {
		name string
		d    geom.Vector
		want Axis
	}{
		{"left", geom.Vec(0, 0), AxisNone},
		{"left", geom.Vec(-1, 0), AxisX},
		{"left", geom.Vec(0, -20), AxisY},
		{"corner", geom.Vec(0, 0), AxisNone},
		{"corner", geom.Vec(0, 1), AxisY},
		{"corner", geom.Vec(1, 0), AxisX},
		{"corner", geom.Vec(1, 1), AxisX},
	}

	for _, table := range tables {
		a, err := w.EdgeHit(table.name, table.d)
		require.NoError(t, err)
		assert.Equal(t, table.want, a, "%s %v", table.name, table.d)
	}

	_, err := w.EdgeHit("missing", geom.Vector{})
	assert.True(t, errors.Is(err, ErrNotFound))

	ok, err := w.OnScreen("corner")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, w.MoveTo("corner", geom.Vec(127, 62)))
	ok, err = w.OnScreen("corner")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAxisReflect(t *testing.T) {
	tables := []struct {
		axis    Axis
		degrees float64
		want    float64
	}{
		{AxisNone, 45, 45},
		{AxisX, 30, 330},
		{AxisX, 270, 90},
		{AxisY, 30, 150},
		{AxisY, 200, 340},
	}

	for _, table := range tables {
		assert.InDelta(t, table.want, table.axis.Reflect(table.degrees), 1e-9, "%v %v", table.axis, table.degrees)
	}
	assert.Equal(t, "x", AxisX.String())
}

func TestMoveAngle(t *testing.T) {
	w := newTestWorld(t)
	s := mustCreate(t, w, "s", "small", 10, 10)

	step, err := w.MoveAngle("s", 90, 100, 50*time.Millisecond, false)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1, 0), step)
	assert.InDelta(t, 15, s.Position().X, 1e-9)
	assert.InDelta(t, 10, s.Position().Y, 1e-9)

	_, err = w.MoveAngle("s", 180, 100, 50*time.Millisecond, false)
	require.NoError(t, err)
	assert.InDelta(t, 15, s.Position().X, 1e-9)
	assert.InDelta(t, 15, s.Position().Y, 1e-9)

	_, err = w.MoveAngle("missing", 0, 1, time.Second, false)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReset(t *testing.T) {
	w := newTestWorld(t)
	mustCreate(t, w, "a", "block", 0, 0)
	mustCreate(t, w, "b", "block", 40, 40)

	w.Reset()
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Names())
	assert.Zero(t, w.Framebuffer().Bitmap().Count())
	assert.Equal(t, w.Framebuffer().Bounds(), w.Framebuffer().Dirty())

	mustCreate(t, w, "a", "small", 1, 1)
	assert.Equal(t, 4, w.Framebuffer().Bitmap().Count())
}
