/*
Package geom implements the small amount of 2D geometry needed to place and
move sprites: a real-valued vector used for both positions and velocities and
an integer axis-aligned bounding box.
*/
package geom

import "math"

// Vector is a 2D vector. Positions are in pixels, velocities in pixels per
// second.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for Vector{x, y}.
func Vec(x, y float64) Vector {
	return Vector{x, y}
}

// Add returns v+o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

// Sub returns v-o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vector) Scale(k float64) Vector {
	return Vector{v.X * k, v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vector) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length, or the zero vector if v has no
// length.
func (v Vector) Normalize() Vector {
	l := v.Len()
	if l == 0 {
		return Vector{}
	}
	return v.Scale(1 / l)
}

// Floor returns the integer pixel coordinates v falls in.
func (v Vector) Floor() (int, int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// Finite reports whether both components are neither NaN nor infinite.
func (v Vector) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// NormalizeDegrees returns d reduced to the range [0, 360).
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// FromAngle returns a velocity of speed pixels per second along a compass
// heading in degrees: 0 is up the screen and angles increase clockwise.
func FromAngle(degrees, speed float64) Vector {
	rads := NormalizeDegrees(degrees-90) * math.Pi / 180
	return Vector{math.Cos(rads) * speed, math.Sin(rads) * speed}
}

// CenterToSide returns the leading edge of a span of size pixels centred
// on center.
func CenterToSide(center, size int) int {
	return center - size/2
}

// Bounds is an axis-aligned rectangle covering the pixels X..X+W-1 and
// Y..Y+H-1.
type Bounds struct {
	X, Y, W, H int
}

// Empty reports whether b covers no pixels.
func (b Bounds) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Intersects reports whether b and o share at least one pixel. Rectangles
// that only touch along an edge do not intersect.
func (b Bounds) Intersects(o Bounds) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	return b.X < o.X+o.W && o.X < b.X+b.W && b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// Union returns the smallest Bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	switch {
	case b.Empty():
		return o
	case o.Empty():
		return b
	}
	x0, y0 := min(b.X, o.X), min(b.Y, o.Y)
	x1, y1 := max(b.X+b.W, o.X+o.W), max(b.Y+b.H, o.Y+o.H)
	return Bounds{x0, y0, x1 - x0, y1 - y0}
}

// Intersect returns the pixels common to b and o, which may be empty.
func (b Bounds) Intersect(o Bounds) Bounds {
	x0, y0 := max(b.X, o.X), max(b.Y, o.Y)
	x1, y1 := min(b.X+b.W, o.X+o.W), min(b.Y+b.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Bounds{}
	}
	return Bounds{x0, y0, x1 - x0, y1 - y0}
}
