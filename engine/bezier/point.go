package bezier

import (
	m "math"

	"github.com/spaghettifunk/patchview/engine/math"
)

// Point is a position in 3D space.
type Point struct {
	X, Y, Z float64
}

// Vector is a displacement in 3D space. Unlike Point it has no location.
type Vector struct {
	X, Y, Z float64
}

// Add returns p displaced by d.
func (p Point) Add(d Vector) Point {
	return Point{p.X + d.X, p.Y + d.Y, p.Z + d.Z}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Lerp interpolates between p (t=0) and q (t=1). Both end points are
// reproduced exactly.
func (p Point) Lerp(q Point, t float64) Point {
	s := 1 - t
	return Point{
		X: q.X*t + p.X*s,
		Y: q.Y*t + p.Y*s,
		Z: q.Z*t + p.Z*s,
	}
}

// ApproxEqual reports whether every component of p and q differs by at most eps.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return m.Abs(p.X-q.X) <= eps && m.Abs(p.Y-q.Y) <= eps && m.Abs(p.Z-q.Z) <= eps
}

// Vec4 converts p to a homogeneous position (W=1).
func (p Point) Vec4() math.Vec4 {
	return math.NewVec4(float32(p.X), float32(p.Y), float32(p.Z), 1.0)
}

func (v Vector) Add(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

func (v Vector) Sub(w Vector) Vector {
	return Vector{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v multiplied by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v Vector) Cross(w Vector) Vector {
	return Vector{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

func (v Vector) Length() float64 {
	return m.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector in the direction of v. The boolean is false,
// and v is returned unchanged, when the length is zero or not finite.
func (v Vector) Normalize() (Vector, bool) {
	l := v.Length()
	if l == 0 || m.IsNaN(l) || m.IsInf(l, 0) {
		return v, false
	}
	return Vector{v.X / l, v.Y / l, v.Z / l}, true
}

// ApproxEqual reports whether every component of v and w differs by at most eps.
func (v Vector) ApproxEqual(w Vector, eps float64) bool {
	return m.Abs(v.X-w.X) <= eps && m.Abs(v.Y-w.Y) <= eps && m.Abs(v.Z-w.Z) <= eps
}

// Vec4 converts v to a homogeneous direction (W=0).
func (v Vector) Vec4() math.Vec4 {
	return math.NewVec4(float32(v.X), float32(v.Y), float32(v.Z), 0.0)
}
