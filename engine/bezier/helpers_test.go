package bezier

import (
	m "math"
	"math/rand"
	"testing"
)

const tol = 1e-9

func binomial(n, k int) float64 {
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return r
}

func bernstein(n, i int, t float64) float64 {
	return binomial(n, i) * m.Pow(t, float64(i)) * m.Pow(1-t, float64(n-i))
}

// bernsteinCurve evaluates a Bezier curve in closed form.
func bernsteinCurve(controls []Point, t float64) Point {
	n := len(controls) - 1
	var out Point
	for i, c := range controls {
		b := bernstein(n, i, t)
		out = out.Add(Vector{c.X * b, c.Y * b, c.Z * b})
	}
	return out
}

// bernsteinDerivative evaluates the first derivative of a Bezier curve in closed form.
func bernsteinDerivative(controls []Point, t float64) Vector {
	n := len(controls) - 1
	var out Vector
	for i := 0; i < n; i++ {
		out = out.Add(controls[i+1].Sub(controls[i]).Scale(float64(n) * bernstein(n-1, i, t)))
	}
	return out
}

func randomControls(rng *rand.Rand, n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{rng.Float64()*4 - 2, rng.Float64()*4 - 2, rng.Float64()*4 - 2}
	}
	return pts
}

func randomCoords(rng *rand.Rand, uDeg, vDeg int) []float64 {
	coords := make([]float64, 3*(uDeg+1)*(vDeg+1))
	for i := range coords {
		coords[i] = rng.Float64()*4 - 2
	}
	return coords
}

func mustSurface(t testing.TB, uDeg, vDeg int, coords []float64) *Surface {
	t.Helper()
	s, err := NewSurface(uDeg, vDeg, coords)
	if err != nil {
		t.Fatalf("NewSurface(%d, %d) = %v", uDeg, vDeg, err)
	}
	return s
}

// bilinearCoords is the unit square in the z=0 plane.
func bilinearCoords() []float64 {
	return []float64{
		0, 0, 0, 1, 0, 0,
		0, 1, 0, 1, 1, 0,
	}
}

// planarBicubicCoords is a bicubic patch lying in z=0, with interior control
// points pushed around in-plane so the parametrisation is not uniform.
func planarBicubicCoords() []float64 {
	coords := make([]float64, 0, 48)
	for j := 0; j <= 3; j++ {
		for i := 0; i <= 3; i++ {
			x := float64(i)
			y := float64(j)
			if i > 0 && i < 3 {
				x += 0.2 * float64((i+2*j)%3-1)
			}
			if j > 0 && j < 3 {
				y += 0.15 * float64((2*i+j)%3-1)
			}
			coords = append(coords, x, y, 0)
		}
	}
	return coords
}
