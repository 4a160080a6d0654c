package bezier

import (
	"fmt"
	m "math"
)

const (
	// NormalEpsilon is the sine of the angle between the tangents at or below
	// which they count as parallel. It is relative to the tangent lengths, so
	// the test does not depend on the scale of the patch.
	NormalEpsilon = 1e-12
	// NudgeDelta is how far (in parameter space) a degenerate sample is moved
	// toward the patch centre when re-deriving its normal.
	NudgeDelta = 1e-4
)

// FallbackNormal is returned when no usable normal can be derived at or near a
// sample, e.g. for a patch whose control points all coincide.
var FallbackNormal = Vector{0, 0, 1}

// ControlGrid is an immutable grid of control points indexed [row][col].
type ControlGrid struct {
	points [][]Point
}

// Rows returns the number of control rows (DegreeV+1).
func (g ControlGrid) Rows() int { return len(g.points) }

// Cols returns the number of control columns (DegreeU+1).
func (g ControlGrid) Cols() int {
	if len(g.points) == 0 {
		return 0
	}
	return len(g.points[0])
}

// At returns the control point at row, col.
func (g ControlGrid) At(row, col int) Point {
	return g.points[row][col]
}

// Surface is a tensor-product Bezier patch. It is read-only once built.
type Surface struct {
	grid ControlGrid
	uDeg int
	vDeg int
}

// NewSurface builds a surface from a flat coordinate list laid out row-major with
// u varying fastest: the control point at column i, row j starts at index
// 3*i + 3*(uDegree+1)*j.
func NewSurface(uDegree, vDegree int, coords []float64) (*Surface, error) {
	if uDegree < 1 || vDegree < 1 {
		return nil, fmt.Errorf("%w: got u=%d v=%d", ErrDegenerateDegree, uDegree, vDegree)
	}
	if uDegree > MaxDegree || vDegree > MaxDegree {
		return nil, fmt.Errorf("%w: got u=%d v=%d, max %d", ErrDegreeTooHigh, uDegree, vDegree, MaxDegree)
	}
	want := 3 * (uDegree + 1) * (vDegree + 1)
	if len(coords) != want {
		return nil, fmt.Errorf("%w: got %d coordinates, want %d", ErrControlPointCount, len(coords), want)
	}

	points := make([][]Point, vDegree+1)
	for j := 0; j <= vDegree; j++ {
		row := make([]Point, uDegree+1)
		for i := 0; i <= uDegree; i++ {
			l := 3*i + 3*(uDegree+1)*j
			row[i] = Point{coords[l], coords[l+1], coords[l+2]}
		}
		points[j] = row
	}
	return &Surface{grid: ControlGrid{points: points}, uDeg: uDegree, vDeg: vDegree}, nil
}

func (s *Surface) DegreeU() int { return s.uDeg }
func (s *Surface) DegreeV() int { return s.vDeg }

// Grid returns the surface's control grid.
func (s *Surface) Grid() ControlGrid { return s.grid }

// Corners returns the points the surface passes through at (u,v) = (0,0), (1,0),
// (0,1) and (1,1), in that order.
func (s *Surface) Corners() [4]Point {
	last := s.vDeg
	return [4]Point{
		s.grid.points[last][0],
		s.grid.points[last][s.uDeg],
		s.grid.points[0][0],
		s.grid.points[0][s.uDeg],
	}
}

// Evaluate returns the position and unit normal of the surface at (u, v).
//
// When the tangents are parallel or vanish, the normal is re-derived at a point
// nudged NudgeDelta toward the patch centre on both axes; if that is degenerate
// too, FallbackNormal is returned.
func (s *Surface) Evaluate(u, v float64) (Point, Vector) {
	p, uTan, vTan := s.tangents(u, v)
	if n, ok := surfaceNormal(uTan, vTan); ok {
		return p, n
	}

	_, uTan, vTan = s.tangents(nudge(u), nudge(v))
	if n, ok := surfaceNormal(uTan, vTan); ok {
		return p, n
	}
	return p, FallbackNormal
}

// surfaceNormal is the unit cross product of the tangents. It fails when either
// tangent vanishes or |uTan x vTan| <= NormalEpsilon * |uTan| * |vTan|.
func surfaceNormal(uTan, vTan Vector) (Vector, bool) {
	lu, lv := uTan.Length(), vTan.Length()
	if lu == 0 || lv == 0 || m.IsNaN(lu) || m.IsNaN(lv) || m.IsInf(lu, 0) || m.IsInf(lv, 0) {
		return Vector{}, false
	}
	// Work on unit tangents so the product cannot underflow for tiny patches.
	uDir, vDir := uTan.Scale(1/lu), vTan.Scale(1/lv)
	n := uDir.Cross(vDir)
	l := n.Length()
	if l <= NormalEpsilon || m.IsNaN(l) {
		return Vector{}, false
	}
	return n.Scale(1 / l), true
}

// tangents evaluates the position plus both parametric tangents at (u, v).
//
// The position falls out of the row-then-column pass and is computed again by
// the column-then-row pass that yields the u tangent. The duplicated work keeps
// both passes symmetric and is cheap for the degrees involved.
func (s *Surface) tangents(u, v float64) (Point, Vector, Vector) {
	var uControls, vControls, column [MaxDegree + 1]Point
	w := 1 - v

	for j := 0; j <= s.vDeg; j++ {
		uControls[j], _ = evalCurve(s.grid.points[j], u)
	}
	p, vTan := evalCurve(uControls[:s.vDeg+1], w)

	for i := 0; i <= s.uDeg; i++ {
		for j := 0; j <= s.vDeg; j++ {
			column[j] = s.grid.points[j][i]
		}
		vControls[i], _ = evalCurve(column[:s.vDeg+1], w)
	}
	_, uTan := evalCurve(vControls[:s.uDeg+1], u)

	return p, uTan, vTan
}

func nudge(t float64) float64 {
	if t < 0.5 {
		return t + NudgeDelta
	}
	return t - NudgeDelta
}

// String implements fmt.Stringer with a compact summary.
func (s *Surface) String() string {
	return fmt.Sprintf("bezier.Surface{u=%d v=%d}", s.uDeg, s.vDeg)
}
