package bezier

// MaxDegree bounds the degree of curves and surfaces so that de Casteljau
// reduction can run in a fixed-size stack buffer.
const MaxDegree = 16

// EvaluateCurve evaluates the Bezier curve defined by controls at t.
//
// The degree is len(controls)-1 and must be in [1, MaxDegree]. The returned
// tangent is b-a, where a and b are the two points left after all but the last
// reduction round. It points along the derivative but is not normalized; only
// its direction is meaningful.
func EvaluateCurve(controls []Point, t float64) (Point, Vector, error) {
	degree := len(controls) - 1
	if degree < 1 {
		return Point{}, Vector{}, ErrDegenerateDegree
	}
	if degree > MaxDegree {
		return Point{}, Vector{}, ErrDegreeTooHigh
	}
	p, tan := evalCurve(controls, t)
	return p, tan, nil
}

// evalCurve is EvaluateCurve without the degree checks. Callers guarantee
// 2 <= len(controls) <= MaxDegree+1.
func evalCurve(controls []Point, t float64) (Point, Vector) {
	var work [MaxDegree + 1]Point
	n := copy(work[:], controls)

	// Each round replaces the active prefix in place and shrinks it by one.
	for active := n; active > 2; active-- {
		for i := 0; i < active-1; i++ {
			work[i] = work[i].Lerp(work[i+1], t)
		}
	}
	a, b := work[0], work[1]
	return a.Lerp(b, t), b.Sub(a)
}
