package bezier

import "github.com/spaghettifunk/patchview/engine/math"

// MinCoarseness is the lowest coarseness that produces a sample grid.
const MinCoarseness = 2

// SampleGrid holds USamples*VSamples surface samples in row-major order: row j
// is v = j/(VSamples-1) and column i is u = i/(USamples-1).
type SampleGrid struct {
	USamples  int
	VSamples  int
	Positions []math.Vec4
	Normals   []math.Vec4
}

// Len returns the number of samples in the grid.
func (g SampleGrid) Len() int { return len(g.Positions) }

// At returns the sample at the given row (v) and column (u).
func (g SampleGrid) At(row, col int) (math.Vec4, math.Vec4) {
	idx := row*g.USamples + col
	return g.Positions[idx], g.Normals[idx]
}

// SampleCountU returns the number of samples along u at the given coarseness.
func (s *Surface) SampleCountU(coarseness int) int { return s.uDeg * coarseness }

// SampleCountV returns the number of samples along v at the given coarseness.
func (s *Surface) SampleCountV(coarseness int) int { return s.vDeg * coarseness }

// Sample evaluates the surface on a regular grid. A coarseness below
// MinCoarseness yields an empty grid.
func (s *Surface) Sample(coarseness int) SampleGrid {
	if coarseness < MinCoarseness {
		return SampleGrid{}
	}
	n := s.SampleCountU(coarseness) * s.SampleCountV(coarseness)
	g := SampleGrid{
		USamples:  s.SampleCountU(coarseness),
		VSamples:  s.SampleCountV(coarseness),
		Positions: make([]math.Vec4, 0, n),
		Normals:   make([]math.Vec4, 0, n),
	}
	s.SampleInto(coarseness, &g.Positions, &g.Normals)
	return g
}

// SampleInto appends the sample grid to positions and normals. It returns false,
// leaving both untouched, when coarseness is below MinCoarseness.
func (s *Surface) SampleInto(coarseness int, positions, normals *[]math.Vec4) bool {
	if coarseness < MinCoarseness {
		return false
	}
	nu := s.SampleCountU(coarseness)
	nv := s.SampleCountV(coarseness)
	for j := 0; j < nv; j++ {
		v := float64(j) / float64(nv-1)
		for i := 0; i < nu; i++ {
			u := float64(i) / float64(nu-1)
			p, n := s.Evaluate(u, v)
			*positions = append(*positions, p.Vec4())
			*normals = append(*normals, n.Vec4())
		}
	}
	return true
}
