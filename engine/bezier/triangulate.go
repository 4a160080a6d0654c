package bezier

import (
	"fmt"

	"github.com/spaghettifunk/patchview/engine/math"
)

// Patch pairs a surface with a grid sampled from it.
type Patch struct {
	Surface *Surface
	Grid    SampleGrid
}

// Soup is an unindexed triangle list: every consecutive triple of Positions is
// one triangle, and Normals[i] belongs to Positions[i].
type Soup struct {
	Positions []math.Vec4
	Normals   []math.Vec4
}

// Len returns the number of vertices in the soup.
func (s Soup) Len() int { return len(s.Positions) }

// TriangleCount returns the number of triangles in the soup.
func (s Soup) TriangleCount() int { return len(s.Positions) / 3 }

// TriangleCount returns the number of triangles a uSamples x vSamples grid
// triangulates into.
func TriangleCount(uSamples, vSamples int) int {
	if uSamples < 2 || vSamples < 2 {
		return 0
	}
	return 2 * (uSamples - 1) * (vSamples - 1)
}

// SoupVertexCount returns how many vertices tessellating surfaces at the given
// coarseness produces. Callers use it to size vertex buffers up front.
func SoupVertexCount(surfaces []*Surface, coarseness int) int {
	if coarseness < MinCoarseness {
		return 0
	}
	n := 0
	for _, s := range surfaces {
		n += 3 * TriangleCount(s.SampleCountU(coarseness), s.SampleCountV(coarseness))
	}
	return n
}

// Triangulate converts the sample grids of one or more patches into a single
// triangle soup, in input order. Each patch's triangles reference only its own
// grid. Empty grids contribute nothing.
func Triangulate(patches []Patch) (Soup, error) {
	total, samples := 0, 0
	for i, p := range patches {
		if err := p.validate(); err != nil {
			return Soup{}, fmt.Errorf("patch %d: %w", i, err)
		}
		total += 3 * TriangleCount(p.Grid.USamples, p.Grid.VSamples)
		samples += p.Grid.Len()
	}

	positions := make([]math.Vec4, 0, samples)
	normals := make([]math.Vec4, 0, samples)
	sizes := make([][2]int, 0, len(patches))
	for _, p := range patches {
		positions = append(positions, p.Grid.Positions...)
		normals = append(normals, p.Grid.Normals...)
		sizes = append(sizes, [2]int{p.Grid.USamples, p.Grid.VSamples})
	}
	return triangulateConcatenated(positions, normals, sizes, total), nil
}

// Tessellate samples every surface at the given coarseness into one shared
// buffer and triangulates the result. A coarseness below MinCoarseness yields
// an empty soup.
func Tessellate(surfaces []*Surface, coarseness int) Soup {
	if coarseness < MinCoarseness {
		return Soup{}
	}
	samples := 0
	sizes := make([][2]int, len(surfaces))
	for i, s := range surfaces {
		sizes[i] = [2]int{s.SampleCountU(coarseness), s.SampleCountV(coarseness)}
		samples += sizes[i][0] * sizes[i][1]
	}

	positions := make([]math.Vec4, 0, samples)
	normals := make([]math.Vec4, 0, samples)
	for _, s := range surfaces {
		s.SampleInto(coarseness, &positions, &normals)
	}
	return triangulateConcatenated(positions, normals, sizes, SoupVertexCount(surfaces, coarseness))
}

// triangulateConcatenated walks grids stored back to back in positions/normals,
// keeping a running offset to the start of each grid.
func triangulateConcatenated(positions, normals []math.Vec4, sizes [][2]int, capacity int) Soup {
	soup := Soup{
		Positions: make([]math.Vec4, 0, capacity),
		Normals:   make([]math.Vec4, 0, capacity),
	}

	offset := 0
	for _, size := range sizes {
		uSam, vSam := size[0], size[1]
		for v := 0; v < vSam-1; v++ {
			for u := 0; u < uSam-1; u++ {
				a := offset + v*uSam + u         // (v, u)
				b := offset + (v+1)*uSam + u + 1 // (v+1, u+1)
				c := offset + (v+1)*uSam + u     // (v+1, u)
				d := offset + v*uSam + u + 1     // (v, u+1)

				for _, idx := range [6]int{a, b, c, b, a, d} {
					soup.Positions = append(soup.Positions, positions[idx])
					soup.Normals = append(soup.Normals, normals[idx])
				}
			}
		}
		offset += uSam * vSam
	}
	return soup
}

func (p Patch) validate() error {
	g := p.Grid
	if len(g.Positions) != len(g.Normals) {
		return fmt.Errorf("%w: %d positions, %d normals", ErrGridMismatch, len(g.Positions), len(g.Normals))
	}
	if g.Len() != g.USamples*g.VSamples {
		return fmt.Errorf("%w: %d samples for a %dx%d grid", ErrGridMismatch, g.Len(), g.USamples, g.VSamples)
	}
	if g.Len() == 0 {
		return nil
	}
	if p.Surface == nil {
		return nil
	}
	uDeg, vDeg := p.Surface.DegreeU(), p.Surface.DegreeV()
	if g.USamples%uDeg != 0 || g.VSamples%vDeg != 0 || g.USamples/uDeg != g.VSamples/vDeg {
		return fmt.Errorf("%w: %dx%d grid for a degree %dx%d surface", ErrGridMismatch, g.USamples, g.VSamples, uDeg, vDeg)
	}
	return nil
}
