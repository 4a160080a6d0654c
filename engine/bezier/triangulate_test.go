package bezier

import (
	"errors"
	"math/rand"
	"testing"
)

func TestTriangleCount(t *testing.T) {
	tests := []struct{ u, v, want int }{
		{2, 2, 2},
		{3, 2, 4},
		{6, 6, 50},
		{1, 5, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := TriangleCount(tt.u, tt.v); got != tt.want {
			t.Errorf("TriangleCount(%d, %d) = %d, want %d", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestTriangulateWinding(t *testing.T) {
	s := mustSurface(t, 1, 1, bilinearCoords())
	g := s.Sample(2)
	soup, err := Triangulate([]Patch{{Surface: s, Grid: g}})
	if err != nil {
		t.Fatalf("Triangulate() = %v", err)
	}
	if soup.TriangleCount() != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", soup.TriangleCount())
	}

	// (row, col) of each emitted vertex.
	want := [6][2]int{{0, 0}, {1, 1}, {1, 0}, {1, 1}, {0, 0}, {0, 1}}
	for k, rc := range want {
		p, n := g.At(rc[0], rc[1])
		if soup.Positions[k] != p || soup.Normals[k] != n {
			t.Errorf("vertex %d = %v, want grid (%d, %d) = %v", k, soup.Positions[k], rc[0], rc[1], p)
		}
	}
}

func TestTriangulateWindingIsConsistent(t *testing.T) {
	// Every triangle winds clockwise when seen from the side its normal points to.
	s := mustSurface(t, 3, 3, planarBicubicCoords())
	soup := Tessellate([]*Surface{s}, 3)
	for tri := 0; tri < soup.TriangleCount(); tri++ {
		a := soup.Positions[3*tri].ToVec3()
		b := soup.Positions[3*tri+1].ToVec3()
		c := soup.Positions[3*tri+2].ToVec3()
		face := b.Sub(a).Cross(c.Sub(a))
		n := soup.Normals[3*tri].ToVec3()
		if face.Dot(n) >= 0 {
			t.Fatalf("triangle %d winds the other way: face %v, normal %v", tri, face, n)
		}
	}
}

func TestTriangulateMultiplePatches(t *testing.T) {
	first := mustSurface(t, 1, 1, bilinearCoords())
	coords := planarBicubicCoords()
	for i := 0; i < len(coords); i += 3 {
		coords[i] += 10
	}
	second := mustSurface(t, 3, 3, coords)

	const c = 2
	g1, g2 := first.Sample(c), second.Sample(c)
	soup, err := Triangulate([]Patch{{first, g1}, {second, g2}})
	if err != nil {
		t.Fatalf("Triangulate() = %v", err)
	}

	n1 := 3 * TriangleCount(g1.USamples, g1.VSamples)
	n2 := 3 * TriangleCount(g2.USamples, g2.VSamples)
	if soup.Len() != n1+n2 {
		t.Fatalf("Len() = %d, want %d", soup.Len(), n1+n2)
	}
	for k, p := range soup.Positions {
		if k < n1 && p.X > 1 {
			t.Fatalf("vertex %d of the first patch came from the second: %v", k, p)
		}
		if k >= n1 && p.X < 9 {
			t.Fatalf("vertex %d of the second patch came from the first: %v", k, p)
		}
	}

	// The first triangle of the second patch starts at its own grid origin.
	p, _ := g2.At(0, 0)
	if soup.Positions[n1] != p {
		t.Errorf("second patch starts at %v, want %v", soup.Positions[n1], p)
	}
}

func TestTriangulateEmptyGrid(t *testing.T) {
	s := mustSurface(t, 1, 1, bilinearCoords())
	soup, err := Triangulate([]Patch{{Surface: s}, {Surface: s, Grid: s.Sample(2)}})
	if err != nil {
		t.Fatalf("Triangulate() = %v", err)
	}
	if soup.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2", soup.TriangleCount())
	}

	soup, err = Triangulate(nil)
	if err != nil || soup.Len() != 0 {
		t.Errorf("Triangulate(nil) = (%d vertices, %v), want empty", soup.Len(), err)
	}
}

func TestTriangulateRejectsMismatchedGrids(t *testing.T) {
	s := mustSurface(t, 3, 3, planarBicubicCoords())
	good := s.Sample(2)

	short := good
	short.Normals = short.Normals[:len(short.Normals)-1]

	wrongShape := good
	wrongShape.USamples, wrongShape.VSamples = 4, 9

	badDims := good
	badDims.USamples = 7

	tests := map[string]SampleGrid{
		"normal count":  short,
		"wrong shape":   wrongShape,
		"dimension sum": badDims,
	}
	for name, g := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Triangulate([]Patch{{Surface: s, Grid: good}, {Surface: s, Grid: g}})
			if !errors.Is(err, ErrGridMismatch) {
				t.Errorf("Triangulate() error = %v, want ErrGridMismatch", err)
			}
		})
	}
}

func TestTessellateMatchesTriangulate(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	surfaces := []*Surface{
		mustSurface(t, 3, 3, randomCoords(rng, 3, 3)),
		mustSurface(t, 1, 2, randomCoords(rng, 1, 2)),
		mustSurface(t, 4, 1, randomCoords(rng, 4, 1)),
	}

	for _, c := range []int{2, 3, 7} {
		patches := make([]Patch, len(surfaces))
		for i, s := range surfaces {
			patches[i] = Patch{Surface: s, Grid: s.Sample(c)}
		}
		want, err := Triangulate(patches)
		if err != nil {
			t.Fatalf("Triangulate() = %v", err)
		}
		got := Tessellate(surfaces, c)

		if got.Len() != want.Len() || got.Len() != SoupVertexCount(surfaces, c) {
			t.Fatalf("coarseness %d: Tessellate has %d vertices, Triangulate %d, SoupVertexCount %d",
				c, got.Len(), want.Len(), SoupVertexCount(surfaces, c))
		}
		for i := range got.Positions {
			if got.Positions[i] != want.Positions[i] || got.Normals[i] != want.Normals[i] {
				t.Fatalf("coarseness %d: vertex %d differs", c, i)
			}
		}
	}
}

func TestTessellateBelowMinimum(t *testing.T) {
	s := mustSurface(t, 3, 3, planarBicubicCoords())
	for _, c := range []int{0, 1} {
		if soup := Tessellate([]*Surface{s}, c); soup.Len() != 0 {
			t.Errorf("Tessellate(%d) produced %d vertices, want 0", c, soup.Len())
		}
		if n := SoupVertexCount([]*Surface{s}, c); n != 0 {
			t.Errorf("SoupVertexCount(%d) = %d, want 0", c, n)
		}
	}
}

func TestSoupVertexCount(t *testing.T) {
	// Six bicubic patches at coarseness 2 are 6 * 2*5*5 triangles.
	surfaces := make([]*Surface, 6)
	for i := range surfaces {
		surfaces[i] = mustSurface(t, 3, 3, planarBicubicCoords())
	}
	if got, want := SoupVertexCount(surfaces, 2), 6*3*50; got != want {
		t.Errorf("SoupVertexCount() = %d, want %d", got, want)
	}
}

func BenchmarkTessellateTeapotSized(b *testing.B) {
	// 32 bicubic patches, roughly the size of the classic teapot.
	surfaces := make([]*Surface, 32)
	for i := range surfaces {
		surfaces[i] = mustSurface(b, 3, 3, planarBicubicCoords())
	}
	var soup Soup
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		soup = Tessellate(surfaces, 8)
	}
	_ = soup
}
