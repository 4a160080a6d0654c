package loaders

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/spaghettifunk/patchview/engine/bezier"
	"github.com/spaghettifunk/patchview/engine/core"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Kind
		err  error
	}{
		{"vertex first", "v 0 0 0\n", KindWavefront, nil},
		{"face first after comments", "# header\n\n   \nf 1 2 3\n", KindWavefront, nil},
		{"patch count", "# teapot\n32\n3 3\n", KindBezier, nil},
		{"object statement", "o cube\nv 0 0 0\n", KindWavefront, nil},
		{"material library", "mtllib cube.mtl\n", KindWavefront, nil},
		{"unknown keyword", "bezier\n", KindBezier, nil},
		{"only comments", "# nothing\n\n", KindUnknown, ErrEmptyModel},
		{"empty", "", KindUnknown, ErrEmptyModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectKind(strings.NewReader(tt.data))
			if got != tt.want || !errors.Is(err, tt.err) {
				t.Errorf("DetectKind() = (%v, %v), want (%v, %v)", got, err, tt.want, tt.err)
			}
		})
	}
}

func TestParseBezierFile(t *testing.T) {
	f, err := os.Open("testdata/square.bez")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	surfaces, err := ParseBezier(f)
	if err != nil {
		t.Fatalf("ParseBezier() = %v", err)
	}
	if len(surfaces) != 1 {
		t.Fatalf("got %d surfaces, want 1", len(surfaces))
	}
	s := surfaces[0]
	if s.DegreeU() != 1 || s.DegreeV() != 1 {
		t.Errorf("degrees = %dx%d, want 1x1", s.DegreeU(), s.DegreeV())
	}
	if got := s.Grid().At(1, 1); got != (bezier.Point{X: 1, Y: 1, Z: 0}) {
		t.Errorf("At(1, 1) = %v", got)
	}
}

func TestParseBezierMultipleSurfaces(t *testing.T) {
	data := `2
1 2
0 0 0  1 0 0
0 1 0  1 1 0
0 2 0  1 2 0
# second patch
2 1
0 0 1  1 0 1  2 0 1
0 1 1  1 1 1  2 1 1
`
	surfaces, err := ParseBezier(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseBezier() = %v", err)
	}
	if len(surfaces) != 2 {
		t.Fatalf("got %d surfaces, want 2", len(surfaces))
	}
	if surfaces[0].DegreeV() != 2 || surfaces[1].DegreeU() != 2 {
		t.Errorf("degrees = %v, %v", surfaces[0], surfaces[1])
	}
	if got := surfaces[1].Grid().At(0, 2); got != (bezier.Point{X: 2, Y: 0, Z: 1}) {
		t.Errorf("second surface At(0, 2) = %v", got)
	}
}

func TestParseBezierErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
		line string
	}{
		{"empty", "", ErrEmptyModel, ""},
		{"bad count", "two\n", ErrSyntax, "line 1"},
		{"missing surface", "2\n1 1\n0 0 0 1 0 0\n0 1 0 1 1 0\n", ErrSyntax, "surface 1"},
		{"short row", "1\n1 1\n0 0 0 1 0\n0 1 0 1 1 0\n", ErrSyntax, "line 3"},
		{"bad number", "1\n1 1\n0 0 0 1 0 x\n0 1 0 1 1 0\n", ErrSyntax, "line 3"},
		{"missing row", "1\n1 1\n0 0 0 1 0 0\n", ErrSyntax, "row 1"},
		{"zero degree", "1\n0 1\n", ErrSyntax, "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBezier(strings.NewReader(tt.data))
			if !errors.Is(err, tt.err) {
				t.Fatalf("ParseBezier() error = %v, want %v", err, tt.err)
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Errorf("error %q does not mention %q", err, tt.line)
			}
		})
	}
}

func TestParseWavefrontFile(t *testing.T) {
	var logs bytes.Buffer
	core.SetLogOutput(&logs)

	f, err := os.Open("testdata/tetra.obj")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	mesh, err := ParseWavefront(f)
	if err != nil {
		t.Fatalf("ParseWavefront() = %v", err)
	}
	if mesh.VertexCount() != 4 || mesh.TriangleCount() != 4 {
		t.Fatalf("got %d vertices and %d triangles, want 4 and 4", mesh.VertexCount(), mesh.TriangleCount())
	}
	want := []uint32{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3}
	for i, idx := range want {
		if mesh.Triangles[i] != idx {
			t.Fatalf("Triangles = %v, want %v", mesh.Triangles, want)
		}
	}
	if logs.Len() != 0 {
		t.Errorf("known statements were reported: %s", logs.String())
	}
}

func TestParseWavefrontFanTriangulation(t *testing.T) {
	data := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	mesh, err := ParseWavefront(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseWavefront() = %v", err)
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(mesh.Triangles) != len(want) {
		t.Fatalf("Triangles = %v, want %v", mesh.Triangles, want)
	}
	for i := range want {
		if mesh.Triangles[i] != want[i] {
			t.Fatalf("Triangles = %v, want %v", mesh.Triangles, want)
		}
	}

	positions, normals := mesh.SmoothSoup()
	if len(positions) != 6 || len(normals) != 6 {
		t.Fatalf("soup has %d positions, %d normals", len(positions), len(normals))
	}
	for i, n := range normals {
		if n.Z < 0.999 {
			t.Errorf("normal %d = %v, want +z", i, n)
		}
	}
}

func TestParseWavefrontUnknownStatement(t *testing.T) {
	var logs bytes.Buffer
	core.SetLogOutput(&logs)

	data := "v 0 0 0\nv 1 0 0\nv 0 1 0\nbogus 1 2\nf 1 2 3\n"
	mesh, err := ParseWavefront(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseWavefront() = %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", mesh.TriangleCount())
	}
	if !strings.Contains(logs.String(), "bogus") {
		t.Errorf("unknown statement was not logged: %q", logs.String())
	}
}

func TestParseWavefrontErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"no vertices", "# empty\n", ErrEmptyModel},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrIndexRange},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrIndexRange},
		{"relative past start", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -1 -2 -4\n", ErrIndexRange},
		{"forward reference", "v 0 0 0\nf 1 2 3\nv 1 0 0\nv 0 1 0\n", ErrIndexRange},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrSyntax},
		{"short vertex", "v 0 0\n", ErrSyntax},
		{"bad coordinate", "v 0 zero 0\n", ErrSyntax},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 b 3\n", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWavefront(strings.NewReader(tt.data))
			if !errors.Is(err, tt.err) {
				t.Errorf("ParseWavefront() error = %v, want %v", err, tt.err)
			}
		})
	}
}
