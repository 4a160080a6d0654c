package loaders

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spaghettifunk/patchview/engine/core"
	"github.com/spaghettifunk/patchview/engine/math"
)

// Mesh is an indexed triangle mesh. Vertices holds packed xyz triples and
// Triangles holds 0-based vertex indices, three per face.
type Mesh struct {
	Vertices  []float32
	Triangles []uint32
}

func (m *Mesh) VertexCount() int   { return len(m.Vertices) / 3 }
func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Positions unpacks the vertex buffer.
func (m *Mesh) Positions() []math.Vec3 {
	out := make([]math.Vec3, m.VertexCount())
	for i := range out {
		out[i] = math.NewVec3(m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2])
	}
	return out
}

// SmoothSoup expands the mesh into an unindexed soup with averaged vertex
// normals.
func (m *Mesh) SmoothSoup() ([]math.Vec4, []math.Vec4) {
	return math.GeometryGenerateSmoothSoup(m.Positions(), m.Triangles)
}

// Statements that are valid OBJ but carry nothing the viewer draws.
var ignoredWavefront = map[string]bool{
	"vt": true, "vn": true, "vp": true,
	"o": true, "g": true, "s": true,
	"usemtl": true, "mtllib": true, "l": true,
}

// ParseWavefront reads the `v` and `f` statements of an OBJ file. Faces may use
// the i, i/t, i//n and i/t/n forms and negative (relative) indices; faces with
// more than three corners are fan triangulated. Unknown statements are logged
// and skipped.
func ParseWavefront(r io.Reader) (*Mesh, error) {
	lr := newLineReader(r)
	mesh := &Mesh{}

	for {
		fields, err := lr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch fields[0] {
		case "v":
			// An optional w component is allowed and ignored.
			if len(fields) != 4 && len(fields) != 5 {
				return nil, lr.errorf("%w: vertex needs 3 coordinates, got %d", ErrSyntax, len(fields)-1)
			}
			for _, f := range fields[1:4] {
				x, err := strconv.ParseFloat(f, 32)
				if err != nil {
					return nil, lr.errorf("%w: %q is not a number", ErrSyntax, f)
				}
				mesh.Vertices = append(mesh.Vertices, float32(x))
			}

		case "f":
			if len(fields) < 4 {
				return nil, lr.errorf("%w: face needs at least 3 vertices, got %d", ErrSyntax, len(fields)-1)
			}
			corners := make([]uint32, len(fields)-1)
			for i, f := range fields[1:] {
				idx, err := faceIndex(f, mesh.VertexCount())
				if err != nil {
					return nil, lr.errorf("%w", err)
				}
				corners[i] = idx
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Triangles = append(mesh.Triangles, corners[0], corners[i], corners[i+1])
			}

		default:
			if !ignoredWavefront[fields[0]] {
				core.LogWarn("wavefront: unknown statement %q at line %d, skipping", fields[0], lr.line)
			}
		}
	}

	if mesh.VertexCount() == 0 {
		return nil, ErrEmptyModel
	}
	return mesh, nil
}

// faceIndex resolves one face corner against the vertices seen so far.
func faceIndex(field string, vertexCount int) (uint32, error) {
	head, _, _ := strings.Cut(field, "/")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a vertex index", ErrSyntax, field)
	}
	switch {
	case n > 0 && n <= vertexCount:
		return uint32(n - 1), nil
	case n < 0 && -n <= vertexCount:
		return uint32(vertexCount + n), nil
	default:
		return 0, fmt.Errorf("%w: index %d with %d vertices", ErrIndexRange, n, vertexCount)
	}
}
