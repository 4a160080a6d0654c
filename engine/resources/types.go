package resources

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/spaghettifunk/patchview/engine/assets/loaders"
	"github.com/spaghettifunk/patchview/engine/bezier"
	"github.com/spaghettifunk/patchview/engine/math"
)

/**
 * @brief A model loaded from disk. Exactly one of Mesh or Surfaces is
 * set, depending on Kind.
 */
type Model struct {
	/** @brief Unique per load; a hot reload yields a new ID. */
	ID uuid.UUID
	/** @brief The file name without directory. */
	Name string
	/** @brief The path the model was loaded from. */
	Path string
	/** @brief The on-disk format. */
	Kind loaders.Kind
	/** @brief The triangle mesh of a Wavefront model. */
	Mesh *loaders.Mesh
	/** @brief The patches of a Bezier model. */
	Surfaces []*bezier.Surface

	// Wavefront soups do not depend on coarseness and are built once.
	meshSoup *bezier.Soup
}

// NewMeshModel wraps a parsed Wavefront mesh.
func NewMeshModel(path string, mesh *loaders.Mesh) *Model {
	return &Model{
		ID:   uuid.New(),
		Name: filepath.Base(path),
		Path: path,
		Kind: loaders.KindWavefront,
		Mesh: mesh,
	}
}

// NewSurfaceModel wraps parsed Bezier patches.
func NewSurfaceModel(path string, surfaces []*bezier.Surface) *Model {
	return &Model{
		ID:       uuid.New(),
		Name:     filepath.Base(path),
		Path:     path,
		Kind:     loaders.KindBezier,
		Surfaces: surfaces,
	}
}

// Tessellator turns Bezier patches into a triangle soup.
type Tessellator interface {
	Tessellate(surfaces []*bezier.Surface, coarseness int) (bezier.Soup, error)
}

type serialTessellator struct{}

func (serialTessellator) Tessellate(surfaces []*bezier.Surface, coarseness int) (bezier.Soup, error) {
	return bezier.Tessellate(surfaces, coarseness), nil
}

/**
 * @brief Produces the triangle soup to draw. Bezier models are tessellated
 * at the given coarseness; Wavefront models ignore it.
 */
func (m *Model) Build(coarseness int) (bezier.Soup, error) {
	return m.BuildWith(serialTessellator{}, coarseness)
}

// BuildWith is Build with the patches tessellated by t.
func (m *Model) BuildWith(t Tessellator, coarseness int) (bezier.Soup, error) {
	switch m.Kind {
	case loaders.KindBezier:
		return t.Tessellate(m.Surfaces, coarseness)
	case loaders.KindWavefront:
		if m.Mesh == nil {
			return bezier.Soup{}, fmt.Errorf("%s: %w: no mesh", m.Name, loaders.ErrEmptyModel)
		}
		if m.meshSoup == nil {
			positions, normals := m.Mesh.SmoothSoup()
			m.meshSoup = &bezier.Soup{Positions: positions, Normals: normals}
		}
		return *m.meshSoup, nil
	default:
		return bezier.Soup{}, fmt.Errorf("%s: %w: %v", m.Name, loaders.ErrUnsupported, m.Kind)
	}
}

// Tessellated reports whether Build depends on coarseness.
func (m *Model) Tessellated() bool {
	return m.Kind == loaders.KindBezier
}

// Bounds returns the extents of the control points or mesh vertices. Bezier
// patches lie inside the hull of their control points, so the box encloses
// the surface.
func (m *Model) Bounds() math.Extents3D {
	var points []math.Vec3
	switch m.Kind {
	case loaders.KindBezier:
		for _, s := range m.Surfaces {
			g := s.Grid()
			for j := 0; j < g.Rows(); j++ {
				for i := 0; i < g.Cols(); i++ {
					p := g.At(j, i)
					points = append(points, math.NewVec3(float32(p.X), float32(p.Y), float32(p.Z)))
				}
			}
		}
	case loaders.KindWavefront:
		if m.Mesh != nil {
			points = m.Mesh.Positions()
		}
	}
	return math.GeometryExtents(points)
}

func (m *Model) String() string {
	switch m.Kind {
	case loaders.KindBezier:
		return fmt.Sprintf("%s (%d bezier patches)", m.Name, len(m.Surfaces))
	case loaders.KindWavefront:
		return fmt.Sprintf("%s (%d vertices, %d triangles)", m.Name, m.Mesh.VertexCount(), m.Mesh.TriangleCount())
	default:
		return m.Name
	}
}
