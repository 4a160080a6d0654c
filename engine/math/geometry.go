package math

// GeometryGenerateSmoothSoup expands an indexed triangle list into an unindexed
// soup whose normals are averaged across every face sharing a vertex.
//
// Each face contributes normalize(cross(p1-p0, p2-p0)) to its three vertices; the
// sums are normalized once all faces have been visited. A vertex whose sum is
// zero keeps a zero normal.
func GeometryGenerateSmoothSoup(vertices []Vec3, indices []uint32) ([]Vec4, []Vec4) {
	vertNorms := make([]Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		edge1 := vertices[i1].Sub(vertices[i0])
		edge2 := vertices[i2].Sub(vertices[i0])
		normal := edge1.Cross(edge2).Normalize()

		vertNorms[i0] = vertNorms[i0].Add(normal)
		vertNorms[i1] = vertNorms[i1].Add(normal)
		vertNorms[i2] = vertNorms[i2].Add(normal)
	}
	for i := range vertNorms {
		vertNorms[i] = vertNorms[i].Normalize()
	}

	count := len(indices) - len(indices)%3
	positions := make([]Vec4, count)
	normals := make([]Vec4, count)
	for i := 0; i < count; i++ {
		idx := indices[i]
		positions[i] = vertices[idx].ToVec4(1.0)
		normals[i] = vertNorms[idx].ToVec4(0.0)
	}
	return positions, normals
}

// GeometryExtents returns the axis-aligned extents of the supplied points.
func GeometryExtents(points []Vec3) Extents3D {
	if len(points) == 0 {
		return Extents3D{}
	}
	ext := Extents3D{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		ext.Min = Vec3{min(ext.Min.X, p.X), min(ext.Min.Y, p.Y), min(ext.Min.Z, p.Z)}
		ext.Max = Vec3{max(ext.Max.X, p.X), max(ext.Max.Y, p.Y), max(ext.Max.Z, p.Z)}
	}
	return ext
}

// Center returns the midpoint of the extents.
func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}

// Radius returns half the length of the extents' diagonal.
func (e Extents3D) Radius() float32 {
	return e.Max.Sub(e.Min).Length() * 0.5
}
