package math

import (
	m "math"
	"testing"
)

const eps = 1e-5

func near(a, b float32) bool { return kabs(a-b) <= eps }

func TestClamp(t *testing.T) {
	if got := Clamp(5, 2, 20); got != 5 {
		t.Errorf("Clamp(5, 2, 20) = %d", got)
	}
	if got := Clamp(1, 2, 20); got != 2 {
		t.Errorf("Clamp(1, 2, 20) = %d", got)
	}
	if got := Clamp(float32(180), 5, 175); got != 175 {
		t.Errorf("Clamp(180, 5, 175) = %v", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{10, 10},
		{370, 10},
		{-10, 350},
		{720, 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in, 360); !near(got, tt.want) {
			t.Errorf("Wrap(%v, 360) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, in := range []float32{-1e-6, -1e-30, -360 - 1e-5} {
		if got := Wrap(in, 360); got < 0 || got >= 360 {
			t.Errorf("Wrap(%v, 360) = %v, outside [0, 360)", in, got)
		}
	}
	if got := Wrap(float32(m.Inf(1)), 360); !m.IsNaN(float64(got)) {
		t.Errorf("Wrap(+Inf, 360) = %v, want NaN", got)
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	if got := DegToRad(180); !near(got, K_PI) {
		t.Errorf("DegToRad(180) = %v", got)
	}
	if got := RadToDeg(DegToRad(40)); !near(got, 40) {
		t.Errorf("RadToDeg(DegToRad(40)) = %v", got)
	}
}

func TestVec3CrossAndNormalize(t *testing.T) {
	x, y := NewVec3(1, 0, 0), NewVec3Up()
	if got := x.Cross(y); !got.Compare(NewVec3(0, 0, 1), eps) {
		t.Errorf("x cross y = %v", got)
	}
	if got := NewVec3(3, 0, 4).Normalize(); !got.Compare(NewVec3(0.6, 0, 0.8), eps) {
		t.Errorf("Normalize() = %v", got)
	}
	if got := NewVec3Zero().Normalize(); got != NewVec3Zero() {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	a := NewMat4LookAt(NewVec3(1, 2, 3), NewVec3Zero(), NewVec3Up())
	if got := a.Mul(NewMat4Identity()); got != a {
		t.Errorf("a * I = %v, want %v", got, a)
	}
	if got := a.Transposed().Transposed(); got != a {
		t.Errorf("transposing twice changed the matrix")
	}
}

func TestLookAtMapsEyeAndTarget(t *testing.T) {
	eye := NewVec3(0, 0, 10)
	view := NewMat4LookAt(eye, NewVec3Zero(), NewVec3Up())

	if got := eye.ToVec4(1).Transform(view); !got.Compare(NewVec4(0, 0, 0, 1), eps) {
		t.Errorf("eye in view space = %v, want origin", got)
	}
	// The camera looks down -z in view space.
	if got := NewVec3Zero().ToVec4(1).Transform(view); !got.Compare(NewVec4(0, 0, -10, 1), eps) {
		t.Errorf("target in view space = %v, want (0, 0, -10)", got)
	}
	if got := NewVec3(0, 1, 0).ToVec4(1).Transform(view); !got.Compare(NewVec4(0, 1, -10, 1), eps) {
		t.Errorf("up in view space = %v, want (0, 1, -10)", got)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := NewMat4Perspective(DegToRad(40), 1, 1, 50)
	for _, tt := range []struct{ z, want float32 }{{-1, -1}, {-50, 1}} {
		clip := NewVec4(0, 0, tt.z, 1).Transform(proj)
		if got := clip.Z / clip.W; !near(got, tt.want) {
			t.Errorf("depth at z=%v = %v, want %v", tt.z, got, tt.want)
		}
	}
}

func TestGeometryGenerateSmoothSoup(t *testing.T) {
	// Two triangles folded along the shared edge (0,0,0)-(1,0,0).
	vertices := []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, -1}}
	indices := []uint32{0, 1, 2, 1, 0, 3}

	positions, normals := GeometryGenerateSmoothSoup(vertices, indices)
	if len(positions) != 6 || len(normals) != 6 {
		t.Fatalf("got %d positions, %d normals, want 6", len(positions), len(normals))
	}
	if positions[3] != NewVec4(1, 0, 0, 1) {
		t.Errorf("positions[3] = %v", positions[3])
	}

	shared := NewVec3(0, -1, 1).Normalize()
	for _, i := range []int{0, 1, 3, 4} {
		if !normals[i].ToVec3().Compare(shared, eps) || normals[i].W != 0 {
			t.Errorf("normals[%d] = %v, want %v", i, normals[i], shared)
		}
	}
	if !normals[2].ToVec3().Compare(NewVec3(0, 0, 1), eps) {
		t.Errorf("normals[2] = %v, want +z", normals[2])
	}
	if !normals[5].ToVec3().Compare(NewVec3(0, -1, 0), eps) {
		t.Errorf("normals[5] = %v, want -y", normals[5])
	}
}

func TestGeometryExtents(t *testing.T) {
	ext := GeometryExtents([]Vec3{{-1, 2, 0}, {3, -2, 1}, {0, 0, -1}})
	if ext.Min != NewVec3(-1, -2, -1) || ext.Max != NewVec3(3, 2, 1) {
		t.Fatalf("extents = %+v", ext)
	}
	if got := ext.Center(); !got.Compare(NewVec3(1, 0, 0), eps) {
		t.Errorf("Center() = %v", got)
	}
	if got := ext.Radius(); !near(got, 3) {
		t.Errorf("Radius() = %v, want 3", got)
	}
	if got := GeometryExtents(nil); got != (Extents3D{}) {
		t.Errorf("empty extents = %+v", got)
	}
}
