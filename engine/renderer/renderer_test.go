package renderer

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/patchview/engine/bezier"
	"github.com/spaghettifunk/patchview/engine/config"
	"github.com/spaghettifunk/patchview/engine/math"
)

const eps = 1e-5

func defaults() (Light, Material) {
	cfg := config.Default()
	return LightFromConfig(cfg.Light), MaterialFromConfig(cfg.Material)
}

func TestShadeFacingAway(t *testing.T) {
	light, material := defaults()
	// The light is at (100,100,100); a normal pointing away leaves ambient only.
	got := Shade(light, material, math.NewVec3Zero(), math.NewVec3(0, 0, -1).Add(math.NewVec3(-1, -1, 0)).Normalize(), math.NewVec3(0, 0, 5))
	want := math.NewVec4(0.2, 0, 0.2, 1)
	if !got.Compare(want, eps) {
		t.Errorf("Shade() = %v, want ambient %v", got, want)
	}
}

func TestShadeHeadOn(t *testing.T) {
	light, material := defaults()
	light.Position = math.NewVec4(0, 0, 10, 1)
	// Light, eye and normal aligned: full diffuse and specular, clamped.
	got := Shade(light, material, math.NewVec3Zero(), math.NewVec3(0, 0, 1), math.NewVec3(0, 0, 5))
	want := math.NewVec4(1, 1, 0.2, 1)
	if !got.Compare(want, eps) {
		t.Errorf("Shade() = %v, want %v", got, want)
	}
}

func TestShadeGrazing(t *testing.T) {
	light, material := defaults()
	light.Position = math.NewVec4(10, 0, 10, 1)
	material.Specular = math.NewVec4(0, 0, 0, 1)

	// 45 degrees between light and normal: diffuse scales by cos(45).
	got := Shade(light, material, math.NewVec3Zero(), math.NewVec3(0, 0, 1), math.NewVec3(0, 0, 5))
	c := float32(0.70710677)
	want := math.NewVec4(math.Clamp(0.2+c, 0, 1), 0.8*c, 0.2, 1)
	if !got.Compare(want, eps) {
		t.Errorf("Shade() = %v, want %v", got, want)
	}
}

type recordingBackend struct {
	calls   []string
	uploads []int
	failOn  string
}

func (b *recordingBackend) record(name string) error {
	b.calls = append(b.calls, name)
	if name == b.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (b *recordingBackend) Initialize(string, uint32, uint32) error { return b.record("init") }
func (b *recordingBackend) Shutdown() error                         { return b.record("shutdown") }
func (b *recordingBackend) Resized(uint32, uint32) error            { return b.record("resize") }
func (b *recordingBackend) BeginFrame(float64) error                { return b.record("begin") }
func (b *recordingBackend) DrawFrame(*RenderPacket) error           { return b.record("draw") }
func (b *recordingBackend) EndFrame(float64) error                  { return b.record("end") }
func (b *recordingBackend) UploadGeometry(s bezier.Soup) error {
	b.uploads = append(b.uploads, s.Len())
	return b.record("upload")
}

func TestRendererFrame(t *testing.T) {
	b := &recordingBackend{}
	r := New(Software, b)
	if err := r.Initialize("test", 4, 4); err != nil {
		t.Fatal(err)
	}
	soup := bezier.Soup{Positions: make([]math.Vec4, 6), Normals: make([]math.Vec4, 6)}
	if err := r.Upload(soup); err != nil {
		t.Fatal(err)
	}
	if r.VertexCount() != 6 || r.Generation() != 1 {
		t.Errorf("VertexCount() = %d, Generation() = %d", r.VertexCount(), r.Generation())
	}
	if err := r.DrawFrame(&RenderPacket{}); err != nil {
		t.Fatal(err)
	}
	want := []string{"init", "upload", "begin", "draw", "end"}
	if len(b.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", b.calls, want)
	}
	for i := range want {
		if b.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", b.calls, want)
		}
	}
}

func TestRendererStopsOnBackendError(t *testing.T) {
	b := &recordingBackend{failOn: "draw"}
	r := New(OpenGL, b)
	if err := r.DrawFrame(&RenderPacket{}); err == nil {
		t.Fatal("DrawFrame() = nil, want the backend error")
	}
	if last := b.calls[len(b.calls)-1]; last != "draw" {
		t.Errorf("EndFrame ran after a failed draw: %v", b.calls)
	}

	b = &recordingBackend{failOn: "upload"}
	r = New(OpenGL, b)
	if err := r.Upload(bezier.Soup{}); err == nil || r.Generation() != 0 {
		t.Errorf("failed upload counted: err=%v generation=%d", err, r.Generation())
	}
}

func TestRendererWithoutBackend(t *testing.T) {
	if err := New(OpenGL, nil).Initialize("x", 1, 1); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Initialize() = %v, want ErrNoBackend", err)
	}
}
