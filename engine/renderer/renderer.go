package renderer

import (
	"errors"

	"github.com/spaghettifunk/patchview/engine/bezier"
	"github.com/spaghettifunk/patchview/engine/core"
)

var ErrNoBackend = errors.New("renderer has no backend")

// RendererBackend is implemented by the OpenGL and software renderers.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	// UploadGeometry replaces the soup drawn by later frames.
	UploadGeometry(soup bezier.Soup) error
	BeginFrame(deltaTime float64) error
	DrawFrame(packet *RenderPacket) error
	EndFrame(deltaTime float64) error
}

type RendererType uint8

const (
	OpenGL RendererType = iota
	Software
)

func (t RendererType) String() string {
	switch t {
	case OpenGL:
		return "opengl"
	case Software:
		return "software"
	default:
		return "unknown"
	}
}

// Renderer is the frontend the engine talks to. It tracks what has been
// uploaded so geometry is only sent to the backend when it changes.
type Renderer struct {
	backend     RendererBackend
	kind        RendererType
	vertexCount int
	generation  uint64
}

func New(kind RendererType, backend RendererBackend) *Renderer {
	return &Renderer{backend: backend, kind: kind}
}

func (r *Renderer) Initialize(appName string, width, height uint32) error {
	if r.backend == nil {
		return ErrNoBackend
	}
	if err := r.backend.Initialize(appName, width, height); err != nil {
		return err
	}
	core.LogInfo("%s renderer initialized (%dx%d)", r.kind, width, height)
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

// Upload hands a new soup to the backend, discarding the previous one.
func (r *Renderer) Upload(soup bezier.Soup) error {
	if err := r.backend.UploadGeometry(soup); err != nil {
		return err
	}
	r.vertexCount = soup.Len()
	r.generation++
	core.LogDebug("uploaded %d triangles (generation %d)", soup.TriangleCount(), r.generation)
	return nil
}

// VertexCount returns the size of the last uploaded soup.
func (r *Renderer) VertexCount() int { return r.vertexCount }

// Generation counts uploads so far.
func (r *Renderer) Generation() uint64 { return r.generation }

func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		return err
	}
	if err := r.backend.DrawFrame(packet); err != nil {
		return err
	}
	return r.backend.EndFrame(packet.DeltaTime)
}
