// Package software renders triangle soups into an image without a GPU. It
// backs the viewer's snapshot mode.
package software

import (
	"fmt"
	"image"
	"image/color"
	stdmath "math"

	"github.com/spaghettifunk/patchview/engine/bezier"
	"github.com/spaghettifunk/patchview/engine/core"
	"github.com/spaghettifunk/patchview/engine/math"
	"github.com/spaghettifunk/patchview/engine/renderer"
)

// Rasterizer is a z-buffered Gouraud rasterizer. Both triangle windings are
// drawn.
type Rasterizer struct {
	img        *image.RGBA
	zbuffer    []float32
	background color.RGBA

	soup   bezier.Soup
	screen []screenVertex

	// TrianglesDrawn counts triangles that reached the raster loop in the
	// last frame.
	TrianglesDrawn int
}

type screenVertex struct {
	X, Y, Z float32
	Color   math.Vec4
	visible bool
}

func New() *Rasterizer {
	return &Rasterizer{background: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
}

func (r *Rasterizer) Initialize(appName string, appWidth, appHeight uint32) error {
	core.LogDebug("software rasterizer for %s at %dx%d", appName, appWidth, appHeight)
	return r.Resized(appWidth, appHeight)
}

func (r *Rasterizer) Shutdown() error {
	r.img = nil
	r.zbuffer = nil
	r.soup = bezier.Soup{}
	return nil
}

func (r *Rasterizer) Resized(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	r.img = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	r.zbuffer = make([]float32, int(width)*int(height))
	return nil
}

func (r *Rasterizer) UploadGeometry(soup bezier.Soup) error {
	if len(soup.Normals) != soup.Len() {
		return fmt.Errorf("%w: %d positions, %d normals", bezier.ErrGridMismatch, soup.Len(), len(soup.Normals))
	}
	r.soup = bezier.Soup{
		Positions: append([]math.Vec4(nil), soup.Positions...),
		Normals:   append([]math.Vec4(nil), soup.Normals...),
	}
	return nil
}

func (r *Rasterizer) BeginFrame(deltaTime float64) error {
	if r.img == nil {
		return fmt.Errorf("rasterizer: %w", core.ErrNotInitialized)
	}
	pix := r.img.Pix
	copy(pix, []uint8{r.background.R, r.background.G, r.background.B, r.background.A})
	for i := 4; i < len(pix); i *= 2 {
		copy(pix[i:], pix[:i])
	}
	r.clearDepth()
	r.TrianglesDrawn = 0
	return nil
}

// clearDepth fills the z-buffer by copy-doubling.
func (r *Rasterizer) clearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = stdmath.MaxFloat32
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

func (r *Rasterizer) DrawFrame(packet *renderer.RenderPacket) error {
	viewProj := packet.View.Mul(packet.Projection)
	width, height := float32(r.img.Rect.Dx()), float32(r.img.Rect.Dy())

	if cap(r.screen) < r.soup.Len() {
		r.screen = make([]screenVertex, r.soup.Len())
	}
	r.screen = r.screen[:r.soup.Len()]

	for i, p := range r.soup.Positions {
		clip := p.Transform(viewProj)
		sv := &r.screen[i]
		// Anything at or behind the eye is dropped with its triangle.
		sv.visible = clip.W > 0
		if !sv.visible {
			continue
		}
		sv.X = (clip.X/clip.W + 1) * 0.5 * width
		sv.Y = (1 - clip.Y/clip.W) * 0.5 * height
		sv.Z = clip.Z / clip.W
		sv.Color = renderer.Shade(packet.Light, packet.Material, p.ToVec3(), r.soup.Normals[i].ToVec3(), packet.ViewPosition)
	}

	for i := 0; i+2 < len(r.screen); i += 3 {
		r.drawTriangle(&r.screen[i], &r.screen[i+1], &r.screen[i+2])
	}
	return nil
}

func (r *Rasterizer) drawTriangle(a, b, c *screenVertex) {
	if !a.visible || !b.visible || !c.visible {
		return
	}
	area := edge(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	if area == 0 {
		return
	}
	w, h := r.img.Rect.Dx(), r.img.Rect.Dy()

	minX := max(0, int(floor(min(a.X, b.X, c.X))))
	maxX := min(w-1, int(ceil(max(a.X, b.X, c.X))))
	minY := max(0, int(floor(min(a.Y, b.Y, c.Y))))
	maxY := min(h-1, int(ceil(max(a.Y, b.Y, c.Y))))
	if minX > maxX || minY > maxY {
		return
	}
	r.TrianglesDrawn++

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5

			// Dividing by the signed area accepts either winding.
			l0 := edge(b.X, b.Y, c.X, c.Y, px, py) / area
			l1 := edge(c.X, c.Y, a.X, a.Y, px, py) / area
			l2 := edge(a.X, a.Y, b.X, b.Y, px, py) / area
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			z := l0*a.Z + l1*b.Z + l2*c.Z
			if z < -1 || z > 1 {
				continue
			}
			idx := y*w + x
			if z >= r.zbuffer[idx] {
				continue
			}
			r.zbuffer[idx] = z

			col := a.Color.MulScalar(l0).Add(b.Color.MulScalar(l1)).Add(c.Color.MulScalar(l2))
			r.img.SetRGBA(x, y, toRGBA(col))
		}
	}
}

func (r *Rasterizer) EndFrame(deltaTime float64) error {
	return nil
}

// Image returns the framebuffer. It is reused across frames.
func (r *Rasterizer) Image() *image.RGBA {
	return r.img
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func floor(f float32) float32 { return float32(stdmath.Floor(float64(f))) }
func ceil(f float32) float32  { return float32(stdmath.Ceil(float64(f))) }

func toRGBA(c math.Vec4) color.RGBA {
	return color.RGBA{
		R: uint8(math.Clamp(c.X, 0, 1)*255 + 0.5),
		G: uint8(math.Clamp(c.Y, 0, 1)*255 + 0.5),
		B: uint8(math.Clamp(c.Z, 0, 1)*255 + 0.5),
		A: 255,
	}
}
