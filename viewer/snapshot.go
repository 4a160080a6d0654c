package viewer

import (
	"fmt"
	"image/color"
	"image/png"
	"io"

	"github.com/spaghettifunk/patchview/engine/config"
	"github.com/spaghettifunk/patchview/engine/renderer"
	"github.com/spaghettifunk/patchview/engine/renderer/components"
	"github.com/spaghettifunk/patchview/engine/renderer/software"
	"github.com/spaghettifunk/patchview/engine/resources"
)

// Snapshot renders model with the software rasterizer from the default view
// and writes a PNG to w. No window or GL context is needed.
func Snapshot(cfg *config.Config, model *resources.Model, coarseness int, w io.Writer) error {
	detail := newDetail(cfg.Detail, coarseness)
	soup, err := model.Build(detail.Level)
	if err != nil {
		return err
	}

	camera := components.NewOrbitCamera(cfg.Camera)
	camera.Frame(model.Bounds())

	backend := software.New()
	r := renderer.New(renderer.Software, backend)
	width, height := uint32(cfg.Snapshot.Width), uint32(cfg.Snapshot.Height)
	if err := r.Initialize(cfg.Window.Title, width, height); err != nil {
		return err
	}
	defer r.Shutdown()

	if err := r.Upload(soup); err != nil {
		return err
	}

	packet := &renderer.RenderPacket{}
	fillPacket(packet, camera, aspect(width, height), renderer.LightFromConfig(cfg.Light), renderer.MaterialFromConfig(cfg.Material))
	if err := r.DrawFrame(packet); err != nil {
		return err
	}

	img := backend.Image()
	if cfg.Snapshot.Caption {
		text := fmt.Sprintf("%s\n%d triangles", model, soup.TriangleCount())
		if model.Tessellated() {
			text += fmt.Sprintf(", detail %d", detail.Level)
		}
		software.Caption(img, text, color.Black)
	}
	return png.Encode(w, img)
}
