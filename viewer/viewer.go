// Package viewer is the interactive model viewer game run by the engine.
package viewer

import (
	"fmt"

	"github.com/spaghettifunk/patchview/engine"
	"github.com/spaghettifunk/patchview/engine/assets"
	"github.com/spaghettifunk/patchview/engine/bezier"
	"github.com/spaghettifunk/patchview/engine/config"
	"github.com/spaghettifunk/patchview/engine/core"
	"github.com/spaghettifunk/patchview/engine/renderer"
	"github.com/spaghettifunk/patchview/engine/renderer/components"
	"github.com/spaghettifunk/patchview/engine/resources"
)

type Options struct {
	// ModelPath is the .bez or .obj file to show.
	ModelPath string
	// Coarseness overrides the configured initial detail when non-zero.
	Coarseness int
	// Watch reloads the model when the file changes.
	Watch bool
}

type Viewer struct {
	*engine.Game
}

type viewerState struct {
	cfg  *config.Config
	opts Options

	model    *resources.Model
	camera   *components.OrbitCamera
	detail   *components.Detail
	light    renderer.Light
	material renderer.Material

	width  uint32
	height uint32

	// dirty is set when the uploaded soup no longer matches model and detail.
	dirty bool
}

func New(cfg *config.Config, opts Options) *Viewer {
	v := &Viewer{
		Game: &engine.Game{
			ApplicationConfig: engine.NewApplicationConfig(cfg),
			State: &viewerState{
				cfg:      cfg,
				opts:     opts,
				camera:   components.NewOrbitCamera(cfg.Camera),
				detail:   newDetail(cfg.Detail, opts.Coarseness),
				light:    renderer.LightFromConfig(cfg.Light),
				material: renderer.MaterialFromConfig(cfg.Material),
				width:    cfg.Window.Width,
				height:   cfg.Window.Height,
			},
		},
	}

	v.FnInitialize = v.Initialize
	v.FnUpdate = v.Update
	v.FnRender = v.Render
	v.FnOnResize = v.OnResize
	v.FnShutdown = v.Shutdown

	return v
}

func newDetail(d config.Detail, coarseness int) *components.Detail {
	initial := d.Initial
	if coarseness != 0 {
		initial = coarseness
	}
	return components.NewDetail(d.Min, d.Max, initial)
}

func (v *Viewer) state() *viewerState {
	return v.State.(*viewerState)
}

func (v *Viewer) Initialize() error {
	state := v.state()
	if v.AssetManager == nil || v.Renderer == nil {
		return fmt.Errorf("viewer: %w", core.ErrNotInitialized)
	}

	model, err := v.AssetManager.Load(state.opts.ModelPath)
	if err != nil {
		return err
	}
	core.LogInfo("loaded %s", model)
	v.setModel(model, true)

	if state.opts.Watch {
		if err := v.AssetManager.Watch(state.opts.ModelPath); err != nil {
			core.LogWarn("hot reload disabled: %s", err)
		} else {
			go forwardReloads(v.AssetManager.Events())
		}
	}

	core.EventRegister(core.EVENT_CODE_CHAR, v, v.onChar)
	core.EventRegister(core.EVENT_CODE_MOUSE_MOVED, v, v.onMouseMoved)
	core.EventRegister(core.EVENT_CODE_MOUSE_WHEEL, v, v.onMouseWheel)
	core.EventRegister(core.EVENT_CODE_MODEL_RELOADED, v, v.onModelReloaded)

	return nil
}

// forwardReloads hands reloads from the watcher goroutine to the main thread,
// where listeners may touch GL state. It returns when the asset manager shuts
// down.
func forwardReloads(events <-chan assets.ReloadEvent) {
	for ev := range events {
		core.EventPost(core.EventContext{
			Type: core.EVENT_CODE_MODEL_RELOADED,
			Data: &ev,
		})
	}
}

func (v *Viewer) setModel(model *resources.Model, frame bool) {
	state := v.state()
	state.model = model
	if frame {
		state.camera.Frame(model.Bounds())
	}
	state.dirty = true
}

// Update re-tessellates and uploads when the model or detail changed.
func (v *Viewer) Update(deltaTime float64) error {
	state := v.state()
	if !state.dirty || state.model == nil {
		return nil
	}
	soup, err := v.build(state.model, state.detail.Level)
	if err != nil {
		return err
	}
	if err := v.Renderer.Upload(soup); err != nil {
		return err
	}
	state.dirty = false
	if state.model.Tessellated() {
		core.LogDebug("detail %d: %d triangles", state.detail.Level, soup.TriangleCount())
	}
	return nil
}

// build tessellates on the job system when the engine provides one.
func (v *Viewer) build(model *resources.Model, coarseness int) (bezier.Soup, error) {
	if v.SystemManager != nil {
		return model.BuildWith(v.SystemManager.TessellationSystem, coarseness)
	}
	return model.Build(coarseness)
}

func (v *Viewer) Render(packet *renderer.RenderPacket, deltaTime float64) error {
	state := v.state()
	packet.DeltaTime = deltaTime
	fillPacket(packet, state.camera, aspect(state.width, state.height), state.light, state.material)
	return nil
}

func fillPacket(packet *renderer.RenderPacket, camera *components.OrbitCamera, aspect float32, light renderer.Light, material renderer.Material) {
	packet.View = camera.View()
	packet.Projection = camera.Projection(aspect)
	packet.ViewPosition = camera.Eye()
	packet.Light = light
	packet.Material = material
}

func aspect(width, height uint32) float32 {
	if height == 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func (v *Viewer) OnResize(width uint32, height uint32) error {
	state := v.state()
	state.width = width
	state.height = height
	return nil
}

func (v *Viewer) Shutdown() error {
	for _, code := range []core.EventCode{
		core.EVENT_CODE_CHAR,
		core.EVENT_CODE_MOUSE_MOVED,
		core.EVENT_CODE_MOUSE_WHEEL,
		core.EVENT_CODE_MODEL_RELOADED,
	} {
		core.EventUnregister(code, v)
	}
	return nil
}

func (v *Viewer) onChar(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	state := v.state()

	switch ke.Char {
	case 'q', 'Q':
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT, Sender: v})
	case 'r':
		state.camera.Reset()
	case 'z':
		state.camera.ZoomIn()
	case 'x':
		state.camera.ZoomOut()
	case '<', ',':
		if state.detail.Decrease() {
			v.detailChanged()
		}
	case '>', '.':
		if state.detail.Increase() {
			v.detailChanged()
		}
	default:
		return false
	}
	return true
}

func (v *Viewer) detailChanged() {
	state := v.state()
	if state.model != nil && state.model.Tessellated() {
		state.dirty = true
	}
	core.LogInfo("detail %d", state.detail.Level)
}

func (v *Viewer) onMouseMoved(context core.EventContext) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok || !core.InputIsButtonDown(core.BUTTON_LEFT) {
		return false
	}
	v.state().camera.Rotate(float32(me.DeltaX), float32(me.DeltaY))
	return true
}

func (v *Viewer) onMouseWheel(context core.EventContext) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		return false
	}
	camera := v.state().camera
	switch {
	case me.Scroll > 0:
		camera.ZoomIn()
	case me.Scroll < 0:
		camera.ZoomOut()
	}
	return true
}

func (v *Viewer) onModelReloaded(context core.EventContext) bool {
	ev, ok := context.Data.(*assets.ReloadEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ev.Err != nil {
		core.LogWarn("keeping previous model: %s", ev.Err)
		return true
	}
	core.LogInfo("reloaded %s", ev.Model)
	// Keep the user's view; a reload is usually a small edit.
	v.setModel(ev.Model, false)
	return true
}
