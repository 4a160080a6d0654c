package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/patchview/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	Window    *glfw.Window
	startTime float64
}

func New() *Platform {
	return &Platform{}
}

// Startup opens a window with an OpenGL 4.1 core context and makes the
// context current on the calling thread.
func (p *Platform) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	p.Window = window

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetCharCallback(charCallback)
	p.Window.SetMouseButtonCallback(mouseButtonCallback)
	p.Window.SetCursorPosCallback(cursorPosCallback)
	p.Window.SetScrollCallback(scrollCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetCloseCallback(closeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	p.startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window has been asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) SetTitle(title string) {
	p.Window.SetTitle(title)
}

// FramebufferSize returns the drawable size in pixels, which differs from the
// window size on high-DPI displays.
func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

// GetAbsoluteTime returns seconds since Startup.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code := translateKey(key)
	if code == core.KEY_UNKNOWN {
		return
	}
	if err := core.InputProcessKey(code, action == glfw.Press); err != nil {
		core.LogError("key %d: %s", key, err)
	}
}

func charCallback(w *glfw.Window, char rune) {
	if err := core.InputProcessChar(char); err != nil {
		core.LogError("char %q: %s", char, err)
	}
}

func mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	default:
		return
	}
	if err := core.InputProcessButton(b, action == glfw.Press); err != nil {
		core.LogError("mouse button %d: %s", button, err)
	}
}

func cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if err := core.InputProcessMouseMove(int32(xpos), int32(ypos)); err != nil {
		core.LogError("mouse move: %s", err)
	}
}

func scrollCallback(w *glfw.Window, xoff, yoff float64) {
	var z int8
	switch {
	case yoff > 0:
		z = 1
	case yoff < 0:
		z = -1
	default:
		return
	}
	if err := core.InputProcessMouseWheel(z); err != nil {
		core.LogError("mouse wheel: %s", err)
	}
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{WindowWidth: uint32(width), WindowHeight: uint32(height)},
	})
}

// closeCallback turns the window close button into a quit request so
// listeners see it before the loop stops.
func closeCallback(w *glfw.Window) {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}
