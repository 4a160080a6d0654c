package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/patchview/engine/core"
)

var namedKeys = map[glfw.Key]core.KeyCode{
	glfw.KeyBackspace:  core.KEY_BACKSPACE,
	glfw.KeyTab:        core.KEY_TAB,
	glfw.KeyEnter:      core.KEY_ENTER,
	glfw.KeyEscape:     core.KEY_ESCAPE,
	glfw.KeySpace:      core.KEY_SPACE,
	glfw.KeyLeft:       core.KEY_LEFT,
	glfw.KeyUp:         core.KEY_UP,
	glfw.KeyRight:      core.KEY_RIGHT,
	glfw.KeyDown:       core.KEY_DOWN,
	glfw.KeyLeftShift:  core.KEY_LSHIFT,
	glfw.KeyRightShift: core.KEY_RSHIFT,
	glfw.KeyComma:      core.KEY_COMMA,
	glfw.KeyPeriod:     core.KEY_PERIOD,
}

// translateKey maps a GLFW key to the engine key table. GLFW letters and
// digits already use their ASCII codes.
func translateKey(key glfw.Key) core.KeyCode {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ,
		key >= glfw.Key0 && key <= glfw.Key9:
		return core.KeyCode(key)
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return core.KEY_F1 + core.KeyCode(key-glfw.KeyF1)
	}
	if code, ok := namedKeys[key]; ok {
		return code
	}
	return core.KEY_UNKNOWN
}
