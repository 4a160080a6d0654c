package core

import "sync"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// KeyCode values follow the classic virtual-key table, so letters and digits
// equal their upper-case ASCII codes.
type KeyCode uint16

const (
	KEY_UNKNOWN   KeyCode = 0x00
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_SHIFT     KeyCode = 0x10
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_0         KeyCode = 0x30
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_X         KeyCode = 0x58
	KEY_Z         KeyCode = 0x5A
	KEY_F1        KeyCode = 0x70
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_COMMA     KeyCode = 0xBC
	KEY_PERIOD    KeyCode = 0xBE
	KEYS_MAX_KEYS KeyCode = 0x100
)

// Mouse state structure
type MouseState struct {
	X       int32
	Y       int32
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// Input state structure that holds current and previous states for keyboard and mouse
type InputState struct {
	mu               sync.Mutex
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
}

var inputState *InputState

func InputInitialize() error {
	inputState = &InputState{}
	LogDebug("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputState = nil
	return nil
}

// InputUpdate copies the current state into the previous state. The engine calls
// it last thing every frame.
func InputUpdate(deltaTime float64) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	inputState.mu.Lock()
	inputState.KeyboardPrevious = inputState.KeyboardCurrent
	inputState.MousePrevious = inputState.MouseCurrent
	inputState.mu.Unlock()
	return nil
}

// keyboard input
func InputIsKeyDown(key KeyCode) bool {
	if inputState == nil || key >= KEYS_MAX_KEYS {
		return false
	}
	inputState.mu.Lock()
	defer inputState.mu.Unlock()
	return inputState.KeyboardCurrent.Keys[key]
}

func InputIsKeyUp(key KeyCode) bool {
	return !InputIsKeyDown(key)
}

func InputWasKeyDown(key KeyCode) bool {
	if inputState == nil || key >= KEYS_MAX_KEYS {
		return false
	}
	inputState.mu.Lock()
	defer inputState.mu.Unlock()
	return inputState.KeyboardPrevious.Keys[key]
}

func InputWasKeyUp(key KeyCode) bool {
	return !InputWasKeyDown(key)
}

// InputProcessKey records a key transition and fires KEY_PRESSED or
// KEY_RELEASED. Repeats of the current state are ignored.
func InputProcessKey(key KeyCode, pressed bool) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	if key >= KEYS_MAX_KEYS {
		return nil
	}
	inputState.mu.Lock()
	changed := inputState.KeyboardCurrent.Keys[key] != pressed
	inputState.KeyboardCurrent.Keys[key] = pressed
	inputState.mu.Unlock()

	if changed {
		code := EVENT_CODE_KEY_RELEASED
		if pressed {
			code = EVENT_CODE_KEY_PRESSED
		}
		EventFire(EventContext{
			Type: code,
			Data: &KeyEvent{KeyCode: key},
		})
	}
	return nil
}

// InputProcessChar fires EVENT_CODE_CHAR for a typed character.
func InputProcessChar(char rune) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	EventFire(EventContext{
		Type: EVENT_CODE_CHAR,
		Data: &KeyEvent{Char: char},
	})
	return nil
}

// mouse input
func InputIsButtonDown(button Button) bool {
	if inputState == nil || button >= BUTTON_MAX_BUTTONS {
		return false
	}
	inputState.mu.Lock()
	defer inputState.mu.Unlock()
	return inputState.MouseCurrent.Buttons[button]
}

func InputIsButtonUp(button Button) bool {
	return !InputIsButtonDown(button)
}

func InputWasButtonDown(button Button) bool {
	if inputState == nil || button >= BUTTON_MAX_BUTTONS {
		return false
	}
	inputState.mu.Lock()
	defer inputState.mu.Unlock()
	return inputState.MousePrevious.Buttons[button]
}

func InputGetMousePosition() (int32, int32) {
	if inputState == nil {
		return 0, 0
	}
	inputState.mu.Lock()
	defer inputState.mu.Unlock()
	return inputState.MouseCurrent.X, inputState.MouseCurrent.Y
}

func InputGetPreviousMousePosition() (int32, int32) {
	if inputState == nil {
		return 0, 0
	}
	inputState.mu.Lock()
	defer inputState.mu.Unlock()
	return inputState.MousePrevious.X, inputState.MousePrevious.Y
}

func InputProcessButton(button Button, pressed bool) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	if button >= BUTTON_MAX_BUTTONS {
		return nil
	}
	inputState.mu.Lock()
	changed := inputState.MouseCurrent.Buttons[button] != pressed
	inputState.MouseCurrent.Buttons[button] = pressed
	x, y := inputState.MouseCurrent.X, inputState.MouseCurrent.Y
	inputState.mu.Unlock()

	if changed {
		code := EVENT_CODE_BUTTON_RELEASED
		if pressed {
			code = EVENT_CODE_BUTTON_PRESSED
		}
		EventFire(EventContext{
			Type: code,
			Data: &MouseEvent{Button: button, PosX: x, PosY: y},
		})
	}
	return nil
}

// InputProcessMouseMove records the cursor position and fires MOUSE_MOVED with
// the delta from the last reported position.
func InputProcessMouseMove(x, y int32) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	inputState.mu.Lock()
	dx, dy := x-inputState.MouseCurrent.X, y-inputState.MouseCurrent.Y
	inputState.MouseCurrent.X = x
	inputState.MouseCurrent.Y = y
	inputState.mu.Unlock()

	if dx == 0 && dy == 0 {
		return nil
	}
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: &MouseEvent{PosX: x, PosY: y, DeltaX: dx, DeltaY: dy},
	})
	return nil
}

func InputProcessMouseWheel(zDelta int8) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{Scroll: zDelta},
	})
	return nil
}
