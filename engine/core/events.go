package core

import (
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/patchview/engine/containers"
)

// EventCode identifies what an event is about. Application codes start above
// MAX_EVENT_CODE.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data: *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data: *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data: *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data: *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data: *MouseEvent with position and delta.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel scrolled. Data: *MouseEvent with Scroll set.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data: *SystemEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	// A printable character was typed, after keyboard layout and shift were
	// applied. Data: *KeyEvent with Char set.
	EVENT_CODE_CHAR EventCode = 0x09

	// The model on disk changed and was reloaded. Data: application defined.
	EVENT_CODE_MODEL_RELOADED EventCode = 0x0A

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type KeyEvent struct {
	KeyCode KeyCode
	Char    rune
}

type MouseEvent struct {
	Button Button
	PosX   int32
	PosY   int32
	DeltaX int32
	DeltaY int32
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// EventContext is what listeners receive. Data holds one of the *Event types
// above, depending on Type.
type EventContext struct {
	Type   EventCode
	Sender interface{}
	Data   interface{}
}

// FnOnEvent handles an event. Returning true marks it handled, and no further
// listeners are called.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// MAX_POSTED_EVENTS bounds the queue of events posted from other goroutines.
const MAX_POSTED_EVENTS = 64

type eventSystemState struct {
	mu         sync.RWMutex
	registered map[EventCode][]registeredEvent

	postedMu sync.Mutex
	posted   *containers.RingQueue[EventContext]
}

// eventState is read from any goroutine (EventPost) and swapped on the main
// thread, so every function loads it once and works on that snapshot.
var eventState atomic.Pointer[eventSystemState]

func EventSystemInitialize() bool {
	return eventState.CompareAndSwap(nil, &eventSystemState{
		registered: make(map[EventCode][]registeredEvent),
		posted:     containers.NewRingQueue[EventContext](MAX_POSTED_EVENTS),
	})
}

// EventSystemShutdown drops every registration.
func EventSystemShutdown() error {
	if eventState.Swap(nil) == nil {
		return ErrNotInitialized
	}
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. A listener
 * can register for a given code only once; a duplicate returns false.
 * @param code The event code to listen for.
 * @param listener Identifies the registration for EventUnregister. Must be comparable.
 * @param onEvent The callback function to be invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func EventRegister(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	state := eventState.Load()
	if state == nil || code >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	for _, e := range state.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	state.registered[code] = append(state.registered[code], registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code.
 * @returns true if the registration was found and removed; otherwise false.
 */
func EventUnregister(code EventCode, listener interface{}) bool {
	state := eventState.Load()
	if state == nil {
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	events := state.registered[code]
	for i, e := range events {
		if e.listener == listener {
			state.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code, in registration order. If a
 * handler returns true, the event is considered handled and is not passed on.
 * @returns true if handled, otherwise false.
 */
func EventFire(context EventContext) bool {
	state := eventState.Load()
	if state == nil {
		return false
	}
	// Snapshot under the lock so handlers may register or unregister.
	state.mu.RLock()
	events := append([]registeredEvent(nil), state.registered[context.Type]...)
	state.mu.RUnlock()

	for _, e := range events {
		if e.callback(context) {
			return true
		}
	}
	return false
}

// EventPost queues an event for EventDispatchPosted. Use it from goroutines
// other than the main thread, e.g. file watchers, whose listeners may touch GL
// state. When the queue is full the oldest event is dropped.
func EventPost(context EventContext) bool {
	state := eventState.Load()
	if state == nil {
		return false
	}
	state.postedMu.Lock()
	defer state.postedMu.Unlock()

	if state.posted.IsFull() {
		dropped, _ := state.posted.Dequeue()
		LogWarn("event queue full, dropping event code %d", dropped.Type)
	}
	return state.posted.Enqueue(context) == nil
}

// EventDispatchPosted fires every queued event on the calling goroutine and
// returns how many were dispatched.
func EventDispatchPosted() int {
	state := eventState.Load()
	if state == nil {
		return 0
	}
	n := 0
	for {
		state.postedMu.Lock()
		context, err := state.posted.Dequeue()
		state.postedMu.Unlock()
		if err != nil {
			return n
		}
		EventFire(context)
		n++
	}
}
