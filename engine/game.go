package engine

import (
	"github.com/spaghettifunk/patchview/engine/assets"
	"github.com/spaghettifunk/patchview/engine/renderer"
	"github.com/spaghettifunk/patchview/engine/systems"
)

// Game is the application driven by the engine. The engine fills Renderer,
// AssetManager and SystemManager in New, before FnInitialize runs.
type Game struct {
	ApplicationConfig *ApplicationConfig
	Renderer          *renderer.Renderer
	AssetManager      *assets.AssetManager
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render fills in the camera, light and material of packet.
type Render func(packet *renderer.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
