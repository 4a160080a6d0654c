package engine

import (
	"fmt"

	"github.com/spaghettifunk/patchview/engine/assets"
	"github.com/spaghettifunk/patchview/engine/core"
	"github.com/spaghettifunk/patchview/engine/platform"
	"github.com/spaghettifunk/patchview/engine/renderer"
	"github.com/spaghettifunk/patchview/engine/renderer/opengl"
	"github.com/spaghettifunk/patchview/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	platform      *platform.Platform
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	renderer      *renderer.Renderer
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.FrameMetrics
	lastTime      float64
	lastTitleFPS  float64
}

func New(g *Game) (*Engine, error) {
	p := platform.New()

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager()
	if err != nil {
		am.Shutdown()
		core.LogError(err.Error())
		return nil, err
	}

	r := renderer.New(renderer.OpenGL, opengl.New())
	g.Renderer = r
	g.AssetManager = am
	g.SystemManager = sm

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(p.GetAbsoluteTime),
		metrics:       core.NewFrameMetrics(),
		platform:      p,
		assetManager:  am,
		systemManager: sm,
		renderer:      r,
		isRunning:     true,
		width:         g.ApplicationConfig.StartWidth,
		height:        g.ApplicationConfig.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	appConfig := e.gameInstance.ApplicationConfig

	if appConfig.LogLevel != "" {
		core.SetLogLevel(appConfig.LogLevel)
	}

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(appConfig.Name,
		appConfig.StartPosX,
		appConfig.StartPosY,
		appConfig.StartWidth,
		appConfig.StartHeight); err != nil {
		return err
	}

	// The framebuffer may be larger than the window on high-DPI displays.
	e.width, e.height = e.platform.FramebufferSize()

	if err := e.renderer.Initialize(appConfig.Name, e.width, e.height); err != nil {
		return err
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}

		// Events posted from other goroutines run here, on the main thread.
		core.EventDispatchPosted()

		if !e.isRunning || e.isSuspended {
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()

		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := e.platform.GetAbsoluteTime()

		if err := e.frame(delta); err != nil {
			core.LogError("frame failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}
		e.platform.SwapBuffers()

		frameElapsedTime := e.platform.GetAbsoluteTime() - frameStartTime
		e.metrics.Update(frameElapsedTime)
		e.updateTitle()

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		core.InputUpdate(delta)

		// Update last time
		e.lastTime = currentTime
	}

	return nil
}

// frame runs the game's update and render callbacks and draws the result.
func (e *Engine) frame(delta float64) error {
	if err := e.gameInstance.FnUpdate(delta); err != nil {
		return fmt.Errorf("game update: %w", err)
	}

	packet := &renderer.RenderPacket{DeltaTime: delta}
	if err := e.gameInstance.FnRender(packet, delta); err != nil {
		return fmt.Errorf("game render: %w", err)
	}

	if err := e.renderer.DrawFrame(packet); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

func (e *Engine) updateTitle() {
	fps, ms := e.metrics.Frame()
	if fps == e.lastTitleFPS {
		return
	}
	e.lastTitleFPS = fps
	e.platform.SetTitle(fmt.Sprintf("%s (%.0f fps, %.2f ms)", e.gameInstance.ApplicationConfig.Name, fps, ms))
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if fn := e.gameInstance.FnShutdown; fn != nil {
		if err := fn(); err != nil {
			core.LogError("game shutdown: %s", err)
		}
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT, Sender: e})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	// Let other listeners see the new size too.
	return false
}
