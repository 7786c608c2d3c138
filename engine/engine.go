package engine

import (
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/platform"
	"github.com/spaghettifunk/vkpick/engine/renderer"
	"github.com/spaghettifunk/vkpick/engine/renderer/vulkan"
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
	currentStage Stage
	config       *ApplicationConfig
	configPath   string
	platform     *platform.Platform
	renderer     *renderer.RendererSystem
	watcher      *ConfigWatcher
	clock        *core.Clock

	isRunning atomic.Bool
	// windowMu guards windowOpen against Stop racing Shutdown.
	windowMu      sync.Mutex
	windowOpen    bool
	isSuspended   bool
	resizePending bool
	width         uint32
	height        uint32
}

// New prepares an engine for config. configPath is watched for changes
// once the engine is initialized; an empty path disables the watcher.
func New(config *ApplicationConfig, configPath string) *Engine {
	return &Engine{
		currentStage: EngineStageUninitialized,
		config:       config,
		configPath:   configPath,
		platform:     platform.New(),
		clock:        core.NewClock(),
		width:        config.StartWidth,
		height:       config.StartHeight,
	}
}

// Initialize opens the window, selects a GPU and builds the swapchain.
func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	e.clock.Start()
	core.SetLogLevel(e.config.LogLevel)

	// initialize events
	if !core.EventSystemInitialize() {
		return errors.New("failed to initialize the event system")
	}
	if err := e.registerEvents(); err != nil {
		return err
	}

	if err := e.platform.Startup(e.config.Name,
		e.config.StartPosX,
		e.config.StartPosY,
		e.config.StartWidth,
		e.config.StartHeight,
		e.config.Resizable); err != nil {
		return err
	}
	e.windowMu.Lock()
	e.windowOpen = true
	e.windowMu.Unlock()

	e.renderer = renderer.NewRendererSystem(vulkan.New(e.platform), e.platform, e.config.Renderer)
	if err := e.renderer.Initialize(e.config.Name); err != nil {
		return err
	}
	e.logSelection()

	if e.configPath != "" {
		w, err := NewConfigWatcher(e.configPath)
		if err != nil {
			// Hot reload is optional.
			core.LogWarn("Config hot reload disabled: %v", err)
		} else {
			e.watcher = w
			e.watcher.Start()
		}
	}

	e.clock.Stop()
	core.LogInfo("Engine initialized in %s.", e.clock.Elapsed())
	e.currentStage = EngineStageInitialized
	return nil
}

// Run processes window events until the window closes or Stop is called.
// Resizes renegotiate the swapchain, falling back to a full device
// reselection when the surface is gone.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return errors.New("engine is not initialized")
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}

		if e.resizePending && !e.isSuspended {
			e.resizePending = false
			if err := recoverSwapchain(e.renderer); err != nil {
				e.isRunning.Store(false)
				return err
			}
		}
	}
	return nil
}

// Stop asks Run to return. Safe to call from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
	e.windowMu.Lock()
	defer e.windowMu.Unlock()
	if e.windowOpen {
		e.platform.Wake()
	}
}

// Shutdown releases everything Initialize created, in reverse order. It
// must run on the main goroutine.
func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown

	var err error
	if e.watcher != nil {
		err = errors.CombineErrors(err, e.watcher.Close())
		e.watcher = nil
	}
	if e.renderer != nil {
		e.renderer.Shutdown()
		e.renderer = nil
	}
	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_RESIZED, e)
	core.EventUnregister(core.EVENT_CODE_CONFIG_RELOADED, e)
	err = errors.CombineErrors(err, core.EventSystemShutdown())

	// GLFW must not be woken once terminated.
	e.windowMu.Lock()
	if e.windowOpen {
		e.windowOpen = false
		err = errors.CombineErrors(err, e.platform.Shutdown())
	}
	e.windowMu.Unlock()
	e.currentStage = EngineStageUninitialized
	return err
}

// Renderer exposes the selected device and swapchain.
func (e *Engine) Renderer() *renderer.RendererSystem {
	return e.renderer
}

// GetFramebufferSize returns the width and height (in this order) of the
// last framebuffer size reported by the window.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) registerEvents() error {
	if !core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onQuit) {
		return errors.New("failed to register for the quit event")
	}
	if !core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized) {
		return errors.New("failed to register for the resize event")
	}
	if !core.EventRegister(core.EVENT_CODE_CONFIG_RELOADED, e, e.onConfigReloaded) {
		return errors.New("failed to register for the config reloaded event")
	}
	return nil
}

func (e *Engine) logSelection() {
	indices := e.renderer.QueueFamilyIndices()
	core.LogInfo("Graphics Family Index: %s", indices.Graphics)
	core.LogInfo("Present Family Index:  %s", indices.Present)

	sc := e.renderer.SwapchainConfig()
	core.LogInfo("Swapchain %s: %s, %d images, %s, %s sharing.",
		sc.Generation, sc.Extent, e.renderer.SwapchainImageCount(), sc.PresentMode, sc.SharingMode)
}

func (e *Engine) onQuit(context core.EventContext) bool {
	core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
	e.isRunning.Store(false)
	return true
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	return e.handleResize(se.WindowWidth, se.WindowHeight)
}

func (e *Engine) handleResize(width, height uint32) bool {
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
	e.resizePending = true
	return true
}

// Runs on the watcher goroutine.
func (e *Engine) onConfigReloaded(context core.EventContext) bool {
	if level, ok := context.Data.(core.LogLevel); ok {
		core.LogDebug("Log level changed to '%s'. Renderer settings apply on restart.", level)
	}
	return false
}

type swapchainRecoverer interface {
	RenegotiateSwapchain() error
	ReselectDevice() error
}

// recoverSwapchain renegotiates on the current device and only reselects
// when the surface itself is gone.
func recoverSwapchain(r swapchainRecoverer) error {
	err := r.RenegotiateSwapchain()
	if err == nil {
		return nil
	}
	if !errors.Is(err, core.ErrSurfaceLost) {
		return err
	}
	core.LogWarn("Surface lost (%v), reselecting device.", err)
	return r.ReselectDevice()
}
