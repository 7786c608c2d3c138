package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
	"github.com/spaghettifunk/vkpick/engine/renderer/selection"
)

// RendererSystem runs device selection and swapchain negotiation against a
// backend and keeps the results for the rest of the renderer.
type RendererSystem struct {
	backend RendererBackend
	window  Window
	config  Config
	clock   *core.Clock

	selection *selection.Selection
	swapchain *metadata.SwapchainConfig
	images    []metadata.SwapchainImage
}

func NewRendererSystem(backend RendererBackend, window Window, config Config) *RendererSystem {
	return &RendererSystem{
		backend: backend,
		window:  window,
		config:  config,
		clock:   core.NewClock(),
	}
}

// Initialize runs the whole startup pipeline. Any error is fatal.
func (r *RendererSystem) Initialize(appName string) error {
	r.clock.Start()

	if err := r.backend.CreateInstance(appName, &r.config); err != nil {
		core.LogError(err.Error())
		return err
	}
	core.LogInfo("Vulkan Instance created in %s.", r.clock.Lap())

	if err := r.backend.CreateSurface(); err != nil {
		core.LogError(err.Error())
		return err
	}
	core.LogDebug("Vulkan surface created in %s.", r.clock.Lap())

	if err := r.selectDevice(); err != nil {
		return err
	}

	if err := r.createSwapchain(r.selection.Support, core.ErrNoSuitableDevice); err != nil {
		return err
	}
	r.clock.Stop()
	return nil
}

// RenegotiateSwapchain rebuilds the swapchain on the current device, for
// instance after a resize. A minimized window is left alone.
func (r *RendererSystem) RenegotiateSwapchain() error {
	if r.selection == nil {
		return errors.New("renderer is not initialized")
	}

	width, height := r.window.FramebufferSize()
	if width == 0 || height == 0 {
		core.LogDebug("Framebuffer is %dx%d, skipping swapchain renegotiation.", width, height)
		return nil
	}

	r.clock.Start()
	support, err := selection.QuerySwapchainSupport(r.selection.Device)
	if err != nil {
		return errors.Mark(err, core.ErrSurfaceLost)
	}
	if !support.Adequate() {
		return errors.Mark(errors.New("surface no longer reports formats or present modes"), core.ErrSurfaceLost)
	}

	r.backend.DestroySwapchain()
	r.swapchain = nil
	r.images = nil

	if err := r.createSwapchain(support, core.ErrSurfaceLost); err != nil {
		return err
	}
	r.selection.Support = support
	r.clock.Stop()
	return nil
}

// ReselectDevice tears down everything that depends on the surface, creates
// a new surface and runs selection and negotiation again.
func (r *RendererSystem) ReselectDevice() error {
	core.LogInfo("Reselecting physical device...")
	r.destroyDevice()
	r.backend.DestroySurface()

	r.clock.Start()
	if err := r.backend.CreateSurface(); err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := r.selectDevice(); err != nil {
		return err
	}
	if err := r.createSwapchain(r.selection.Support, core.ErrNoSuitableDevice); err != nil {
		return err
	}
	r.clock.Stop()
	return nil
}

func (r *RendererSystem) Shutdown() {
	r.destroyDevice()
	r.backend.DestroySurface()
	r.backend.Shutdown()
}

// Device returns the selected physical device, or nil before Initialize.
func (r *RendererSystem) Device() selection.Device {
	if r.selection == nil {
		return nil
	}
	return r.selection.Device
}

func (r *RendererSystem) QueueFamilyIndices() metadata.QueueFamilyIndices {
	if r.selection == nil {
		return metadata.QueueFamilyIndices{}
	}
	return r.selection.Indices
}

func (r *RendererSystem) SwapchainConfig() *metadata.SwapchainConfig {
	return r.swapchain
}

func (r *RendererSystem) SwapchainImageCount() uint32 {
	return uint32(len(r.images))
}

// SwapchainImages returns the images of the current swapchain. They are
// replaced whenever the swapchain is rebuilt.
func (r *RendererSystem) SwapchainImages() []metadata.SwapchainImage {
	return r.images
}

func (r *RendererSystem) selectDevice() error {
	devices, err := r.backend.PhysicalDevices()
	if err != nil {
		// Enumeration failing means no usable Vulkan device was found.
		err = errors.Mark(err, core.ErrNoDevices)
		core.LogError(err.Error())
		return err
	}

	sel, err := selection.SelectPhysicalDevice(devices, selection.Requirements{
		DeviceExtensions: r.config.DeviceExtensions,
	})
	if err != nil {
		return err
	}
	core.LogInfo("Physical device selected in %s.", r.clock.Lap())

	if err := r.backend.CreateLogicalDevice(sel.Device, sel.Indices, &r.config); err != nil {
		core.LogError(err.Error())
		return err
	}
	core.LogInfo("Logical device created in %s.", r.clock.Lap())

	r.selection = sel
	return nil
}

// createSwapchain negotiates and builds the swapchain. A negotiation
// failure is marked with kind: ErrSurfaceLost when renegotiating on a live
// device, ErrNoSuitableDevice right after selection.
func (r *RendererSystem) createSwapchain(support metadata.SwapchainSupport, kind error) error {
	width, height := r.window.FramebufferSize()
	config, err := selection.NegotiateSwapchain(support, r.selection.Indices, metadata.Extent2D{Width: width, Height: height})
	if err != nil {
		return errors.Mark(err, kind)
	}

	images, err := r.backend.CreateSwapchain(config)
	if err != nil {
		core.LogError(err.Error())
		return err
	}

	r.swapchain = config
	r.images = images
	core.LogInfo("Swapchain created in %s: %s, %d images, %s.", r.clock.Lap(), config.Extent, len(images), config.PresentMode)
	return nil
}

func (r *RendererSystem) destroyDevice() {
	if r.swapchain != nil {
		r.backend.DestroySwapchain()
		r.swapchain = nil
		r.images = nil
	}
	if r.selection != nil {
		r.backend.DestroyLogicalDevice()
		r.selection = nil
	}
}
