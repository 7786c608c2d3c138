package renderer

import (
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
	"github.com/spaghettifunk/vkpick/engine/renderer/selection"
)

// RendererBackend is the graphics API the startup pipeline drives. Every
// creation call returns an error marked with core.ErrCreationFailed.
type RendererBackend interface {
	// CreateInstance creates the API instance and, when validation is
	// enabled, checks the layers and installs the debug messenger.
	CreateInstance(appName string, config *Config) error
	CreateSurface() error
	PhysicalDevices() ([]selection.Device, error)
	CreateLogicalDevice(device selection.Device, indices metadata.QueueFamilyIndices, config *Config) error
	// CreateSwapchain builds the swapchain described by config and returns
	// the images the driver actually created.
	CreateSwapchain(config *metadata.SwapchainConfig) ([]metadata.SwapchainImage, error)
	DestroySwapchain()
	DestroyLogicalDevice()
	DestroySurface()
	Shutdown()
}

// Window reports the current framebuffer size in pixels.
type Window interface {
	FramebufferSize() (width, height uint32)
}

// Config controls device selection and the debugging aids around it.
type Config struct {
	EnableValidation bool     `toml:"enable_validation"`
	ValidationLayers []string `toml:"validation_layers"`
	DeviceExtensions []string `toml:"device_extensions"`
}

func DefaultConfig() Config {
	return Config{
		EnableValidation: false,
		ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},
		DeviceExtensions: []string{"VK_KHR_swapchain"},
	}
}
