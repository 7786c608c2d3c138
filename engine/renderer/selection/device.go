// Package selection decides which physical device the renderer runs on and
// how its swapchain is configured. It only sees devices through the Device
// interface, so the decisions are independent of the graphics binding.
package selection

import (
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

// Device is a physical device bound to the presentation surface the
// renderer draws to. Every surface query is answered for that surface.
type Device interface {
	Properties() metadata.DeviceProperties
	// QueueFamilies returns the families in the order the driver reports
	// them. The position in the slice is the family index.
	QueueFamilies() []metadata.QueueFamilyProperties
	SurfaceSupport(queueFamilyIndex uint32) (bool, error)
	ExtensionNames() ([]string, error)
	SurfaceCapabilities() (metadata.SurfaceCapabilities, error)
	SurfaceFormats() ([]metadata.SurfaceFormat, error)
	PresentModes() ([]metadata.PresentMode, error)
}

// Requirements a device has to meet to be selected.
type Requirements struct {
	DeviceExtensions []string
}

// Selection is the outcome of device selection.
type Selection struct {
	Device     Device
	Properties metadata.DeviceProperties
	Indices    metadata.QueueFamilyIndices
	Support    metadata.SwapchainSupport
}
