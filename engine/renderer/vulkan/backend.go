package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/platform"
	"github.com/spaghettifunk/vkpick/engine/renderer"
)

var _ renderer.RendererBackend = (*VulkanRenderer)(nil)

// VulkanRenderer is the Vulkan implementation of renderer.RendererBackend.
type VulkanRenderer struct {
	platform *platform.Platform
	context  *VulkanContext

	// Layers enabled on the instance, repeated on the logical device.
	validationLayers []string
}

func New(p *platform.Platform) *VulkanRenderer {
	return &VulkanRenderer{
		platform: p,
		context: &VulkanContext{
			Allocator: nil,
		},
	}
}

func (vr *VulkanRenderer) Shutdown() {
	if vr.context.Instance == nil {
		return
	}
	if vr.context.debugMessenger != vk.NullDebugReportCallback {
		core.LogDebug("Destroying Vulkan debugger...")
		vk.DestroyDebugReportCallback(vr.context.Instance, vr.context.debugMessenger, vr.context.Allocator)
		vr.context.debugMessenger = vk.NullDebugReportCallback
	}
	core.LogInfo("Destroying Vulkan instance...")
	vk.DestroyInstance(vr.context.Instance, vr.context.Allocator)
	vr.context.Instance = nil
}
