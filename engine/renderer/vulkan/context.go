package vulkan

import (
	vk "github.com/goki/vulkan"
)

type VulkanContext struct {
	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks
	// Surface is replaced when the renderer reselects its device; physical
	// device adapters always read the current one.
	Surface vk.Surface

	// Only set when validation is enabled.
	debugMessenger vk.DebugReportCallback

	Device    *VulkanDevice
	Swapchain *VulkanSwapchain
}
