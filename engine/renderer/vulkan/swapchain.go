package vulkan

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

type VulkanSwapchain struct {
	Config *metadata.SwapchainConfig
	Handle vk.Swapchain
	Images []vk.Image
}

func (vr *VulkanRenderer) CreateSwapchain(config *metadata.SwapchainConfig) ([]metadata.SwapchainImage, error) {
	if vr.context.Device == nil {
		return nil, core.CreationFailed("swapchain", errors.New("no logical device"))
	}
	device := vr.context.Device.LogicalDevice

	swapchainCreateInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          vr.context.Surface,
		MinImageCount:    config.ImageCount,
		ImageFormat:      vk.Format(config.Format),
		ImageColorSpace:  vk.ColorSpace(config.ColorSpace),
		ImageExtent:      vk.Extent2D{Width: config.Extent.Width, Height: config.Extent.Height},
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingMode(config.SharingMode),
		PreTransform:     vk.SurfaceTransformFlagBits(config.Transform),
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      vk.PresentMode(config.PresentMode),
		Clipped:          vk.True,
		OldSwapchain:     vk.NullSwapchain,
	}
	if config.SharingMode == metadata.SharingModeConcurrent {
		swapchainCreateInfo.QueueFamilyIndexCount = uint32(len(config.QueueFamilyIndices))
		swapchainCreateInfo.PQueueFamilyIndices = config.QueueFamilyIndices
	}

	var handle vk.Swapchain
	if res := vk.CreateSwapchain(device, &swapchainCreateInfo, vr.context.Allocator, &handle); res != vk.Success {
		err := core.CreationFailed("swapchain", resultError(res, "vkCreateSwapchainKHR"))
		if res == vk.ErrorSurfaceLost || res == vk.ErrorNativeWindowInUse {
			err = errors.Mark(err, core.ErrSurfaceLost)
		}
		return nil, err
	}

	var imageCount uint32
	if res := vk.GetSwapchainImages(device, handle, &imageCount, nil); res != vk.Success {
		vk.DestroySwapchain(device, handle, vr.context.Allocator)
		return nil, core.CreationFailed("swapchain", resultError(res, "vkGetSwapchainImagesKHR"))
	}
	images := make([]vk.Image, imageCount)
	if res := vk.GetSwapchainImages(device, handle, &imageCount, images); res != vk.Success {
		vk.DestroySwapchain(device, handle, vr.context.Allocator)
		return nil, core.CreationFailed("swapchain", resultError(res, "vkGetSwapchainImagesKHR"))
	}

	images = images[:imageCount]
	vr.context.Swapchain = &VulkanSwapchain{
		Config: config,
		Handle: handle,
		Images: images,
	}

	handles := make([]metadata.SwapchainImage, len(images))
	for i := range images {
		// Non-dispatchable handles are 64-bit values on every supported target.
		handles[i] = metadata.SwapchainImage(*(*uintptr)(unsafe.Pointer(&images[i])))
	}
	return handles, nil
}

func (vr *VulkanRenderer) DestroySwapchain() {
	sc := vr.context.Swapchain
	if sc == nil || vr.context.Device == nil {
		return
	}
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)
	// Images are owned by the swapchain and go away with it.
	vk.DestroySwapchain(vr.context.Device.LogicalDevice, sc.Handle, vr.context.Allocator)
	vr.context.Swapchain = nil
}
