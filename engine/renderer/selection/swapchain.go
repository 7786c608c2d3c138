package selection

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/math"
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

var (
	ErrNoSurfaceFormats    = errors.New("surface reports no formats")
	ErrIncompleteQueueInfo = errors.New("queue family indices are incomplete")
)

// ChooseSurfaceFormat prefers 8-bit BGRA sRGB in the sRGB non-linear color
// space, and otherwise takes the first format reported. formats must not be
// empty.
func ChooseSurfaceFormat(formats []metadata.SurfaceFormat) metadata.SurfaceFormat {
	for _, format := range formats {
		if format.Format == metadata.FormatB8G8R8A8Srgb &&
			format.ColorSpace == metadata.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	return formats[0]
}

// ChoosePresentMode prefers mailbox (triple buffering). FIFO is always
// available, whether listed or not.
func ChoosePresentMode(modes []metadata.PresentMode) metadata.PresentMode {
	for _, mode := range modes {
		if mode == metadata.PresentModeMailbox {
			return mode
		}
	}
	return metadata.PresentModeFifo
}

// ChooseExtent keeps the surface's current extent when the window system has
// fixed one. Otherwise the framebuffer size is clamped into the supported
// range, each axis on its own.
func ChooseExtent(caps metadata.SurfaceCapabilities, framebuffer metadata.Extent2D) metadata.Extent2D {
	if !caps.CurrentExtent.IsUndefined() {
		return caps.CurrentExtent
	}
	return metadata.Extent2D{
		Width:  math.Clamp(framebuffer.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: math.Clamp(framebuffer.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the surface minimum, capped
// at the maximum only when the surface reports one (a maximum of 0 means
// unbounded).
func ChooseImageCount(caps metadata.SurfaceCapabilities) uint32 {
	imageCount := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && imageCount > caps.MaxImageCount {
		imageCount = caps.MaxImageCount
	}
	return imageCount
}

// ChooseSharingMode returns concurrent sharing across both families when
// graphics and presentation use different ones. indices must be complete.
func ChooseSharingMode(indices metadata.QueueFamilyIndices) (metadata.SharingMode, []uint32) {
	if indices.Shared() {
		return metadata.SharingModeExclusive, nil
	}
	return metadata.SharingModeConcurrent, indices.Unique()
}

// NegotiateSwapchain derives the swapchain configuration from what the
// selected device supports and the current framebuffer size.
func NegotiateSwapchain(support metadata.SwapchainSupport, indices metadata.QueueFamilyIndices, framebuffer metadata.Extent2D) (*metadata.SwapchainConfig, error) {
	if len(support.Formats) == 0 {
		return nil, errors.WithStack(ErrNoSurfaceFormats)
	}
	if !indices.Complete() {
		return nil, errors.WithStack(ErrIncompleteQueueInfo)
	}

	format := ChooseSurfaceFormat(support.Formats)
	sharingMode, familyIndices := ChooseSharingMode(indices)

	config := &metadata.SwapchainConfig{
		Generation:         uuid.New(),
		Format:             format.Format,
		ColorSpace:         format.ColorSpace,
		Extent:             ChooseExtent(support.Capabilities, framebuffer),
		ImageCount:         ChooseImageCount(support.Capabilities),
		PresentMode:        ChoosePresentMode(support.PresentModes),
		SharingMode:        sharingMode,
		QueueFamilyIndices: familyIndices,
		Transform:          support.Capabilities.CurrentTransform,
		Indices:            indices,
	}

	core.LogDebug("Swapchain %s: format %d, extent %s, %d images, %s, %s",
		config.Generation, config.Format, config.Extent, config.ImageCount, config.PresentMode, config.SharingMode)

	return config, nil
}
