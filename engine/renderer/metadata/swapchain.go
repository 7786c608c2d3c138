package metadata

import (
	"fmt"

	"github.com/google/uuid"
)

// Format, ColorSpace, PresentMode, SharingMode and SurfaceTransform carry
// the numeric values Vulkan uses, so backends convert with a plain cast.
type Format uint32

const (
	FormatUndefined     Format = 0
	FormatR8G8B8A8Unorm Format = 37
	FormatR8G8B8A8Srgb  Format = 43
	FormatB8G8R8A8Unorm Format = 44
	FormatB8G8R8A8Srgb  Format = 50
)

type ColorSpace uint32

const (
	ColorSpaceSrgbNonlinear ColorSpace = 0
)

type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

type PresentMode uint32

const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFifo
	PresentModeFifoRelaxed
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "IMMEDIATE"
	case PresentModeMailbox:
		return "MAILBOX"
	case PresentModeFifo:
		return "FIFO"
	case PresentModeFifoRelaxed:
		return "FIFO_RELAXED"
	}
	return fmt.Sprintf("PresentMode(%d)", uint32(m))
}

type SharingMode uint32

const (
	SharingModeExclusive SharingMode = iota
	SharingModeConcurrent
)

func (m SharingMode) String() string {
	if m == SharingModeConcurrent {
		return "CONCURRENT"
	}
	return "EXCLUSIVE"
}

type SurfaceTransform uint32

const (
	SurfaceTransformIdentity SurfaceTransform = 1
)

// UndefinedExtent is reported as the current extent when the window system
// lets the swapchain decide the size.
const UndefinedExtent uint32 = 0xFFFFFFFF

type Extent2D struct {
	Width  uint32
	Height uint32
}

func (e Extent2D) IsUndefined() bool {
	return e.Width == UndefinedExtent
}

func (e Extent2D) IsZero() bool {
	return e.Width == 0 || e.Height == 0
}

func (e Extent2D) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

type SurfaceCapabilities struct {
	MinImageCount uint32
	// MaxImageCount of 0 means there is no upper bound.
	MaxImageCount    uint32
	CurrentExtent    Extent2D
	MinImageExtent   Extent2D
	MaxImageExtent   Extent2D
	CurrentTransform SurfaceTransform
}

// SwapchainSupport is what a device reports for a given surface.
type SwapchainSupport struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

func (s SwapchainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// SwapchainImage is an opaque handle to one image owned by the swapchain.
// It stays valid until the swapchain is destroyed.
type SwapchainImage uintptr

// SwapchainConfig is the negotiated presentation configuration. It is never
// mutated: renegotiation produces a new value with a new Generation.
type SwapchainConfig struct {
	Generation  uuid.UUID
	Format      Format
	ColorSpace  ColorSpace
	Extent      Extent2D
	ImageCount  uint32
	PresentMode PresentMode
	SharingMode SharingMode
	// QueueFamilyIndices is only populated for concurrent sharing.
	QueueFamilyIndices []uint32
	Transform          SurfaceTransform
	Indices            QueueFamilyIndices
}
