package selection

import (
	"github.com/cockroachdb/errors"
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

// fakeDevice answers queries from canned data and counts surface probes.
type fakeDevice struct {
	name       string
	families   []metadata.QueueFamilyProperties
	present    map[uint32]bool
	extensions []string
	caps       metadata.SurfaceCapabilities
	formats    []metadata.SurfaceFormat
	modes      []metadata.PresentMode

	extensionsErr error
	presentErr    error
	capsErr       error

	supportQueries []uint32
	surfaceProbes  int
}

func (f *fakeDevice) Properties() metadata.DeviceProperties {
	return metadata.DeviceProperties{Name: f.name, Type: metadata.DeviceTypeDiscreteGPU}
}

func (f *fakeDevice) QueueFamilies() []metadata.QueueFamilyProperties {
	return f.families
}

func (f *fakeDevice) SurfaceSupport(queueFamilyIndex uint32) (bool, error) {
	f.supportQueries = append(f.supportQueries, queueFamilyIndex)
	if f.presentErr != nil {
		return false, f.presentErr
	}
	return f.present[queueFamilyIndex], nil
}

func (f *fakeDevice) ExtensionNames() ([]string, error) {
	return f.extensions, f.extensionsErr
}

func (f *fakeDevice) SurfaceCapabilities() (metadata.SurfaceCapabilities, error) {
	f.surfaceProbes++
	return f.caps, f.capsErr
}

func (f *fakeDevice) SurfaceFormats() ([]metadata.SurfaceFormat, error) {
	return f.formats, nil
}

func (f *fakeDevice) PresentModes() ([]metadata.PresentMode, error) {
	return f.modes, nil
}

var (
	errQueryFailed = errors.New("VK_ERROR_SURFACE_LOST_KHR")

	requirements = Requirements{DeviceExtensions: []string{"VK_KHR_swapchain"}}

	graphicsFamily = metadata.QueueFamilyProperties{Flags: metadata.QueueGraphicsBit | metadata.QueueComputeBit | metadata.QueueTransferBit, Count: 16}
	transferFamily = metadata.QueueFamilyProperties{Flags: metadata.QueueTransferBit, Count: 2}
)

// suitableDevice returns a device that passes every check with a single
// family doing graphics and presentation.
func suitableDevice(name string) *fakeDevice {
	return &fakeDevice{
		name:       name,
		families:   []metadata.QueueFamilyProperties{graphicsFamily},
		present:    map[uint32]bool{0: true},
		extensions: []string{"VK_KHR_swapchain", "VK_KHR_maintenance1"},
		caps: metadata.SurfaceCapabilities{
			MinImageCount:  2,
			CurrentExtent:  metadata.Extent2D{Width: metadata.UndefinedExtent, Height: metadata.UndefinedExtent},
			MinImageExtent: metadata.Extent2D{Width: 1, Height: 1},
			MaxImageExtent: metadata.Extent2D{Width: 4096, Height: 4096},
		},
		formats: []metadata.SurfaceFormat{{Format: metadata.FormatB8G8R8A8Srgb, ColorSpace: metadata.ColorSpaceSrgbNonlinear}},
		modes:   []metadata.PresentMode{metadata.PresentModeFifo},
	}
}
