package vulkan

import (
	"github.com/cockroachdb/errors"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/renderer"
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
	"github.com/spaghettifunk/vkpick/engine/renderer/selection"
	"golang.org/x/exp/slices"
)

const portabilitySubsetExtensionName = "VK_KHR_portability_subset"

var _ selection.Device = (*PhysicalDevice)(nil)

// PhysicalDevice answers selection queries for one GPU against the
// context's current surface.
type PhysicalDevice struct {
	Handle     vk.PhysicalDevice
	context    *VulkanContext
	properties metadata.DeviceProperties
	families   []metadata.QueueFamilyProperties
}

func newPhysicalDevice(context *VulkanContext, handle vk.PhysicalDevice) *PhysicalDevice {
	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(handle, &properties)
	properties.Deref()

	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(handle, &familyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(handle, &familyCount, queueFamilies)

	families := make([]metadata.QueueFamilyProperties, familyCount)
	for i := range queueFamilies {
		queueFamilies[i].Deref()
		families[i] = metadata.QueueFamilyProperties{
			Flags: metadata.QueueFlags(queueFamilies[i].QueueFlags),
			Count: queueFamilies[i].QueueCount,
		}
	}

	return &PhysicalDevice{
		Handle:  handle,
		context: context,
		properties: metadata.DeviceProperties{
			Name:          vk.ToString(properties.DeviceName[:]),
			Type:          metadata.DeviceType(properties.DeviceType),
			DriverVersion: metadata.Version(properties.DriverVersion),
			APIVersion:    metadata.Version(properties.ApiVersion),
		},
		families: families,
	}
}

func (pd *PhysicalDevice) Properties() metadata.DeviceProperties {
	return pd.properties
}

func (pd *PhysicalDevice) QueueFamilies() []metadata.QueueFamilyProperties {
	return pd.families
}

func (pd *PhysicalDevice) SurfaceSupport(queueFamilyIndex uint32) (bool, error) {
	var supportsPresent vk.Bool32 = vk.False
	if res := vk.GetPhysicalDeviceSurfaceSupport(pd.Handle, queueFamilyIndex, pd.context.Surface, &supportsPresent); res != vk.Success {
		return false, resultError(res, "vkGetPhysicalDeviceSurfaceSupportKHR")
	}
	return supportsPresent == vk.True, nil
}

func (pd *PhysicalDevice) ExtensionNames() ([]string, error) {
	var count uint32
	if res := vk.EnumerateDeviceExtensionProperties(pd.Handle, "", &count, nil); res != vk.Success {
		return nil, resultError(res, "vkEnumerateDeviceExtensionProperties")
	}
	extensions := make([]vk.ExtensionProperties, count)
	if count != 0 {
		if res := vk.EnumerateDeviceExtensionProperties(pd.Handle, "", &count, extensions); res != vk.Success {
			return nil, resultError(res, "vkEnumerateDeviceExtensionProperties")
		}
	}

	names := make([]string, 0, count)
	for i := range extensions {
		extensions[i].Deref()
		names = append(names, vk.ToString(extensions[i].ExtensionName[:]))
	}
	return names, nil
}

func (pd *PhysicalDevice) SurfaceCapabilities() (metadata.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	if res := vk.GetPhysicalDeviceSurfaceCapabilities(pd.Handle, pd.context.Surface, &caps); res != vk.Success {
		return metadata.SurfaceCapabilities{}, resultError(res, "vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	return metadata.SurfaceCapabilities{
		MinImageCount:    caps.MinImageCount,
		MaxImageCount:    caps.MaxImageCount,
		CurrentExtent:    metadata.Extent2D{Width: caps.CurrentExtent.Width, Height: caps.CurrentExtent.Height},
		MinImageExtent:   metadata.Extent2D{Width: caps.MinImageExtent.Width, Height: caps.MinImageExtent.Height},
		MaxImageExtent:   metadata.Extent2D{Width: caps.MaxImageExtent.Width, Height: caps.MaxImageExtent.Height},
		CurrentTransform: metadata.SurfaceTransform(caps.CurrentTransform),
	}, nil
}

func (pd *PhysicalDevice) SurfaceFormats() ([]metadata.SurfaceFormat, error) {
	var count uint32
	if res := vk.GetPhysicalDeviceSurfaceFormats(pd.Handle, pd.context.Surface, &count, nil); res != vk.Success {
		return nil, resultError(res, "vkGetPhysicalDeviceSurfaceFormatsKHR")
	}
	if count == 0 {
		return nil, nil
	}
	formats := make([]vk.SurfaceFormat, count)
	if res := vk.GetPhysicalDeviceSurfaceFormats(pd.Handle, pd.context.Surface, &count, formats); res != vk.Success {
		return nil, resultError(res, "vkGetPhysicalDeviceSurfaceFormatsKHR")
	}

	out := make([]metadata.SurfaceFormat, count)
	for i := range formats {
		formats[i].Deref()
		out[i] = metadata.SurfaceFormat{
			Format:     metadata.Format(formats[i].Format),
			ColorSpace: metadata.ColorSpace(formats[i].ColorSpace),
		}
	}
	return out, nil
}

func (pd *PhysicalDevice) PresentModes() ([]metadata.PresentMode, error) {
	var count uint32
	if res := vk.GetPhysicalDeviceSurfacePresentModes(pd.Handle, pd.context.Surface, &count, nil); res != vk.Success {
		return nil, resultError(res, "vkGetPhysicalDeviceSurfacePresentModesKHR")
	}
	if count == 0 {
		return nil, nil
	}
	modes := make([]vk.PresentMode, count)
	if res := vk.GetPhysicalDeviceSurfacePresentModes(pd.Handle, pd.context.Surface, &count, modes); res != vk.Success {
		return nil, resultError(res, "vkGetPhysicalDeviceSurfacePresentModesKHR")
	}

	out := make([]metadata.PresentMode, count)
	for i, mode := range modes {
		out[i] = metadata.PresentMode(mode)
	}
	return out, nil
}

func (vr *VulkanRenderer) PhysicalDevices() ([]selection.Device, error) {
	var count uint32
	if res := vk.EnumeratePhysicalDevices(vr.context.Instance, &count, nil); res != vk.Success {
		return nil, resultError(res, "vkEnumeratePhysicalDevices")
	}
	if count == 0 {
		return nil, nil
	}
	handles := make([]vk.PhysicalDevice, count)
	if res := vk.EnumeratePhysicalDevices(vr.context.Instance, &count, handles); res != vk.Success {
		return nil, resultError(res, "vkEnumeratePhysicalDevices")
	}

	devices := make([]selection.Device, count)
	for i, handle := range handles {
		devices[i] = newPhysicalDevice(vr.context, handle)
	}
	return devices, nil
}

type VulkanDevice struct {
	PhysicalDevice *PhysicalDevice
	LogicalDevice  vk.Device

	GraphicsQueueIndex uint32
	PresentQueueIndex  uint32

	GraphicsQueue vk.Queue
	PresentQueue  vk.Queue
}

func (vr *VulkanRenderer) CreateLogicalDevice(device selection.Device, indices metadata.QueueFamilyIndices, config *renderer.Config) error {
	physical, ok := device.(*PhysicalDevice)
	if !ok {
		return core.CreationFailed("logical device", errors.Newf("unexpected device type %T", device))
	}
	graphics, graphicsOk := indices.Graphics.Get()
	present, presentOk := indices.Present.Get()
	if !graphicsOk || !presentOk {
		return core.CreationFailed("logical device", errors.New("queue family indices are incomplete"))
	}

	core.LogInfo("Creating logical device...")

	// NOTE: Do not create additional queues for shared indices.
	unique := indices.Unique()
	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, len(unique))
	for i, index := range unique {
		queueCreateInfos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: index,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}

	extensionNames := slices.Clone(config.DeviceExtensions)
	reported, err := physical.ExtensionNames()
	if err != nil {
		return core.CreationFailed("logical device", err)
	}
	if slices.Contains(reported, portabilitySubsetExtensionName) && !slices.Contains(extensionNames, portabilitySubsetExtensionName) {
		core.LogInfo("Adding required extension '%s'.", portabilitySubsetExtensionName)
		extensionNames = append(extensionNames, portabilitySubsetExtensionName)
	}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueCreateInfos)),
		PQueueCreateInfos:       queueCreateInfos,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
		EnabledExtensionCount:   uint32(len(extensionNames)),
		PpEnabledExtensionNames: VulkanSafeStrings(extensionNames),
		// Ignored by current implementations, set for older ones.
		EnabledLayerCount:   uint32(len(vr.validationLayers)),
		PpEnabledLayerNames: VulkanSafeStrings(vr.validationLayers),
	}

	var logical vk.Device
	if res := vk.CreateDevice(physical.Handle, &deviceCreateInfo, vr.context.Allocator, &logical); res != vk.Success {
		return core.CreationFailed("logical device", resultError(res, "vkCreateDevice"))
	}
	core.LogInfo("Logical device created.")

	d := &VulkanDevice{
		PhysicalDevice:     physical,
		LogicalDevice:      logical,
		GraphicsQueueIndex: graphics,
		PresentQueueIndex:  present,
	}
	vk.GetDeviceQueue(logical, graphics, 0, &d.GraphicsQueue)
	vk.GetDeviceQueue(logical, present, 0, &d.PresentQueue)
	core.LogInfo("Queues obtained.")

	vr.context.Device = d
	return nil
}

func (vr *VulkanRenderer) DestroyLogicalDevice() {
	d := vr.context.Device
	if d == nil {
		return
	}
	core.LogInfo("Destroying logical device...")
	d.GraphicsQueue = nil
	d.PresentQueue = nil
	if d.LogicalDevice != nil {
		vk.DestroyDevice(d.LogicalDevice, vr.context.Allocator)
	}
	vr.context.Device = nil
}
