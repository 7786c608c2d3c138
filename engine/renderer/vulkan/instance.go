package vulkan

import (
	"runtime"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/renderer"
	"github.com/spaghettifunk/vkpick/engine/renderer/selection"
)

func (vr *VulkanRenderer) CreateInstance(appName string, config *renderer.Config) error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return core.CreationFailed("instance", errors.New("GetInstanceProcAddress is nil"))
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return core.CreationFailed("instance", err)
	}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		EngineVersion:      uint32(vk.MakeVersion(1, 0, 0)),
		PEngineName:        VulkanSafeString("No Engine"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	requiredExtensions := vr.platform.GetRequiredExtensionNames()
	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
		// VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
		createInfo.Flags |= 1
	}

	var validationLayers []string
	if config.EnableValidation {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)

		core.LogInfo("Validation layers enabled. Enumerating...")
		missing, err := missingValidationLayers(config.ValidationLayers)
		if err != nil {
			return core.CreationFailed("instance", err)
		}
		if len(missing) > 0 {
			return core.CreationFailed("instance", errors.Newf("validation layers requested, but not available: %v", missing))
		}
		core.LogInfo("All required validation layers are present.")
		validationLayers = config.ValidationLayers
	}

	core.LogDebug("Required instance extensions: %v", requiredExtensions)
	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)
	createInfo.EnabledLayerCount = uint32(len(validationLayers))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(validationLayers)

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		return core.CreationFailed("instance", resultError(res, "vkCreateInstance"))
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		return core.CreationFailed("instance", err)
	}

	if config.EnableValidation {
		core.LogDebug("Creating Vulkan debugger...")
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
			PfnCallback: dbgCallbackFunc,
		}

		var dbg vk.DebugReportCallback
		if res := vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, vr.context.Allocator, &dbg); res != vk.Success {
			return core.CreationFailed("debug messenger", resultError(res, "vkCreateDebugReportCallbackEXT"))
		}
		vr.context.debugMessenger = dbg
		core.LogDebug("Vulkan debugger created.")
	}

	vr.validationLayers = validationLayers
	return nil
}

func missingValidationLayers(required []string) ([]string, error) {
	var count uint32
	if res := vk.EnumerateInstanceLayerProperties(&count, nil); res != vk.Success {
		return nil, resultError(res, "vkEnumerateInstanceLayerProperties")
	}
	layers := make([]vk.LayerProperties, count)
	if res := vk.EnumerateInstanceLayerProperties(&count, layers); res != vk.Success {
		return nil, resultError(res, "vkEnumerateInstanceLayerProperties")
	}

	available := make([]string, 0, count)
	for i := range layers {
		layers[i].Deref()
		available = append(available, vk.ToString(layers[i].LayerName[:]))
	}
	// layer names compare exactly like extension names
	return selection.MissingExtensions(required, available), nil
}

func (vr *VulkanRenderer) CreateSurface() error {
	surface, err := vr.platform.CreateWindowSurface(vr.context.Instance)
	if err != nil {
		return core.CreationFailed("window surface", err)
	}
	vr.context.Surface = vk.SurfaceFromPointer(surface)
	return nil
}

func (vr *VulkanRenderer) DestroySurface() {
	if vr.context.Surface == vk.NullSurface {
		return
	}
	vk.DestroySurface(vr.context.Instance, vr.context.Surface, vr.context.Allocator)
	vr.context.Surface = vk.NullSurface
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("validation layer: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("validation layer: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("validation layer (performance): [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogDebug("validation layer: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.False
}
