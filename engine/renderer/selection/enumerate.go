package selection

import (
	"github.com/cockroachdb/errors"
	"github.com/spaghettifunk/vkpick/engine/core"
)

// SelectPhysicalDevice returns the first device, in enumeration order, that
// meets req. Later devices are not looked at once one is accepted.
func SelectPhysicalDevice(devices []Device, req Requirements) (*Selection, error) {
	if len(devices) == 0 {
		core.LogError("No devices which support Vulkan were found.")
		return nil, errors.WithStack(core.ErrNoDevices)
	}

	for i, d := range devices {
		c := Evaluate(d, req)
		if !c.Suitable {
			core.LogInfo("Device %d '%s' rejected: %s.", i, c.Properties.Name, c.Reason)
			continue
		}

		core.LogInfo("Selected device: '%s'.", c.Properties.Name)
		core.LogInfo("GPU type is %s.", c.Properties.Type)
		core.LogInfo("GPU Driver version: %s", c.Properties.DriverVersion)
		core.LogInfo("Vulkan API version: %s", c.Properties.APIVersion)

		return &Selection{
			Device:     d,
			Properties: c.Properties,
			Indices:    c.Indices,
			Support:    c.Support,
		}, nil
	}

	core.LogError("No physical devices were found which meet the requirements.")
	return nil, errors.Wrapf(core.ErrNoSuitableDevice, "none of %d devices qualified", len(devices))
}
