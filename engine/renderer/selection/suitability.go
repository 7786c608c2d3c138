package selection

import (
	"fmt"

	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

// Candidate is the verdict on one device.
type Candidate struct {
	Device     Device
	Properties metadata.DeviceProperties
	Indices    metadata.QueueFamilyIndices
	Support    metadata.SwapchainSupport
	Suitable   bool
	// Reason is set when the device was rejected.
	Reason string
}

// Evaluate checks d against req. The surface is only probed once the
// extension check has passed.
func Evaluate(d Device, req Requirements) Candidate {
	c := Candidate{
		Device:     d,
		Properties: d.Properties(),
	}

	c.Indices = FindQueueFamilies(d)

	missing, err := missingDeviceExtensions(d, req.DeviceExtensions)
	if err != nil {
		c.Reason = err.Error()
		return c
	}
	extensionsSupported := len(missing) == 0

	swapchainAdequate := false
	if extensionsSupported {
		support, err := QuerySwapchainSupport(d)
		if err != nil {
			c.Reason = err.Error()
			return c
		}
		c.Support = support
		swapchainAdequate = support.Adequate()
	}

	switch {
	case !c.Indices.Complete():
		c.Reason = fmt.Sprintf("missing queue family (graphics: %s, present: %s)", c.Indices.Graphics, c.Indices.Present)
	case !extensionsSupported:
		c.Reason = fmt.Sprintf("missing required extensions %v", missing)
	case !swapchainAdequate:
		c.Reason = "required swapchain support not present"
	default:
		c.Suitable = true
	}
	return c
}
