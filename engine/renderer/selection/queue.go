package selection

import (
	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

// FindQueueFamilies resolves the graphics and present families of d. The
// scan stops as soon as both are known; an incomplete result means the
// device lacks one of them.
func FindQueueFamilies(d Device) metadata.QueueFamilyIndices {
	indices := metadata.QueueFamilyIndices{}
	families := d.QueueFamilies()

	for i, family := range families {
		index := uint32(i)

		if family.Flags.Has(metadata.QueueGraphicsBit) {
			indices.Graphics = metadata.Some(index)
		}

		supportsPresent, err := d.SurfaceSupport(index)
		if err != nil {
			core.LogWarn("Presentation support query failed for queue family %d: %s", index, err)
			supportsPresent = false
		}
		if supportsPresent {
			indices.Present = metadata.Some(index)
		}

		if indices.Complete() {
			break
		}
	}

	core.LogDebug("Graphics Family Index: %s", indices.Graphics)
	core.LogDebug("Present Family Index:  %s", indices.Present)
	return indices
}
