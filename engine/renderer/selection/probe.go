package selection

import (
	"github.com/cockroachdb/errors"
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

// QuerySwapchainSupport collects what d can present to its surface. Empty
// format or present mode lists are returned as is.
func QuerySwapchainSupport(d Device) (metadata.SwapchainSupport, error) {
	support := metadata.SwapchainSupport{}

	caps, err := d.SurfaceCapabilities()
	if err != nil {
		return support, errors.Wrap(err, "failed to get physical device surface capabilities")
	}
	support.Capabilities = caps

	formats, err := d.SurfaceFormats()
	if err != nil {
		return support, errors.Wrap(err, "failed to get physical device surface formats")
	}
	support.Formats = formats

	modes, err := d.PresentModes()
	if err != nil {
		return support, errors.Wrap(err, "failed to get physical device surface present modes")
	}
	support.PresentModes = modes

	return support, nil
}
