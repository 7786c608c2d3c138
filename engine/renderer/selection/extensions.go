package selection

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"
)

// CheckDeviceExtensionSupport reports whether d advertises every extension
// in required.
func CheckDeviceExtensionSupport(d Device, required []string) (bool, error) {
	missing, err := missingDeviceExtensions(d, required)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

func missingDeviceExtensions(d Device, required []string) ([]string, error) {
	reported, err := d.ExtensionNames()
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate device extensions")
	}
	return MissingExtensions(required, reported), nil
}

// MissingExtensions returns required minus reported, sorted and without
// duplicates. Names are compared verbatim.
func MissingExtensions(required, reported []string) []string {
	available := make(map[string]struct{}, len(reported))
	for _, name := range reported {
		available[name] = struct{}{}
	}

	missing := []string{}
	for _, name := range required {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}
