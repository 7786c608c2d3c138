package selection

import (
	"strings"
	"testing"

	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(d *fakeDevice)
		suitable bool
		reason   string
		probed   bool
	}{
		{
			name:     "suitable",
			mutate:   func(d *fakeDevice) {},
			suitable: true,
			probed:   true,
		},
		{
			name:   "no graphics family",
			mutate: func(d *fakeDevice) { d.families = []metadata.QueueFamilyProperties{transferFamily} },
			reason: "missing queue family",
			probed: true,
		},
		{
			name:   "no present family",
			mutate: func(d *fakeDevice) { d.present = nil },
			reason: "missing queue family",
			probed: true,
		},
		{
			name:   "missing extension skips the surface probe",
			mutate: func(d *fakeDevice) { d.extensions = []string{"VK_KHR_maintenance1"} },
			reason: "missing required extensions [VK_KHR_swapchain]",
			probed: false,
		},
		{
			name:   "no formats",
			mutate: func(d *fakeDevice) { d.formats = nil },
			reason: "required swapchain support not present",
			probed: true,
		},
		{
			name:   "no present modes",
			mutate: func(d *fakeDevice) { d.modes = []metadata.PresentMode{} },
			reason: "required swapchain support not present",
			probed: true,
		},
		{
			name:   "extension query failure",
			mutate: func(d *fakeDevice) { d.extensionsErr = errQueryFailed },
			reason: "failed to enumerate device extensions",
			probed: false,
		},
		{
			name:   "surface query failure",
			mutate: func(d *fakeDevice) { d.capsErr = errQueryFailed },
			reason: "surface capabilities",
			probed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := suitableDevice("gpu")
			tt.mutate(d)

			c := Evaluate(d, requirements)
			if c.Suitable != tt.suitable {
				t.Fatalf("expected suitable=%v, got %v (%s)", tt.suitable, c.Suitable, c.Reason)
			}
			if !strings.Contains(c.Reason, tt.reason) {
				t.Errorf("expected reason containing %q, got %q", tt.reason, c.Reason)
			}
			if probed := d.surfaceProbes > 0; probed != tt.probed {
				t.Errorf("expected surface probed=%v, got %v", tt.probed, probed)
			}
		})
	}
}

func TestEvaluateKeepsProbedSupport(t *testing.T) {
	d := suitableDevice("gpu")
	c := Evaluate(d, requirements)

	if len(c.Support.Formats) != 1 || c.Support.Formats[0].Format != metadata.FormatB8G8R8A8Srgb {
		t.Errorf("expected probed formats on the candidate, got %v", c.Support.Formats)
	}
	if c.Support.Capabilities.MinImageCount != 2 {
		t.Errorf("expected probed capabilities on the candidate, got %+v", c.Support.Capabilities)
	}
}
