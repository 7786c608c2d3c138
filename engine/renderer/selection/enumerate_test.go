package selection

import (
	"testing"

	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

func TestSelectPhysicalDevice(t *testing.T) {
	noSwapchain := func(name string) *fakeDevice {
		d := suitableDevice(name)
		d.extensions = nil
		return d
	}
	noFormats := func(name string) *fakeDevice {
		d := suitableDevice(name)
		d.formats = nil
		return d
	}
	splitQueues := func(name string) *fakeDevice {
		d := suitableDevice(name)
		d.families = []metadata.QueueFamilyProperties{graphicsFamily, transferFamily}
		d.present = map[uint32]bool{1: true}
		return d
	}

	tests := []struct {
		name    string
		devices []*fakeDevice
		want    string
		kind    core.ErrorKind
	}{
		{
			name:    "no devices",
			devices: nil,
			kind:    core.ErrorKindNoDevices,
		},
		{
			name:    "none suitable",
			devices: []*fakeDevice{noSwapchain("a"), noFormats("b")},
			kind:    core.ErrorKindNoSuitableDevice,
		},
		{
			name:    "first suitable wins",
			devices: []*fakeDevice{suitableDevice("a"), suitableDevice("b")},
			want:    "a",
		},
		{
			name:    "skips unsuitable",
			devices: []*fakeDevice{noSwapchain("a"), noFormats("b"), splitQueues("c"), suitableDevice("d")},
			want:    "c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices := make([]Device, len(tt.devices))
			for i, d := range tt.devices {
				devices[i] = d
			}

			sel, err := SelectPhysicalDevice(devices, requirements)
			if kind := core.KindOf(err); kind != tt.kind {
				t.Fatalf("expected error kind %v, got %v (%v)", tt.kind, kind, err)
			}
			if tt.want == "" {
				if sel != nil {
					t.Errorf("expected no selection, got '%s'", sel.Properties.Name)
				}
				return
			}
			if sel.Properties.Name != tt.want {
				t.Errorf("expected '%s', got '%s'", tt.want, sel.Properties.Name)
			}
			if !sel.Indices.Complete() {
				t.Error("expected complete queue family indices on the selection")
			}
		})
	}
}

func TestSelectPhysicalDeviceStopsAtFirstFit(t *testing.T) {
	first := suitableDevice("first")
	second := suitableDevice("second")

	if _, err := SelectPhysicalDevice([]Device{first, second}, requirements); err != nil {
		t.Fatal(err)
	}
	if second.surfaceProbes != 0 || len(second.supportQueries) != 0 {
		t.Error("expected devices after the selected one to be left alone")
	}
}
