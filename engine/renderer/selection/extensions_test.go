package selection

import (
	"reflect"
	"testing"
)

func TestMissingExtensions(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		reported []string
		missing  []string
	}{
		{"nothing required", nil, []string{"VK_KHR_swapchain"}, []string{}},
		{"exact", []string{"VK_KHR_swapchain"}, []string{"VK_KHR_swapchain"}, []string{}},
		{"order independent", []string{"b", "a"}, []string{"a", "c", "b"}, []string{}},
		{"duplicates in both", []string{"a", "a", "b"}, []string{"b", "a", "a"}, []string{}},
		{"nothing reported", []string{"VK_KHR_swapchain"}, nil, []string{"VK_KHR_swapchain"}},
		{"duplicate missing reported once", []string{"z", "y", "z"}, []string{"a"}, []string{"y", "z"}},
		{"case sensitive", []string{"VK_KHR_swapchain"}, []string{"vk_khr_swapchain"}, []string{"VK_KHR_swapchain"}},
		{"no prefix match", []string{"VK_KHR_swapchain"}, []string{"VK_KHR_swapchain_mutable_format"}, []string{"VK_KHR_swapchain"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MissingExtensions(tt.required, tt.reported); !reflect.DeepEqual(got, tt.missing) {
				t.Errorf("expected %v, got %v", tt.missing, got)
			}
		})
	}
}

func TestCheckDeviceExtensionSupport(t *testing.T) {
	d := suitableDevice("gpu")

	ok, err := CheckDeviceExtensionSupport(d, []string{"VK_KHR_swapchain"})
	if err != nil || !ok {
		t.Errorf("expected support, got (%v, %v)", ok, err)
	}

	ok, err = CheckDeviceExtensionSupport(d, []string{"VK_KHR_swapchain", "VK_KHR_ray_query"})
	if err != nil || ok {
		t.Errorf("expected no support, got (%v, %v)", ok, err)
	}

	d.extensionsErr = errQueryFailed
	if _, err := CheckDeviceExtensionSupport(d, nil); err == nil {
		t.Error("expected enumeration error to be returned")
	}
}
