package core

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ErrorKindNone},
		{"no devices", ErrNoDevices, ErrorKindNoDevices},
		{"wrapped no devices", errors.Wrap(ErrNoDevices, "selecting device"), ErrorKindNoDevices},
		{"no suitable device", errors.Wrapf(ErrNoSuitableDevice, "%d candidates", 3), ErrorKindNoSuitableDevice},
		{"creation failed", CreationFailed("swapchain", nil), ErrorKindCreationFailed},
		{"creation failed with cause", CreationFailed("logical device", errors.New("VK_ERROR_INITIALIZATION_FAILED")), ErrorKindCreationFailed},
		{"surface lost", ErrSurfaceLost, ErrorKindUnknown},
		{"unrelated", errors.New("boom"), ErrorKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCreationFailedMessage(t *testing.T) {
	err := CreationFailed("instance", errors.New("VK_ERROR_INCOMPATIBLE_DRIVER"))
	if got, want := err.Error(), "failed to create instance: VK_ERROR_INCOMPATIBLE_DRIVER"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if errors.Is(err, ErrNoDevices) {
		t.Error("creation failure must not match ErrNoDevices")
	}
}
