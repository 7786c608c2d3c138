package core

import (
	"github.com/cockroachdb/errors"
)

// Startup failures are fatal and fall in one of three kinds. Callers wrap
// freely; KindOf still finds the kind through the chain.
var (
	ErrNoDevices        = errors.New("failed to find GPUs with Vulkan support")
	ErrNoSuitableDevice = errors.New("failed to find a suitable GPU")
	ErrCreationFailed   = errors.New("native object creation failed")

	// ErrSurfaceLost is raised by the backend when the presentation surface
	// is gone and only a full device reselection can recover.
	ErrSurfaceLost = errors.New("presentation surface lost")
)

type ErrorKind uint8

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindNoDevices
	ErrorKindNoSuitableDevice
	ErrorKindCreationFailed
	ErrorKindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "none"
	case ErrorKindNoDevices:
		return "no devices"
	case ErrorKindNoSuitableDevice:
		return "no suitable device"
	case ErrorKindCreationFailed:
		return "creation failed"
	}
	return "unknown"
}

// KindOf classifies err for the top-level exit decision.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrNoDevices):
		return ErrorKindNoDevices
	case errors.Is(err, ErrNoSuitableDevice):
		return ErrorKindNoSuitableDevice
	case errors.Is(err, ErrCreationFailed):
		return ErrorKindCreationFailed
	}
	return ErrorKindUnknown
}

// CreationFailed reports that creating the named native object failed.
// cause may be nil when the API only hands back a result code.
func CreationFailed(object string, cause error) error {
	var err error
	if cause == nil {
		err = errors.Newf("failed to create %s", object)
	} else {
		err = errors.Wrapf(cause, "failed to create %s", object)
	}
	return errors.Mark(err, ErrCreationFailed)
}
