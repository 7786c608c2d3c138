package metadata

import "fmt"

// Optional is a value that may be absent. The zero value is absent.
type Optional[T comparable] struct {
	value T
	set   bool
}

func Some[T comparable](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func None[T comparable]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) String() string {
	if !o.set {
		return "none"
	}
	return fmt.Sprint(o.value)
}

// QueueFamilyIndices holds the queue families used for graphics submission
// and for presentation. Both may point at the same family.
type QueueFamilyIndices struct {
	Graphics Optional[uint32]
	Present  Optional[uint32]
}

func (q QueueFamilyIndices) Complete() bool {
	return q.Graphics.IsSet() && q.Present.IsSet()
}

// Shared reports whether graphics and presentation resolved to one family.
func (q QueueFamilyIndices) Shared() bool {
	return q.Complete() && q.Graphics == q.Present
}

// Unique returns the distinct family indices, graphics first.
func (q QueueFamilyIndices) Unique() []uint32 {
	indices := make([]uint32, 0, 2)
	if g, ok := q.Graphics.Get(); ok {
		indices = append(indices, g)
	}
	if p, ok := q.Present.Get(); ok && !q.Shared() {
		indices = append(indices, p)
	}
	return indices
}

type QueueFlags uint32

const (
	QueueGraphicsBit QueueFlags = 1 << iota
	QueueComputeBit
	QueueTransferBit
	QueueSparseBindingBit
)

func (f QueueFlags) Has(bit QueueFlags) bool {
	return f&bit == bit
}

type QueueFamilyProperties struct {
	Flags QueueFlags
	Count uint32
}

type DeviceType uint32

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "Integrated"
	case DeviceTypeDiscreteGPU:
		return "Discrete"
	case DeviceTypeVirtualGPU:
		return "Virtual"
	case DeviceTypeCPU:
		return "CPU"
	}
	return "Unknown"
}

// Version is a packed Vulkan version number.
type Version uint32

func (v Version) Major() uint32 { return uint32(v) >> 22 }
func (v Version) Minor() uint32 { return (uint32(v) >> 12) & 0x3ff }
func (v Version) Patch() uint32 { return uint32(v) & 0xfff }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

type DeviceProperties struct {
	Name          string
	Type          DeviceType
	DriverVersion Version
	APIVersion    Version
}
