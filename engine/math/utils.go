package math

import "golang.org/x/exp/constraints"

// Clamp returns f limited to [low, high]. low wins when the range is inverted.
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f > high {
		f = high
	}
	if f < low {
		return low
	}
	return f
}
