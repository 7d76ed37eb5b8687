package util

import "golang.org/x/exp/constraints"

// Clamp limits value to the range [lower, upper].
func Clamp[T constraints.Ordered](value, lower, upper T) T {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}

// Sign returns -1, 0 or 1 depending on the sign of value.
func Sign[T constraints.Signed | constraints.Float](value T) int {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	}
	return 0
}
