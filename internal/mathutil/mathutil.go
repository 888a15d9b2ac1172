// Package mathutil provides small numeric helpers shared by the chart code.
package mathutil

import "cmp"

// Signed covers the signed integer and float types, time.Duration included.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Clamp restricts a value to be within a specified range.
// Returns low if val < low, high if val > high, otherwise returns val.
func Clamp[T cmp.Ordered](val, low, high T) T {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}

// Abs returns the absolute value of v.
func Abs[T Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Fraction returns where v sits between low and high, 0 at low and 1 at
// high. An empty or inverted interval yields 0.
func Fraction(v, low, high float64) float64 {
	if high <= low {
		return 0
	}
	return (v - low) / (high - low)
}

// Lerp returns the value at fraction t between low and high.
func Lerp(low, high, t float64) float64 {
	return low + (high-low)*t
}
