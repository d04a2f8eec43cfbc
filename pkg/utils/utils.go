// Package utils holds numeric helpers shared by the validators.
package utils

import "math"

// IsFinite reports whether the number is neither infinite nor NaN
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// IsWhole reports whether a finite number has no fractional part
func IsWhole(value float64) bool {
	return IsFinite(value) && value == math.Trunc(value)
}
