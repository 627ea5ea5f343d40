// internal/utils/math.go
package utils

// Lerp interpolates linearly between from and to.
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
