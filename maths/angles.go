package maths

import "math"

const (
	// DegToRad converts degrees to radians when multiplied.
	DegToRad = float32(math.Pi / 180)
	// RadToDeg converts radians to degrees when multiplied.
	RadToDeg = float32(180 / math.Pi)
)

// Clamp01 clamps v to [0,1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NormalizeDeg wraps an angle in degrees into [0,360).
func NormalizeDeg(deg float32) float32 {
	m := float32(math.Mod(float64(deg), 360))
	if m < 0 {
		m += 360
	}
	return m
}

// Min returns the smaller of a and b.
func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
