package math

import (
	m "math"

	"golang.org/x/exp/constraints"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

func ksin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func kcos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func ktan(x float32) float32 {
	return float32(m.Tan(float64(x)))
}

func ksqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func kabs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Wrap folds `f` back into [0, period).
func Wrap[T constraints.Float](f, period T) T {
	r := T(m.Mod(float64(f), float64(period)))
	if r < 0 {
		r += period
	}
	// A tiny negative r can round up to period in the narrower type.
	if r >= period {
		r = 0
	}
	return r
}

// DegToRad converts the provided degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

// RadToDeg converts the provided radians to degrees.
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// Sin and Cos are exported for callers that work purely in float32 space.
func Sin(x float32) float32 { return ksin(x) }
func Cos(x float32) float32 { return kcos(x) }

// Pow returns x**y in float32.
func Pow(x, y float32) float32 { return float32(m.Pow(float64(x), float64(y))) }
