package physics

import "math"

// NearZero reports |f| < Epsilon. The comparison is strict: exactly Epsilon is
// not near zero.
func NearZero(f float64) bool {
	return math.Abs(f) < Epsilon
}

// NormalizeAngle maps deg into (-180, 180] so a turn always takes the short
// way round.
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	switch {
	case a <= -180:
		a += 360
	case a > 180:
		a -= 360
	}
	return a
}

// Clamp01 limits f to [0, 1]. NaN clamps to 0.
func Clamp01(f float64) float64 {
	switch {
	case f > 1:
		return 1
	case f > 0:
		return f
	default:
		return 0
	}
}

// Sign returns -1, 0 or 1.
func Sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}
