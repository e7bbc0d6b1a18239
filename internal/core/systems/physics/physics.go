package physics

import "math"

// Epsilon is the tolerance for every "near zero" test on a float or a vector
// magnitude.
const Epsilon = 0.001

const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// FromAngle returns the unit vector pointing at deg degrees, counter-clockwise
// from +X.
func FromAngle(deg float64) Vec2 {
	rad := deg * Deg2Rad
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns v scaled to unit length, or the zero vector when v has no
// usable direction.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Angle is the heading of v in degrees, in (-180, 180].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X) * Rad2Deg
}

// Rotate turns v counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	s, c := math.Sincos(deg * Deg2Rad)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
