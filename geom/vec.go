// Package geom holds the 2D math shared by every other package: vectors,
// scalar/vector cross products, rotations and rigid transforms.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is the vector type used for positions, velocities, forces, normals and
// contact offsets. Values are immutable: every helper returns a new vector.
type Vec2 = mgl64.Vec2

var (
	Zero  = Vec2{0, 0}
	UnitX = Vec2{1, 0}
	UnitY = Vec2{0, 1}
)

// Neg returns -v.
func Neg(v Vec2) Vec2 {
	return Vec2{-v[0], -v[1]}
}

// Cross returns the scalar 2D cross product a.x*b.y - a.y*b.x, the signed area
// of the parallelogram spanned by a and b.
func Cross(a, b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// CrossSV returns s × v for a scalar angular quantity s, i.e. the velocity
// w × r contributed by an angular velocity w at offset r.
func CrossSV(s float64, v Vec2) Vec2 {
	return Vec2{-s * v[1], s * v[0]}
}

// CrossVS returns v × s, the mirror of CrossSV.
func CrossVS(v Vec2, s float64) Vec2 {
	return Vec2{s * v[1], -s * v[0]}
}

// LenSqr returns the squared length of v.
func LenSqr(v Vec2) float64 {
	return v.Dot(v)
}

// Normalize returns v scaled to unit length, or the zero vector when v has no
// length. Unlike mgl64.Vec2.Normalize it never divides by zero. Components
// are divided one by one: 1/l overflows for subnormal lengths.
func Normalize(v Vec2) Vec2 {
	l := math.Hypot(v[0], v[1])
	if l == 0 {
		return Zero
	}
	return Vec2{v[0] / l, v[1] / l}
}

// Perp rotates v by 90° counter-clockwise.
func Perp(v Vec2) Vec2 {
	return Vec2{-v[1], v[0]}
}

// ClampLen limits the magnitude of v to maxLen, keeping its direction.
func ClampLen(v Vec2, maxLen float64) Vec2 {
	l2 := LenSqr(v)
	if l2 > maxLen*maxLen {
		return v.Mul(maxLen / math.Sqrt(l2))
	}
	return v
}

// IsFinite reports whether both components are neither NaN nor infinite.
func IsFinite(v Vec2) bool {
	return !math.IsNaN(v[0]) && !math.IsInf(v[0], 0) &&
		!math.IsNaN(v[1]) && !math.IsInf(v[1], 0)
}
