package geom

import "math"

// Rot stores an angle as its sine and cosine so rotating a vector costs no
// trigonometry.
type Rot struct {
	Sin float64
	Cos float64
}

// NewRot creates a rotation from an angle in radians.
func NewRot(angle float64) Rot {
	s, c := math.Sincos(angle)
	return Rot{Sin: s, Cos: c}
}

// IdentityRot is the rotation by zero radians.
func IdentityRot() Rot {
	return Rot{Sin: 0, Cos: 1}
}

// Angle returns the rotation angle in (-π, π].
func (r Rot) Angle() float64 {
	return math.Atan2(r.Sin, r.Cos)
}

// Rotate applies the rotation to v:
//
//	[ cos -sin ]
//	[ sin  cos ]
func (r Rot) Rotate(v Vec2) Vec2 {
	return Vec2{
		r.Cos*v[0] - r.Sin*v[1],
		r.Sin*v[0] + r.Cos*v[1],
	}
}

// InvRotate rotates v by the opposite angle.
func (r Rot) InvRotate(v Vec2) Vec2 {
	return Vec2{
		r.Cos*v[0] + r.Sin*v[1],
		-r.Sin*v[0] + r.Cos*v[1],
	}
}

// Mul composes two rotations: the result rotates by r, then by other.
func (r Rot) Mul(other Rot) Rot {
	return Rot{
		Sin: other.Sin*r.Cos + other.Cos*r.Sin,
		Cos: other.Cos*r.Cos - other.Sin*r.Sin,
	}
}
