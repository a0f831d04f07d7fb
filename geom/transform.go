package geom

// Transform maps points from a body's local space to world space.
type Transform struct {
	Position Vec2
	Rotation Rot
}

// NewTransform creates a transform at position p rotated by angle radians.
func NewTransform(p Vec2, angle float64) Transform {
	return Transform{
		Position: p,
		Rotation: NewRot(angle),
	}
}

// IdentityTransform returns the transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Rotation: IdentityRot()}
}

// Apply converts a local point to world space: rotate, then translate.
func (t Transform) Apply(local Vec2) Vec2 {
	return t.Rotation.Rotate(local).Add(t.Position)
}

// ApplyInverse converts a world point back to local space.
func (t Transform) ApplyInverse(world Vec2) Vec2 {
	return t.Rotation.InvRotate(world.Sub(t.Position))
}
