package actor

import (
	"math"
	"testing"

	"github.com/akmonengine/kynex/geom"
)

// =============================================================================
// Construction
// =============================================================================

func TestNewDynamicBody(t *testing.T) {
	rb := NewDynamicBody(Circle{Radius: 0.5}, 2, geom.Vec2{1, 2})

	if rb.BodyType != BodyTypeDynamic {
		t.Errorf("BodyType = %v, want dynamic", rb.BodyType)
	}
	if !floatEqual(rb.Mass, 2, 1e-12) || !floatEqual(rb.InverseMass, 0.5, 1e-12) {
		t.Errorf("mass = %v / %v, want 2 / 0.5", rb.Mass, rb.InverseMass)
	}
	if !floatEqual(rb.Inertia, 0.25, 1e-12) || !floatEqual(rb.InverseInertia, 4, 1e-12) {
		t.Errorf("inertia = %v / %v, want 0.25 / 4", rb.Inertia, rb.InverseInertia)
	}
	if rb.Material != DefaultMaterial() {
		t.Errorf("Material = %+v, want %+v", rb.Material, DefaultMaterial())
	}
	if !vec2Equal(rb.Position, geom.Vec2{1, 2}, 1e-12) {
		t.Errorf("Position = %v, want (1, 2)", rb.Position)
	}
}

func TestNewDynamicBody_NonPositiveMass(t *testing.T) {
	for _, mass := range []float64{0, -3} {
		rb := NewDynamicBody(Circle{Radius: 1}, mass, geom.Zero)
		if rb.Mass != 0 || rb.InverseMass != 0 || rb.Inertia != 0 || rb.InverseInertia != 0 {
			t.Errorf("mass %v: got mass props %v %v %v %v, want all zero",
				mass, rb.Mass, rb.InverseMass, rb.Inertia, rb.InverseInertia)
		}
		if rb.IsStatic() {
			t.Errorf("mass %v: body should not be flagged static", mass)
		}
		if !rb.IsImmovable() {
			t.Errorf("mass %v: body should be immovable", mass)
		}
	}
}

func TestNewStaticBody(t *testing.T) {
	rb := NewStaticBody(Box{HalfWidth: 10, HalfHeight: 1}, geom.Vec2{0, -1})

	if !rb.IsStatic() || !rb.IsImmovable() {
		t.Error("static body should be static and immovable")
	}
	if rb.InverseMass != 0 || rb.InverseInertia != 0 {
		t.Errorf("static inverse mass props = %v %v, want 0", rb.InverseMass, rb.InverseInertia)
	}
}

func TestEffectiveInverseMass(t *testing.T) {
	static := NewStaticBody(Circle{Radius: 1}, geom.Zero)
	static.InverseMass, static.InverseInertia = 1, 1
	dynamic := NewDynamicBody(Circle{Radius: 1}, 2, geom.Zero)

	if static.EffectiveInverseMass() != 0 || static.EffectiveInverseInertia() != 0 {
		t.Errorf("static body reports %v / %v, want 0 / 0",
			static.EffectiveInverseMass(), static.EffectiveInverseInertia())
	}
	if dynamic.EffectiveInverseMass() != dynamic.InverseMass || dynamic.EffectiveInverseInertia() != dynamic.InverseInertia {
		t.Errorf("dynamic body reports %v / %v, want %v / %v",
			dynamic.EffectiveInverseMass(), dynamic.EffectiveInverseInertia(), dynamic.InverseMass, dynamic.InverseInertia)
	}
}

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()
	if m.Restitution != 0.2 || m.Friction != 0.6 {
		t.Errorf("DefaultMaterial = %+v, want restitution 0.2 friction 0.6", m)
	}
}

// =============================================================================
// Forces
// =============================================================================

func TestApplyForce_Accumulates(t *testing.T) {
	rb := NewDynamicBody(Circle{Radius: 1}, 1, geom.Zero)
	rb.ApplyForce(geom.Vec2{1, 0})
	rb.ApplyForce(geom.Vec2{2, -1})

	if !vec2Equal(rb.Force(), geom.Vec2{3, -1}, 1e-12) {
		t.Errorf("Force() = %v, want (3, -1)", rb.Force())
	}

	rb.ClearForces()
	if rb.Force() != geom.Zero || rb.Torque() != 0 {
		t.Errorf("accumulators not cleared: %v %v", rb.Force(), rb.Torque())
	}
}

// =============================================================================
// Integration
// =============================================================================

func TestIntegrateForces(t *testing.T) {
	tests := []struct {
		name     string
		mass     float64
		force    geom.Vec2
		gravity  geom.Vec2
		dt       float64
		expected geom.Vec2
	}{
		{
			name:     "gravity only",
			mass:     1,
			gravity:  geom.Vec2{0, -10},
			dt:       0.1,
			expected: geom.Vec2{0, -1},
		},
		{
			name:     "force scaled by inverse mass",
			mass:     2,
			force:    geom.Vec2{4, 0},
			dt:       0.5,
			expected: geom.Vec2{1, 0},
		},
		{
			name:     "force and gravity",
			mass:     4,
			force:    geom.Vec2{0, 8},
			gravity:  geom.Vec2{0, -10},
			dt:       1,
			expected: geom.Vec2{0, -8},
		},
		{
			name:     "no force no gravity",
			mass:     1,
			dt:       1,
			expected: geom.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewDynamicBody(Circle{Radius: 1}, tt.mass, geom.Zero)
			rb.ApplyForce(tt.force)
			rb.IntegrateForces(tt.dt, tt.gravity, 0)

			if !vec2Equal(rb.Velocity, tt.expected, 1e-12) {
				t.Errorf("Velocity = %v, want %v", rb.Velocity, tt.expected)
			}
			if rb.Force() != geom.Zero {
				t.Errorf("force not cleared after integration: %v", rb.Force())
			}
		})
	}
}

func TestIntegrateForces_Immovable(t *testing.T) {
	bodies := map[string]*RigidBody{
		"static":    NewStaticBody(Circle{Radius: 1}, geom.Zero),
		"zero mass": NewDynamicBody(Circle{Radius: 1}, 0, geom.Zero),
	}

	for name, rb := range bodies {
		t.Run(name, func(t *testing.T) {
			// a static body ignores whatever its mass fields contain
			rb.Mass, rb.InverseMass = 1, 1
			if name == "zero mass" {
				rb.Mass, rb.InverseMass = 0, 0
			}
			rb.ApplyForce(geom.Vec2{5, 5})
			rb.IntegrateForces(1, geom.Vec2{0, -10}, 0)

			if rb.Velocity != geom.Zero {
				t.Errorf("immovable body gained velocity %v", rb.Velocity)
			}
		})
	}
}

func TestIntegrateForces_MaxSpeed(t *testing.T) {
	rb := NewDynamicBody(Circle{Radius: 1}, 1, geom.Zero)
	rb.Velocity = geom.Vec2{30, 40}
	rb.IntegrateForces(0.01, geom.Zero, 10)

	if !floatEqual(rb.Velocity.Len(), 10, 1e-9) {
		t.Errorf("speed = %v, want 10", rb.Velocity.Len())
	}
	if !vec2Equal(rb.Velocity, geom.Vec2{6, 8}, 1e-9) {
		t.Errorf("Velocity = %v, want direction preserved (6, 8)", rb.Velocity)
	}
}

func TestIntegratePosition(t *testing.T) {
	rb := NewDynamicBody(Circle{Radius: 1}, 1, geom.Vec2{1, 1})
	rb.Velocity = geom.Vec2{2, -4}
	rb.AngularVelocity = math.Pi

	rb.IntegratePosition(0.5)

	if !vec2Equal(rb.Position, geom.Vec2{2, -1}, 1e-12) {
		t.Errorf("Position = %v, want (2, -1)", rb.Position)
	}
	if !floatEqual(rb.Angle, math.Pi/2, 1e-12) {
		t.Errorf("Angle = %v, want pi/2", rb.Angle)
	}
}

func TestIntegratePosition_Static(t *testing.T) {
	rb := NewStaticBody(Circle{Radius: 1}, geom.Vec2{3, 3})
	rb.Velocity = geom.Vec2{1, 1}

	rb.IntegratePosition(1)

	if !vec2Equal(rb.Position, geom.Vec2{3, 3}, 1e-12) {
		t.Errorf("static body moved to %v", rb.Position)
	}
}

func TestRigidBodyAABB(t *testing.T) {
	rb := NewDynamicBody(Circle{Radius: 0.5}, 1, geom.Vec2{2, 3})
	aabb := rb.AABB()

	if !vec2Equal(aabb.Min, geom.Vec2{1.5, 2.5}, 1e-12) || !vec2Equal(aabb.Max, geom.Vec2{2.5, 3.5}, 1e-12) {
		t.Errorf("AABB = %v, want min (1.5, 2.5) max (2.5, 3.5)", aabb)
	}
}
