package actor

import (
	"github.com/akmonengine/kynex/geom"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces, gravity, and collisions
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass
	// They are never integrated, whatever their mass fields contain (e.g., ground, walls)
	BodyTypeStatic
)

const (
	DefaultRestitution = 0.2
	DefaultFriction    = 0.6
)

// Material holds the surface properties used by the contact solver
type Material struct {
	Restitution float64 // 0 = no rebound, 1 = perfect restitution
	Friction    float64 // Coulomb coefficient, >= 0
}

// DefaultMaterial returns the material every new body starts with
func DefaultMaterial() Material {
	return Material{
		Restitution: DefaultRestitution,
		Friction:    DefaultFriction,
	}
}

// RigidBody represents a rigid body in the physics simulation
type RigidBody struct {
	// Pose
	Position geom.Vec2
	Angle    float64 // radians

	// Motion
	Velocity        geom.Vec2 // m/s
	AngularVelocity float64   // rad/s

	accumulatedForce  geom.Vec2
	accumulatedTorque float64

	// Mass properties. An inverse of exactly 0 encodes infinite mass.
	Mass           float64
	InverseMass    float64
	Inertia        float64
	InverseInertia float64

	Material Material
	BodyType BodyType // Dynamic or Static
	// IsTrigger bodies report collision events but receive no contact response
	IsTrigger bool

	// Collision shape, immutable once the body is created
	Shape Shape
}

// NewDynamicBody creates a body affected by gravity, forces and contacts.
// A non-positive mass gives a body with zero mass properties: it never moves,
// but is not flagged static.
func NewDynamicBody(shape Shape, mass float64, position geom.Vec2) *RigidBody {
	rb := &RigidBody{
		Position: position,
		Material: DefaultMaterial(),
		BodyType: BodyTypeDynamic,
		Shape:    shape,
	}

	if mass > 0 {
		rb.Mass = mass
		rb.InverseMass = 1.0 / mass
	}

	rb.Inertia = shape.ComputeInertia(rb.Mass)
	if rb.Inertia > 0 {
		rb.InverseInertia = 1.0 / rb.Inertia
	}

	return rb
}

// NewStaticBody creates an immovable body with zero mass and inertia
func NewStaticBody(shape Shape, position geom.Vec2) *RigidBody {
	return &RigidBody{
		Position: position,
		Material: DefaultMaterial(),
		BodyType: BodyTypeStatic,
		Shape:    shape,
	}
}

// IsStatic reports whether the body was created static
func (rb *RigidBody) IsStatic() bool {
	return rb.BodyType == BodyTypeStatic
}

// IsImmovable reports whether integration must skip the body
func (rb *RigidBody) IsImmovable() bool {
	return rb.IsStatic() || rb.InverseMass == 0
}

// EffectiveInverseMass is the inverse mass seen by the contact solver.
// Static bodies report 0 whatever InverseMass holds.
func (rb *RigidBody) EffectiveInverseMass() float64 {
	if rb.IsStatic() {
		return 0
	}
	return rb.InverseMass
}

// EffectiveInverseInertia is the inverse inertia seen by the contact solver.
// Static bodies report 0 whatever InverseInertia holds.
func (rb *RigidBody) EffectiveInverseInertia() float64 {
	if rb.IsStatic() {
		return 0
	}
	return rb.InverseInertia
}

// ApplyForce accumulates a force applied at the center of mass.
// It is consumed and cleared by the next step.
func (rb *RigidBody) ApplyForce(force geom.Vec2) {
	rb.accumulatedForce = rb.accumulatedForce.Add(force)
}

// Force returns the force accumulated since the last step
func (rb *RigidBody) Force() geom.Vec2 {
	return rb.accumulatedForce
}

// Torque returns the torque accumulated since the last step
func (rb *RigidBody) Torque() float64 {
	return rb.accumulatedTorque
}

func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = geom.Zero
	rb.accumulatedTorque = 0
}

// IntegrateForces updates velocities with semi-implicit Euler:
// v += (f/m + g)·dt, w += (t/I)·dt. A positive maxSpeed clamps the resulting
// linear speed. Accumulators are cleared afterwards.
func (rb *RigidBody) IntegrateForces(dt float64, gravity geom.Vec2, maxSpeed float64) {
	if rb.IsImmovable() {
		rb.ClearForces()
		return
	}

	acceleration := rb.accumulatedForce.Mul(rb.InverseMass).Add(gravity)
	rb.Velocity = rb.Velocity.Add(acceleration.Mul(dt))
	rb.AngularVelocity += rb.accumulatedTorque * rb.InverseInertia * dt

	if maxSpeed > 0 {
		rb.Velocity = geom.ClampLen(rb.Velocity, maxSpeed)
	}

	rb.ClearForces()
}

// IntegratePosition moves the body with its current (already updated) velocities
func (rb *RigidBody) IntegratePosition(dt float64) {
	if rb.IsStatic() {
		return
	}

	rb.Position = rb.Position.Add(rb.Velocity.Mul(dt))
	rb.Angle += rb.AngularVelocity * dt
}

// Transform returns the body pose as a local-to-world transform
func (rb *RigidBody) Transform() geom.Transform {
	return geom.NewTransform(rb.Position, rb.Angle)
}

// AABB returns the world-space bounding box of the body shape
func (rb *RigidBody) AABB() AABB {
	return rb.Shape.ComputeAABB(rb.Transform())
}
