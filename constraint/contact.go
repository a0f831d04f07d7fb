package constraint

import (
	"github.com/akmonengine/kynex/actor"
	"github.com/akmonengine/kynex/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact describes one overlap between two bodies
type Contact struct {
	Point       geom.Vec2
	Normal      geom.Vec2 // unit, from body A toward body B
	Penetration float64   // >= 0 when overlapping
}

// Manifold is a contact between the bodies stored at indices BodyA and BodyB.
// Manifolds only live for the step that produced them.
type Manifold struct {
	BodyA   int
	BodyB   int
	Contact Contact
}

// SolveVelocity applies the normal impulse (with restitution) and the clamped
// Coulomb friction impulse for one contact. Both bodies are mutated in place.
func SolveVelocity(c Contact, bodyA, bodyB *actor.RigidBody) {
	mustDiffer(bodyA, bodyB)

	rA := c.Point.Sub(bodyA.Position)
	rB := c.Point.Sub(bodyB.Position)

	invMassA, invMassB := bodyA.EffectiveInverseMass(), bodyB.EffectiveInverseMass()
	invInertiaA, invInertiaB := bodyA.EffectiveInverseInertia(), bodyB.EffectiveInverseInertia()

	// ========== Velocities at the contact point ==========
	vA := bodyA.Velocity.Add(geom.CrossSV(bodyA.AngularVelocity, rA))
	vB := bodyB.Velocity.Add(geom.CrossSV(bodyB.AngularVelocity, rB))
	relativeVel := vB.Sub(vA)
	normalVel := relativeVel.Dot(c.Normal)

	// Separating along the normal
	if normalVel > 0 {
		return
	}

	// ========== NORMAL IMPULSE (restitution) ==========
	restitution := ComputeRestitution(bodyA.Material, bodyB.Material)

	rAxN := geom.Cross(rA, c.Normal)
	rBxN := geom.Cross(rB, c.Normal)
	effectiveMassNormal := invMassA + invMassB +
		rAxN*rAxN*invInertiaA +
		rBxN*rBxN*invInertiaB

	if effectiveMassNormal == 0 {
		return
	}

	lambdaNormal := -(1 + restitution) * normalVel / effectiveMassNormal
	applyImpulse(bodyA, bodyB, rA, rB, c.Normal.Mul(lambdaNormal))

	// ========== TANGENTIAL IMPULSE (friction) ==========
	// Uses the relative velocity measured before the normal impulse
	tangent := tangentDirection(relativeVel, c.Normal, normalVel)
	if tangent == geom.Zero {
		return
	}

	rAxT := geom.Cross(rA, tangent)
	rBxT := geom.Cross(rB, tangent)
	effectiveMassTangent := invMassA + invMassB +
		rAxT*rAxT*invInertiaA +
		rBxT*rBxT*invInertiaB

	if effectiveMassTangent == 0 {
		return
	}

	lambdaTangent := -relativeVel.Dot(tangent) / effectiveMassTangent

	// Coulomb's law: |jt| <= μ·j
	mu := ComputeFriction(bodyA.Material, bodyB.Material)
	lambdaTangent = mgl64.Clamp(lambdaTangent, -mu*lambdaNormal, mu*lambdaNormal)

	applyImpulse(bodyA, bodyB, rA, rB, tangent.Mul(lambdaTangent))
}

// tangentDirection returns the unit direction of the tangential part of the
// relative velocity, or the zero vector when that part is negligible
func tangentDirection(relativeVel, normal geom.Vec2, normalVel float64) geom.Vec2 {
	tangential := relativeVel.Sub(normal.Mul(normalVel))
	if geom.LenSqr(tangential) < tangentEpsilonSqr {
		return geom.Zero
	}
	return geom.Normalize(tangential)
}

// applyImpulse pushes A by -impulse and B by +impulse at offsets rA and rB.
// Static bodies are left untouched.
func applyImpulse(bodyA, bodyB *actor.RigidBody, rA, rB, impulse geom.Vec2) {
	if !bodyA.IsStatic() {
		bodyA.Velocity = bodyA.Velocity.Sub(impulse.Mul(bodyA.EffectiveInverseMass()))
		bodyA.AngularVelocity -= bodyA.EffectiveInverseInertia() * geom.Cross(rA, impulse)
	}
	if !bodyB.IsStatic() {
		bodyB.Velocity = bodyB.Velocity.Add(impulse.Mul(bodyB.EffectiveInverseMass()))
		bodyB.AngularVelocity += bodyB.EffectiveInverseInertia() * geom.Cross(rB, impulse)
	}
}

// CorrectPosition removes percent of the penetration beyond slop, split
// between the bodies by inverse mass. Static bodies are never displaced.
func CorrectPosition(c Contact, bodyA, bodyB *actor.RigidBody, slop, percent float64) {
	mustDiffer(bodyA, bodyB)

	invMassA, invMassB := bodyA.EffectiveInverseMass(), bodyB.EffectiveInverseMass()
	inverseMassSum := invMassA + invMassB
	if inverseMassSum == 0 {
		return
	}

	magnitude := max(c.Penetration-slop, 0) / inverseMassSum * percent
	correction := c.Normal.Mul(magnitude)

	bodyA.Position = bodyA.Position.Sub(correction.Mul(invMassA))
	bodyB.Position = bodyB.Position.Add(correction.Mul(invMassB))
}
