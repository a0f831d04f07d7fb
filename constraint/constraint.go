package constraint

import (
	"math"

	"github.com/akmonengine/kynex/actor"
)

const (
	// DefaultSlop is the penetration tolerated before positional correction
	// kicks in, which keeps resting contacts from jittering.
	DefaultSlop = 0.01
	// DefaultPercent is the share of the remaining penetration removed per step.
	DefaultPercent = 0.8

	// tangential relative speeds below 1e-6 m/s give no friction direction
	tangentEpsilonSqr = 1e-12
)

// ComputeRestitution combines two materials: the less bouncy one wins
func ComputeRestitution(matA, matB actor.Material) float64 {
	return math.Min(matA.Restitution, matB.Restitution)
}

// ComputeFriction combines two materials with a geometric mean
func ComputeFriction(matA, matB actor.Material) float64 {
	return math.Sqrt(matA.Friction * matB.Friction)
}

func mustDiffer(a, b *actor.RigidBody) {
	if a == b {
		panic("constraint: contact between a body and itself")
	}
}
