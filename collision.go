package kynex

import (
	"github.com/akmonengine/kynex/actor"
	"github.com/akmonengine/kynex/constraint"
	"github.com/akmonengine/kynex/geom"
)

// coincidentThreshold is the center distance under which two circles are
// considered concentric and get an arbitrary normal.
const coincidentThreshold = 1e-5

// Pair holds the indices of two bodies that potentially collide, A < B
type Pair struct {
	BodyA int
	BodyB int
}

// collideFunc produces a manifold for bodies a and b, or false when they do
// not touch
type collideFunc func(a, b int, bodyA, bodyB *actor.RigidBody) (constraint.Manifold, bool)

// narrowPhaseTable dispatches on the shape kinds of a pair. Every cell must
// be filled: unsupported pairs map to collideUnsupported explicitly.
var narrowPhaseTable = [actor.ShapeKindCount][actor.ShapeKindCount]collideFunc{
	actor.ShapeKindCircle: {
		actor.ShapeKindCircle: CircleCircle,
		actor.ShapeKindBox:    collideUnsupported,
	},
	actor.ShapeKindBox: {
		actor.ShapeKindCircle: collideUnsupported,
		actor.ShapeKindBox:    collideUnsupported,
	},
}

// BroadPhase enumerates every unordered pair of bodies, skipping pairs where
// both are static.
// This is an O(n²) brute-force approach suitable for small numbers of bodies
func BroadPhase(bodies []*actor.RigidBody) []Pair {
	pairs := make([]Pair, 0, len(bodies))

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].IsStatic() && bodies[j].IsStatic() {
				continue
			}
			pairs = append(pairs, Pair{BodyA: i, BodyB: j})
		}
	}

	return pairs
}

// NarrowPhase runs the exact shape test on each pair and returns the
// manifolds of the pairs that overlap, in pair order
func NarrowPhase(pairs []Pair, bodies []*actor.RigidBody) []constraint.Manifold {
	manifolds := make([]constraint.Manifold, 0, len(pairs))

	for _, pair := range pairs {
		bodyA, bodyB := bodies[pair.BodyA], bodies[pair.BodyB]
		collide := narrowPhaseTable[bodyA.Shape.Kind()][bodyB.Shape.Kind()]

		if manifold, ok := collide(pair.BodyA, pair.BodyB, bodyA, bodyB); ok {
			manifolds = append(manifolds, manifold)
		}
	}

	return manifolds
}

// CircleCircle tests two circle bodies. The contact point lies on the surface
// of A along the normal, which is exact for circles only.
func CircleCircle(a, b int, bodyA, bodyB *actor.RigidBody) (constraint.Manifold, bool) {
	circleA, okA := bodyA.Shape.(actor.Circle)
	circleB, okB := bodyB.Shape.(actor.Circle)
	if !okA || !okB {
		return constraint.Manifold{}, false
	}

	ab := bodyB.Position.Sub(bodyA.Position)
	distanceSqr := geom.LenSqr(ab)
	radii := circleA.Radius + circleB.Radius

	if distanceSqr >= radii*radii {
		return constraint.Manifold{}, false
	}

	distance := ab.Len()
	normal := geom.UnitX
	if distance > coincidentThreshold {
		normal = ab.Mul(1.0 / distance)
	}

	return constraint.Manifold{
		BodyA: a,
		BodyB: b,
		Contact: constraint.Contact{
			Point:       bodyA.Position.Add(normal.Mul(circleA.Radius)),
			Normal:      normal,
			Penetration: radii - distance,
		},
	}, true
}

// collideUnsupported covers the shape pairs without a narrowphase yet
// (box-box, circle-box): they never produce contacts.
func collideUnsupported(int, int, *actor.RigidBody, *actor.RigidBody) (constraint.Manifold, bool) {
	return constraint.Manifold{}, false
}
