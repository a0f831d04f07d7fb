// Package kynex is a small 2D rigid-body simulator: gravity and forces are
// integrated with semi-implicit Euler, circle contacts are found by an
// exhaustive broad phase, and resolved with sequential impulses followed by
// positional correction.
package kynex

import (
	"fmt"
	"iter"
	"log/slog"
	"math"

	"github.com/akmonengine/kynex/actor"
	"github.com/akmonengine/kynex/config"
	"github.com/akmonengine/kynex/constraint"
	"github.com/akmonengine/kynex/geom"
	"github.com/akmonengine/kynex/logging"
)

// BodyID is the stable index of a body in its world
type BodyID = int

var discardLogger = logging.Discard()

type World struct {
	// Gravity acceleration (m/s², or N/kg)
	Gravity geom.Vec2
	// Velocity solver passes per step, 8-20 is a good range
	Iterations int
	// Penetration tolerated before positional correction
	Slop float64
	// Share of the penetration beyond Slop removed per step
	Percent float64
	// MaxSpeed clamps linear speeds after force integration, 0 disables it
	MaxSpeed float64
	// DefaultMaterial is the configured material for bodies built by the
	// caller. AddBody never changes a body material.
	DefaultMaterial actor.Material

	Events Events
	// Logger receives one debug record per step, nil silences it
	Logger *slog.Logger

	// Bodies in id order. Bodies are never removed so ids stay valid.
	bodies []*actor.RigidBody
}

// NewWorld creates an empty world from validated tunables
func NewWorld(cfg config.World) *World {
	return &World{
		Gravity:    cfg.Gravity.Vec2(),
		Iterations: cfg.Iterations,
		Slop:       cfg.Slop,
		Percent:    cfg.Percent,
		MaxSpeed:   cfg.MaxSpeed,

		DefaultMaterial: cfg.DefaultMaterial.Material(),
		Events:          NewEvents(),
	}
}

// NewDefaultWorld creates an empty world with config.Default tunables
func NewDefaultWorld() *World {
	return NewWorld(config.Default())
}

// AddBody adds a rigid body to the world and returns its id
func (w *World) AddBody(body *actor.RigidBody) BodyID {
	if body == nil {
		panic("kynex: AddBody with a nil body")
	}
	if !geom.IsFinite(body.Position) {
		panic(fmt.Sprintf("kynex: AddBody with a non-finite position %v", body.Position))
	}

	id := len(w.bodies)
	w.bodies = append(w.bodies, body)
	w.logger().Debug("body added", "id", id, "shape", body.Shape.Kind().String(), "static", body.IsStatic())

	return id
}

// Body returns the body with the given id. The pointer can be used to read
// the pose or tune the material between steps.
func (w *World) Body(id BodyID) *actor.RigidBody {
	if id < 0 || id >= len(w.bodies) {
		panic(fmt.Sprintf("kynex: body id %d out of range [0, %d)", id, len(w.bodies)))
	}
	return w.bodies[id]
}

// Len returns the number of bodies
func (w *World) Len() int {
	return len(w.bodies)
}

// Bodies iterates over the bodies in id order
func (w *World) Bodies() iter.Seq2[BodyID, *actor.RigidBody] {
	return func(yield func(BodyID, *actor.RigidBody) bool) {
		for id, body := range w.bodies {
			if !yield(id, body) {
				return
			}
		}
	}
}

// ApplyForce accumulates a force on a body for the next step
func (w *World) ApplyForce(id BodyID, force geom.Vec2) {
	w.Body(id).ApplyForce(force)
}

// Step advances the simulation by dt seconds
func (w *World) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		panic(fmt.Sprintf("kynex: Step with invalid dt %v", dt))
	}

	// Phase 1: forces and gravity -> velocities
	w.integrateForces(dt)

	// Phase 2: collision pair finding - broad phase then narrow phase
	manifolds := w.detectCollision()
	detected := len(manifolds)
	manifolds = w.Events.recordCollisions(manifolds, w.bodies)

	// Phase 3: velocity constraints, fixed number of passes
	for range w.Iterations {
		w.solveVelocity(manifolds)
	}

	// Phase 4: velocities -> positions
	w.integratePositions(dt)

	// Phase 5: positional correction, with the penetration measured in phase 2
	w.correctPositions(manifolds)

	w.logger().Debug("step",
		"dt", dt,
		"bodies", len(w.bodies),
		"contacts", len(manifolds),
		"triggers", detected-len(manifolds),
	)

	w.Events.flush()
}

func (w *World) integrateForces(dt float64) {
	for _, body := range w.bodies {
		body.IntegrateForces(dt, w.Gravity, w.MaxSpeed)
	}
}

func (w *World) detectCollision() []constraint.Manifold {
	return NarrowPhase(BroadPhase(w.bodies), w.bodies)
}

func (w *World) solveVelocity(manifolds []constraint.Manifold) {
	for _, m := range manifolds {
		bodyA, bodyB := w.pair(m.BodyA, m.BodyB)
		constraint.SolveVelocity(m.Contact, bodyA, bodyB)
	}
}

func (w *World) integratePositions(dt float64) {
	for _, body := range w.bodies {
		body.IntegratePosition(dt)
	}
}

func (w *World) correctPositions(manifolds []constraint.Manifold) {
	for _, m := range manifolds {
		bodyA, bodyB := w.pair(m.BodyA, m.BodyB)
		constraint.CorrectPosition(m.Contact, bodyA, bodyB, w.Slop, w.Percent)
	}
}

// pair returns the two distinct bodies a manifold refers to
func (w *World) pair(i, j BodyID) (*actor.RigidBody, *actor.RigidBody) {
	if i == j {
		panic(fmt.Sprintf("kynex: manifold between body %d and itself", i))
	}
	return w.Body(i), w.Body(j)
}

func (w *World) logger() *slog.Logger {
	if w.Logger == nil {
		return discardLogger
	}
	return w.Logger
}
