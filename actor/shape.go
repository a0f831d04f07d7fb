package actor

import (
	"math"

	"github.com/akmonengine/kynex/geom"
)

// ShapeKind identifies a collision shape variant
type ShapeKind int

const (
	ShapeKindCircle ShapeKind = iota
	ShapeKindBox

	// ShapeKindCount is the number of shape variants. Tables indexed by
	// ShapeKind must have this many rows.
	ShapeKindCount
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeKindCircle:
		return "circle"
	case ShapeKindBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape is the closed set of collision shapes. Only types of this package can
// implement it; a new variant needs an inertia formula here and a row in the
// narrowphase dispatch table.
type Shape interface {
	Kind() ShapeKind
	// ComputeInertia returns the moment of inertia about the center of mass
	ComputeInertia(mass float64) float64
	// ComputeAABB calculates the axis-aligned bounding box of the shape
	// placed at the given transform
	ComputeAABB(transform geom.Transform) AABB

	sealed()
}

// Circle is a disc of the given radius centered on the body position
type Circle struct {
	Radius float64
}

func (c Circle) Kind() ShapeKind { return ShapeKindCircle }

// ComputeInertia returns ½·m·r²
func (c Circle) ComputeInertia(mass float64) float64 {
	return 0.5 * mass * c.Radius * c.Radius
}

// ComputeAABB is not affected by rotation, only by position
func (c Circle) ComputeAABB(transform geom.Transform) AABB {
	r := geom.Vec2{c.Radius, c.Radius}

	return AABB{
		Min: transform.Position.Sub(r),
		Max: transform.Position.Add(r),
	}
}

func (Circle) sealed() {}

// Box is a rectangle defined by its half-extents
type Box struct {
	HalfWidth  float64
	HalfHeight float64
}

func (b Box) Kind() ShapeKind { return ShapeKindBox }

// ComputeInertia returns (1/12)·m·(w²+h²) using the full width and height
func (b Box) ComputeInertia(mass float64) float64 {
	w := 2 * b.HalfWidth
	h := 2 * b.HalfHeight

	return (1.0 / 12.0) * mass * (w*w + h*h)
}

// ComputeAABB transforms the four corners and keeps their extent
func (b Box) ComputeAABB(transform geom.Transform) AABB {
	corners := [4]geom.Vec2{
		{-b.HalfWidth, -b.HalfHeight},
		{+b.HalfWidth, -b.HalfHeight},
		{+b.HalfWidth, +b.HalfHeight},
		{-b.HalfWidth, +b.HalfHeight},
	}

	first := transform.Apply(corners[0])
	min, max := first, first
	for _, corner := range corners[1:] {
		world := transform.Apply(corner)

		min[0] = math.Min(min[0], world[0])
		min[1] = math.Min(min[1], world[1])
		max[0] = math.Max(max[0], world[0])
		max[1] = math.Max(max[1], world[1])
	}

	return AABB{Min: min, Max: max}
}

func (Box) sealed() {}
