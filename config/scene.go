package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akmonengine/kynex/actor"
)

// ShapeSpec describes a body shape in a scene file
type ShapeSpec struct {
	Kind       string  `json:"kind"` // "circle" or "box"
	Radius     float64 `json:"radius,omitempty"`
	HalfWidth  float64 `json:"halfWidth,omitempty"`
	HalfHeight float64 `json:"halfHeight,omitempty"`
}

// BodySpec describes one body of a scene
type BodySpec struct {
	Shape    ShapeSpec `json:"shape"`
	Mass     float64   `json:"mass,omitempty"`
	Position Vec       `json:"position"`
	Velocity Vec       `json:"velocity"`
	Static   bool      `json:"static,omitempty"`
	Trigger  bool      `json:"trigger,omitempty"`
	// Material overrides the default material when set
	Material *Material `json:"material,omitempty"`
}

// Scene is a list of bodies to spawn, in id order
type Scene struct {
	Bodies []BodySpec `json:"bodies"`
}

// DefaultScene is a large static circle acting as the ground with two unit
// mass balls dropped on it, slightly offset so they roll off each other.
func DefaultScene() *Scene {
	return &Scene{
		Bodies: []BodySpec{
			{
				Shape:    ShapeSpec{Kind: "circle", Radius: 1000},
				Position: Vec{X: 0, Y: -1000},
				Static:   true,
			},
			{
				Shape:    ShapeSpec{Kind: "circle", Radius: 0.5},
				Mass:     1,
				Position: Vec{X: 0, Y: 2},
			},
			{
				Shape:    ShapeSpec{Kind: "circle", Radius: 0.5},
				Mass:     1,
				Position: Vec{X: 0.2, Y: 3.1},
			},
		},
	}
}

// LoadScene reads a scene from a JSON file
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}

	return &scene, nil
}

// Build creates the bodies of the scene. Bodies without a material of their
// own get defaultMaterial.
func (s *Scene) Build(defaultMaterial actor.Material) ([]*actor.RigidBody, error) {
	bodies := make([]*actor.RigidBody, 0, len(s.Bodies))

	for i, spec := range s.Bodies {
		shape, err := spec.Shape.shape()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}

		var body *actor.RigidBody
		if spec.Static {
			body = actor.NewStaticBody(shape, spec.Position.Vec2())
		} else {
			body = actor.NewDynamicBody(shape, spec.Mass, spec.Position.Vec2())
			body.Velocity = spec.Velocity.Vec2()
		}
		body.IsTrigger = spec.Trigger

		body.Material = defaultMaterial
		if spec.Material != nil {
			if err := spec.Material.validate(fmt.Sprintf("bodies[%d].material", i)); err != nil {
				return nil, err
			}
			body.Material = spec.Material.Material()
		}

		bodies = append(bodies, body)
	}

	return bodies, nil
}

func (s ShapeSpec) shape() (actor.Shape, error) {
	switch s.Kind {
	case "circle":
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: circle radius must be > 0, got %v", ErrInvalid, s.Radius)
		}
		return actor.Circle{Radius: s.Radius}, nil
	case "box":
		if s.HalfWidth <= 0 || s.HalfHeight <= 0 {
			return nil, fmt.Errorf("%w: box half extents must be > 0, got %vx%v", ErrInvalid, s.HalfWidth, s.HalfHeight)
		}
		return actor.Box{HalfWidth: s.HalfWidth, HalfHeight: s.HalfHeight}, nil
	default:
		return nil, fmt.Errorf("%w: unknown shape kind %q", ErrInvalid, s.Kind)
	}
}
