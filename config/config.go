// Package config loads the world tunables and demo scenes. Values come from
// built-in defaults, optionally overridden by a JSON file and then by
// KYNEX_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/akmonengine/kynex/actor"
	"github.com/akmonengine/kynex/constraint"
	"github.com/akmonengine/kynex/geom"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Vec is a JSON friendly 2D vector
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Vec2() geom.Vec2 {
	return geom.Vec2{v.X, v.Y}
}

// Material mirrors actor.Material for JSON files
type Material struct {
	Restitution float64 `json:"restitution"`
	Friction    float64 `json:"friction"`
}

func (m Material) Material() actor.Material {
	return actor.Material{Restitution: m.Restitution, Friction: m.Friction}
}

func (m Material) validate(field string) error {
	if m.Restitution < 0 || m.Restitution > 1 {
		return fmt.Errorf("%w: %s.restitution must be in [0, 1], got %v", ErrInvalid, field, m.Restitution)
	}
	if m.Friction < 0 {
		return fmt.Errorf("%w: %s.friction must be >= 0, got %v", ErrInvalid, field, m.Friction)
	}
	return nil
}

// World contains the simulation tunables
type World struct {
	Gravity    Vec `json:"gravity"`
	Iterations int `json:"iterations"`
	// Positional correction
	Slop    float64 `json:"slop"`
	Percent float64 `json:"percent"`
	// MaxSpeed clamps linear speeds after force integration, 0 disables it
	MaxSpeed        float64  `json:"maxSpeed"`
	DefaultMaterial Material `json:"defaultMaterial"`
}

// Default returns the tunables used when nothing is configured
func Default() World {
	return World{
		Gravity:    Vec{X: 0, Y: -9.81},
		Iterations: 12,
		Slop:       constraint.DefaultSlop,
		Percent:    constraint.DefaultPercent,
		MaxSpeed:   0,
		DefaultMaterial: Material{
			Restitution: actor.DefaultRestitution,
			Friction:    actor.DefaultFriction,
		},
	}
}

// Load reads a JSON file on top of the defaults. Fields absent from the file
// keep their default value.
func Load(path string) (World, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, cfg.Validate()
}

// Save writes the configuration as indented JSON
func Save(cfg World, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from KYNEX_* environment variables
func (c *World) ApplyEnv() error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"KYNEX_GRAVITY_X", &c.Gravity.X},
		{"KYNEX_GRAVITY_Y", &c.Gravity.Y},
		{"KYNEX_SLOP", &c.Slop},
		{"KYNEX_PERCENT", &c.Percent},
		{"KYNEX_MAX_SPEED", &c.MaxSpeed},
	}

	for _, f := range floats {
		value, ok := os.LookupEnv(f.key)
		if !ok || value == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = parsed
	}

	if value := os.Getenv("KYNEX_ITERATIONS"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid KYNEX_ITERATIONS: %w", err)
		}
		c.Iterations = parsed
	}

	return nil
}

// Validate checks that every tunable is in its usable range
func (c World) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be >= 1, got %d", ErrInvalid, c.Iterations)
	}
	if c.Slop < 0 {
		return fmt.Errorf("%w: slop must be >= 0, got %v", ErrInvalid, c.Slop)
	}
	if c.Percent < 0 || c.Percent > 1 {
		return fmt.Errorf("%w: percent must be in [0, 1], got %v", ErrInvalid, c.Percent)
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("%w: maxSpeed must be >= 0, got %v", ErrInvalid, c.MaxSpeed)
	}
	if !geom.IsFinite(c.Gravity.Vec2()) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalid)
	}

	return c.DefaultMaterial.validate("defaultMaterial")
}
