package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Gravity != (Vec{X: 0, Y: -9.81}) {
		t.Errorf("Gravity = %+v, want (0, -9.81)", cfg.Gravity)
	}
	if cfg.Iterations != 12 || cfg.Slop != 0.01 || cfg.Percent != 0.8 || cfg.MaxSpeed != 0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.DefaultMaterial != (Material{Restitution: 0.2, Friction: 0.6}) {
		t.Errorf("DefaultMaterial = %+v", cfg.DefaultMaterial)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should be valid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")
	data := `{"gravity": {"x": 0, "y": -1.62}, "iterations": 20}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gravity.Y != -1.62 || cfg.Iterations != 20 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	// Absent fields keep their default
	if cfg.Slop != Default().Slop || cfg.DefaultMaterial != Default().DefaultMaterial {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Load() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load() should fail on malformed JSON")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		if err := os.WriteFile(path, []byte(`{"iterations": 0}`), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("Load() error = %v, want ErrInvalid", err)
		}
	})
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")

	cfg := Default()
	cfg.MaxSpeed = 42
	cfg.DefaultMaterial.Restitution = 0.9

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != cfg {
		t.Errorf("Load(Save(cfg)) = %+v, want %+v", loaded, cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("KYNEX_GRAVITY_Y", "-3.5")
	t.Setenv("KYNEX_ITERATIONS", "8")
	t.Setenv("KYNEX_MAX_SPEED", "100")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Gravity.Y != -3.5 || cfg.Iterations != 8 || cfg.MaxSpeed != 100 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Gravity.X != 0 || cfg.Slop != Default().Slop {
		t.Errorf("unset variables changed values: %+v", cfg)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"KYNEX_SLOP", "small"},
		{"KYNEX_ITERATIONS", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg := Default()
			if err := cfg.ApplyEnv(); err == nil {
				t.Errorf("ApplyEnv() with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *World)
	}{
		{"zero iterations", func(c *World) { c.Iterations = 0 }},
		{"negative slop", func(c *World) { c.Slop = -0.1 }},
		{"percent above one", func(c *World) { c.Percent = 1.5 }},
		{"negative percent", func(c *World) { c.Percent = -0.5 }},
		{"negative max speed", func(c *World) { c.MaxSpeed = -1 }},
		{"restitution above one", func(c *World) { c.DefaultMaterial.Restitution = 2 }},
		{"negative friction", func(c *World) { c.DefaultMaterial.Friction = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}
