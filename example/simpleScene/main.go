package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/akmonengine/kynex"
	"github.com/akmonengine/kynex/config"
	"github.com/akmonengine/kynex/logging"
)

const (
	dt       = 1.0 / 60.0
	maxSteps = 240
	// log the bodies every logEvery steps
	logEvery = 30
)

func main() {
	configPath := flag.String("config", "", "world config JSON file")
	scenePath := flag.String("scene", "", "scene JSON file, defaults to two balls dropped on the ground")
	flag.Parse()

	logger := logging.NewFromEnv()

	world, err := setupWorld(*configPath, *scenePath, logger)
	if err != nil {
		logger.Error("failed to set up the scene", "error", err)
		os.Exit(1)
	}

	world.Events.Subscribe(kynex.COLLISION_ENTER, func(event kynex.Event) {
		e := event.(kynex.CollisionEnterEvent)
		logger.Info("contact", "bodyA", e.BodyA, "bodyB", e.BodyB, "penetration", e.Contact.Penetration)
	})
	world.Events.Subscribe(kynex.COLLISION_EXIT, func(event kynex.Event) {
		e := event.(kynex.CollisionExitEvent)
		logger.Info("separation", "bodyA", e.BodyA, "bodyB", e.BodyB)
	})

	for step := range maxSteps {
		world.Step(dt)

		if (step+1)%logEvery != 0 {
			continue
		}
		for id, body := range world.Bodies() {
			if body.IsStatic() {
				continue
			}
			logger.Info("body",
				"step", step+1,
				"id", id,
				"x", body.Position.X(),
				"y", body.Position.Y(),
				"vx", body.Velocity.X(),
				"vy", body.Velocity.Y(),
			)
		}
	}
}

// setupWorld builds the world from the optional config and scene files,
// then applies the KYNEX_* environment overrides
func setupWorld(configPath, scenePath string, logger *slog.Logger) (*kynex.World, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scene := config.DefaultScene()
	if scenePath != "" {
		var err error
		if scene, err = config.LoadScene(scenePath); err != nil {
			return nil, err
		}
	}

	bodies, err := scene.Build(cfg.DefaultMaterial.Material())
	if err != nil {
		return nil, err
	}

	world := kynex.NewWorld(cfg)
	world.Logger = logger
	for _, body := range bodies {
		world.AddBody(body)
	}

	return world, nil
}
