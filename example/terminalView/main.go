package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/akmonengine/kynex"
	"github.com/akmonengine/kynex/actor"
	"github.com/akmonengine/kynex/config"
	"github.com/akmonengine/kynex/geom"
	"github.com/akmonengine/kynex/logging"
	"github.com/gdamore/tcell/v2"
)

const dt = 1.0 / 60.0

// View maps world coordinates onto terminal cells. Cells are about twice as
// tall as they are wide, so one world unit spans two columns and one row.
type View struct {
	screen tcell.Screen
	world  *kynex.World
	// world units per row
	scale  float64
	paused bool
	width  int
	height int
	// cells flashed by contacts, with the time they expire
	flashes map[[2]int]time.Time
}

func NewView(screen tcell.Screen, world *kynex.World, scale float64) *View {
	v := &View{
		screen:  screen,
		world:   world,
		scale:   scale,
		flashes: make(map[[2]int]time.Time),
	}
	v.width, v.height = screen.Size()

	world.Events.Subscribe(kynex.COLLISION_ENTER, func(event kynex.Event) {
		e := event.(kynex.CollisionEnterEvent)
		x, y := v.toCell(e.Contact.Point)
		v.flashes[[2]int{x, y}] = time.Now().Add(200 * time.Millisecond)
	})

	return v
}

// toCell projects a world point. The origin sits at the bottom center.
func (v *View) toCell(p geom.Vec2) (int, int) {
	x := float64(v.width)/2 + 2*p.X()/v.scale
	y := float64(v.height) - 2 - p.Y()/v.scale
	return int(math.Round(x)), int(math.Round(y))
}

func (v *View) draw() {
	v.screen.Clear()

	for id, body := range v.world.Bodies() {
		v.drawBody(id, body)
	}

	now := time.Now()
	flashStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for cell, expires := range v.flashes {
		if now.After(expires) {
			delete(v.flashes, cell)
			continue
		}
		v.screen.SetContent(cell[0], cell[1], '*', nil, flashStyle)
	}

	status := fmt.Sprintf(" bodies: %d  [space] pause  [n] step  [d] drop  [q] quit ", v.world.Len())
	if v.paused {
		status += "(paused) "
	}
	v.drawText(0, 0, status, tcell.StyleDefault.Reverse(true))

	v.screen.Show()
}

func (v *View) drawBody(id kynex.BodyID, body *actor.RigidBody) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	switch {
	case body.IsTrigger:
		style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case body.IsStatic():
		style = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	}

	// Fill every cell whose center falls inside the body bounds and shape
	aabb := body.AABB()
	minX, maxY := v.toCell(aabb.Min)
	maxX, minY := v.toCell(aabb.Max)
	minX, minY = max(minX, 0), max(minY, 1)
	maxX, maxY = min(maxX, v.width-1), min(maxY, v.height-1)

	transform := body.Transform()
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := v.toWorld(x, y)
			if contains(body.Shape, transform.ApplyInverse(p)) {
				v.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}

	if !body.IsStatic() {
		x, y := v.toCell(body.Position)
		v.screen.SetContent(x, y, rune('0'+id%10), nil, style.Reverse(true))
	}
}

func (v *View) toWorld(x, y int) geom.Vec2 {
	return geom.Vec2{
		(float64(x) - float64(v.width)/2) * v.scale / 2,
		(float64(v.height) - 2 - float64(y)) * v.scale,
	}
}

// contains tests a point in the shape local frame
func contains(shape actor.Shape, local geom.Vec2) bool {
	switch s := shape.(type) {
	case actor.Circle:
		return geom.LenSqr(local) <= s.Radius*s.Radius
	case actor.Box:
		return math.Abs(local.X()) <= s.HalfWidth && math.Abs(local.Y()) <= s.HalfHeight
	}
	return false
}

func (v *View) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// drop spawns a ball above the scene
func (v *View) drop() {
	top := float64(v.height-3) * v.scale
	body := actor.NewDynamicBody(actor.Circle{Radius: 0.5}, 1, geom.Vec2{0.3 * float64(v.world.Len()%5-2), top})
	body.Material = v.world.DefaultMaterial
	v.world.AddBody(body)
}

// handleInput returns false when the viewer must exit
func (v *View) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case 'n':
				if v.paused {
					v.world.Step(dt)
				}
			case 'd':
				v.drop()
			}
		}
	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

func (v *View) run() {
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go pollEvents(v.screen, eventChan)

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			if !v.paused {
				v.world.Step(dt)
			}
			v.draw()
		}
	}
}

// pollEvents forwards screen events to events until the screen is finalized,
// then closes events
func pollEvents(screen tcell.Screen, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		events <- ev
	}
}

func main() {
	scenePath := flag.String("scene", "", "scene JSON file, defaults to two balls dropped on the ground")
	scale := flag.Float64("scale", 0.25, "world units per terminal row")
	flag.Parse()

	// The terminal is taken by the view: only errors are logged, on stderr
	logger := logging.NewFromEnv()

	cfg := config.Default()
	if err := cfg.ApplyEnv(); err != nil {
		logger.Error("invalid environment", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	scene := config.DefaultScene()
	if *scenePath != "" {
		var err error
		if scene, err = config.LoadScene(*scenePath); err != nil {
			logger.Error("failed to load scene", "error", err)
			os.Exit(1)
		}
	}
	bodies, err := scene.Build(cfg.DefaultMaterial.Material())
	if err != nil {
		logger.Error("failed to build scene", "error", err)
		os.Exit(1)
	}

	world := kynex.NewWorld(cfg)
	for _, body := range bodies {
		world.AddBody(body)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := runView(screen, world, *scale); err != nil {
		logger.Error("failed to run the view", "error", err)
		os.Exit(1)
	}
}

// runView owns the screen: it is restored even when a step panics
func runView(screen tcell.Screen, world *kynex.World, scale float64) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	NewView(screen, world, scale).run()
	return nil
}
