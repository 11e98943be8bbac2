package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hiltonjp/journey/common"
	"github.com/hiltonjp/journey/levels"
	"github.com/hiltonjp/journey/obj"
	"github.com/hiltonjp/journey/player"
	"github.com/hiltonjp/journey/prefabs"
	"github.com/hiltonjp/journey/sequence"
)

const (
	tickRate = 60.0
	// each frame runs two physics half-steps for stable stacking
	physicsSubsteps = 2
)

// Game wires the level, the physics world, the collision sensor and the
// player state machine into ebiten's loop. Per frame the order is fixed:
// poll input, frame tick, then per physics substep advance the world,
// refresh the sensor snapshot and run the machine's physics tick.
type Game struct {
	frames int

	level   *obj.Level
	world   *obj.CollisionWorld
	input   *obj.Input
	body    *obj.PlayerBody
	sensor  *player.CollisionSensor
	machine *player.Machine
	anim    *animator
	camera  *obj.Camera

	spec    *prefabs.PlayerSpec
	watcher *prefabs.Watcher

	respawn    *sequence.Runner
	fade       float64
	fadeTarget float64
	paused     bool
	debug      bool
}

func NewGame(levelName string, watch, debug bool) (*Game, error) {
	lvl, err := resolveLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", levelName, err)
	}

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	settings, err := spec.MovementSettings()
	if err != nil {
		return nil, err
	}
	triggers, err := spec.TriggerTable()
	if err != nil {
		return nil, err
	}

	world := obj.NewCollisionWorld(lvl)
	body := world.AttachPlayer(spec.Body.Width, spec.Body.Height)

	halfW, halfH := body.HalfExtents()
	sensor, err := player.NewCollisionSensor(spec.SensorConfig(obj.CategoryTerrain), halfW, halfH)
	if err != nil {
		return nil, err
	}

	input := obj.NewInput()
	anim := &animator{}
	machine, err := player.NewMachine(sensor, input, anim, body, settings, triggers)
	if err != nil {
		return nil, err
	}

	camera := obj.NewCamera(common.BaseWidth, common.BaseHeight, 2)
	camera.SetWorldBounds(lvl.PixelSize())
	camera.SnapTo(body.Position())

	g := &Game{
		level:   lvl,
		world:   world,
		input:   input,
		body:    body,
		sensor:  sensor,
		machine: machine,
		anim:    anim,
		camera:  camera,
		spec:    spec,
		debug:   debug,
	}

	if watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

// resolveLevel loads a level by basename from the embedded set, or from disk
// when the name points at an existing file.
func resolveLevel(name string) (*obj.Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	if _, err := os.Stat(name); err == nil {
		return obj.LoadLevel(name)
	}
	return obj.LoadLevelFromFS(levels.LevelsFS, name)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	g.input.Update()
	g.drainReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	// Pickup signals go out before the frame tick so the press that drops a
	// crate cannot re-grab it in the same frame.
	g.signalItems()

	g.machine.Tick()

	dt := 1.0 / tickRate / physicsSubsteps
	for i := 0; i < physicsSubsteps; i++ {
		g.world.Step(dt)
		cx, cy := g.body.Position()
		g.sensor.Sense(g.world, cx, cy)
		g.machine.FixedTick()
	}

	if g.machine.Dead() && g.respawn == nil {
		g.startRespawn()
	}
	if g.respawn != nil {
		g.respawn.Update(1.0 / tickRate)
		if g.respawn.Done() {
			g.respawn = nil
		}
	}
	g.stepFade()

	g.camera.Update(g.body.Position())
	return nil
}

// signalItems offers the nearest overlapping crate to the machine when the
// action button is pressed. The active state decides whether to accept.
func (g *Game) signalItems() {
	if !g.input.ActionPressed() || g.machine.Carrying() || g.machine.Dead() {
		return
	}
	playerRect := g.body.Rect()
	for _, crate := range g.world.Items() {
		if crate.Carried() {
			continue
		}
		crateRect := crate.Rect()
		if playerRect.Intersects(&crateRect) {
			g.machine.Signal(crate)
			return
		}
	}
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadSpec(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefab watch: %v", err)
			}
		default:
			return
		}
	}
}

// reloadSpec swaps the movement tuning in place. Body extents, sensor grid
// and trigger table are fixed at construction and keep their old values
// until restart.
func (g *Game) reloadSpec(path string) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	settings, err := spec.MovementSettings()
	if err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	g.spec = spec
	g.machine.ApplySettings(settings)
	log.Printf("reloaded %s", path)
}

func (g *Game) startRespawn() {
	runner, err := g.loadRespawnSequence()
	if err != nil {
		// dying must never soft-lock the game, fall back to a hard respawn
		log.Printf("respawn sequence: %v", err)
		g.respawnPlayer()
		return
	}
	g.respawn = runner
}

func (g *Game) loadRespawnSequence() (*sequence.Runner, error) {
	src, err := prefabs.LoadScript(g.spec.DeathScript)
	if err != nil {
		return nil, err
	}
	return sequence.Load(src, map[string]func(){
		"freeze_input":   func() { g.input.SetFrozen(true) },
		"fade_out":       func() { g.fadeTarget = 1 },
		"respawn_player": g.respawnPlayer,
		"fade_in":        func() { g.fadeTarget = 0 },
		"unfreeze_input": func() { g.input.SetFrozen(false) },
	})
}

func (g *Game) respawnPlayer() {
	g.world.ResetPlayer()
	g.machine.ChangeState(player.StateIdle)
	g.camera.SnapTo(g.body.Position())
}

func (g *Game) stepFade() {
	const fadeStep = 0.05
	if g.fade < g.fadeTarget {
		g.fade = common.Clamp(g.fade+fadeStep, 0, g.fadeTarget)
	} else if g.fade > g.fadeTarget {
		g.fade = common.Clamp(g.fade-fadeStep, g.fadeTarget, 1)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.camera.Render(screen, func(world *ebiten.Image) {
		camX, camY := g.camera.ViewTopLeft()
		zoom := g.camera.Zoom()

		g.level.Draw(world, camX, camY, zoom)
		g.drawObjects(world, camX, camY, zoom)
		if g.debug {
			g.world.DebugDraw(world, camX, camY, zoom)
		}
	})

	g.drawHUD(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// animator records the trigger pushed by the machine's latest transition.
// There is no sprite sheet yet, the trigger doubles as the HUD state label.
type animator struct {
	trigger string
}

func (a *animator) SetTrigger(name string) { a.trigger = name }

func (a *animator) Trigger() string { return a.trigger }
