// Command simulate drives the player state machine headlessly against a
// level and prints every state transition. Input comes from a tengo timeline
// script, which makes movement tuning reproducible without a window.
//
// The timeline is a global array of keyframes applied at their tick:
//
//	timeline := [
//	    {at: 0, axis: 1.0},
//	    {at: 30, jump: true},
//	    {at: 31, hold_jump: true},
//	]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/hiltonjp/journey/levels"
	"github.com/hiltonjp/journey/obj"
	"github.com/hiltonjp/journey/player"
	"github.com/hiltonjp/journey/prefabs"
)

const physicsSubsteps = 2

func main() {
	levelName := flag.String("level", "demo", "level name in levels/ (basename, .json optional)")
	ticks := flag.Int("ticks", 600, "frames to simulate at 60 TPS")
	scriptPath := flag.String("script", "", "tengo input timeline (default: run right and jump at tick 30)")
	flag.Parse()

	if err := run(*levelName, *ticks, *scriptPath); err != nil {
		log.Fatal(err)
	}
}

func run(levelName string, ticks int, scriptPath string) error {
	lvl, err := loadLevel(levelName)
	if err != nil {
		return fmt.Errorf("load level %q: %w", levelName, err)
	}

	timeline, err := loadTimeline(scriptPath)
	if err != nil {
		return err
	}

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	settings, err := spec.MovementSettings()
	if err != nil {
		return err
	}
	triggers, err := spec.TriggerTable()
	if err != nil {
		return err
	}

	world := obj.NewCollisionWorld(lvl)
	body := world.AttachPlayer(spec.Body.Width, spec.Body.Height)
	halfW, halfH := body.HalfExtents()
	sensor, err := player.NewCollisionSensor(spec.SensorConfig(obj.CategoryTerrain), halfW, halfH)
	if err != nil {
		return err
	}

	input := &scriptedInput{}
	anim := &nullAnimator{}
	machine, err := player.NewMachine(sensor, input, anim, body, settings, triggers)
	if err != nil {
		return err
	}

	last := machine.Current()
	fmt.Printf("tick %5d  %s\n", 0, last)

	dt := 1.0 / 60.0 / physicsSubsteps
	for tick := 0; tick < ticks; tick++ {
		input.advance(tick, timeline)
		machine.Tick()
		for i := 0; i < physicsSubsteps; i++ {
			world.Step(dt)
			cx, cy := body.Position()
			sensor.Sense(world, cx, cy)
			machine.FixedTick()
		}
		if cur := machine.Current(); cur != last {
			x, y := body.Position()
			fmt.Printf("tick %5d  %-18s pos (%6.1f, %6.1f)\n", tick, cur, x, y)
			last = cur
		}
		if machine.Dead() {
			fmt.Printf("tick %5d  player died, stopping\n", tick)
			return nil
		}
	}
	return nil
}

func loadLevel(name string) (*obj.Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	if _, err := os.Stat(name); err == nil {
		return obj.LoadLevel(name)
	}
	return obj.LoadLevelFromFS(levels.LevelsFS, name)
}

// keyframe is one timeline entry. Absent fields keep their previous value,
// except jump and action which are single-frame pulses.
type keyframe struct {
	at     int
	axis   *float64
	jump   bool
	hold   *bool
	up     *bool
	down   *bool
	action bool
}

func loadTimeline(path string) ([]keyframe, error) {
	if path == "" {
		one := 1.0
		held := true
		return []keyframe{
			{at: 0, axis: &one},
			{at: 30, jump: true, hold: &held},
		}, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("timeline script: %w", err)
	}
	raw, ok := compiled.Get("timeline").Value().([]interface{})
	if !ok {
		return nil, fmt.Errorf("timeline script does not define a `timeline` array")
	}

	frames := make([]keyframe, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("timeline entry %d is not a map", i)
		}
		kf := keyframe{at: intValue(m["at"])}
		if v, ok := m["axis"]; ok {
			axis := floatValue(v)
			kf.axis = &axis
		}
		kf.jump = boolValue(m["jump"])
		kf.action = boolValue(m["action"])
		if v, ok := m["hold_jump"]; ok {
			held := boolValue(v)
			kf.hold = &held
		}
		if v, ok := m["up"]; ok {
			held := boolValue(v)
			kf.up = &held
		}
		if v, ok := m["down"]; ok {
			held := boolValue(v)
			kf.down = &held
		}
		frames = append(frames, kf)
	}
	sort.SliceStable(frames, func(i, j int) bool { return frames[i].at < frames[j].at })
	return frames, nil
}

func intValue(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func floatValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func boolValue(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

// scriptedInput replays the timeline as the machine's logical button view.
type scriptedInput struct {
	axis     float64
	jump     bool
	jumpHeld bool
	up       bool
	down     bool
	action   bool
}

func (s *scriptedInput) advance(tick int, timeline []keyframe) {
	// pulses last one frame
	s.jump = false
	s.action = false
	for _, kf := range timeline {
		if kf.at != tick {
			continue
		}
		if kf.axis != nil {
			s.axis = *kf.axis
		}
		if kf.hold != nil {
			s.jumpHeld = *kf.hold
		}
		if kf.up != nil {
			s.up = *kf.up
		}
		if kf.down != nil {
			s.down = *kf.down
		}
		s.jump = s.jump || kf.jump
		s.action = s.action || kf.action
	}
	if s.jump {
		s.jumpHeld = true
	}
}

func (s *scriptedInput) Axis() float64       { return s.axis }
func (s *scriptedInput) JumpPressed() bool   { return s.jump }
func (s *scriptedInput) JumpHeld() bool      { return s.jumpHeld }
func (s *scriptedInput) UpHeld() bool        { return s.up }
func (s *scriptedInput) DownHeld() bool      { return s.down }
func (s *scriptedInput) ActionPressed() bool { return s.action }

type nullAnimator struct{}

func (nullAnimator) SetTrigger(string) {}
