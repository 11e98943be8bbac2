package prefabs

import (
	"testing"

	"github.com/hiltonjp/journey/player"
	"github.com/hiltonjp/journey/sequence"
)

func TestLoadPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if spec.Name != "player" {
		t.Fatalf("name = %q, want player", spec.Name)
	}
	if spec.Body.Width <= 0 || spec.Body.Height <= 0 {
		t.Fatalf("body extents %vx%v must be positive", spec.Body.Width, spec.Body.Height)
	}
	if spec.DeathScript == "" {
		t.Fatal("death_script is empty")
	}

	settings, err := spec.MovementSettings()
	if err != nil {
		t.Fatalf("MovementSettings: %v", err)
	}
	if settings.MaxSpeed != spec.Movement.MaxSpeed {
		t.Fatalf("MaxSpeed = %v, want %v", settings.MaxSpeed, spec.Movement.MaxSpeed)
	}

	cfg := spec.SensorConfig(0xff)
	if cfg.Granularity != spec.Sensor.Granularity {
		t.Fatalf("granularity = %d, want %d", cfg.Granularity, spec.Sensor.Granularity)
	}
	if cfg.Mask != 0xff {
		t.Fatalf("mask = %#x, want 0xff", cfg.Mask)
	}
}

func TestMovementSettingsRejectsBadTuning(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	spec.Movement.DecelerationX = 1.5
	if _, err := spec.MovementSettings(); err == nil {
		t.Fatal("expected error for deceleration_x outside (0,1)")
	}
}

func TestTriggerTable(t *testing.T) {
	spec := &PlayerSpec{
		Triggers: map[string]string{
			"wall_run": "wall_run_loop",
		},
	}
	table, err := spec.TriggerTable()
	if err != nil {
		t.Fatalf("TriggerTable: %v", err)
	}
	if got := table[player.StateWallRun]; got != "wall_run_loop" {
		t.Fatalf("wall_run trigger = %q, want wall_run_loop", got)
	}
	if got := table[player.StateIdle]; got != "idle" {
		t.Fatalf("idle trigger = %q, want default idle", got)
	}
}

func TestTriggerTableErrors(t *testing.T) {
	tests := []struct {
		name     string
		triggers map[string]string
	}{
		{"unknown state", map[string]string{"moonwalk": "moonwalk"}},
		{"empty trigger", map[string]string{"idle": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &PlayerSpec{Triggers: tt.triggers}
			if _, err := spec.TriggerTable(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadSpecUnknownFile(t *testing.T) {
	if _, err := LoadSpec[PlayerSpec]("nope.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// The embedded death script has to survive the sequence loader, otherwise
// dying in game would silently skip the respawn.
func TestDeathScriptLoads(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	src, err := LoadScript(spec.DeathScript)
	if err != nil {
		t.Fatalf("LoadScript(%q): %v", spec.DeathScript, err)
	}

	fired := make([]string, 0, 5)
	note := func(name string) func() {
		return func() { fired = append(fired, name) }
	}
	runner, err := sequence.Load(src, map[string]func(){
		"freeze_input":   note("freeze_input"),
		"fade_out":       note("fade_out"),
		"respawn_player": note("respawn_player"),
		"fade_in":        note("fade_in"),
		"unfreeze_input": note("unfreeze_input"),
	})
	if err != nil {
		t.Fatalf("sequence.Load: %v", err)
	}
	for i := 0; i < 600 && !runner.Done(); i++ {
		runner.Update(1.0 / 60.0)
	}
	if !runner.Done() {
		t.Fatal("runner never finished")
	}
	want := []string{"freeze_input", "fade_out", "respawn_player", "fade_in", "unfreeze_input"}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("step %d = %q, want %q", i, fired[i], want[i])
		}
	}
}

func TestScriptPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"respawn.tengo", "scripts/respawn.tengo"},
		{"scripts/respawn.tengo", "scripts/respawn.tengo"},
		{"prefabs/scripts/respawn.tengo", "scripts/respawn.tengo"},
	}
	for _, tt := range tests {
		if got := scriptPath(tt.in); got != tt.want {
			t.Fatalf("scriptPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
