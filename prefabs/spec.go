package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hiltonjp/journey/player"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec is the tunable half of the player: body extents, the movement
// tuning block, the sensor grid and the animation trigger overrides. It
// reloads at runtime when the file changes on disk.
type PlayerSpec struct {
	Name     string       `yaml:"name"`
	Body     BodySpec     `yaml:"body"`
	Movement MovementSpec `yaml:"movement"`
	Sensor   SensorSpec   `yaml:"sensor"`
	// Triggers overrides the animation trigger pushed per state, keyed by
	// state name. States not listed keep their defaults.
	Triggers map[string]string `yaml:"triggers"`
	// DeathScript names the tengo sequence played on death.
	DeathScript string `yaml:"death_script"`
}

type BodySpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type MovementSpec struct {
	MaxSpeed      float64 `yaml:"max_speed"`
	Acceleration  float64 `yaml:"acceleration"`
	DecelerationX float64 `yaml:"deceleration_x"`
	DecelerationY float64 `yaml:"deceleration_y"`
	Agility       float64 `yaml:"agility"`
	IdleThreshold float64 `yaml:"idle_threshold"`

	CrawlSpeedFactor float64 `yaml:"crawl_speed_factor"`
	CarrySpeedFactor float64 `yaml:"carry_speed_factor"`

	JumpSpeed       float64 `yaml:"jump_speed"`
	DoubleJumpSpeed float64 `yaml:"double_jump_speed"`
	JumpCutSpeed    float64 `yaml:"jump_cut_speed"`
	WallRunSpeed    float64 `yaml:"wall_run_speed"`
	WallSlideSpeed  float64 `yaml:"wall_slide_speed"`
	WallJumpPush    float64 `yaml:"wall_jump_push"`
	DiveSpeedX      float64 `yaml:"dive_speed_x"`
	DiveSpeedY      float64 `yaml:"dive_speed_y"`
	RollBoost       float64 `yaml:"roll_boost"`
	LedgeAssist     float64 `yaml:"ledge_assist"`
	BonkNudge       float64 `yaml:"bonk_nudge"`
	ThrowSpeedX     float64 `yaml:"throw_speed_x"`
	ThrowSpeedY     float64 `yaml:"throw_speed_y"`

	WallJumpMuteFactor float64 `yaml:"wall_jump_mute_factor"`

	CoyoteFrames       int `yaml:"coyote_frames"`
	WallJumpMuteFrames int `yaml:"wall_jump_mute_frames"`
	JumpBufferFrames   int `yaml:"jump_buffer_frames"`
	CrouchFrames       int `yaml:"crouch_frames"`
	LandFrames         int `yaml:"land_frames"`
	RollFrames         int `yaml:"roll_frames"`
	DiveFrames         int `yaml:"dive_frames"`
	PickUpFrames       int `yaml:"pick_up_frames"`

	InheritPlatformMomentum bool `yaml:"inherit_platform_momentum"`
}

type SensorSpec struct {
	Granularity         int     `yaml:"granularity"`
	VerticalRayLength   float64 `yaml:"vertical_ray_length"`
	HorizontalRayLength float64 `yaml:"horizontal_ray_length"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// MovementSettings converts the tuning block and validates it.
func (s *PlayerSpec) MovementSettings() (player.MovementSettings, error) {
	m := s.Movement
	settings := player.MovementSettings{
		MaxSpeed:                m.MaxSpeed,
		Acceleration:            m.Acceleration,
		DecelerationX:           m.DecelerationX,
		DecelerationY:           m.DecelerationY,
		Agility:                 m.Agility,
		IdleThreshold:           m.IdleThreshold,
		CrawlSpeedFactor:        m.CrawlSpeedFactor,
		CarrySpeedFactor:        m.CarrySpeedFactor,
		JumpSpeed:               m.JumpSpeed,
		DoubleJumpSpeed:         m.DoubleJumpSpeed,
		JumpCutSpeed:            m.JumpCutSpeed,
		WallRunSpeed:            m.WallRunSpeed,
		WallSlideSpeed:          m.WallSlideSpeed,
		WallJumpPush:            m.WallJumpPush,
		DiveSpeedX:              m.DiveSpeedX,
		DiveSpeedY:              m.DiveSpeedY,
		RollBoost:               m.RollBoost,
		LedgeAssist:             m.LedgeAssist,
		BonkNudge:               m.BonkNudge,
		ThrowSpeedX:             m.ThrowSpeedX,
		ThrowSpeedY:             m.ThrowSpeedY,
		WallJumpMuteFactor:      m.WallJumpMuteFactor,
		CoyoteFrames:            m.CoyoteFrames,
		WallJumpMuteFrames:      m.WallJumpMuteFrames,
		JumpBufferFrames:        m.JumpBufferFrames,
		CrouchFrames:            m.CrouchFrames,
		LandFrames:              m.LandFrames,
		RollFrames:              m.RollFrames,
		DiveFrames:              m.DiveFrames,
		PickUpFrames:            m.PickUpFrames,
		InheritPlatformMomentum: m.InheritPlatformMomentum,
	}
	if err := settings.Validate(); err != nil {
		return player.MovementSettings{}, err
	}
	return settings, nil
}

// SensorConfig converts the sensor block. The caller supplies the category
// mask, which belongs to the physics world rather than the tuning file.
func (s *PlayerSpec) SensorConfig(mask uint) player.SensorConfig {
	return player.SensorConfig{
		Granularity:         s.Sensor.Granularity,
		VerticalRayLength:   s.Sensor.VerticalRayLength,
		HorizontalRayLength: s.Sensor.HorizontalRayLength,
		Mask:                mask,
	}
}

// TriggerTable builds the per-state animation trigger map: defaults plus
// the spec's overrides. An override naming an unknown state is an error.
func (s *PlayerSpec) TriggerTable() (map[player.StateID]string, error) {
	table := player.DefaultTriggers()
	for name, trigger := range s.Triggers {
		id, ok := player.ParseStateID(name)
		if !ok {
			return nil, fmt.Errorf("prefabs: trigger override for unknown state %q", name)
		}
		if trigger == "" {
			return nil, fmt.Errorf("prefabs: empty trigger for state %q", name)
		}
		table[id] = trigger
	}
	return table, nil
}
