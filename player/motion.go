package player

import (
	"fmt"
	"math"

	"github.com/hiltonjp/journey/common"
)

// Facing is the direction the character faces, derived from velocity.
type Facing int

const (
	FacingNone Facing = iota
	FacingLeft
	FacingRight
)

// MovementSettings is the tuning block shared by every motion state.
// Speeds are pixels per second, timers are fixed-tick counts, damping
// factors are per-tick multipliers in (0, 1].
type MovementSettings struct {
	MaxSpeed      float64
	Acceleration  float64
	DecelerationX float64
	DecelerationY float64
	// Agility scales input while turning against current velocity; < 1
	// models a slower turn-around.
	Agility float64
	// IdleThreshold is the speed below which facing collapses to none.
	IdleThreshold float64

	CrawlSpeedFactor float64
	CarrySpeedFactor float64

	JumpSpeed       float64
	DoubleJumpSpeed float64
	JumpCutSpeed    float64
	WallRunSpeed    float64
	WallSlideSpeed  float64
	WallJumpPush    float64
	DiveSpeedX      float64
	DiveSpeedY      float64
	RollBoost       float64
	LedgeAssist     float64
	BonkNudge       float64
	ThrowSpeedX     float64
	ThrowSpeedY     float64

	WallJumpMuteFactor float64

	CoyoteFrames       int
	WallJumpMuteFrames int
	JumpBufferFrames   int
	CrouchFrames       int
	LandFrames         int
	RollFrames         int
	DiveFrames         int
	PickUpFrames       int

	// InheritPlatformMomentum keeps the body attached to a carrying
	// platform while self-accelerating instead of detaching from it.
	InheritPlatformMomentum bool
}

func (s MovementSettings) Validate() error {
	if s.MaxSpeed <= 0 {
		return fmt.Errorf("movement: max speed %v must be positive", s.MaxSpeed)
	}
	if s.Acceleration <= 0 {
		return fmt.Errorf("movement: acceleration %v must be positive", s.Acceleration)
	}
	if s.DecelerationX <= 0 || s.DecelerationX >= 1 {
		return fmt.Errorf("movement: x deceleration %v must be in (0,1)", s.DecelerationX)
	}
	if s.DecelerationY <= 0 || s.DecelerationY > 1 {
		return fmt.Errorf("movement: y deceleration %v must be in (0,1]", s.DecelerationY)
	}
	if s.Agility <= 0 || s.Agility > 1 {
		return fmt.Errorf("movement: agility %v must be in (0,1]", s.Agility)
	}
	if s.WallJumpMuteFactor < 0 || s.WallJumpMuteFactor > 1 {
		return fmt.Errorf("movement: wall jump mute factor %v must be in [0,1]", s.WallJumpMuteFactor)
	}
	if s.CrawlSpeedFactor <= 0 || s.CrawlSpeedFactor > 1 {
		return fmt.Errorf("movement: crawl speed factor %v must be in (0,1]", s.CrawlSpeedFactor)
	}
	if s.CarrySpeedFactor <= 0 || s.CarrySpeedFactor > 1 {
		return fmt.Errorf("movement: carry speed factor %v must be in (0,1]", s.CarrySpeedFactor)
	}
	for name, frames := range map[string]int{
		"coyote":         s.CoyoteFrames,
		"wall jump mute": s.WallJumpMuteFrames,
		"jump buffer":    s.JumpBufferFrames,
		"crouch":         s.CrouchFrames,
		"land":           s.LandFrames,
		"roll":           s.RollFrames,
		"dive":           s.DiveFrames,
		"pick up":        s.PickUpFrames,
	} {
		if frames < 0 {
			return fmt.Errorf("movement: %s frames %d must not be negative", name, frames)
		}
	}
	return nil
}

// Move applies the shared horizontal motion model for one physics tick.
// axis is the input axis in [-1, 1]; enabled false forces deceleration.
func (m *Machine) Move(axis float64, enabled bool) {
	m.move(axis, enabled, 1)
}

func (m *Machine) move(axis float64, enabled bool, speedScale float64) {
	vx, vy := m.body.Velocity()
	muted := m.wallJumpMuteTimer > 0

	if (math.Abs(axis) != 1 || !enabled) && !muted {
		m.body.SetVelocity(vx*m.settings.DecelerationX, vy*m.settings.DecelerationY)
		m.updateFacing()
		return
	}

	if !m.settings.InheritPlatformMomentum {
		m.body.DetachCarrier()
	}

	adjusted := axis
	if vx != 0 && math.Signbit(axis) != math.Signbit(vx) {
		adjusted = axis * m.settings.Agility
	}
	if muted {
		adjusted *= m.settings.WallJumpMuteFactor
	}

	max := m.settings.MaxSpeed * speedScale
	nvx := common.Clamp(vx+adjusted*max*m.settings.Acceleration, -max, max)
	m.body.SetVelocity(nvx, vy)
	m.updateFacing()
}

func (m *Machine) updateFacing() {
	vx, _ := m.body.Velocity()
	switch {
	case math.Abs(vx) < m.settings.IdleThreshold:
		m.facing = FacingNone
	case vx < 0:
		m.facing = FacingLeft
	default:
		m.facing = FacingRight
	}
}

// Facing returns the current facing derived from the last motion update.
func (m *Machine) Facing() Facing { return m.facing }

// facingSign is the throw/roll direction: falls back to right when idle.
func (m *Machine) facingSign() float64 {
	if m.facing == FacingLeft {
		return -1
	}
	return 1
}
