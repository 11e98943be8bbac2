package player

import (
	"fmt"
	"log"
)

// StateID keys the closed set of player states.
type StateID int

const (
	StateIdle StateID = iota
	StateRunning
	StateCrouchStart
	StateCrouching
	StateCrouchEnd
	StateCrawling
	StateDive
	StateJumpStart
	StateJumpRise
	StateJumpFall
	StateDoubleJumpStart
	StateDoubleJumpRise
	StateDoubleJumpFall
	StateWallRun
	StateWallSlide
	StateLand
	StateRoll
	StatePickUpItem
	StateCarryIdle
	StateCarryCrouching
	StateDead

	stateIDCount
)

var stateIDNames = [stateIDCount]string{
	StateIdle:            "idle",
	StateRunning:         "running",
	StateCrouchStart:     "crouch_start",
	StateCrouching:       "crouching",
	StateCrouchEnd:       "crouch_end",
	StateCrawling:        "crawling",
	StateDive:            "dive",
	StateJumpStart:       "jump_start",
	StateJumpRise:        "jump_rise",
	StateJumpFall:        "jump_fall",
	StateDoubleJumpStart: "double_jump_start",
	StateDoubleJumpRise:  "double_jump_rise",
	StateDoubleJumpFall:  "double_jump_fall",
	StateWallRun:         "wall_run",
	StateWallSlide:       "wall_slide",
	StateLand:            "land",
	StateRoll:            "roll",
	StatePickUpItem:      "pick_up_item",
	StateCarryIdle:       "carry_idle",
	StateCarryCrouching:  "carry_crouching",
	StateDead:            "dead",
}

func (id StateID) String() string {
	if id < 0 || id >= stateIDCount {
		return fmt.Sprintf("state(%d)", int(id))
	}
	return stateIDNames[id]
}

// ParseStateID resolves a state name from config files.
func ParseStateID(name string) (StateID, bool) {
	for id, n := range stateIDNames {
		if n == name {
			return StateID(id), true
		}
	}
	return 0, false
}

// DefaultTriggers returns the animation trigger pushed for each state. The
// map is a fresh copy callers may override before machine construction.
func DefaultTriggers() map[StateID]string {
	t := make(map[StateID]string, stateIDCount)
	for id := StateID(0); id < stateIDCount; id++ {
		t[id] = stateIDNames[id]
	}
	return t
}

// State is the behavior contract every concrete player state implements.
// States are created lazily on first transition and pooled by ID for the
// machine's lifetime.
type State interface {
	// Added runs once per machine lifetime when the state is first created.
	Added(m *Machine)
	Enter(m *Machine)
	Exit(m *Machine)
	// HandleInput runs once per frame and evaluates input-driven transitions.
	HandleInput(m *Machine)
	// OnPhysics runs once per physics tick, after the sensor snapshot for
	// that tick has been refreshed.
	OnPhysics(m *Machine)
	// OnSignal delivers an external event (e.g. an item placed under the
	// character). Signals are opaque beyond capability markers.
	OnSignal(m *Machine, signal any)
}

// baseState provides no-op hooks for states that do not need them.
type baseState struct{}

func (baseState) Added(*Machine)         {}
func (baseState) Enter(*Machine)         {}
func (baseState) Exit(*Machine)          {}
func (baseState) HandleInput(*Machine)   {}
func (baseState) OnPhysics(*Machine)     {}
func (baseState) OnSignal(*Machine, any) {}

// Machine drives the player FSM. All collaborators are injected; the
// machine never owns the loop, it is ticked by an external scheduler in the
// order: Tick (frame) then, per physics step, Sense followed by FixedTick.
type Machine struct {
	sensor   *CollisionSensor
	input    Inputs
	anim     Animator
	body     MotionBody
	settings MovementSettings
	triggers map[StateID]string

	states  [stateIDCount]State
	added   [stateIDCount]int
	current StateID
	cur     State
	// transitioning guards against a second transition triggered while one
	// is mid-flight (e.g. a racing animation callback); such attempts are
	// ignored, never stacked.
	transitioning bool

	facing       Facing
	doubleJumped bool
	prevJumpHeld bool

	coyoteTimer       int
	wallJumpMuteTimer int
	jumpBufferTimer   int
	// phaseTimer counts down fixed ticks inside Start/End/Land/Roll/PickUp
	// states, replacing animation-completion callbacks.
	phaseTimer int

	pendingPickup Carriable
	pickupMoving  bool
	carried       Carriable
}

// NewMachine validates configuration and starts the machine in Idle.
// Configuration errors are fatal here, never deferred to tick time.
func NewMachine(sensor *CollisionSensor, input Inputs, anim Animator, body MotionBody, settings MovementSettings, triggers map[StateID]string) (*Machine, error) {
	if sensor == nil || input == nil || anim == nil || body == nil {
		return nil, fmt.Errorf("player: machine requires sensor, input, animator and body")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if triggers == nil {
		triggers = DefaultTriggers()
	}
	for id := StateID(0); id < stateIDCount; id++ {
		if triggers[id] == "" {
			return nil, fmt.Errorf("player: animation trigger for state %q unset", id)
		}
	}

	m := &Machine{
		sensor:   sensor,
		input:    input,
		anim:     anim,
		body:     body,
		settings: settings,
		triggers: triggers,
		current:  -1,
	}
	m.cur = m.resolve(StateIdle)
	m.current = StateIdle
	m.anim.SetTrigger(m.triggers[StateIdle])
	m.cur.Enter(m)
	return m, nil
}

func (m *Machine) resolve(id StateID) State {
	if m.states[id] == nil {
		m.states[id] = newState(id)
		m.added[id]++
		m.states[id].Added(m)
	}
	return m.states[id]
}

func newState(id StateID) State {
	switch id {
	case StateIdle:
		return &idleState{}
	case StateRunning:
		return &runningState{}
	case StateCrouchStart:
		return &crouchStartState{}
	case StateCrouching:
		return &crouchingState{}
	case StateCrouchEnd:
		return &crouchEndState{}
	case StateCrawling:
		return &crawlingState{}
	case StateDive:
		return &diveState{}
	case StateJumpStart:
		return &jumpStartState{}
	case StateJumpRise:
		return &jumpRiseState{}
	case StateJumpFall:
		return &jumpFallState{}
	case StateDoubleJumpStart:
		return &doubleJumpStartState{}
	case StateDoubleJumpRise:
		return &doubleJumpRiseState{}
	case StateDoubleJumpFall:
		return &doubleJumpFallState{}
	case StateWallRun:
		return &wallRunState{}
	case StateWallSlide:
		return &wallSlideState{}
	case StateLand:
		return &landState{}
	case StateRoll:
		return &rollState{}
	case StatePickUpItem:
		return &pickUpItemState{}
	case StateCarryIdle:
		return &carryIdleState{}
	case StateCarryCrouching:
		return &carryCrouchingState{}
	case StateDead:
		return &deadState{}
	}
	return nil
}

// Current returns the active state's ID.
func (m *Machine) Current() StateID { return m.current }

// Dead reports whether the machine reached the terminal dead state.
func (m *Machine) Dead() bool { return m.current == StateDead }

// Carrying reports whether an item is being carried.
func (m *Machine) Carrying() bool { return m.carried != nil }

// Sensor exposes the snapshot queries to the shell (debug overlays).
func (m *Machine) Sensor() *CollisionSensor { return m.sensor }

// ChangeState runs the transition protocol: old.Exit, swap the current
// pointer and push the new animation trigger, then new.Enter. A transition
// requested while another is in flight, or into the state already active,
// is rejected as a no-op.
func (m *Machine) ChangeState(next StateID) {
	if next < 0 || next >= stateIDCount {
		log.Printf("player: transition to unknown state %d ignored", int(next))
		return
	}
	if m.transitioning {
		log.Printf("player: transition to %q ignored, another transition in flight", next)
		return
	}
	if next == m.current {
		log.Printf("player: transition to %q ignored, already current", next)
		return
	}

	m.transitioning = true
	if m.cur != nil {
		m.cur.Exit(m)
	}
	m.cur = m.resolve(next)
	m.current = next
	m.anim.SetTrigger(m.triggers[next])
	m.cur.Enter(m)
	m.transitioning = false
}

// Tick runs once per frame, before the physics steps: frame timers, the
// jump cut, then the active state's input handling.
func (m *Machine) Tick() {
	if m.jumpBufferTimer > 0 {
		m.jumpBufferTimer--
	}
	if m.prevJumpHeld && !m.input.JumpHeld() {
		m.applyJumpCut()
	}
	m.prevJumpHeld = m.input.JumpHeld()

	m.cur.HandleInput(m)
}

// FixedTick runs once per physics tick, after the sensor snapshot has been
// refreshed for that tick.
func (m *Machine) FixedTick() {
	if m.sensor.TouchingFloor() {
		m.coyoteTimer = m.settings.CoyoteFrames
	} else if m.coyoteTimer > 0 {
		m.coyoteTimer--
	}
	if m.wallJumpMuteTimer > 0 {
		m.wallJumpMuteTimer--
	}

	m.cur.OnPhysics(m)
}

// Signal injects an external event into the active state.
func (m *Machine) Signal(signal any) {
	m.cur.OnSignal(m, signal)
}

// ApplySettings swaps the tuning block at runtime (hot reload). Invalid
// settings are rejected with a warning, never fatal mid-game.
func (m *Machine) ApplySettings(settings MovementSettings) {
	if err := settings.Validate(); err != nil {
		log.Printf("player: rejected settings reload: %v", err)
		return
	}
	m.settings = settings
}

// applyJumpCut caps upward speed when jump is released early, for variable
// jump height.
func (m *Machine) applyJumpCut() {
	switch m.current {
	case StateJumpStart, StateJumpRise, StateDoubleJumpStart, StateDoubleJumpRise:
	default:
		return
	}
	vx, vy := m.body.Velocity()
	if vy < -m.settings.JumpCutSpeed {
		m.body.SetVelocity(vx, -m.settings.JumpCutSpeed)
	}
}

// jumpRequested is true on a fresh press, or when a buffered press can be
// honored because the character is back on the ground. A buffered press is
// consumed on use so one press cannot fire a second jump within the window.
func (m *Machine) jumpRequested() bool {
	if m.input.JumpPressed() {
		return true
	}
	if m.jumpBufferTimer > 0 && m.sensor.TouchingFloor() {
		m.jumpBufferTimer = 0
		return true
	}
	return false
}

func (m *Machine) bufferJump() {
	m.jumpBufferTimer = m.settings.JumpBufferFrames
}

// canCoyoteJump is true while the grace window after leaving the ground is
// still open.
func (m *Machine) canCoyoteJump() bool {
	return m.sensor.TouchingFloor() || m.coyoteTimer > 0
}

func (m *Machine) touchingAnyWall() bool {
	return m.sensor.TouchingLeftWall() || m.sensor.TouchingRightWall()
}

// pushingWall is true while the axis is held toward a touched wall.
func (m *Machine) pushingWall() bool {
	axis := m.input.Axis()
	return (m.sensor.TouchingLeftWall() && axis < 0) ||
		(m.sensor.TouchingRightWall() && axis > 0)
}

// wallJump pushes the body away from the touched wall, arms the input mute
// window and jumps.
func (m *Machine) wallJump() {
	push := m.settings.WallJumpPush
	if m.sensor.TouchingRightWall() {
		push = -push
	}
	m.body.SetVelocity(push, -m.settings.JumpSpeed)
	m.wallJumpMuteTimer = m.settings.WallJumpMuteFrames
}

// nudgeForBonk shifts the body sideways when only the extreme corner of the
// head clips an obstacle, instead of letting the ceiling kill the jump.
func (m *Machine) nudgeForBonk() {
	vx, vy := m.body.Velocity()
	if m.sensor.BonkingLeft() {
		m.body.SetVelocity(vx+m.settings.BonkNudge, vy)
	} else if m.sensor.BonkingRight() {
		m.body.SetVelocity(vx-m.settings.BonkNudge, vy)
	}
}

// assistForStub lifts a toe caught on a ledge lip while moving toward it.
func (m *Machine) assistForStub() {
	axis := m.input.Axis()
	if (m.sensor.StubbingLeft() && axis < 0) || (m.sensor.StubbingRight() && axis > 0) {
		vx, _ := m.body.Velocity()
		m.body.SetVelocity(vx, -m.settings.LedgeAssist)
	}
}

func (m *Machine) dropCarried(vx, vy float64) {
	if m.carried == nil {
		return
	}
	m.carried.Drop(vx, vy)
	m.carried = nil
}
