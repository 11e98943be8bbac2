package player

import "math"

// Ground states: Idle, Running, Land, Roll. Each HandleInput/OnPhysics is a
// small decision table over input and the latest sensor snapshot.

type idleState struct{ baseState }

func (idleState) HandleInput(m *Machine) {
	if m.jumpRequested() {
		if m.touchingAnyWall() {
			m.ChangeState(StateWallRun)
		} else {
			m.ChangeState(StateJumpStart)
		}
		return
	}
	if m.input.DownHeld() {
		m.ChangeState(StateCrouchStart)
		return
	}
	if m.input.Axis() != 0 {
		m.ChangeState(StateRunning)
	}
}

func (idleState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), false)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if !m.sensor.TouchingFloor() {
		m.ChangeState(StateJumpFall)
	}
}

func (idleState) OnSignal(m *Machine, signal any) {
	item, ok := signal.(Carriable)
	if !ok {
		return
	}
	vx, _ := m.body.Velocity()
	m.pendingPickup = item
	// still slow enough: walk-to-pick-up; otherwise scoop it up mid-stride
	m.pickupMoving = math.Abs(vx) > m.settings.IdleThreshold
	m.ChangeState(StatePickUpItem)
}

type runningState struct{ baseState }

func (runningState) HandleInput(m *Machine) {
	if m.jumpRequested() {
		if m.touchingAnyWall() {
			m.ChangeState(StateWallRun)
		} else {
			m.ChangeState(StateJumpStart)
		}
		return
	}
	if m.input.DownHeld() {
		m.ChangeState(StateDive)
		return
	}
	if m.input.Axis() == 0 {
		m.ChangeState(StateIdle)
	}
}

func (runningState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), true)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if !m.sensor.TouchingFloor() {
		m.ChangeState(StateJumpFall)
	}
}

func (runningState) OnSignal(m *Machine, signal any) {
	item, ok := signal.(Carriable)
	if !ok {
		return
	}
	m.pendingPickup = item
	m.pickupMoving = true
	m.ChangeState(StatePickUpItem)
}

type landState struct{ baseState }

func (landState) Enter(m *Machine) {
	m.phaseTimer = m.settings.LandFrames
	m.doubleJumped = false
}

func (landState) HandleInput(m *Machine) {
	if m.jumpRequested() {
		m.ChangeState(StateJumpStart)
		return
	}
	if m.input.DownHeld() {
		m.ChangeState(StateRoll)
	}
}

func (landState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), false)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if !m.sensor.TouchingFloor() {
		m.ChangeState(StateJumpFall)
		return
	}
	if m.phaseTimer > 0 {
		m.phaseTimer--
		return
	}
	if m.input.Axis() != 0 {
		m.ChangeState(StateRunning)
	} else {
		m.ChangeState(StateIdle)
	}
}

type rollState struct{ baseState }

func (rollState) Enter(m *Machine) {
	m.phaseTimer = m.settings.RollFrames
	_, vy := m.body.Velocity()
	m.body.SetVelocity(m.facingSign()*m.settings.MaxSpeed*m.settings.RollBoost, vy)
}

func (rollState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), false)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if !m.sensor.TouchingFloor() {
		m.ChangeState(StateJumpFall)
		return
	}
	if m.phaseTimer > 0 {
		m.phaseTimer--
		return
	}
	if m.input.DownHeld() {
		m.ChangeState(StateCrouching)
	} else {
		m.ChangeState(StateRunning)
	}
}

// deadState is terminal: reached when a sensor pass touched something
// deadly, never exited. Any carried item is released on the way in.
type deadState struct{ baseState }

func (deadState) Enter(m *Machine) {
	m.dropCarried(0, 0)
	m.body.SetVelocity(0, 0)
}
