package player

// Air states. Jump and double jump are split into Start/Rise/Fall so each
// phase carries its own animation trigger; Start applies the impulse and
// hands off on the next physics tick.

type jumpStartState struct{ baseState }

func (jumpStartState) Enter(m *Machine) {
	vx, _ := m.body.Velocity()
	m.body.SetVelocity(vx, -m.settings.JumpSpeed)
	m.coyoteTimer = 0
}

func (jumpStartState) HandleInput(m *Machine) {
	if m.input.JumpPressed() && !m.doubleJumped {
		m.ChangeState(StateDoubleJumpStart)
	}
}

func (jumpStartState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), true)
	_, vy := m.body.Velocity()
	if vy < 0 {
		m.ChangeState(StateJumpRise)
	} else {
		m.ChangeState(StateJumpFall)
	}
}

type jumpRiseState struct{ baseState }

func (jumpRiseState) HandleInput(m *Machine) {
	if !m.input.JumpPressed() {
		return
	}
	if !m.doubleJumped {
		m.ChangeState(StateDoubleJumpStart)
		return
	}
	m.bufferJump()
}

func (jumpRiseState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), true)
	m.nudgeForBonk()
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if m.pushingWall() {
		m.ChangeState(StateWallSlide)
		return
	}
	_, vy := m.body.Velocity()
	if vy >= 0 {
		m.ChangeState(StateJumpFall)
	}
}

type jumpFallState struct{ baseState }

func (jumpFallState) HandleInput(m *Machine) {
	if !m.input.JumpPressed() {
		return
	}
	if m.canCoyoteJump() {
		m.ChangeState(StateJumpStart)
		return
	}
	if !m.doubleJumped {
		m.ChangeState(StateDoubleJumpStart)
		return
	}
	m.bufferJump()
}

func (jumpFallState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), true)
	m.assistForStub()
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if m.sensor.TouchingFloor() {
		m.ChangeState(StateLand)
		return
	}
	if m.pushingWall() {
		m.ChangeState(StateWallSlide)
	}
}

type doubleJumpStartState struct{ baseState }

func (doubleJumpStartState) Enter(m *Machine) {
	m.doubleJumped = true
	vx, _ := m.body.Velocity()
	m.body.SetVelocity(vx, -m.settings.DoubleJumpSpeed)
}

func (doubleJumpStartState) HandleInput(m *Machine) {
	if m.input.JumpPressed() {
		m.bufferJump()
	}
}

func (doubleJumpStartState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), true)
	_, vy := m.body.Velocity()
	if vy < 0 {
		m.ChangeState(StateDoubleJumpRise)
	} else {
		m.ChangeState(StateDoubleJumpFall)
	}
}

type doubleJumpRiseState struct{ baseState }

func (doubleJumpRiseState) HandleInput(m *Machine) {
	if m.input.JumpPressed() {
		m.bufferJump()
	}
}

func (doubleJumpRiseState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), true)
	m.nudgeForBonk()
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if m.pushingWall() {
		m.ChangeState(StateWallSlide)
		return
	}
	_, vy := m.body.Velocity()
	if vy >= 0 {
		m.ChangeState(StateDoubleJumpFall)
	}
}

type doubleJumpFallState struct{ baseState }

func (doubleJumpFallState) HandleInput(m *Machine) {
	if m.input.JumpPressed() {
		m.bufferJump()
	}
}

func (doubleJumpFallState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), true)
	m.assistForStub()
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if m.sensor.TouchingFloor() {
		m.ChangeState(StateLand)
		return
	}
	if m.pushingWall() {
		m.ChangeState(StateWallSlide)
	}
}

// diveState is the down+forward lunge out of a run. The lunge holds for a
// fixed number of ticks before resolving into Land or a fall.
type diveState struct{ baseState }

func (diveState) Enter(m *Machine) {
	m.phaseTimer = m.settings.DiveFrames
	m.body.SetVelocity(m.facingSign()*m.settings.DiveSpeedX, m.settings.DiveSpeedY)
}

func (diveState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), false)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if m.phaseTimer > 0 {
		m.phaseTimer--
		return
	}
	if m.sensor.TouchingFloor() {
		m.ChangeState(StateLand)
	} else {
		m.ChangeState(StateJumpFall)
	}
}
