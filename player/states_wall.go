package player

// Wall states. WallRun is entered from the ground with jump held against a
// wall and carries the body upward; WallSlide caps the fall while hugging a
// wall. Wall jumps from either state go straight to JumpRise: the push-off
// is the jump impulse, re-running JumpStart's impulse would double it.

type wallRunState struct {
	baseState
	side Side
}

func (w *wallRunState) Enter(m *Machine) {
	w.side = SideLeft
	if m.sensor.TouchingRightWall() {
		w.side = SideRight
	}
	vx, _ := m.body.Velocity()
	m.body.SetVelocity(vx, -m.settings.WallRunSpeed)
	m.doubleJumped = false
}

func (w *wallRunState) HandleInput(m *Machine) {
	if m.input.JumpPressed() {
		m.wallJump()
		m.ChangeState(StateJumpRise)
	}
}

func (w *wallRunState) OnPhysics(m *Machine) {
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	touching := m.sensor.TouchingLeftWall()
	if w.side == SideRight {
		touching = m.sensor.TouchingRightWall()
	}
	if !touching {
		_, vy := m.body.Velocity()
		if vy < 0 {
			m.ChangeState(StateJumpRise)
		} else {
			m.ChangeState(StateJumpFall)
		}
		return
	}
	vx, vy := m.body.Velocity()
	if m.input.UpHeld() {
		// climbing: holding up keeps the run going against gravity
		m.body.SetVelocity(vx, -m.settings.WallRunSpeed)
		return
	}
	if vy >= 0 {
		m.ChangeState(StateWallSlide)
	}
}

type wallSlideState struct{ baseState }

func (wallSlideState) Enter(m *Machine) {
	m.doubleJumped = false
}

func (wallSlideState) HandleInput(m *Machine) {
	if m.input.JumpPressed() {
		m.wallJump()
		m.ChangeState(StateJumpRise)
	}
}

func (wallSlideState) OnPhysics(m *Machine) {
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	vx, vy := m.body.Velocity()
	if vy > m.settings.WallSlideSpeed {
		m.body.SetVelocity(vx, m.settings.WallSlideSpeed)
	}
	if m.sensor.TouchingFloor() {
		m.ChangeState(StateLand)
		return
	}
	if !m.touchingAnyWall() {
		m.ChangeState(StateJumpFall)
	}
}
