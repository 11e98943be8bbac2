package player

// Crouch family: CrouchStart and CrouchEnd are short transitional phases
// timed in fixed ticks; Crouching and Crawling are the held states.

type crouchStartState struct{ baseState }

func (crouchStartState) Enter(m *Machine) {
	m.phaseTimer = m.settings.CrouchFrames
}

func (crouchStartState) OnPhysics(m *Machine) {
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
	m.ChangeState(StateCrouching)
}

type crouchingState struct{ baseState }

func (crouchingState) HandleInput(m *Machine) {
	if !m.input.DownHeld() {
		m.ChangeState(StateCrouchEnd)
		return
	}
	if m.input.Axis() != 0 {
		m.ChangeState(StateCrawling)
	}
}

func (crouchingState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), false)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if !m.sensor.TouchingFloor() {
		m.ChangeState(StateJumpFall)
	}
}

type crouchEndState struct{ baseState }

func (crouchEndState) Enter(m *Machine) {
	m.phaseTimer = m.settings.CrouchFrames
}

func (crouchEndState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), false)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	// no headroom to stand up yet
	if m.sensor.TouchingCeiling() {
		m.ChangeState(StateCrouching)
		return
	}
	if m.phaseTimer > 0 {
		m.phaseTimer--
		return
	}
	m.ChangeState(StateIdle)
}

type crawlingState struct{ baseState }

func (crawlingState) HandleInput(m *Machine) {
	if !m.input.DownHeld() {
		m.ChangeState(StateRunning)
		return
	}
	if m.input.Axis() == 0 {
		m.ChangeState(StateCrouching)
	}
}

func (crawlingState) OnPhysics(m *Machine) {
	m.move(m.input.Axis(), true, m.settings.CrawlSpeedFactor)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
		return
	}
	if !m.sensor.TouchingFloor() {
		m.ChangeState(StateJumpFall)
	}
}
