package player

import "log"

// Carry family. PickUpItem plays out the scoop (standing or mid-stride,
// chosen by the signal handler), then the Carry states mirror Idle and
// Crouching at a reduced speed cap until the item is thrown or set down.

type pickUpItemState struct{ baseState }

func (pickUpItemState) Enter(m *Machine) {
	m.phaseTimer = m.settings.PickUpFrames
	if m.pendingPickup == nil {
		// stale signal, abandon the pick-up on the next physics tick
		log.Printf("player: pick up entered with no pending item")
		m.phaseTimer = 0
	}
}

func (pickUpItemState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), m.pickupMoving)
	if m.sensor.TouchedDeadly() {
		m.pendingPickup = nil
		m.ChangeState(StateDead)
		return
	}
	if m.phaseTimer > 0 {
		m.phaseTimer--
		return
	}
	if m.pendingPickup == nil {
		m.ChangeState(StateIdle)
		return
	}
	m.carried = m.pendingPickup
	m.pendingPickup = nil
	m.carried.PickUp(m.body)
	m.ChangeState(StateCarryIdle)
}

type carryIdleState struct{ baseState }

func (carryIdleState) HandleInput(m *Machine) {
	if m.input.ActionPressed() {
		m.dropCarried(m.facingSign()*m.settings.ThrowSpeedX, -m.settings.ThrowSpeedY)
		m.ChangeState(StateIdle)
		return
	}
	if m.input.DownHeld() {
		m.ChangeState(StateCarryCrouching)
	}
}

func (carryIdleState) OnPhysics(m *Machine) {
	m.move(m.input.Axis(), true, m.settings.CarrySpeedFactor)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
	}
}

type carryCrouchingState struct{ baseState }

func (carryCrouchingState) HandleInput(m *Machine) {
	if m.input.ActionPressed() {
		// set the item down gently instead of throwing it
		m.dropCarried(0, 0)
		m.ChangeState(StateCrouching)
		return
	}
	if !m.input.DownHeld() {
		m.ChangeState(StateCarryIdle)
	}
}

func (carryCrouchingState) OnPhysics(m *Machine) {
	m.Move(m.input.Axis(), false)
	if m.sensor.TouchedDeadly() {
		m.ChangeState(StateDead)
	}
}
