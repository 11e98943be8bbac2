package player

// RayHit describes the closest collider struck by a sensor ray.
type RayHit struct {
	Distance float64
	NormalX  float64
	NormalY  float64
	// Deadly is true when the struck collider carries the deadly marker
	// (spikes, crush hazards).
	Deadly bool
}

// Raycaster is the physics query provider the sensor reads from.
// Implementations answer queries against world geometry and must not mutate
// any body while doing so.
type Raycaster interface {
	// CastRay casts from (originX, originY) along the unit direction
	// (dirX, dirY) up to maxDist, considering only shapes matching mask.
	CastRay(originX, originY, dirX, dirY, maxDist float64, mask uint) (RayHit, bool)
}

// Animator receives the active state's animation trigger on every
// transition. It is the only coupling between the state machine and the
// animation driver.
type Animator interface {
	SetTrigger(name string)
}

// Inputs is the logical button view the states read. Values are expected to
// be stable for the duration of a frame.
type Inputs interface {
	// Axis is the horizontal input axis in [-1, 1].
	Axis() float64
	JumpPressed() bool
	JumpHeld() bool
	UpHeld() bool
	DownHeld() bool
	ActionPressed() bool
}

// MotionBody is the physical body the states steer. Velocity is in pixels
// per second, Y down.
type MotionBody interface {
	Velocity() (x, y float64)
	SetVelocity(x, y float64)
	Position() (x, y float64)
	// DetachCarrier releases the body from any platform it is being carried
	// by, so self-driven acceleration does not inherit platform momentum.
	DetachCarrier()
}

// Carriable marks signal objects the player can pick up and carry around.
type Carriable interface {
	PickUp(owner MotionBody)
	Drop(vx, vy float64)
}
