package obj

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input polls keyboard and gamepad once per frame into the logical button
// view the state machine reads.
type Input struct {
	axis          float64
	jumpPressed   bool
	jumpHeld      bool
	upHeld        bool
	downHeld      bool
	actionPressed bool
	frozen        bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the devices. Call once per frame before ticking the machine.
func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var axis float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		axis -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		axis += 1
	}

	i.upHeld = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp)
	i.downHeld = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown)
	// JumpPressed must be a true single-frame signal to avoid double-presses
	// turning into immediate double jumps.
	i.jumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	i.jumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace)
	i.actionPressed = inpututil.IsKeyJustPressed(ebiten.KeyE)

	// Gamepad: left stick or dpad for the axis, A for jump, X for action.
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			axis = -1
		} else if leftX > 0.3 {
			axis = 1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			axis = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			axis = 1
		}

		i.upHeld = i.upHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftTop)
		i.downHeld = i.downHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftBottom)
		i.jumpPressed = i.jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		i.jumpHeld = i.jumpHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		i.actionPressed = i.actionPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
	}

	i.axis = axis

	if i.frozen {
		i.axis = 0
		i.jumpPressed = false
		i.jumpHeld = false
		i.upHeld = false
		i.downHeld = false
		i.actionPressed = false
	}
}

// SetFrozen suppresses all logical buttons while cutscene sequences run.
// The devices are still polled so F12 keeps working.
func (i *Input) SetFrozen(frozen bool) { i.frozen = frozen }

func (i *Input) Axis() float64       { return i.axis }
func (i *Input) JumpPressed() bool   { return i.jumpPressed }
func (i *Input) JumpHeld() bool      { return i.jumpHeld }
func (i *Input) UpHeld() bool        { return i.upHeld }
func (i *Input) DownHeld() bool      { return i.downHeld }
func (i *Input) ActionPressed() bool { return i.actionPressed }
