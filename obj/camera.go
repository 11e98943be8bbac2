package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hiltonjp/journey/common"
)

// Camera renders the world centered on a target point with smoothing, zoom
// and world-bounds clamping.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64
	off     *ebiten.Image

	// smoothing factor in [0, 1]; higher follows faster
	smooth float64
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH int, zoom float64) *Camera {
	return &Camera{
		screenW: screenW,
		screenH: screenH,
		zoom:    zoom,
		smooth:  0.15,
		PosX:    float64(screenW) / 2,
		PosY:    float64(screenH) / 2,
	}
}

// SetWorldBounds sets the world pixel dimensions the view clamps to.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) Zoom() float64 { return c.zoom }

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW := float64(c.screenW) / c.zoom
	viewH := float64(c.screenH) / c.zoom
	return c.PosX - viewW/2, c.PosY - viewH/2
}

// Update moves the camera toward the target world coordinate. Call from the
// fixed-rate update loop for consistent smoothing.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX = common.Lerp(c.PosX, targetX, c.smooth)
		c.PosY = common.Lerp(c.PosY, targetY, c.smooth)
	}
	c.settle()
}

// SnapTo places the camera immediately, e.g. after a level load or respawn.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
	c.settle()
}

// settle snaps the position to the 1/zoom grid so source texels align to
// screen pixels, then clamps the view to the world bounds.
func (c *Camera) settle() {
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	halfW := float64(c.screenW) / c.zoom / 2
	halfH := float64(c.screenH) / c.zoom / 2
	if c.worldW > 0 {
		if c.worldW < halfW*2 {
			c.PosX = c.worldW / 2
		} else {
			c.PosX = common.Clamp(c.PosX, halfW, c.worldW-halfW)
		}
	}
	if c.worldH > 0 {
		if c.worldH < halfH*2 {
			c.PosY = c.worldH / 2
		} else {
			c.PosY = common.Clamp(c.PosY, halfH, c.worldH-halfH)
		}
	}
}

// Render clears the offscreen buffer, lets the caller draw the world into
// it using ViewTopLeft offsets, then blits it to the screen.
func (c *Camera) Render(screen *ebiten.Image, drawWorld func(world *ebiten.Image)) {
	if c.off == nil {
		c.off = ebiten.NewImage(c.screenW, c.screenH)
	}
	c.off.Clear()
	if drawWorld != nil {
		drawWorld(c.off)
	}
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(c.off, op)
}
