package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/hiltonjp/journey/common"
	"github.com/hiltonjp/journey/player"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

var (
	platformColor = color.NRGBA{R: 0x8a, G: 0x8a, B: 0x9e, A: 0xff}
	crateColor    = color.NRGBA{R: 0xb0, G: 0x7a, B: 0x3c, A: 0xff}
	playerColor   = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xf0, A: 0xff}
	deadColor     = color.NRGBA{R: 0xc0, G: 0x30, B: 0x30, A: 0xff}
)

func (g *Game) drawObjects(world *ebiten.Image, camX, camY, zoom float64) {
	for _, p := range g.world.Platforms() {
		drawWorldRect(world, p.Rect(), camX, camY, zoom, platformColor)
	}
	for _, c := range g.world.Items() {
		drawWorldRect(world, c.Rect(), camX, camY, zoom, crateColor)
	}

	col := playerColor
	if g.machine.Dead() {
		col = deadColor
	}
	drawWorldRect(world, g.body.Rect(), camX, camY, zoom, col)

	// facing marker on the leading edge
	r := g.body.Rect()
	markW := 3.0
	markX := r.X
	if g.machine.Facing() == player.FacingRight {
		markX = r.X + r.Width - markW
	}
	mark := common.Rect{X: markX, Y: r.Y + r.Height*0.2, Width: markW, Height: r.Height * 0.2}
	drawWorldRect(world, mark, camX, camY, zoom, color.NRGBA{R: 0x30, G: 0x30, B: 0x40, A: 0xff})
}

func drawWorldRect(dst *ebiten.Image, r common.Rect, camX, camY, zoom float64, col color.Color) {
	ebitenutil.DrawRect(dst, (r.X-camX)*zoom, (r.Y-camY)*zoom, r.Width*zoom, r.Height*zoom, col)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	if g.fade > 0 {
		alpha := uint8(common.Clamp(g.fade, 0, 1) * 255)
		ebitenutil.DrawRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.NRGBA{A: alpha})
	}

	if g.debug {
		vx, vy := g.body.Velocity()
		s := g.machine.Sensor()
		line := fmt.Sprintf(
			"FPS %.0f  state %s  anim %s  vel (%.0f, %.0f)  rays T%d B%d L%d R%d",
			ebiten.ActualFPS(), g.machine.Current(), g.anim.Trigger(), vx, vy,
			s.Count(player.SideTop), s.Count(player.SideBottom),
			s.Count(player.SideLeft), s.Count(player.SideRight),
		)
		drawText(screen, line, 8, 8)
	}

	if g.paused {
		drawText(screen, "PAUSED", common.BaseWidth/2-24, common.BaseHeight/2)
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, s, hudFace, op)
}
