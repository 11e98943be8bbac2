package obj

import (
	"math"

	"github.com/hiltonjp/journey/common"
	"github.com/jakecoffman/cp"
)

// Platform is a kinematic body patrolling between two points at constant
// speed. The player rides it through the carrier contact in the collision
// world.
type Platform struct {
	body  *cp.Body
	shape *cp.Shape

	ax, ay float64
	bx, by float64
	speed  float64
	toB    bool
}

const platformHeight = 8.0

func newPlatform(space *cp.Space, entry PlatformEntry) *Platform {
	p := &Platform{
		ax:    entry.X,
		ay:    entry.Y,
		bx:    entry.ToX,
		by:    entry.ToY,
		speed: entry.Speed,
		toB:   true,
	}

	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: entry.X, Y: entry.Y})
	shape := cp.NewBox(body, float64(entry.Width*common.TileSize), platformHeight, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypePlatform)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryPlatform, cp.ALL_CATEGORIES))
	shape.UserData = p

	space.AddBody(body)
	space.AddShape(shape)

	p.body = body
	p.shape = shape
	return p
}

// update steers the kinematic body toward the current patrol target and
// flips direction on arrival.
func (p *Platform) update(dt float64) {
	tx, ty := p.ax, p.ay
	if p.toB {
		tx, ty = p.bx, p.by
	}
	pos := p.body.Position()
	dx := tx - pos.X
	dy := ty - pos.Y
	dist := math.Hypot(dx, dy)
	if dist <= p.speed*dt {
		p.body.SetPosition(cp.Vector{X: tx, Y: ty})
		p.body.SetVelocity(0, 0)
		p.toB = !p.toB
		return
	}
	p.body.SetVelocity(dx/dist*p.speed, dy/dist*p.speed)
}

// Rect returns the platform's bounding rect in world pixels.
func (p *Platform) Rect() common.Rect {
	pos := p.body.Position()
	w := p.shape.BB().R - p.shape.BB().L
	return common.Rect{
		X:      pos.X - w/2,
		Y:      pos.Y - platformHeight/2,
		Width:  w,
		Height: platformHeight,
	}
}
