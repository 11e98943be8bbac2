package obj

import (
	"github.com/hiltonjp/journey/common"
	"github.com/hiltonjp/journey/player"
	"github.com/jakecoffman/cp"
)

const crateSize = float64(common.TileSize) * 0.75

// Crate is a carriable box. It rests in the world as a dynamic body; while
// carried it leaves the space and follows its owner, and on drop it re-joins
// the space with the owner's momentum plus the release velocity.
type Crate struct {
	world *CollisionWorld
	body  *cp.Body
	shape *cp.Shape

	owner   player.MotionBody
	inSpace bool
}

func newCrate(world *CollisionWorld, x, y float64) *Crate {
	mass := 0.5
	body := cp.NewBody(mass, cp.MomentForBox(mass, crateSize, crateSize))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewBox(body, crateSize, crateSize, 0)
	shape.SetFriction(0.9)
	// crates never block the player, only terrain
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryItem, CategoryTerrain|CategoryItem))

	world.space.AddBody(body)
	world.space.AddShape(shape)

	c := &Crate{world: world, body: body, shape: shape, inSpace: true}
	shape.UserData = c
	return c
}

// PickUp detaches the crate from the space and parents it to the owner.
func (c *Crate) PickUp(owner player.MotionBody) {
	if c.owner != nil {
		return
	}
	c.owner = owner
	if c.inSpace {
		c.world.space.RemoveShape(c.shape)
		c.world.space.RemoveBody(c.body)
		c.inSpace = false
	}
}

// Drop releases the crate at its current position with the owner's momentum
// plus the given release velocity.
func (c *Crate) Drop(vx, vy float64) {
	if c.owner == nil {
		return
	}
	ovx, ovy := c.owner.Velocity()
	c.owner = nil
	if !c.inSpace {
		c.world.space.AddBody(c.body)
		c.world.space.AddShape(c.shape)
		c.inSpace = true
	}
	c.body.SetVelocity(ovx+vx, ovy+vy)
}

// update keeps a carried crate riding above its owner. Runs once per
// physics step.
func (c *Crate) update() {
	if c.owner == nil {
		return
	}
	x, y := c.owner.Position()
	c.body.SetPosition(cp.Vector{X: x, Y: y - crateSize})
	c.body.SetVelocity(0, 0)
}

// Carried reports whether the crate is currently held.
func (c *Crate) Carried() bool { return c.owner != nil }

// Rect returns the crate's bounding rect in world pixels.
func (c *Crate) Rect() common.Rect {
	pos := c.body.Position()
	return common.Rect{
		X:      pos.X - crateSize/2,
		Y:      pos.Y - crateSize/2,
		Width:  crateSize,
		Height: crateSize,
	}
}
