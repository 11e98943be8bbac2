package obj

import (
	"github.com/hiltonjp/journey/common"
	"github.com/hiltonjp/journey/player"
	"github.com/jakecoffman/cp"
)

// Filter categories for shapes in the space. Sensor rays select what they
// see through these bits.
const (
	CategorySolid uint = 1 << iota
	CategoryDeadly
	CategoryPlatform
	CategoryItem
	CategoryPlayer

	// CategoryTerrain is what the player's collision sensor samples.
	CategoryTerrain = CategorySolid | CategoryDeadly | CategoryPlatform
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlatform
)

// playerGroup keeps the player's own shapes out of its sensor rays.
const playerGroup uint = 1

// deadlyMarker tags shapes that kill on sensor contact.
type deadlyMarker struct{}

// CollisionWorld owns the chipmunk space built from a level: merged static
// boxes for solid tiles, marked boxes for deadly tiles, kinematic patrol
// platforms and the player body. It is also the sensor's ray provider.
type CollisionWorld struct {
	level *Level
	space *cp.Space

	player    *PlayerBody
	platforms []*Platform
	items     []*Crate

	handlersReady bool
}

func NewCollisionWorld(level *Level) *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	cw := &CollisionWorld{level: level, space: space}
	cw.buildStaticShapes()
	cw.buildObjects()
	return cw
}

func (cw *CollisionWorld) buildStaticShapes() {
	lvl := cw.level
	if lvl == nil {
		return
	}

	// Merge contiguous solid tiles into larger rectangles so the space holds
	// fewer static boxes instead of one box per tile.
	processed := make([]bool, lvl.Width*lvl.Height)
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			idx := y*lvl.Width + x
			if processed[idx] {
				continue
			}
			tileVal := lvl.Tiles[idx]
			if tileVal == TileEmpty {
				processed[idx] = true
				continue
			}

			x0 := float64(x * common.TileSize)
			y0 := float64(y * common.TileSize)

			// Deadly tiles stay individual boxes carrying the marker.
			if tileVal == TileDeadly {
				size := float64(common.TileSize)
				bb := cp.BB{L: x0, B: y0, R: x0 + size, T: y0 + size}
				shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
				shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryDeadly, cp.ALL_CATEGORIES))
				shape.UserData = deadlyMarker{}
				cw.space.AddShape(shape)
				processed[idx] = true
				continue
			}

			// Greedily expand a rectangle over contiguous solid tiles, width
			// first then height.
			w := 1
			for x+w < lvl.Width {
				idx2 := y*lvl.Width + (x + w)
				if processed[idx2] || lvl.Tiles[idx2] != TileSolid {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < lvl.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*lvl.Width + xi
					if processed[idx2] || lvl.Tiles[idx2] != TileSolid {
						break heightLoop
					}
				}
				h++
			}

			bb := cp.BB{
				L: x0,
				B: y0,
				R: x0 + float64(w*common.TileSize),
				T: y0 + float64(h*common.TileSize),
			}
			shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
			shape.SetFriction(0.8)
			shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategorySolid, cp.ALL_CATEGORIES))
			cw.space.AddShape(shape)

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*lvl.Width+xx] = true
				}
			}
		}
	}

	// world bounds matching the level size
	worldW, worldH := lvl.PixelSize()
	segments := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: worldW, Y: 0}},
		{{X: 0, Y: worldH}, {X: worldW, Y: worldH}},
		{{X: 0, Y: 0}, {X: 0, Y: worldH}},
		{{X: worldW, Y: 0}, {X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(cw.space.StaticBody, seg[0], seg[1], 1.0)
		shape.SetFriction(0.8)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategorySolid, cp.ALL_CATEGORIES))
		cw.space.AddShape(shape)
	}
}

func (cw *CollisionWorld) buildObjects() {
	for _, entry := range cw.level.Platforms {
		cw.platforms = append(cw.platforms, newPlatform(cw.space, entry))
	}
	half := float64(common.TileSize) / 2
	for _, entry := range cw.level.Items {
		x := float64(entry.X*common.TileSize) + half
		y := float64(entry.Y*common.TileSize) + half
		cw.items = append(cw.items, newCrate(cw, x, y))
	}
}

// AttachPlayer adds the player body to the space at the spawn cell and wires
// the contact handlers. Width and height are the body's extents in pixels.
func (cw *CollisionWorld) AttachPlayer(width, height float64) *PlayerBody {
	if cw.player != nil {
		return cw.player
	}

	x, y := cw.level.GetSpawnPosition()
	body := cp.NewBody(1.0, cp.INFINITY)
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypePlayer)
	shape.SetFilter(cp.NewShapeFilter(playerGroup, CategoryPlayer, cp.ALL_CATEGORIES))

	cw.space.AddBody(body)
	cw.space.AddShape(shape)

	cw.player = &PlayerBody{body: body, shape: shape, halfW: width / 2, halfH: height / 2}
	cw.setupHandlers()
	return cw.player
}

func (cw *CollisionWorld) setupHandlers() {
	if cw.handlersReady {
		return
	}

	// Standing contact with a platform attaches the player to it; losing the
	// contact detaches. The machine also detaches on self-driven movement.
	handler := cw.space.NewCollisionHandler(collisionTypePlayer, collisionTypePlatform)
	handler.UserData = cw
	handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		world, ok := userData.(*CollisionWorld)
		if !ok || world.player == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		platformShape := shapeB
		n := arb.Normal()
		if shapeB == world.player.shape {
			platformShape = shapeA
			n = n.Neg()
		}
		// only a contact from above carries
		if n.Y > 0.5 {
			if p, ok := platformShape.UserData.(*Platform); ok {
				world.player.carrier = p
			}
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		world, ok := userData.(*CollisionWorld)
		if !ok || world.player == nil {
			return
		}
		shapeA, shapeB := arb.Shapes()
		for _, s := range []*cp.Shape{shapeA, shapeB} {
			if p, ok := s.UserData.(*Platform); ok && world.player.carrier == p {
				world.player.carrier = nil
			}
		}
	}

	cw.handlersReady = true
}

// Step advances the physics world by dt seconds: platform patrols, the
// space itself, carried items and the platform ride.
func (cw *CollisionWorld) Step(dt float64) {
	for _, p := range cw.platforms {
		p.update(dt)
	}
	cw.space.Step(dt)

	if cw.player != nil && cw.player.carrier != nil {
		v := cw.player.carrier.body.Velocity()
		pos := cw.player.body.Position()
		cw.player.body.SetPosition(cp.Vector{X: pos.X + v.X*dt, Y: pos.Y + v.Y*dt})
	}
	for _, c := range cw.items {
		c.update()
	}
}

// CastRay answers one sensor ray with the closest matching shape. The
// player's own shapes are filtered out by group.
func (cw *CollisionWorld) CastRay(originX, originY, dirX, dirY, maxDist float64, mask uint) (player.RayHit, bool) {
	start := cp.Vector{X: originX, Y: originY}
	end := cp.Vector{X: originX + dirX*maxDist, Y: originY + dirY*maxDist}
	info := cw.space.SegmentQueryFirst(start, end, 0, cp.NewShapeFilter(playerGroup, cp.ALL_CATEGORIES, mask))
	if info.Shape == nil {
		return player.RayHit{}, false
	}
	_, deadly := info.Shape.UserData.(deadlyMarker)
	return player.RayHit{
		Distance: info.Alpha * maxDist,
		NormalX:  info.Normal.X,
		NormalY:  info.Normal.Y,
		Deadly:   deadly,
	}, true
}

// Items returns the carriable crates placed in the level.
func (cw *CollisionWorld) Items() []*Crate { return cw.items }

// Platforms returns the patrolling platforms placed in the level.
func (cw *CollisionWorld) Platforms() []*Platform { return cw.platforms }

// ResetPlayer teleports the player back to the spawn cell with zero
// velocity. Used after death.
func (cw *CollisionWorld) ResetPlayer() {
	if cw.player == nil {
		return
	}
	x, y := cw.level.GetSpawnPosition()
	cw.player.body.SetPosition(cp.Vector{X: x, Y: y})
	cw.player.body.SetVelocity(0, 0)
	cw.player.carrier = nil
}

// PlayerBody adapts the chipmunk body to the state machine's motion
// contract.
type PlayerBody struct {
	body    *cp.Body
	shape   *cp.Shape
	halfW   float64
	halfH   float64
	carrier *Platform
}

func (b *PlayerBody) Velocity() (float64, float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

func (b *PlayerBody) SetVelocity(vx, vy float64) {
	b.body.SetVelocity(vx, vy)
}

func (b *PlayerBody) Position() (float64, float64) {
	pos := b.body.Position()
	return pos.X, pos.Y
}

func (b *PlayerBody) DetachCarrier() {
	b.carrier = nil
}

// HalfExtents returns the body's half width and height in pixels.
func (b *PlayerBody) HalfExtents() (float64, float64) {
	return b.halfW, b.halfH
}

// Rect returns the body's bounding rect in world pixels.
func (b *PlayerBody) Rect() common.Rect {
	pos := b.body.Position()
	return common.Rect{
		X:      pos.X - b.halfW,
		Y:      pos.Y - b.halfH,
		Width:  b.halfW * 2,
		Height: b.halfH * 2,
	}
}
