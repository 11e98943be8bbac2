package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

// testLevel is a 6x5 map with a solid bottom row, one deadly tile at (4,3)
// and a crate at (1,1).
func testLevel(t *testing.T) *Level {
	t.Helper()
	lvl := &Level{
		Width:  6,
		Height: 5,
		Tiles: []int{
			0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 2, 0,
			1, 1, 1, 1, 1, 1,
		},
		SpawnX: 2,
		SpawnY: 2,
		Items:  []ItemEntry{{X: 1, Y: 1}},
	}
	if err := lvl.validate(); err != nil {
		t.Fatalf("test level invalid: %v", err)
	}
	return lvl
}

func newTestWorld(t *testing.T) *CollisionWorld {
	t.Helper()
	cw := NewCollisionWorld(testLevel(t))
	cw.AttachPlayer(28, 56)
	return cw
}

func TestCastRayHitsFloor(t *testing.T) {
	cw := newTestWorld(t)

	// floor top edge is at y=128; cast down from 8px above it
	hit, ok := cw.CastRay(80, 120, 0, 1, 16, CategoryTerrain)
	if !ok {
		t.Fatalf("expected a floor hit")
	}
	if math.Abs(hit.Distance-8) > 0.01 {
		t.Fatalf("distance = %v, want 8", hit.Distance)
	}
	if hit.NormalY >= 0 {
		t.Fatalf("floor normal should point up, got %v", hit.NormalY)
	}
	if hit.Deadly {
		t.Fatalf("plain floor must not be deadly")
	}

	if _, ok := cw.CastRay(80, 60, 0, 1, 16, CategoryTerrain); ok {
		t.Fatalf("short ray far above the floor must miss")
	}
}

func TestCastRayDeadlyAndMask(t *testing.T) {
	cw := newTestWorld(t)

	// deadly tile spans x 128..160, y 96..128
	hit, ok := cw.CastRay(120, 112, 1, 0, 16, CategoryTerrain)
	if !ok {
		t.Fatalf("expected the deadly tile hit")
	}
	if !hit.Deadly {
		t.Fatalf("deadly tile must carry the flag")
	}

	// a mask without the deadly category looks straight through it
	if _, ok := cw.CastRay(120, 112, 1, 0, 16, CategorySolid); ok {
		t.Fatalf("solid-only mask must pass over deadly tiles")
	}
}

func TestCastRaySkipsPlayerShape(t *testing.T) {
	cw := newTestWorld(t)

	// cast through the player's own body from its center
	px, py := cw.player.Position()
	if _, ok := cw.CastRay(px, py, 0, -1, 4, CategoryTerrain); ok {
		t.Fatalf("rays must not hit the caster's own shapes")
	}
}

func TestPlayerBodyRoundTrip(t *testing.T) {
	cw := newTestWorld(t)
	body := cw.player

	x, y := body.Position()
	if x != 80 || y != 80 {
		t.Fatalf("spawned at (%v, %v), want cell center (80, 80)", x, y)
	}
	body.SetVelocity(3, -5)
	vx, vy := body.Velocity()
	if vx != 3 || vy != -5 {
		t.Fatalf("velocity round trip = (%v, %v)", vx, vy)
	}

	body.SetVelocity(99, 99)
	cw.ResetPlayer()
	x, y = body.Position()
	vx, vy = body.Velocity()
	if x != 80 || y != 80 || vx != 0 || vy != 0 {
		t.Fatalf("reset should respawn at rest, got (%v,%v) v=(%v,%v)", x, y, vx, vy)
	}
}

func TestCrateCarryCycle(t *testing.T) {
	cw := newTestWorld(t)
	if len(cw.Items()) != 1 {
		t.Fatalf("expected one crate, got %d", len(cw.Items()))
	}
	crate := cw.Items()[0]

	crate.PickUp(cw.player)
	if !crate.Carried() {
		t.Fatalf("crate should be carried")
	}

	// carried crates follow the owner instead of simulating
	cw.player.body.SetPosition(cp.Vector{X: 100, Y: 100})
	cw.Step(1.0 / 60.0)
	r := crate.Rect()
	cx, _ := r.Center()
	if math.Abs(cx-100) > 0.01 {
		t.Fatalf("carried crate should track the owner, center x = %v", cx)
	}

	cw.player.SetVelocity(2, 0)
	crate.Drop(5, -3)
	if crate.Carried() {
		t.Fatalf("crate should be released")
	}
	vx, vy := crate.body.Velocity().X, crate.body.Velocity().Y
	if vx != 7 || vy != -3 {
		t.Fatalf("release velocity = (%v, %v), want owner plus throw (7, -3)", vx, vy)
	}

	// dropping twice is a no-op
	crate.Drop(50, 50)
	if crate.body.Velocity().X != 7 {
		t.Fatalf("second drop must not re-apply velocity")
	}
}

func TestPlatformPatrolsAndFlips(t *testing.T) {
	lvl := testLevel(t)
	lvl.Platforms = []PlatformEntry{{X: 32, Y: 64, ToX: 96, ToY: 64, Width: 2, Speed: 64}}
	cw := NewCollisionWorld(lvl)
	p := cw.platforms[0]

	for i := 0; i < 30; i++ {
		cw.Step(1.0 / 60.0)
	}
	if x := p.body.Position().X; x <= 32 {
		t.Fatalf("platform should move toward its target, x = %v", x)
	}

	// one full second covers the 64px leg; the patrol must have flipped
	for i := 0; i < 60; i++ {
		cw.Step(1.0 / 60.0)
	}
	if p.toB {
		t.Fatalf("platform should be heading back after reaching the far end")
	}
}
