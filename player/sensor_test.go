package player

import (
	"math"
	"testing"
)

// aabb is a static test collider.
type aabb struct {
	minX, minY, maxX, maxY float64
	deadly                 bool
}

// sceneCaster answers sensor rays against a list of boxes using the slab
// method, closest hit wins. Purely deterministic.
type sceneCaster struct {
	boxes []aabb
}

func (c *sceneCaster) CastRay(ox, oy, dx, dy, maxDist float64, _ uint) (RayHit, bool) {
	best := math.Inf(1)
	var hit RayHit
	found := false
	for _, b := range c.boxes {
		t, ok := segmentBoxHit(ox, oy, dx*maxDist, dy*maxDist, b)
		if ok && t < best {
			best = t
			hit = RayHit{Distance: t * maxDist, NormalX: -dx, NormalY: -dy, Deadly: b.deadly}
			found = true
		}
	}
	return hit, found
}

func segmentBoxHit(x0, y0, dx, dy float64, b aabb) (float64, bool) {
	tmin, tmax := 0.0, 1.0
	if dx == 0 {
		if x0 < b.minX || x0 > b.maxX {
			return 0, false
		}
	} else {
		t1 := (b.minX - x0) / dx
		t2 := (b.maxX - x0) / dx
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}
	if dy == 0 {
		if y0 < b.minY || y0 > b.maxY {
			return 0, false
		}
	} else {
		t1 := (b.minY - y0) / dy
		t2 := (b.maxY - y0) / dy
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}
	if tmin > tmax {
		return 0, false
	}
	return tmin, true
}

// Test body: 32x64, centered at origin. Sides sit at x=±16, y=±32; rays are
// 4px long.
const (
	testHalfW = 16.0
	testHalfH = 32.0
	testRay   = 4.0
)

func newTestSensor(t *testing.T, granularity int) *CollisionSensor {
	t.Helper()
	s, err := NewCollisionSensor(SensorConfig{
		Granularity:         granularity,
		VerticalRayLength:   testRay,
		HorizontalRayLength: testRay,
		Mask:                1,
	}, testHalfW, testHalfH)
	if err != nil {
		t.Fatalf("NewCollisionSensor: %v", err)
	}
	return s
}

// Scene boxes sit half a pixel off the body edge so a ray only fires for
// the side actually facing them.
var (
	floorBox     = aabb{minX: -100, minY: 32.5, maxX: 100, maxY: 40}
	ceilingBox   = aabb{minX: -100, minY: -40, maxX: 100, maxY: -32.5}
	leftWallBox  = aabb{minX: -24, minY: -40, maxX: -16.5, maxY: 40}
	rightWallBox = aabb{minX: 16.5, minY: -40, maxX: 24, maxY: 40}
)

func TestSensorOffsetLayout(t *testing.T) {
	for _, n := range []int{2, 3, 5, 9} {
		s := newTestSensor(t, n)
		checks := []struct {
			side     Side
			tangent  func(offset) float64 // axis the samples are ordered along
			fixed    func(offset) float64
			fixedVal float64
			lo, hi   float64
		}{
			{SideTop, func(o offset) float64 { return o.x }, func(o offset) float64 { return o.y }, -testHalfH, -testHalfW, testHalfW},
			{SideBottom, func(o offset) float64 { return o.x }, func(o offset) float64 { return o.y }, testHalfH, -testHalfW, testHalfW},
			{SideLeft, func(o offset) float64 { return o.y }, func(o offset) float64 { return o.x }, -testHalfW, -testHalfH, testHalfH},
			{SideRight, func(o offset) float64 { return o.y }, func(o offset) float64 { return o.x }, testHalfW, -testHalfH, testHalfH},
		}
		for _, c := range checks {
			offs := s.offsets[c.side]
			if len(offs) != n {
				t.Fatalf("granularity %d side %s: %d offsets", n, c.side, len(offs))
			}
			if got := c.tangent(offs[0]); got != c.lo {
				t.Fatalf("granularity %d side %s: sample 0 at %v, want %v", n, c.side, got, c.lo)
			}
			if got := c.tangent(offs[n-1]); got != c.hi {
				t.Fatalf("granularity %d side %s: sample %d at %v, want %v", n, c.side, n-1, got, c.hi)
			}
			for i := 1; i < n; i++ {
				if c.tangent(offs[i]) <= c.tangent(offs[i-1]) {
					t.Fatalf("granularity %d side %s: samples not monotonic at %d", n, c.side, i)
				}
			}
			for i, o := range offs {
				if c.fixed(o) != c.fixedVal {
					t.Fatalf("granularity %d side %s sample %d: off the side edge (%v)", n, c.side, i, c.fixed(o))
				}
			}
		}
	}
}

func TestSensorConfigErrors(t *testing.T) {
	cases := []struct {
		name         string
		cfg          SensorConfig
		halfW, halfH float64
	}{
		{"granularity_one", SensorConfig{Granularity: 1, VerticalRayLength: 4, HorizontalRayLength: 4}, 16, 32},
		{"granularity_zero", SensorConfig{Granularity: 0, VerticalRayLength: 4, HorizontalRayLength: 4}, 16, 32},
		{"zero_vertical_ray", SensorConfig{Granularity: 3, VerticalRayLength: 0, HorizontalRayLength: 4}, 16, 32},
		{"zero_horizontal_ray", SensorConfig{Granularity: 3, VerticalRayLength: 4, HorizontalRayLength: 0}, 16, 32},
		{"degenerate_extents", SensorConfig{Granularity: 3, VerticalRayLength: 4, HorizontalRayLength: 4}, 0, 32},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewCollisionSensor(c.cfg, c.halfW, c.halfH); err == nil {
				t.Fatalf("expected configuration error")
			}
		})
	}
}

func TestSensorCountAlgebra(t *testing.T) {
	s := newTestSensor(t, 5)
	s.Sense(&sceneCaster{boxes: []aabb{floorBox}}, 0, 0)

	if !s.AllTouching(SideBottom) || s.Count(SideBottom) != 5 {
		t.Fatalf("expected all 5 bottom samples touching, got %d", s.Count(SideBottom))
	}
	if s.NoneTouching(SideBottom) {
		t.Fatalf("AllTouching and NoneTouching must be mutually exclusive")
	}
	if !s.TouchingFloor() {
		t.Fatalf("expected TouchingFloor")
	}
	if s.Airborne() {
		t.Fatalf("grounded sensor must not report airborne")
	}
	for _, side := range []Side{SideTop, SideLeft, SideRight} {
		if !s.NoneTouching(side) {
			t.Fatalf("side %s should be clear", side)
		}
	}

	s.Sense(&sceneCaster{}, 0, 0)
	if !s.Airborne() {
		t.Fatalf("empty scene must be airborne")
	}
}

func TestSensorCeilingScenario(t *testing.T) {
	// granularity 5, all top samples hit, nothing else
	s := newTestSensor(t, 5)
	s.Sense(&sceneCaster{boxes: []aabb{ceilingBox}}, 0, 0)
	if s.Count(SideTop) != 5 {
		t.Fatalf("expected 5 top hits, got %d", s.Count(SideTop))
	}
	if !s.TouchingCeiling() || !s.AllTouchingCeiling() {
		t.Fatalf("expected ceiling touch with all samples")
	}
}

func TestSensorDeterminism(t *testing.T) {
	s := newTestSensor(t, 5)
	scene := &sceneCaster{boxes: []aabb{floorBox, leftWallBox}}

	n := s.Granularity()
	s.Sense(scene, 0, 0)
	var counts [sideCount]int
	var bits [sideCount][]bool
	for side := Side(0); side < sideCount; side++ {
		counts[side] = s.Count(side)
		for j := 0; j < n; j++ {
			bits[side] = append(bits[side], s.HitAt(side, j))
		}
	}

	for i := 0; i < 10; i++ {
		s.Sense(scene, 0, 0)
		for side := Side(0); side < sideCount; side++ {
			if s.Count(side) != counts[side] {
				t.Fatalf("pass %d side %s: count %d != %d", i, side, s.Count(side), counts[side])
			}
			for j, b := range bits[side] {
				if s.HitAt(side, j) != b {
					t.Fatalf("pass %d side %s sample %d changed", i, side, j)
				}
			}
		}
	}

	// out-of-range queries answer false instead of panicking
	if s.HitAt(SideTop, -1) || s.HitAt(SideTop, n) || s.HitAt(Side(99), 0) {
		t.Fatalf("out-of-range HitAt must be false")
	}
}

func TestSensorCornerSymmetry(t *testing.T) {
	cases := []struct {
		name   string
		scene  []aabb
		corner func(*CollisionSensor) bool
		sides  [2]Side
	}{
		{"top_left", []aabb{ceilingBox, leftWallBox}, (*CollisionSensor).InTopLeftCorner, [2]Side{SideTop, SideLeft}},
		{"top_right", []aabb{ceilingBox, rightWallBox}, (*CollisionSensor).InTopRightCorner, [2]Side{SideTop, SideRight}},
		{"bottom_left", []aabb{floorBox, leftWallBox}, (*CollisionSensor).InBottomLeftCorner, [2]Side{SideBottom, SideLeft}},
		{"bottom_right", []aabb{floorBox, rightWallBox}, (*CollisionSensor).InBottomRightCorner, [2]Side{SideBottom, SideRight}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestSensor(t, 4)
			s.Sense(&sceneCaster{boxes: c.scene}, 0, 0)
			want := s.AllTouching(c.sides[0]) && s.AllTouching(c.sides[1])
			if !want {
				t.Fatalf("scene should fully touch %s and %s", c.sides[0], c.sides[1])
			}
			if got := c.corner(s); got != want {
				t.Fatalf("corner predicate %v, conjunction %v", got, want)
			}
		})
	}
}

// Corner-clip blocks sized to trip exactly one extreme sample.
var (
	bonkTopLeftBox   = aabb{minX: -17, minY: -37, maxX: -15.5, maxY: -32.5}
	bonkLeftHeadBox  = aabb{minX: -21, minY: -33, maxX: -16.5, maxY: -31}
	bonkTopRightBox  = aabb{minX: 15.5, minY: -37, maxX: 17, maxY: -32.5}
	bonkRightHeadBox = aabb{minX: 16.5, minY: -33, maxX: 21, maxY: -31}
)

func TestSensorBonk(t *testing.T) {
	cases := []struct {
		name        string
		scene       []aabb
		left, right bool
	}{
		{"clip_top_left_sample", []aabb{bonkTopLeftBox}, true, false},
		{"clip_left_head_sample", []aabb{bonkLeftHeadBox}, true, false},
		{"clip_top_right_sample", []aabb{bonkTopRightBox}, false, true},
		{"clip_right_head_sample", []aabb{bonkRightHeadBox}, false, true},
		// both samples firing means the block is a real corner, not a clip
		{"both_left_samples", []aabb{bonkTopLeftBox, bonkLeftHeadBox}, false, false},
		{"clear", nil, false, false},
		{"full_ceiling", []aabb{ceilingBox}, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestSensor(t, 3)
			s.Sense(&sceneCaster{boxes: c.scene}, 0, 0)
			if got := s.BonkingLeft(); got != c.left {
				t.Fatalf("BonkingLeft = %v, want %v", got, c.left)
			}
			if got := s.BonkingRight(); got != c.right {
				t.Fatalf("BonkingRight = %v, want %v", got, c.right)
			}
			if s.BonkingLeft() && s.BonkingRight() {
				t.Fatalf("bonking left and right may never hold together")
			}
			// a bonk is carried by exactly one of the shared extreme samples
			if c.left && s.HitAt(SideTop, 0) == s.HitAt(SideLeft, 0) {
				t.Fatalf("left bonk must come from exactly one extreme sample")
			}
			last := s.Granularity() - 1
			if c.right && s.HitAt(SideTop, last) == s.HitAt(SideRight, 0) {
				t.Fatalf("right bonk must come from exactly one extreme sample")
			}
		})
	}
}

func TestSensorStubAndLeanMirror(t *testing.T) {
	// stub: toe-height block beside the foot, nothing underfoot
	stubLeft := aabb{minX: -22, minY: 30, maxX: -16.5, maxY: 34}
	stubRight := aabb{minX: 16.5, minY: 30, maxX: 22, maxY: 34}
	// lean: ground only under the outermost bottom sample
	leanLeft := aabb{minX: -18, minY: 33, maxX: -10, maxY: 37}
	leanRight := aabb{minX: 10, minY: 33, maxX: 18, maxY: 37}

	cases := []struct {
		name  string
		scene []aabb
		check func(*CollisionSensor) bool
		anti  []func(*CollisionSensor) bool
	}{
		{"stub_left", []aabb{stubLeft}, (*CollisionSensor).StubbingLeft,
			[]func(*CollisionSensor) bool{(*CollisionSensor).StubbingRight, (*CollisionSensor).LeaningLeft}},
		{"stub_right", []aabb{stubRight}, (*CollisionSensor).StubbingRight,
			[]func(*CollisionSensor) bool{(*CollisionSensor).StubbingLeft, (*CollisionSensor).LeaningRight}},
		{"lean_left", []aabb{leanLeft}, (*CollisionSensor).LeaningLeft,
			[]func(*CollisionSensor) bool{(*CollisionSensor).LeaningRight, (*CollisionSensor).StubbingLeft}},
		{"lean_right", []aabb{leanRight}, (*CollisionSensor).LeaningRight,
			[]func(*CollisionSensor) bool{(*CollisionSensor).LeaningLeft, (*CollisionSensor).StubbingRight}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestSensor(t, 3)
			s.Sense(&sceneCaster{boxes: c.scene}, 0, 0)
			if !c.check(s) {
				t.Fatalf("predicate should hold for %s", c.name)
			}
			for i, anti := range c.anti {
				if anti(s) {
					t.Fatalf("anti-predicate %d must not hold for %s", i, c.name)
				}
			}
		})
	}
}

func TestSensorLedgeAndSquish(t *testing.T) {
	s := newTestSensor(t, 4)
	s.Sense(&sceneCaster{boxes: []aabb{floorBox, leftWallBox}}, 0, 0)
	if !s.OnLedgeLeft() {
		t.Fatalf("full floor plus full left wall should read as left ledge")
	}
	if s.OnLedgeRight() {
		t.Fatalf("right ledge must not hold without a right wall")
	}

	s.Sense(&sceneCaster{boxes: []aabb{floorBox, ceilingBox}}, 0, 0)
	if !s.SquishedVertically() {
		t.Fatalf("floor and ceiling contact should read as vertical squish")
	}
	s.Sense(&sceneCaster{boxes: []aabb{leftWallBox, rightWallBox}}, 0, 0)
	if !s.SquishedHorizontally() {
		t.Fatalf("both walls should read as horizontal squish")
	}
}

func TestSensorDeadlyFlag(t *testing.T) {
	spikes := floorBox
	spikes.deadly = true
	s := newTestSensor(t, 3)

	s.Sense(&sceneCaster{boxes: []aabb{spikes}}, 0, 0)
	if !s.TouchedDeadly() {
		t.Fatalf("deadly floor should set the flag")
	}
	// flag is cleared and recomputed every pass
	s.Sense(&sceneCaster{boxes: []aabb{floorBox}}, 0, 0)
	if s.TouchedDeadly() {
		t.Fatalf("flag must clear on a clean pass")
	}
}

func TestSensorDisabledPreservesSnapshot(t *testing.T) {
	s := newTestSensor(t, 3)
	s.Sense(&sceneCaster{boxes: []aabb{floorBox}}, 0, 0)
	if !s.TouchingFloor() {
		t.Fatalf("setup: expected floor contact")
	}

	s.SetEnabled(false)
	s.Sense(&sceneCaster{}, 0, 0)
	if !s.TouchingFloor() {
		t.Fatalf("disabled sensor must preserve the last snapshot")
	}

	s.SetEnabled(true)
	s.Sense(&sceneCaster{}, 0, 0)
	if s.TouchingFloor() {
		t.Fatalf("re-enabled sensor should refresh")
	}
}
