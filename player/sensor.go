package player

import "fmt"

// Side identifies one edge of the character's bounding box.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight

	sideCount
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// SensorConfig controls the raycast grid. Granularity is the number of
// samples per side; the ray lengths are the per-axis sensitivities.
type SensorConfig struct {
	Granularity         int
	VerticalRayLength   float64
	HorizontalRayLength float64
	Mask                uint
}

func (c SensorConfig) validate() error {
	if c.Granularity < 2 {
		return fmt.Errorf("sensor: granularity %d < 2", c.Granularity)
	}
	if c.VerticalRayLength <= 0 {
		return fmt.Errorf("sensor: vertical ray length %v must be positive", c.VerticalRayLength)
	}
	if c.HorizontalRayLength <= 0 {
		return fmt.Errorf("sensor: horizontal ray length %v must be positive", c.HorizontalRayLength)
	}
	return nil
}

type offset struct {
	x, y float64
}

// CollisionSensor samples a fixed grid of raycasts along each side of a
// rectangular body once per physics tick and reduces them into per-side hit
// counts and bitmaps.
//
// Sample ordering is load-bearing: sample 0 is the leftmost sample on the
// top and bottom sides and the topmost sample on the left and right sides;
// sample N-1 is the opposite extreme. Every corner/ledge/bonk predicate
// below indexes into the bitmaps under that convention.
type CollisionSensor struct {
	cfg     SensorConfig
	offsets [sideCount][]offset
	normals [sideCount]offset
	lengths [sideCount]float64

	hits    [sideCount][]bool
	counts  [sideCount]int
	deadly  bool
	enabled bool
}

// NewCollisionSensor precomputes the sample offsets from the body's
// half-extents. The offsets are fixed for the sensor's lifetime; the body
// is assumed not to change size.
func NewCollisionSensor(cfg SensorConfig, halfW, halfH float64) (*CollisionSensor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if halfW <= 0 || halfH <= 0 {
		return nil, fmt.Errorf("sensor: degenerate half extents %vx%v", halfW, halfH)
	}

	s := &CollisionSensor{cfg: cfg, enabled: true}
	s.normals = [sideCount]offset{
		SideTop:    {0, -1},
		SideBottom: {0, 1},
		SideLeft:   {-1, 0},
		SideRight:  {1, 0},
	}
	s.lengths = [sideCount]float64{
		SideTop:    cfg.VerticalRayLength,
		SideBottom: cfg.VerticalRayLength,
		SideLeft:   cfg.HorizontalRayLength,
		SideRight:  cfg.HorizontalRayLength,
	}

	n := cfg.Granularity
	stepX := (2 * halfW) / float64(n-1)
	stepY := (2 * halfH) / float64(n-1)
	for i := 0; i < n; i++ {
		x := -halfW + float64(i)*stepX
		y := -halfH + float64(i)*stepY
		s.offsets[SideTop] = append(s.offsets[SideTop], offset{x, -halfH})
		s.offsets[SideBottom] = append(s.offsets[SideBottom], offset{x, halfH})
		s.offsets[SideLeft] = append(s.offsets[SideLeft], offset{-halfW, y})
		s.offsets[SideRight] = append(s.offsets[SideRight], offset{halfW, y})
	}
	for side := Side(0); side < sideCount; side++ {
		s.hits[side] = make([]bool, n)
	}
	return s, nil
}

// Granularity returns the number of samples per side.
func (s *CollisionSensor) Granularity() int { return s.cfg.Granularity }

// SetEnabled toggles sensing. While disabled Sense is a no-op and the last
// snapshot is preserved.
func (s *CollisionSensor) SetEnabled(enabled bool) { s.enabled = enabled }

// Sense refreshes the snapshot by casting every ray from the body centered
// at (cx, cy). The deadly flag is cleared and recomputed on every pass.
func (s *CollisionSensor) Sense(rc Raycaster, cx, cy float64) {
	if !s.enabled || rc == nil {
		return
	}
	s.deadly = false
	for side := Side(0); side < sideCount; side++ {
		s.counts[side] = 0
		n := s.normals[side]
		for i, off := range s.offsets[side] {
			hit, ok := rc.CastRay(cx+off.x, cy+off.y, n.x, n.y, s.lengths[side], s.cfg.Mask)
			s.hits[side][i] = ok
			if ok {
				s.counts[side]++
				if hit.Deadly {
					s.deadly = true
				}
			}
		}
	}
}

// Count returns how many samples on the side hit this tick.
func (s *CollisionSensor) Count(side Side) int {
	if side < 0 || side >= sideCount {
		return 0
	}
	return s.counts[side]
}

// HitAt reports whether sample i on the side hit this tick.
func (s *CollisionSensor) HitAt(side Side, i int) bool {
	if side < 0 || side >= sideCount || i < 0 || i >= len(s.hits[side]) {
		return false
	}
	return s.hits[side][i]
}

func (s *CollisionSensor) AllTouching(side Side) bool {
	return s.Count(side) == s.cfg.Granularity
}

func (s *CollisionSensor) NoneTouching(side Side) bool {
	return s.Count(side) == 0
}

// TouchedDeadly reports whether any ray struck a deadly collider on the
// latest pass.
func (s *CollisionSensor) TouchedDeadly() bool { return s.deadly }

// touching reports side contact: either every sample fired, or the side is
// the only one with contact among itself and its orthogonal neighbors.
func (s *CollisionSensor) touching(side Side, ortho1, ortho2 Side) bool {
	if s.AllTouching(side) {
		return true
	}
	return s.Count(side) > 0 && s.NoneTouching(ortho1) && s.NoneTouching(ortho2)
}

func (s *CollisionSensor) TouchingCeiling() bool {
	return s.touching(SideTop, SideLeft, SideRight)
}

func (s *CollisionSensor) TouchingFloor() bool {
	return s.touching(SideBottom, SideLeft, SideRight)
}

func (s *CollisionSensor) TouchingLeftWall() bool {
	return s.touching(SideLeft, SideTop, SideBottom)
}

func (s *CollisionSensor) TouchingRightWall() bool {
	return s.touching(SideRight, SideTop, SideBottom)
}

func (s *CollisionSensor) AllTouchingCeiling() bool { return s.AllTouching(SideTop) }
func (s *CollisionSensor) AllTouchingFloor() bool   { return s.AllTouching(SideBottom) }

func (s *CollisionSensor) InTopLeftCorner() bool {
	return s.AllTouching(SideTop) && s.AllTouching(SideLeft)
}

func (s *CollisionSensor) InTopRightCorner() bool {
	return s.AllTouching(SideTop) && s.AllTouching(SideRight)
}

func (s *CollisionSensor) InBottomLeftCorner() bool {
	return s.AllTouching(SideBottom) && s.AllTouching(SideLeft)
}

func (s *CollisionSensor) InBottomRightCorner() bool {
	return s.AllTouching(SideBottom) && s.AllTouching(SideRight)
}

// OnLedgeLeft reports standing against a fully-touching left wall with more
// than one bottom sample grounded.
func (s *CollisionSensor) OnLedgeLeft() bool {
	return s.Count(SideBottom) > 1 && s.AllTouching(SideLeft)
}

func (s *CollisionSensor) OnLedgeRight() bool {
	return s.Count(SideBottom) > 1 && s.AllTouching(SideRight)
}

func (s *CollisionSensor) SquishedVertically() bool {
	return s.Count(SideTop) > 0 && s.Count(SideBottom) > 0
}

func (s *CollisionSensor) SquishedHorizontally() bool {
	return s.Count(SideLeft) > 0 && s.Count(SideRight) > 0
}

// Airborne reports no contact on any side.
func (s *CollisionSensor) Airborne() bool {
	return s.NoneTouching(SideTop) && s.NoneTouching(SideBottom) &&
		s.NoneTouching(SideLeft) && s.NoneTouching(SideRight)
}

// BonkingLeft reports clipping the corner of an obstacle with the left edge
// of the head: exactly one sample fired, at the shared top-left extreme, on
// the top side XOR the left side.
func (s *CollisionSensor) BonkingLeft() bool {
	top := s.counts[SideTop] == 1 && s.hits[SideTop][0]
	left := s.counts[SideLeft] == 1 && s.hits[SideLeft][0]
	return top != left
}

// BonkingRight mirrors BonkingLeft for the top-right extreme.
func (s *CollisionSensor) BonkingRight() bool {
	last := s.cfg.Granularity - 1
	top := s.counts[SideTop] == 1 && s.hits[SideTop][last]
	right := s.counts[SideRight] == 1 && s.hits[SideRight][0]
	return top != right
}

// StubbingLeft reports the left toe catching the lip of a ledge: only the
// bottom-most left sample fires while the matching bottom-left sample does
// not.
func (s *CollisionSensor) StubbingLeft() bool {
	last := s.cfg.Granularity - 1
	return s.counts[SideLeft] == 1 && s.hits[SideLeft][last] && !s.hits[SideBottom][0]
}

func (s *CollisionSensor) StubbingRight() bool {
	last := s.cfg.Granularity - 1
	return s.counts[SideRight] == 1 && s.hits[SideRight][last] && !s.hits[SideBottom][last]
}

// LeaningLeft reports overhanging an edge: only the bottom-left sample is
// grounded while the bottom-most left sample has no wall beside it.
func (s *CollisionSensor) LeaningLeft() bool {
	last := s.cfg.Granularity - 1
	return s.counts[SideBottom] == 1 && s.hits[SideBottom][0] && !s.hits[SideLeft][last]
}

func (s *CollisionSensor) LeaningRight() bool {
	last := s.cfg.Granularity - 1
	return s.counts[SideBottom] == 1 && s.hits[SideBottom][last] && !s.hits[SideRight][last]
}
