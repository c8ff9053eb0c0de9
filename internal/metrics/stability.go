package metrics

import "github.com/san-kum/scenekit/internal/physics"

// Stability is the fraction of samples in which the watched body stayed
// within radius of where it was first seen.
type Stability struct {
	name       string
	radius     float64
	origin     physics.Vec2
	violations int
	samples    int
}

func NewStability(radius float64) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(st physics.BodyState, t float64) {
	if s.samples == 0 {
		s.origin = st.Position
	}
	s.samples++
	if st.Position.DistanceTo(s.origin) > s.radius {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
