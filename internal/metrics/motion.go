package metrics

import (
	"math"

	"github.com/san-kum/scenekit/internal/driver"
	"github.com/san-kum/scenekit/internal/physics"
)

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(st physics.BodyState, t float64) {
	m.max = math.Max(m.max, st.Velocity.Length())
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// Distance is the path length travelled by the watched body.
type Distance struct {
	name  string
	last  physics.Vec2
	total float64
	seen  bool
}

func NewDistance() *Distance {
	return &Distance{name: "distance"}
}

func (d *Distance) Name() string { return d.name }

func (d *Distance) Observe(st physics.BodyState, t float64) {
	if d.seen {
		d.total += st.Position.DistanceTo(d.last)
	}
	d.last = st.Position
	d.seen = true
}

func (d *Distance) Value() float64 { return d.total }

func (d *Distance) Reset() {
	d.total = 0
	d.seen = false
}

// Standard returns the metrics a run reports by default.
func Standard(gravity physics.Vec2) []driver.Metric {
	return []driver.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(gravity),
		NewMaxSpeed(),
		NewDistance(),
		NewStability(1.0),
	}
}
