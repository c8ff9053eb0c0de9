package metrics

import (
	"math"

	"github.com/san-kum/scenekit/internal/physics"
)

// KineticEnergy is the mean kinetic energy of the watched body.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(st physics.BodyState, t float64) {
	e.total += st.KineticEnergy()
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change of mechanical energy (kinetic
// plus potential in a uniform gravity field) seen since the first sample.
type EnergyDrift struct {
	name     string
	gravity  physics.Vec2
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(gravity physics.Vec2) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: gravity,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) energy(st physics.BodyState) float64 {
	return st.KineticEnergy() - st.Mass*e.gravity.Dot(st.Position)
}

func (e *EnergyDrift) Observe(st physics.BodyState, t float64) {
	energy := e.energy(st)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
