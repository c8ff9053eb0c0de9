package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Axpy returns s + f*other. other may be shorter than s.
func (s State) Axpy(f float64, other State) State {
	out := make(State, len(s))
	for i := range s {
		out[i] = s[i]
		if i < len(other) {
			out[i] += f * other[i]
		}
	}
	return out
}

// Control is an external input, for body motion the applied acceleration.
type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, u Control, t, dt float64) State
}
