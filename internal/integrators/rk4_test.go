package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/scenekit/internal/dynamo"
)

// oscillator is x'' = -x laid out as [x, v].
type oscillator struct{}

func (o *oscillator) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int { return 2 }

// freeFall is a point under constant acceleration u[0].
type freeFall struct{}

func (f *freeFall) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], u[0]}
}

func (f *freeFall) StateDim() int { return 2 }

func integrate(integ dynamo.Integrator, dyn dynamo.System, x dynamo.State, u dynamo.Control, dt float64, steps int) dynamo.State {
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, u, float64(i)*dt, dt)
	}
	return x
}

func TestRK4Accuracy(t *testing.T) {
	dt := 0.01
	steps := 100
	x := integrate(NewRK4(), &oscillator{}, dynamo.State{1.0, 0.0}, nil, dt, steps)

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestFreeFall(t *testing.T) {
	g := -9.81
	dt := 0.01
	steps := 100
	elapsed := dt * float64(steps)
	want := 0.5 * g * elapsed * elapsed

	tests := []struct {
		name string
		tol  float64
	}{
		{"euler", 0.1},
		{"semi_implicit", 0.1},
		{"rk4", 1e-9},
		{"verlet", 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := New(tt.name)
			if err != nil {
				t.Fatalf("New(%q): %v", tt.name, err)
			}
			x := integrate(integ, &freeFall{}, dynamo.State{0, 0}, dynamo.Control{g}, dt, steps)
			if math.Abs(x[0]-want) > tt.tol {
				t.Errorf("position = %.6f, want %.6f", x[0], want)
			}
			if math.Abs(x[1]-g*elapsed) > 1e-6 {
				t.Errorf("velocity = %.6f, want %.6f", x[1], g*elapsed)
			}
		})
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("leapfrog-9000")
	if !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 4 {
		t.Fatalf("expected 4 integrators, got %v", names)
	}
	if names[0] != "euler" {
		t.Errorf("names not sorted: %v", names)
	}
}
