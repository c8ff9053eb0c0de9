package integrators

import (
	"testing"

	"github.com/san-kum/scenekit/internal/dynamo"
)

func benchmarkIntegrator(b *testing.B, integ dynamo.Integrator) {
	dyn := &oscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, nil, 0, 0.01)
	}
}

func BenchmarkEuler(b *testing.B)  { benchmarkIntegrator(b, NewEuler()) }
func BenchmarkRK4(b *testing.B)    { benchmarkIntegrator(b, NewRK4()) }
func BenchmarkVerlet(b *testing.B) { benchmarkIntegrator(b, NewVerlet()) }
