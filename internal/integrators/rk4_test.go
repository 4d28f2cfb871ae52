package integrators

import (
	"math"
	"testing"

	"github.com/ristakaen/PlasmaTransition/internal/dynamics"
)

// constField has a derivative independent of state and coordinate, so RK4
// must reproduce du*c with no discretization error.
type constField struct {
	c dynamics.State
}

func (f *constField) Derive(x dynamics.State, u float64) dynamics.State { return f.c.Clone() }
func (f *constField) StateDim() int                                     { return len(f.c) }

// expGrowth is dy/du = y, componentwise.
type expGrowth struct{}

func (expGrowth) Derive(x dynamics.State, u float64) dynamics.State { return x.Clone() }
func (expGrowth) StateDim() int                                     { return 1 }

// oscillator is the plain harmonic oscillator, exact solution (cos, -sin).
type oscillator struct{}

func (oscillator) Derive(x dynamics.State, u float64) dynamics.State {
	return dynamics.State{x[1], -x[0]}
}
func (oscillator) StateDim() int { return 2 }

func TestIncrementConstantField(t *testing.T) {
	dyn := &constField{c: dynamics.State{3.0, -1.5, 0.25}}
	integ := NewRK4()

	du := 0.1
	inc := integ.Increment(dyn, dynamics.State{10, 20, 30}, 0.4, du)

	for i, c := range dyn.c {
		want := du * c
		if math.Abs(inc[i]-want) > 1e-15 {
			t.Errorf("component %d: got %.18f, want %.18f", i, inc[i], want)
		}
	}
}

func TestFourthOrderConvergence(t *testing.T) {
	dyn := expGrowth{}

	// Integrate dy/du = y over [0, 1]; the global error of a 4th-order
	// scheme drops by ~16x when the step is halved.
	integrate := func(steps int) float64 {
		integ := NewRK4()
		du := 1.0 / float64(steps)
		x := dynamics.State{1.0}
		for i := 0; i < steps; i++ {
			inc := integ.Increment(dyn, x, float64(i)*du, du)
			x[0] += inc[0]
		}
		return math.Abs(x[0] - math.E)
	}

	errCoarse := integrate(50)
	errFine := integrate(100)

	if errCoarse <= 0 || errFine <= 0 {
		t.Fatalf("expected nonzero discretization errors, got %g and %g", errCoarse, errFine)
	}

	ratio := errCoarse / errFine
	if ratio < 12 || ratio > 20 {
		t.Errorf("error ratio %f outside 4th-order range [12, 20]", ratio)
	}
}

func TestOscillatorAccuracy(t *testing.T) {
	dyn := oscillator{}
	integ := NewRK4()

	du := 0.01
	steps := 100
	x := dynamics.State{1.0, 0.0}
	for i := 0; i < steps; i++ {
		inc := integ.Increment(dyn, x, float64(i)*du, du)
		x[0] += inc[0]
		x[1] += inc[1]
	}

	elapsed := float64(steps) * du
	if math.Abs(x[0]-math.Cos(elapsed)) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], math.Cos(elapsed))
	}
	if math.Abs(x[1]+math.Sin(elapsed)) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], -math.Sin(elapsed))
	}
}

func TestNonFinitePropagates(t *testing.T) {
	dyn := &constField{c: dynamics.State{math.Inf(1)}}
	integ := NewRK4()

	inc := integ.Increment(dyn, dynamics.State{0}, 0, 0.1)
	if !math.IsInf(inc[0], 1) && !math.IsNaN(inc[0]) {
		t.Errorf("expected non-finite increment to propagate, got %f", inc[0])
	}
}
