package physics

import (
	"math"
	"testing"

	"github.com/ristakaen/PlasmaTransition/internal/dynamics"
)

func TestFixedPointDerivativeZero(t *testing.T) {
	m := NewThreeField(1, 2, 2, 2)

	// Turbulence-dominated fixed point: N = sqrt(S*nu), E = sqrt(S/nu), V = 0.
	x := dynamics.State{2, 1, 0}
	dx := m.Derive(x, 0)

	for i, d := range dx {
		if math.Abs(d) > 1e-12 {
			t.Errorf("component %d: expected zero derivative at fixed point, got %g", i, d)
		}
	}
}

func TestCompactificationJacobian(t *testing.T) {
	m := NewThreeField(1, 2, 2, 2)
	x := dynamics.State{1, 1, 1}

	base := m.Derive(x, 0)
	scaled := m.Derive(x, 0.5)

	// 1/(1-u)^2 at u=0.5 is exactly 4.
	for i := range base {
		if math.Abs(scaled[i]-4*base[i]) > 1e-12 {
			t.Errorf("component %d: expected 4x Jacobian scaling, got %g vs %g", i, scaled[i], base[i])
		}
	}
}

func TestDefaultState(t *testing.T) {
	m := NewThreeField(1, 2, 2, 2)
	x := m.DefaultState()

	want := dynamics.State{2.01, 1.01, 0.01}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Errorf("component %d: got %f, want %f", i, x[i], want[i])
		}
	}
}

func TestParams(t *testing.T) {
	m := NewThreeField(1, 2, 3, 4)

	params := m.GetParams()
	for name, want := range map[string]float64{"alpha": 1, "nu": 2, "mu": 3, "s": 4} {
		if params[name] != want {
			t.Errorf("%s: got %f, want %f", name, params[name], want)
		}
	}

	if err := m.SetParam("s", 8); err != nil {
		t.Fatalf("SetParam failed: %v", err)
	}
	if m.GetParams()["s"] != 8 {
		t.Error("SetParam did not update s")
	}

	if err := m.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestStateDim(t *testing.T) {
	if dim := NewThreeField(1, 2, 2, 2).StateDim(); dim != 3 {
		t.Errorf("expected state dim 3, got %d", dim)
	}
}
