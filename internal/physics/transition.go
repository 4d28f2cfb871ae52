package physics

import (
	"fmt"
	"math"

	"github.com/ristakaen/PlasmaTransition/internal/dynamics"
)

// ThreeField is the reduced three-field model of the confinement
// transition: a density gradient N fed by a particle source S, a
// turbulence fluctuation level E that grows on the gradient, and a
// flow-shear gradient V that suppresses it.
//
//	dN/dt = S - E*N
//	dE/dt = E*N - nu*E^2 - E*V^2
//	dV/dt = alpha*E*V - mu*V
//
// Derive expresses the system in the compactified coordinate u = t/(1+t):
// every right-hand side carries the 1/(1-u)^2 Jacobian of that map, which
// is singular at u = 1 exactly. The grid must stop short of it.
type ThreeField struct {
	alpha, nu, mu, s float64
}

func NewThreeField(alpha, nu, mu, s float64) *ThreeField {
	return &ThreeField{alpha: alpha, nu: nu, mu: mu, s: s}
}

func (m *ThreeField) StateDim() int { return 3 }

func (m *ThreeField) Derive(x dynamics.State, u float64) dynamics.State {
	j := 1 - u
	j = 1 / (j * j)
	n, e, v := x[0], x[1], x[2]
	return dynamics.State{
		(m.s - e*n) * j,
		(e*n - m.nu*e*e - e*v*v) * j,
		(m.alpha*e*v - m.mu*v) * j,
	}
}

// DefaultState seeds the run slightly off the turbulence-dominated fixed
// point (sqrt(S*nu), sqrt(S/nu), 0), with a small flow perturbation so the
// shear branch can grow when it is unstable.
func (m *ThreeField) DefaultState() dynamics.State {
	return dynamics.State{
		math.Sqrt(m.s*m.nu) + 0.01,
		math.Sqrt(m.s/m.nu) + 0.01,
		0.01,
	}
}

func (m *ThreeField) GetParams() map[string]float64 {
	return map[string]float64{"alpha": m.alpha, "nu": m.nu, "mu": m.mu, "s": m.s}
}

func (m *ThreeField) SetParam(name string, v float64) error {
	switch name {
	case "alpha":
		m.alpha = v
	case "nu":
		m.nu = v
	case "mu":
		m.mu = v
	case "s":
		m.s = v
	default:
		return fmt.Errorf("physics: unknown parameter %q", name)
	}
	return nil
}
