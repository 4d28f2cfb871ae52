// Package integrators provides the fixed-step scheme used to advance the
// transition model across the compactified grid.
package integrators

import "github.com/ristakaen/PlasmaTransition/internal/dynamics"

// RK4 is the classical four-stage fourth-order Runge-Kutta scheme.
// Stage buffers are reused across steps, so an RK4 instance is not safe
// for concurrent use; give each goroutine its own.
type RK4 struct {
	k1, k2, k3, k4 dynamics.State
	scratch        dynamics.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamics.State, n)
		r.k2 = make(dynamics.State, n)
		r.k3 = make(dynamics.State, n)
		r.k4 = make(dynamics.State, n)
		r.scratch = make(dynamics.State, n)
	}
}

// Increment computes the weighted RK4 update du*(k1 + 2k2 + 2k3 + k4)/6
// without advancing x; the caller adds it to the current state. No values
// are clamped or validated here: a non-finite stage propagates into the
// returned increment.
func (r *RK4) Increment(dyn dynamics.System, x dynamics.State, u, du float64) dynamics.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, dyn.Derive(x, u))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + du*0.5*r.k1[i]
	}
	copy(r.k2, dyn.Derive(r.scratch, u+du*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + du*0.5*r.k2[i]
	}
	copy(r.k3, dyn.Derive(r.scratch, u+du*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + du*r.k3[i]
	}
	copy(r.k4, dyn.Derive(r.scratch, u+du))

	inc := make(dynamics.State, n)
	du6 := du / 6.0
	for i := 0; i < n; i++ {
		inc[i] = du6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}
	return inc
}
