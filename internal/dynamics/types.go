package dynamics

import "math"

// State is the vector of tracked quantities at one instant. For the
// three-field transition model the components are (N, E, V): density
// gradient, fluctuation level, flow-shear gradient.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is a first-order ODE expressed in the compactified coordinate u,
// dx/du = Derive(x, u).
type System interface {
	Derive(x State, u float64) State
	StateDim() int
}

// Integrator computes the fixed-step update for a System. It returns the
// increment to add to x, not the advanced state, so the caller can record
// the pre-step state before applying it.
type Integrator interface {
	Increment(dyn System, x State, u, du float64) State
}

// Configurable exposes runtime-adjustable model parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Config holds the grid and equilibrium settings for one run.
type Config struct {
	// Grid bounds in the compactified coordinate. The grid is half-open:
	// u_i = Lower + i*du for i in [0, Points), du = (Upper-Lower)/Points,
	// so Upper itself is never evaluated. Upper must stay below 1, where
	// the compactification Jacobian blows up.
	Lower  float64
	Upper  float64
	Points int

	// Window is the running-average length for the settled test.
	// Zero means Points/20000, floored at 1.
	Window int

	// Tolerance is the absolute settled tolerance. The state magnitudes in
	// this model stay O(1)-O(10), so a tight absolute criterion works.
	Tolerance float64

	// Fallback is the equilibrium time reported when the joint settled
	// test never fires. It marks a display range, not convergence.
	Fallback float64

	// Strict stops the run with ErrDiverged on the first non-finite state.
	// When false, non-finite values propagate silently through the
	// remaining steps, matching the unguarded fixed-step scheme.
	Strict bool
}

func DefaultConfig() Config {
	return Config{
		Lower:     0,
		Upper:     0.99,
		Points:    100000,
		Tolerance: 1e-9,
		Fallback:  30,
	}
}

// Du is the fixed step size in the compactified coordinate.
func (c Config) Du() float64 {
	return (c.Upper - c.Lower) / float64(c.Points)
}

// DetectorWindow resolves the running-average window: Window if set,
// otherwise Points/20000 floored at 1.
func (c Config) DetectorWindow() int {
	if c.Window > 0 {
		return c.Window
	}
	w := c.Points / 20000
	if w < 1 {
		w = 1
	}
	return w
}

// Result holds the four aligned trajectory histories and the run outcome.
// Histories record the pre-step state at each grid point, so the last
// entries are the final recorded values of the run.
type Result struct {
	Times []float64
	N     []float64
	E     []float64
	V     []float64

	// EquilibriumTime is the physical time at which all three histories
	// first settled, or Config.Fallback if they never did. Check Converged
	// before trusting it.
	EquilibriumTime float64
	Converged       bool

	// Diverged is set when a non-finite state was produced at any step.
	Diverged bool

	Steps int
}

// Final returns the last recorded (N, E, V) sample.
func (r *Result) Final() (n, e, v float64) {
	last := len(r.Times) - 1
	if last < 0 {
		return 0, 0, 0
	}
	return r.N[last], r.E[last], r.V[last]
}
