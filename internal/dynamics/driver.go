package dynamics

import (
	"context"
	"fmt"

	"github.com/ristakaen/PlasmaTransition/internal/equilibrium"
)

// Driver integrates a three-component System across the full compactified
// grid. A Driver is single-pass and strictly sequential: each Run owns its
// own histories, so one Driver must not be shared between concurrent runs.
type Driver struct {
	dyn   System
	integ Integrator
}

func NewDriver(dyn System, integ Integrator) *Driver {
	return &Driver{dyn: dyn, integ: integ}
}

// Run steps x0 through every grid point in increasing order. Per point it
// records the pre-step state at physical time t = u/(1-u), applies the
// integrator increment, and, until the equilibrium time is frozen, runs the
// joint settled test on the three recorded histories.
//
// In strict mode the first non-finite state stops the run with ErrDiverged;
// otherwise non-finite values propagate silently and only Result.Diverged
// records that they appeared.
func (d *Driver) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != 3 {
		return nil, fmt.Errorf("%w: state must have 3 components, got %d", ErrInvalidConfig, len(x0))
	}

	det := equilibrium.Detector{Window: cfg.DetectorWindow(), Tolerance: cfg.Tolerance}
	du := cfg.Du()

	res := &Result{
		Times: make([]float64, 0, cfg.Points),
		N:     make([]float64, 0, cfg.Points),
		E:     make([]float64, 0, cfg.Points),
		V:     make([]float64, 0, cfg.Points),
	}

	x := x0.Clone()

	for i := 0; i < cfg.Points; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		u := cfg.Lower + float64(i)*du
		t := u / (1 - u)

		res.Times = append(res.Times, t)
		res.N = append(res.N, x[0])
		res.E = append(res.E, x[1])
		res.V = append(res.V, x[2])

		inc := d.integ.Increment(d.dyn, x, u, du)
		for j := range x {
			x[j] += inc[j]
		}
		res.Steps++

		if !res.Diverged && !x.IsValid() {
			res.Diverged = true
			if cfg.Strict {
				if !res.Converged {
					res.EquilibriumTime = cfg.Fallback
				}
				return res, &RunError{Step: i, U: u, Wrapped: ErrDiverged}
			}
		}

		if !res.Converged && det.SettledAll(res.N, res.E, res.V) {
			res.EquilibriumTime = t
			res.Converged = true
		}
	}

	if !res.Converged {
		res.EquilibriumTime = cfg.Fallback
	}
	return res, nil
}

func validateConfig(cfg Config) error {
	if cfg.Points <= 0 {
		return fmt.Errorf("%w: points must be positive, got %d", ErrInvalidConfig, cfg.Points)
	}
	if cfg.Upper <= cfg.Lower {
		return fmt.Errorf("%w: upper bound %g not above lower %g", ErrInvalidConfig, cfg.Upper, cfg.Lower)
	}
	if cfg.Upper >= 1 {
		return fmt.Errorf("%w: upper bound %g reaches the compactification singularity at 1", ErrInvalidConfig, cfg.Upper)
	}
	return nil
}
