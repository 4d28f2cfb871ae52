// Package sweep runs independent transition integrations over a list of
// parameter records, one driver per record. It produces pure outcome data;
// rendering and persistence happen elsewhere.
package sweep

import (
	"context"
	"sync"

	"github.com/ristakaen/PlasmaTransition/internal/dynamics"
	"github.com/ristakaen/PlasmaTransition/internal/integrators"
	"github.com/ristakaen/PlasmaTransition/internal/physics"
)

// Params fixes one run of the model. A nil X0 means the model's default
// initial state for these parameters.
type Params struct {
	Alpha, Nu, Mu, S float64

	X0 dynamics.State
}

// Outcome summarizes one completed run.
type Outcome struct {
	S               float64
	EquilibriumTime float64
	Converged       bool
	Diverged        bool
	FinalN          float64
	FinalE          float64
	FinalV          float64
}

// ForSource expands base into one parameter record per source strength,
// leaving X0 nil so each run seeds from its own fixed point.
func ForSource(base Params, sValues []float64) []Params {
	specs := make([]Params, len(sValues))
	for i, s := range sValues {
		p := base
		p.S = s
		p.X0 = nil
		specs[i] = p
	}
	return specs
}

// Run integrates every record under the same grid config. Runs share no
// mutable state, so they execute in parallel; outcomes stay index-aligned
// with specs. The first run error wins, but all outcomes that completed
// are still returned.
func Run(ctx context.Context, specs []Params, cfg dynamics.Config) ([]Outcome, error) {
	outcomes := make([]Outcome, len(specs))
	errs := make([]error, len(specs))

	var wg sync.WaitGroup
	for i, p := range specs {
		wg.Add(1)
		go func(i int, p Params) {
			defer wg.Done()

			dyn := physics.NewThreeField(p.Alpha, p.Nu, p.Mu, p.S)
			x0 := p.X0
			if x0 == nil {
				x0 = dyn.DefaultState()
			}

			drv := dynamics.NewDriver(dyn, integrators.NewRK4())
			res, err := drv.Run(ctx, x0, cfg)
			if err != nil {
				errs[i] = err
			}
			if res == nil {
				return
			}

			n, e, v := res.Final()
			outcomes[i] = Outcome{
				S:               p.S,
				EquilibriumTime: res.EquilibriumTime,
				Converged:       res.Converged,
				Diverged:        res.Diverged,
				FinalN:          n,
				FinalE:          e,
				FinalV:          v,
			}
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return outcomes, err
		}
	}
	return outcomes, nil
}
