// Package dynamics provides the core primitives for integrating the
// three-field transition model over a compactified time grid.
//
// The physical time domain [0, inf) is mapped onto [0, 1) by u = t/(1+t),
// so a fixed-count grid in u covers the whole trajectory while
// concentrating resolution at early times. The pieces:
//
//   - [State]: the (N, E, V) vector
//   - [System]: the ODE right-hand side in the compactified coordinate
//   - [Integrator]: fixed-step scheme returning the per-step increment
//   - [Driver]: steps the grid, records histories, freezes the first
//     time the joint settled test fires
//
// # Example
//
//	dyn := physics.NewThreeField(1, 2, 2, 2)
//	drv := dynamics.NewDriver(dyn, integrators.NewRK4())
//	res, _ := drv.Run(ctx, dyn.DefaultState(), dynamics.DefaultConfig())
//
// The grid never reaches u = 1, where the Jacobian of the compactification
// is singular. Divergence anywhere short of that is tolerated by default
// (non-finite values propagate) and fatal in strict mode.
package dynamics
