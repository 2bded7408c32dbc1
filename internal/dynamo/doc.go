// Package dynamo provides the simulation primitives used to fly the
// controller against a modelled vehicle:
//
//   - [State] and [Control]: float64 vectors for the plant
//   - [System]: continuous dynamics dX/dt = f(X, u, t)
//   - [Integrator]: fixed-step numerical integration of a System
//   - [Metric] and [Observer]: hooks fed one [Snapshot] per base tick
//   - [Configurable]: runtime-tunable parameters
//
// The flight core itself works in float32 and never touches this package.
package dynamo
