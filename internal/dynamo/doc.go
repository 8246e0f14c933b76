// Package dynamo provides the simulation primitives for neural-mass models.
//
// The package defines the fundamental interfaces and types for fixed-step
// numerical integration of ordinary differential equations (dX/dt = f(X, u, t)):
//
//   - [State]: vector of membrane-potential-like variables
//   - [System]: interface for ODE systems
//   - [Integrator]: numerical stepper interface
//   - [DriveSource]: time-varying external input schedule
//   - [Simulator]: orchestrates a single simulation run
//
// # Example
//
//	model, _ := shc.New(shc.DefaultParams())
//	integ := integrators.NewRK4()
//	sim := dynamo.New(model, integ, nil)
//	result, _ := sim.Run(ctx, model.DefaultState(), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel runs over independent
// initial conditions use the [Ensemble] type; a single trajectory is inherently
// sequential (step i+1 depends on step i).
package dynamo
