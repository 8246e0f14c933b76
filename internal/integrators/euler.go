package integrators

import "github.com/m-kovac/shcsim/internal/dynamo"

// Euler is the forward Euler stepper, kept for integrator comparisons. It
// needs a much smaller dt than RK4 for the stiff depression variables.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, u dynamo.Drive, t float64, dt float64) dynamo.State {
	dx := sys.Derive(x, u, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
