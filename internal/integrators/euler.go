// Package integrators provides fixed-step integrators over
// [ode.System].
package integrators

import "github.com/san-kum/armsim/internal/ode"

// Euler is the explicit first-order method.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Step(sys ode.System, x ode.State, u ode.Control, t, dt float64) (ode.State, error) {
	dx, err := sys.Derivative(x, u, t)
	if err != nil {
		return nil, err
	}
	out := make(ode.State, len(x))
	for i := range x {
		out[i] = x[i] + dt*dx[i]
	}
	return out, nil
}
