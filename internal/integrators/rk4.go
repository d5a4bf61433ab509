package integrators

import "github.com/san-kum/armsim/internal/ode"

// RK4 is the classic fourth-order Runge-Kutta method.
type RK4 struct {
	scratch ode.State
}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Step(sys ode.System, x ode.State, u ode.Control, t, dt float64) (ode.State, error) {
	n := len(x)
	if len(r.scratch) != n {
		r.scratch = make(ode.State, n)
	}

	k1, err := sys.Derivative(x, u, t)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2, err := sys.Derivative(r.scratch, u, t+dt*0.5)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*k2[i]
	}
	k3, err := sys.Derivative(r.scratch, u, t+dt*0.5)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*k3[i]
	}
	k4, err := sys.Derivative(r.scratch, u, t+dt)
	if err != nil {
		return nil, err
	}

	out := make(ode.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		out[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out, nil
}
