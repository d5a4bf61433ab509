package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/armsim/internal/ode"
)

// decay is dx/dt = -x, solution x(t) = x0·e^{-t}.
type decay struct{}

func (decay) Derivative(x ode.State, u ode.Control, t float64) (ode.State, error) {
	return ode.State{-x[0]}, nil
}
func (decay) StateDim() int   { return 1 }
func (decay) ControlDim() int { return 0 }

// oscillator is the harmonic oscillator dx/dt = v, dv/dt = -x.
type oscillator struct{}

func (oscillator) Derivative(x ode.State, u ode.Control, t float64) (ode.State, error) {
	return ode.State{x[1], -x[0]}, nil
}
func (oscillator) StateDim() int   { return 2 }
func (oscillator) ControlDim() int { return 0 }

func integrate(t *testing.T, integ ode.Integrator, sys ode.System, x0 ode.State, dt float64, steps int) ode.State {
	t.Helper()
	x := x0.Clone()
	tt := 0.0
	for i := 0; i < steps; i++ {
		var err error
		x, err = integ.Step(sys, x, nil, tt, dt)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		tt += dt
	}
	return x
}

func TestEulerDecay(t *testing.T) {
	x := integrate(t, NewEuler(), decay{}, ode.State{1.0}, 0.001, 1000)
	want := math.Exp(-1.0)
	if math.Abs(x[0]-want) > 1e-3 {
		t.Errorf("euler: got %v, want %v", x[0], want)
	}
}

func TestRK4Decay(t *testing.T) {
	x := integrate(t, NewRK4(), decay{}, ode.State{1.0}, 0.01, 100)
	want := math.Exp(-1.0)
	if math.Abs(x[0]-want) > 1e-9 {
		t.Errorf("rk4: got %v, want %v", x[0], want)
	}
}

func TestRK4Oscillator(t *testing.T) {
	// One full period returns to the initial state.
	steps := 1000
	dt := 2 * math.Pi / float64(steps)
	x := integrate(t, NewRK4(), oscillator{}, ode.State{1.0, 0.0}, dt, steps)

	if math.Abs(x[0]-1.0) > 1e-6 || math.Abs(x[1]) > 1e-6 {
		t.Errorf("rk4 period: got %v", x)
	}
}

func TestRK4BeatsEuler(t *testing.T) {
	dt, steps := 0.01, 100
	want := math.Exp(-1.0)

	euler := integrate(t, NewEuler(), decay{}, ode.State{1.0}, dt, steps)
	rk4 := integrate(t, NewRK4(), decay{}, ode.State{1.0}, dt, steps)

	if math.Abs(rk4[0]-want) >= math.Abs(euler[0]-want) {
		t.Error("rk4 should be more accurate than euler at equal dt")
	}
}
