// Package ode provides the generic first-order system primitives used
// to integrate a chain's motion outside the fixed-step trajectory
// simulator (live view, scripted analysis).
package ode

import (
	"fmt"
	"math"
)

// State is a flat state vector (for an arm: joint angles followed by
// joint velocities).
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

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Control is a control input vector (joint torques).
type Control []float64

// System is an ODE dX/dt = f(X, u, t).
type System interface {
	Derivative(x State, u Control, t float64) (State, error)
	StateDim() int
	ControlDim() int
}

// Integrator advances a system state by one step of size dt.
type Integrator interface {
	Step(sys System, x State, u Control, t, dt float64) (State, error)
}

// StepError carries the step context of a failed integration.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
