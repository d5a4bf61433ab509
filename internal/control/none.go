// Package control provides control laws for the trajectory simulator.
package control

import (
	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/sim"
)

// None returns a passive control law (zero torque at every joint).
func None() sim.ControlLaw {
	return func(t float64, c *arm.Chain) []float64 {
		return make([]float64, c.DOF())
	}
}

// Constant returns a control law applying the same torques at every
// step.
func Constant(tau []float64) sim.ControlLaw {
	return func(t float64, c *arm.Chain) []float64 {
		out := make([]float64, len(tau))
		copy(out, tau)
		return out
	}
}
