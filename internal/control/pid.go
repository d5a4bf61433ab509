package control

import (
	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/sim"
)

// PID is an independent-joint PID regulator toward target joint
// angles. It keeps per-joint integral and derivative state, so one PID
// instance serves one simulation run.
type PID struct {
	Kp, Ki, Kd float64
	Targets    []float64

	integral []float64
	prevErr  []float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd float64, targets []float64) *PID {
	return &PID{
		Kp: kp, Ki: ki, Kd: kd,
		Targets:  targets,
		integral: make([]float64, len(targets)),
		prevErr:  make([]float64, len(targets)),
		first:    true,
	}
}

// Law adapts the PID to a [sim.ControlLaw].
func (p *PID) Law() sim.ControlLaw {
	return func(t float64, c *arm.Chain) []float64 {
		return p.Compute(t, c)
	}
}

// Compute returns the joint torques for the current chain state.
func (p *PID) Compute(t float64, c *arm.Chain) []float64 {
	n := c.DOF()
	tau := make([]float64, n)
	if len(p.Targets) != n {
		return tau
	}

	q := c.Q()
	if p.first {
		for i := range tau {
			p.prevErr[i] = p.Targets[i] - q[i]
			tau[i] = p.Kp * p.prevErr[i]
		}
		p.prevT = t
		p.first = false
		return tau
	}

	dt := t - p.prevT
	for i := range tau {
		err := p.Targets[i] - q[i]
		if dt > 0 {
			p.integral[i] += err * dt
			derivative := (err - p.prevErr[i]) / dt
			tau[i] = p.Kp*err + p.Ki*p.integral[i] + p.Kd*derivative
		} else {
			tau[i] = p.Kp * err
		}
		p.prevErr[i] = err
	}
	if dt > 0 {
		p.prevT = t
	}
	return tau
}

// Reset clears the integral and derivative state.
func (p *PID) Reset() {
	for i := range p.integral {
		p.integral[i] = 0
		p.prevErr[i] = 0
	}
	p.first = true
}
