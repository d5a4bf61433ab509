// Package metrics provides simulation observers for run bookkeeping.
package metrics

import (
	"math"

	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/dynamics"
)

// EnergyDrift tracks the worst relative deviation of the chain's total
// energy from its value at the first observed step. Useful to judge
// integrator quality on passive runs.
type EnergyDrift struct {
	gravity  arm.Vec2
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(gravity arm.Vec2) *EnergyDrift {
	return &EnergyDrift{gravity: gravity}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) OnStep(t float64, c *arm.Chain, tau []float64) {
	energy := dynamics.TotalEnergy(c, e.gravity)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// ControlEffort accumulates the mean absolute applied torque.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) OnStep(t float64, ch *arm.Chain, tau []float64) {
	for _, v := range tau {
		c.sum += math.Abs(v)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
