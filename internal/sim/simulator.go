// Package sim drives a chain forward in time under a control law.
//
// Integration is semi-implicit Euler with a caller-fixed step: the
// velocity is updated first and the position advances with the updated
// velocity. The scheme is fixed; there is no adaptive step control.
package sim

import (
	"fmt"

	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/dynamics"
	"github.com/san-kum/armsim/internal/ode"
)

// ControlLaw maps the current time and chain state to applied joint
// torques. Outputs are not sanitized: non-finite torques surface as a
// numeric-validity error at the next forward-dynamics call.
type ControlLaw func(t float64, c *arm.Chain) []float64

// Observer is notified after each completed step.
type Observer interface {
	OnStep(t float64, c *arm.Chain, tau []float64)
}

// Config fixes the time span and step of a run.
type Config struct {
	Start   float64
	End     float64
	Dt      float64
	Gravity arm.Vec2
}

// Result holds the sampled trajectory: one row per sample, one column
// per degree of freedom.
type Result struct {
	Times []float64
	Q     [][]float64
	DQ    [][]float64
}

// Samples returns the number of stored samples.
func (r *Result) Samples() int { return len(r.Times) }

// Column extracts one joint's angle trajectory.
func (r *Result) Column(joint int) []float64 {
	col := make([]float64, len(r.Q))
	for i, row := range r.Q {
		col[i] = row[joint]
	}
	return col
}

// Simulator owns a chain for the duration of a run, mutating its state
// in place. It is not safe for concurrent use; see [RunBatch] for
// parallel sweeps.
type Simulator struct {
	chain     *arm.Chain
	law       ControlLaw
	observers []Observer
}

func New(chain *arm.Chain, law ControlLaw) *Simulator {
	return &Simulator{chain: chain, law: law}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates over [cfg.Start, cfg.End]. The initial state is
// sampled first; the loop terminates once t reaches cfg.End. A failing
// forward-dynamics call aborts the run, returning the samples gathered
// so far alongside the step-contexted error.
func (s *Simulator) Run(cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.End < cfg.Start {
		return nil, fmt.Errorf("sim: end %g before start %g", cfg.End, cfg.Start)
	}

	n := s.chain.DOF()
	steps := int((cfg.End - cfg.Start) / cfg.Dt)
	res := &Result{
		Times: make([]float64, 0, steps+1),
		Q:     make([][]float64, 0, steps+1),
		DQ:    make([][]float64, 0, steps+1),
	}

	t := cfg.Start
	res.append(t, s.chain)

	for step := 0; t < cfg.End; step++ {
		tau := s.law(t, s.chain)

		ddq, err := dynamics.Forward(s.chain, tau, cfg.Gravity)
		if err != nil {
			return res, &ode.StepError{Step: step, Time: t, Wrapped: err}
		}

		// Semi-implicit Euler: dq first, then q with the updated dq.
		q := make([]float64, n)
		dq := make([]float64, n)
		for i, l := range s.chain.Links() {
			dq[i] = l.DQ + ddq[i]*cfg.Dt
			q[i] = l.Q + dq[i]*cfg.Dt
		}
		s.chain.SetQ(q)
		s.chain.SetDQ(dq)
		s.chain.SetDDQ(ddq)

		t = cfg.Start + float64(step+1)*cfg.Dt
		res.append(t, s.chain)

		for _, o := range s.observers {
			o.OnStep(t, s.chain, tau)
		}
	}

	return res, nil
}

func (r *Result) append(t float64, c *arm.Chain) {
	r.Times = append(r.Times, t)
	r.Q = append(r.Q, c.Q())
	r.DQ = append(r.DQ, c.DQ())
}
