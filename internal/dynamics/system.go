package dynamics

import (
	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/ode"
)

// ArmSystem exposes a chain as a first-order ODE with state
// [q0..qN-1, dq0..dqN-1] and control input the joint torque vector.
// The wrapped chain is used as scratch space; an ArmSystem must not be
// shared across goroutines.
type ArmSystem struct {
	chain   *arm.Chain
	gravity arm.Vec2
}

// NewArmSystem wraps a chain for generic integration.
func NewArmSystem(c *arm.Chain, gravity arm.Vec2) *ArmSystem {
	return &ArmSystem{chain: c, gravity: gravity}
}

func (s *ArmSystem) StateDim() int   { return 2 * s.chain.DOF() }
func (s *ArmSystem) ControlDim() int { return s.chain.DOF() }

// Chain returns the wrapped chain.
func (s *ArmSystem) Chain() *arm.Chain { return s.chain }

// Derivative returns [dq, ddq] for the given state and torques.
func (s *ArmSystem) Derivative(x ode.State, u ode.Control, t float64) (ode.State, error) {
	n := s.chain.DOF()
	if len(x) != 2*n {
		return nil, ErrDimensionMismatch
	}

	if err := s.chain.SetQ(x[:n]); err != nil {
		return nil, err
	}
	if err := s.chain.SetDQ(x[n:]); err != nil {
		return nil, err
	}

	tau := make([]float64, n)
	copy(tau, u)

	ddq, err := Forward(s.chain, tau, s.gravity)
	if err != nil {
		return nil, err
	}

	dx := make(ode.State, 2*n)
	copy(dx[:n], x[n:])
	copy(dx[n:], ddq)
	return dx, nil
}

// Energy returns the total energy at the given state, letting energy
// observers work on the ODE view.
func (s *ArmSystem) Energy(x ode.State) float64 {
	n := s.chain.DOF()
	if len(x) != 2*n {
		return 0
	}
	s.chain.SetQ(x[:n])
	s.chain.SetDQ(x[n:])
	return TotalEnergy(s.chain, s.gravity)
}
