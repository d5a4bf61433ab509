// Package arm defines the link and chain model for a planar
// serial-chain robot arm with revolute joints.
//
// A [Chain] owns its links exclusively; it is not safe for concurrent
// mutation. For parallel work, give each goroutine its own chain via
// [Chain.Clone].
package arm

import "fmt"

// Chain is an ordered sequence of links rooted at a fixed base.
// Index 0 is the base-adjacent link, index N-1 the terminal link.
type Chain struct {
	links []*Link
}

// NewChain builds a chain from link properties with all state zeroed.
func NewChain(props []LinkProperty) (*Chain, error) {
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: chain needs at least one link", ErrInvalidProperty)
	}
	links := make([]*Link, len(props))
	for i, p := range props {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		links[i] = &Link{Prop: p}
	}
	return &Chain{links: links}, nil
}

// DOF returns the degree-of-freedom count (number of links).
func (c *Chain) DOF() int { return len(c.links) }

// Links returns the chain's links in base-to-tip order. The slice is
// owned by the chain; callers mutate link state through it.
func (c *Chain) Links() []*Link { return c.links }

// Link returns the link at index i.
func (c *Chain) Link(i int) *Link { return c.links[i] }

// Terminal returns the tip-most link.
func (c *Chain) Terminal() *Link { return c.links[len(c.links)-1] }

// Clone returns an independent copy sharing no state with the
// original.
func (c *Chain) Clone() *Chain {
	links := make([]*Link, len(c.links))
	for i, l := range c.links {
		cp := *l
		links[i] = &cp
	}
	return &Chain{links: links}
}

func (c *Chain) checkLen(v []float64, what string) error {
	if len(v) != len(c.links) {
		return fmt.Errorf("%w: expected %d %s, got %d",
			ErrDimensionMismatch, len(c.links), what, len(v))
	}
	return nil
}

// Q returns the joint angles, index-aligned with the links.
func (c *Chain) Q() []float64 {
	q := make([]float64, len(c.links))
	for i, l := range c.links {
		q[i] = l.Q
	}
	return q
}

// SetQ assigns joint angles. On dimension mismatch the state is left
// unchanged.
func (c *Chain) SetQ(q []float64) error {
	if err := c.checkLen(q, "joint angles"); err != nil {
		return err
	}
	for i, l := range c.links {
		l.Q = q[i]
	}
	return nil
}

// DQ returns the joint angular velocities.
func (c *Chain) DQ() []float64 {
	dq := make([]float64, len(c.links))
	for i, l := range c.links {
		dq[i] = l.DQ
	}
	return dq
}

// SetDQ assigns joint angular velocities.
func (c *Chain) SetDQ(dq []float64) error {
	if err := c.checkLen(dq, "joint velocities"); err != nil {
		return err
	}
	for i, l := range c.links {
		l.DQ = dq[i]
	}
	return nil
}

// DDQ returns the joint angular accelerations.
func (c *Chain) DDQ() []float64 {
	ddq := make([]float64, len(c.links))
	for i, l := range c.links {
		ddq[i] = l.DDQ
	}
	return ddq
}

// SetDDQ assigns joint angular accelerations.
func (c *Chain) SetDDQ(ddq []float64) error {
	if err := c.checkLen(ddq, "joint accelerations"); err != nil {
		return err
	}
	for i, l := range c.links {
		l.DDQ = ddq[i]
	}
	return nil
}

// Tau returns the joint torques computed by the last inverse-dynamics
// pass.
func (c *Chain) Tau() []float64 {
	tau := make([]float64, len(c.links))
	for i, l := range c.links {
		tau[i] = l.Tau
	}
	return tau
}

// SetTipForce sets the external load carried at the terminal link's
// tip.
func (c *Chain) SetTipForce(fx, fy float64) {
	t := c.Terminal()
	t.FEx, t.FEy = fx, fy
}
