package dynamics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/armsim/internal/arm"
)

// MassMatrix builds the configuration-dependent inertia matrix M(q) by
// probing inverse dynamics once per degree of freedom: column j is the
// torque produced by a unit acceleration of joint j with zero velocity,
// zero gravity and zero tip load.
//
// The chain's dq, ddq and tip load are restored before returning; only
// derived fields remain from the last probe.
func MassMatrix(c *arm.Chain) *mat.Dense {
	n := c.DOF()
	savedDQ := c.DQ()
	savedDDQ := c.DDQ()
	term := c.Terminal()
	savedFx, savedFy := term.FEx, term.FEy

	zero := make([]float64, n)
	c.SetDQ(zero)
	c.SetTipForce(0, 0)

	m := mat.NewDense(n, n, nil)
	probe := make([]float64, n)
	for j := 0; j < n; j++ {
		probe[j] = 1
		c.SetDDQ(probe)
		Inverse(c, arm.Vec2{})
		for i, l := range c.Links() {
			m.Set(i, j, l.Tau)
		}
		probe[j] = 0
	}

	c.SetDQ(savedDQ)
	c.SetDDQ(savedDDQ)
	c.SetTipForce(savedFx, savedFy)
	return m
}
