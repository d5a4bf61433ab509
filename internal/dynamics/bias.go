package dynamics

import "github.com/san-kum/armsim/internal/arm"

// Bias computes the combined Coriolis, centrifugal, gravity and
// tip-load torque contribution at the chain's current q, dq: one
// inverse-dynamics probe with ddq = 0 and the actual gravity.
//
// With dq = 0 this reduces to the pure gravity (plus tip-load) torque;
// with zero gravity it isolates the velocity-dependent terms. The
// chain's ddq is restored before returning.
func Bias(c *arm.Chain, gravity arm.Vec2) []float64 {
	savedDDQ := c.DDQ()

	c.SetDDQ(make([]float64, c.DOF()))
	Inverse(c, gravity)
	bias := c.Tau()

	c.SetDDQ(savedDDQ)
	return bias
}
