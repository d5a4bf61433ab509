package dynamics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/armsim/internal/arm"
)

// Forward computes joint accelerations for the applied torques at the
// chain's current q, dq by solving M(q)·ddq = tau - bias(q, dq, g).
//
// A mass matrix that is singular to numerical tolerance is reported as
// [ErrSingularConfiguration]; non-finite torques or chain state as
// [ErrNumericInvalidity]. No partial result is returned and the
// chain's q, dq are never modified.
func Forward(c *arm.Chain, tau []float64, gravity arm.Vec2) ([]float64, error) {
	n := c.DOF()
	if len(tau) != n {
		return nil, fmt.Errorf("%w: expected %d torques, got %d",
			ErrDimensionMismatch, n, len(tau))
	}
	if !finite(tau) || !finite(c.Q()) || !finite(c.DQ()) || !gravity.IsValid() {
		return nil, fmt.Errorf("%w in forward dynamics input", ErrNumericInvalidity)
	}

	m := MassMatrix(c)
	bias := Bias(c, gravity)

	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, tau[i]-bias[i])
	}

	var lu mat.LU
	lu.Factorize(m)
	ddq := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(ddq, false, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularConfiguration, err)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = ddq.AtVec(i)
	}
	if !finite(out) {
		return nil, fmt.Errorf("%w: solve produced non-finite accelerations",
			ErrSingularConfiguration)
	}
	return out, nil
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
