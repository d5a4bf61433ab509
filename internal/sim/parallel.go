package sim

import (
	"context"
	"sync"

	"github.com/san-kum/armsim/internal/arm"
)

// Variant is one element of a batch sweep: an initial state and a
// control law applied to a clone of the base chain.
type Variant struct {
	Q0  []float64
	DQ0 []float64
	Law ControlLaw
}

// RunBatch simulates every variant in parallel, one cloned chain per
// goroutine (chains share no state, so the runs are independent). The
// first error wins; cancellation is checked between runs, not inside a
// run.
func RunBatch(ctx context.Context, base *arm.Chain, cfg Config, variants []Variant) ([]*Result, error) {
	results := make([]*Result, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	for i, v := range variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			c := base.Clone()
			if v.Q0 != nil {
				if err := c.SetQ(v.Q0); err != nil {
					errs[idx] = err
					return
				}
			}
			if v.DQ0 != nil {
				if err := c.SetDQ(v.DQ0); err != nil {
					errs[idx] = err
					return
				}
			}

			results[idx], errs[idx] = New(c, v.Law).Run(cfg)
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
