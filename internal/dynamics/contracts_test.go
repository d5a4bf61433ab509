package dynamics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/dynamics"
)

func prop(length, mass, inertia, rgx, rgy float64) arm.LinkProperty {
	return arm.LinkProperty{
		Length: length, Mass: mass, Inertia: inertia,
		RGx: rgx, RGy: rgy,
		QMin: -math.Pi, QMax: math.Pi,
	}
}

func mustChain(props ...arm.LinkProperty) *arm.Chain {
	c, err := arm.NewChain(props)
	Expect(err).NotTo(HaveOccurred())
	return c
}

func threeLink() *arm.Chain {
	return mustChain(
		prop(1.0, 1.0, 0.1, 0.5, 0.0),
		prop(0.8, 1.5, 0.3, 0.4, 0.1),
		prop(0.6, 0.7, 0.05, 0.25, -0.05),
	)
}

var _ = Describe("Inverse dynamics", func() {
	DescribeTable("produces zero torque with zero state and zero gravity",
		func(q []float64) {
			c := threeLink()
			Expect(c.SetQ(q)).To(Succeed())

			dynamics.Inverse(c, arm.Vec2{})

			for _, tau := range c.Tau() {
				Expect(tau).To(BeNumerically("~", 0, 1e-12))
			}
		},
		Entry("stretched", []float64{0, 0, 0}),
		Entry("folded", []float64{math.Pi / 2, -math.Pi / 3, math.Pi / 4}),
		Entry("arbitrary", []float64{0.17, 1.2, -2.4}),
	)

	It("matches the static weight moment for a horizontal link", func() {
		c := mustChain(prop(1.0, 1.0, 0.1, 0.5, 0.0))
		dynamics.Inverse(c, arm.Vec2{X: 0, Y: -9.81})
		Expect(c.Tau()[0]).To(BeNumerically("~", 0.5*1.0*9.81, 1e-9))
	})

	It("produces zero torque for a vertical link under gravity", func() {
		c := mustChain(prop(1.0, 1.0, 0.1, 0.5, 0.0))
		Expect(c.SetQ([]float64{math.Pi / 2})).To(Succeed())
		dynamics.Inverse(c, arm.Vec2{X: 0, Y: -9.81})
		Expect(c.Tau()[0]).To(BeNumerically("~", 0, 1e-9))
	})

	It("matches the geometric weight moment for a two-link static pose", func() {
		c := mustChain(
			prop(1.0, 2.0, 0.2, 0.5, 0.0),
			prop(0.8, 1.0, 0.1, 0.4, 0.0),
		)
		q := []float64{0.3, -0.5}
		Expect(c.SetQ(q)).To(Succeed())

		g := 9.81
		dynamics.Inverse(c, arm.Vec2{X: 0, Y: -g})

		// Independent check from the chain geometry: torque at each
		// joint equals the weight moment of every outboard COM.
		x1 := 0.5 * math.Cos(q[0])
		elbowX := 1.0 * math.Cos(q[0])
		x2 := elbowX + 0.4*math.Cos(q[0]+q[1])

		Expect(c.Tau()[1]).To(BeNumerically("~", 1.0*g*(x2-elbowX), 1e-9))
		Expect(c.Tau()[0]).To(BeNumerically("~", 2.0*g*x1+1.0*g*x2, 1e-9))
	})

	It("transfers a tip load into the joint torque", func() {
		c := mustChain(prop(1.0, 0.0, 0.0, 0.0, 0.0))
		c.SetTipForce(0, 2.5)

		dynamics.Inverse(c, arm.Vec2{})

		// Horizontal massless link supporting 2.5 N upward at the tip.
		Expect(c.Tau()[0]).To(BeNumerically("~", 2.5, 1e-12))
	})
})

var _ = Describe("Mass matrix", func() {
	It("reduces to the parallel-axis closed form for one link", func() {
		c := mustChain(prop(1.0, 1.0, 0.1, 0.5, 0.2))
		m := dynamics.MassMatrix(c)

		r, cols := m.Dims()
		Expect(r).To(Equal(1))
		Expect(cols).To(Equal(1))
		Expect(m.At(0, 0)).To(BeNumerically("~", 0.1+1.0*(0.5*0.5+0.2*0.2), 1e-12))
	})

	DescribeTable("is symmetric for any configuration",
		func(q []float64) {
			c := threeLink()
			Expect(c.SetQ(q)).To(Succeed())

			m := dynamics.MassMatrix(c)
			n, _ := m.Dims()
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					Expect(m.At(i, j)).To(BeNumerically("~", m.At(j, i), 1e-10))
				}
			}
		},
		Entry("zero", []float64{0, 0, 0}),
		Entry("bent", []float64{0.4, -1.1, 2.0}),
		Entry("wrapped", []float64{3.0, 2.5, -2.9}),
	)

	It("ignores velocity, tip load and restores the probed state", func() {
		c := threeLink()
		c.SetQ([]float64{0.2, 0.3, -0.1})
		c.SetDQ([]float64{5, -3, 2})
		c.SetDDQ([]float64{1, 1, 1})
		c.SetTipForce(10, -10)

		still := threeLink()
		still.SetQ([]float64{0.2, 0.3, -0.1})

		m := dynamics.MassMatrix(c)
		ref := dynamics.MassMatrix(still)

		n, _ := m.Dims()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				Expect(m.At(i, j)).To(BeNumerically("~", ref.At(i, j), 1e-12))
			}
		}
		Expect(c.DQ()).To(Equal([]float64{5, -3, 2}))
		Expect(c.DDQ()).To(Equal([]float64{1, 1, 1}))
		Expect(c.Terminal().FEx).To(Equal(10.0))
	})
})

var _ = Describe("Bias vector", func() {
	It("reduces to the gravity torque at zero velocity", func() {
		c := threeLink()
		c.SetQ([]float64{0.5, -0.3, 0.8})

		bias := dynamics.Bias(c, dynamics.DefaultGravity)

		dynamics.Inverse(c, dynamics.DefaultGravity)
		Expect(bias).To(HaveLen(3))
		for i, tau := range c.Tau() {
			Expect(bias[i]).To(BeNumerically("~", tau, 1e-12))
		}
	})

	It("isolates velocity terms with zero gravity", func() {
		c := threeLink()
		c.SetQ([]float64{0.5, -0.3, 0.8})
		c.SetDQ([]float64{1.0, -2.0, 0.5})

		bias := dynamics.Bias(c, arm.Vec2{})

		// Quadratic in dq: doubling the velocity quadruples the bias.
		c.SetDQ([]float64{2.0, -4.0, 1.0})
		bias2 := dynamics.Bias(c, arm.Vec2{})
		for i := range bias {
			Expect(bias2[i]).To(BeNumerically("~", 4*bias[i], 1e-9))
		}
	})

	It("restores the chain's acceleration state", func() {
		c := threeLink()
		c.SetDDQ([]float64{1, 2, 3})
		dynamics.Bias(c, dynamics.DefaultGravity)
		Expect(c.DDQ()).To(Equal([]float64{1, 2, 3}))
	})
})

var _ = Describe("Forward dynamics", func() {
	DescribeTable("round trips through inverse dynamics",
		func(q, dq, tau []float64) {
			c := threeLink()
			Expect(c.SetQ(q)).To(Succeed())
			Expect(c.SetDQ(dq)).To(Succeed())

			ddq, err := dynamics.Forward(c, tau, dynamics.DefaultGravity)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.SetDDQ(ddq)).To(Succeed())
			dynamics.Inverse(c, dynamics.DefaultGravity)

			for i, got := range c.Tau() {
				Expect(got).To(BeNumerically("~", tau[i], 1e-6))
			}
		},
		Entry("rest", []float64{0, 0, 0}, []float64{0, 0, 0}, []float64{1, -1, 0.5}),
		Entry("moving", []float64{0.9, -0.4, 1.7}, []float64{2, 1, -3}, []float64{0.3, 0, -2}),
		Entry("fast", []float64{-1.2, 2.8, 0.1}, []float64{-5, 4, 6}, []float64{10, -7, 2}),
	)

	It("conserves kinetic energy with zero torque and zero gravity", func() {
		c := threeLink()
		q := []float64{0.7, -1.1, 0.4}
		dq := []float64{1.5, -0.8, 2.0}
		c.SetQ(q)
		c.SetDQ(dq)

		ddq, err := dynamics.Forward(c, []float64{0, 0, 0}, arm.Vec2{})
		Expect(err).NotTo(HaveOccurred())

		// Central difference of KE along the flow; the exact rate is
		// the applied power, zero here.
		const h = 1e-5
		ke := func(sign float64) float64 {
			p := threeLink()
			for i := range q {
				p.Links()[i].Q = q[i] + sign*h*dq[i]
				p.Links()[i].DQ = dq[i] + sign*h*ddq[i]
			}
			return dynamics.KineticEnergy(p)
		}
		rate := (ke(1) - ke(-1)) / (2 * h)
		Expect(rate).To(BeNumerically("~", 0, 1e-6))
	})

	It("agrees with the quadratic-form kinetic energy", func() {
		c := threeLink()
		c.SetQ([]float64{0.3, 1.1, -0.6})
		dq := []float64{0.5, -1.5, 2.5}
		c.SetDQ(dq)

		m := dynamics.MassMatrix(c)
		quad := 0.0
		for i := range dq {
			for j := range dq {
				quad += 0.5 * dq[i] * m.At(i, j) * dq[j]
			}
		}
		Expect(dynamics.KineticEnergy(c)).To(BeNumerically("~", quad, 1e-9))
	})

	It("reports a singular configuration for a massless chain", func() {
		c := mustChain(prop(1.0, 0.0, 0.0, 0.0, 0.0))
		_, err := dynamics.Forward(c, []float64{1.0}, arm.Vec2{})
		Expect(err).To(MatchError(dynamics.ErrSingularConfiguration))
	})

	It("rejects non-finite torques", func() {
		c := threeLink()
		_, err := dynamics.Forward(c, []float64{math.NaN(), 0, 0}, arm.Vec2{})
		Expect(err).To(MatchError(dynamics.ErrNumericInvalidity))
	})

	It("rejects torque vectors of the wrong length", func() {
		c := threeLink()
		_, err := dynamics.Forward(c, []float64{1.0}, arm.Vec2{})
		Expect(err).To(MatchError(dynamics.ErrDimensionMismatch))
	})
})
