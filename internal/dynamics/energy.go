package dynamics

import (
	"math"

	"github.com/san-kum/armsim/internal/arm"
)

// KineticEnergy returns the chain's total kinetic energy at its
// current q, dq, from a direct base-to-tip velocity propagation
// (independent of the mass matrix, which makes it a useful
// cross-check: KE == 0.5·dqᵀ·M(q)·dq).
func KineticEnergy(c *arm.Chain) float64 {
	angle := 0.0
	w := 0.0
	vJoint := arm.Vec2{}

	ke := 0.0
	for _, l := range c.Links() {
		angle += l.Q
		w += l.DQ

		rc := l.COM().Rotate(angle)
		vc := vJoint.Add(arm.CrossZ(w, rc))

		ke += 0.5*l.Prop.Mass*(vc.X*vc.X+vc.Y*vc.Y) + 0.5*l.Prop.Inertia*w*w

		lv := arm.Vec2{
			X: l.Prop.Length * math.Cos(angle),
			Y: l.Prop.Length * math.Sin(angle),
		}
		vJoint = vJoint.Add(arm.CrossZ(w, lv))
	}
	return ke
}

// PotentialEnergy returns the gravitational potential energy at the
// chain's current q, measured against the base origin: -Σ mᵢ·(g·pᵢ)
// with pᵢ the center of mass of link i in the base frame.
func PotentialEnergy(c *arm.Chain, gravity arm.Vec2) float64 {
	angle := 0.0
	joint := arm.Vec2{}

	pe := 0.0
	for _, l := range c.Links() {
		angle += l.Q
		com := joint.Add(l.COM().Rotate(angle))
		pe -= l.Prop.Mass * (gravity.X*com.X + gravity.Y*com.Y)

		joint = joint.Add(arm.Vec2{
			X: l.Prop.Length * math.Cos(angle),
			Y: l.Prop.Length * math.Sin(angle),
		})
	}
	return pe
}

// TotalEnergy returns kinetic plus potential energy.
func TotalEnergy(c *arm.Chain, gravity arm.Vec2) float64 {
	return KineticEnergy(c) + PotentialEnergy(c, gravity)
}
