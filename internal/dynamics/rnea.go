package dynamics

import (
	"math"

	"github.com/san-kum/armsim/internal/arm"
)

// DefaultGravity is the conventional downward gravity vector.
var DefaultGravity = arm.Vec2{X: 0, Y: -9.81}

// Inverse computes joint torques from the chain's q, dq, ddq using the
// recursive Newton-Euler algorithm. It rewrites every derived link
// field (QAbs, W, DW, DV, DVC, F, N, Tau) in full.
//
// Gravity is folded in by giving the fixed base the acceleration -g,
// so the backward pass needs no separate weight terms. The terminal
// link carries the external tip load (FEx, FEy); the external tip
// moment is fixed at zero.
func Inverse(c *arm.Chain, gravity arm.Vec2) {
	links := c.Links()

	// Forward pass: propagate orientation, angular rates and linear
	// accelerations base to tip. The joint origin of link i sits at the
	// tip of link i-1, so its acceleration composes across the
	// predecessor's link vector with the predecessor's angular rates.
	prevAngle := 0.0
	prevW, prevDW := 0.0, 0.0
	prevAcc := gravity.Scale(-1)
	prevLinkVec := arm.Vec2{}

	for _, l := range links {
		l.QAbs = prevAngle + l.Q
		l.W = prevW + l.DQ
		l.DW = prevDW + l.DDQ

		l.DV = prevAcc.
			Add(arm.CrossZ(prevDW, prevLinkVec)).
			Sub(prevLinkVec.Scale(prevW * prevW))

		rc := l.COM().Rotate(l.QAbs)
		l.DVC = l.DV.
			Add(arm.CrossZ(l.DW, rc)).
			Sub(rc.Scale(l.W * l.W))

		prevAngle, prevW, prevDW = l.QAbs, l.W, l.DW
		prevAcc = l.DV
		prevLinkVec = linkVec(l)
	}

	// Backward pass: propagate interlink force and moment tip to base.
	// The net moment about each joint is the joint torque.
	for i := len(links) - 1; i >= 0; i-- {
		l := links[i]

		inertial := l.DVC.Scale(l.Prop.Mass)

		var succF arm.Vec2
		var succN float64
		if i == len(links)-1 {
			succF = arm.Vec2{X: l.FEx, Y: l.FEy}
		} else {
			succF = links[i+1].F
			succN = links[i+1].N
		}

		rc := l.COM().Rotate(l.QAbs)

		l.F = inertial.Add(succF)
		l.N = l.Prop.Inertia*l.DW + succN +
			rc.Cross(inertial) + linkVec(l).Cross(succF)
		l.Tau = l.N
	}
}

// linkVec returns the link's joint-to-tip vector in the base frame.
// Valid only after QAbs has been written for this pass.
func linkVec(l *arm.Link) arm.Vec2 {
	return arm.Vec2{
		X: l.Prop.Length * math.Cos(l.QAbs),
		Y: l.Prop.Length * math.Sin(l.QAbs),
	}
}
