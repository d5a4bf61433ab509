// Package kinematics computes link and tip positions for a planar
// chain in the base frame.
package kinematics

import (
	"math"

	"github.com/san-kum/armsim/internal/arm"
)

// Forward walks the chain base to tip, writing each link's joint
// position (X, Y), tip position (XE, YE) and absolute orientation
// (QAbs). The base joint sits at the origin with zero orientation.
// Prior position data is overwritten unconditionally.
func Forward(c *arm.Chain) {
	pos := arm.Vec2{}
	angle := 0.0

	for _, l := range c.Links() {
		l.X, l.Y = pos.X, pos.Y

		angle += l.Q
		l.QAbs = angle

		pos = pos.Add(arm.Vec2{
			X: l.Prop.Length * math.Cos(angle),
			Y: l.Prop.Length * math.Sin(angle),
		})
		l.XE, l.YE = pos.X, pos.Y
	}
}

// TipPosition runs Forward and returns the terminal link's tip.
func TipPosition(c *arm.Chain) arm.Vec2 {
	Forward(c)
	t := c.Terminal()
	return arm.Vec2{X: t.XE, Y: t.YE}
}

// JointPositions runs Forward and returns the N+1 points of the
// skeleton polyline: every joint position followed by the tip.
func JointPositions(c *arm.Chain) []arm.Vec2 {
	Forward(c)
	pts := make([]arm.Vec2, 0, c.DOF()+1)
	for _, l := range c.Links() {
		pts = append(pts, arm.Vec2{X: l.X, Y: l.Y})
	}
	t := c.Terminal()
	return append(pts, arm.Vec2{X: t.XE, Y: t.YE})
}
