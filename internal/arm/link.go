package arm

import "fmt"

// LinkProperty holds the immutable physical description of one link.
// COM is the center-of-mass offset in the link's own frame; QMin/QMax
// are the joint angle limits.
type LinkProperty struct {
	Length  float64
	Mass    float64
	Inertia float64
	RGx     float64
	RGy     float64
	QMin    float64
	QMax    float64
}

// Validate reports whether the property describes a physical link.
func (p LinkProperty) Validate() error {
	if p.Length <= 0 {
		return fmt.Errorf("%w: length %g must be positive", ErrInvalidProperty, p.Length)
	}
	if p.Mass < 0 {
		return fmt.Errorf("%w: mass %g must be non-negative", ErrInvalidProperty, p.Mass)
	}
	if p.Inertia < 0 {
		return fmt.Errorf("%w: inertia %g must be non-negative", ErrInvalidProperty, p.Inertia)
	}
	if p.QMin > p.QMax {
		return fmt.Errorf("%w: qmin %g exceeds qmax %g", ErrInvalidProperty, p.QMin, p.QMax)
	}
	return nil
}

// LinkState holds the mutable kinematic and dynamic state of one link.
// Q, DQ, DDQ are the joint inputs; everything else is derived and is
// recomputed in full by the owning algorithm on every call.
type LinkState struct {
	Q   float64 // joint angle, relative to predecessor
	DQ  float64 // joint angular velocity
	DDQ float64 // joint angular acceleration

	QAbs float64 // absolute orientation in the base frame
	W    float64 // absolute angular velocity (planar scalar)
	DW   float64 // absolute angular acceleration

	DV  Vec2 // linear acceleration of the joint origin, base frame
	DVC Vec2 // linear acceleration of the center of mass, base frame

	F   Vec2    // force exerted by the predecessor on this link
	N   float64 // moment exerted by the predecessor on this link
	Tau float64 // joint torque

	X, Y   float64 // joint position, base frame
	XE, YE float64 // tip position, base frame

	// External load carried at the tip of the terminal link. The
	// external tip moment is fixed at zero.
	FEx, FEy float64
}

// Link pairs immutable properties with mutable state.
type Link struct {
	Prop LinkProperty
	LinkState
}

// COM returns the center-of-mass offset in the link's own frame.
func (l *Link) COM() Vec2 { return Vec2{l.Prop.RGx, l.Prop.RGy} }
