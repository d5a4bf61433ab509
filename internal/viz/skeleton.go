package viz

import (
	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/kinematics"
)

// RenderSkeleton draws the chain's links as segments on a canvas and
// returns the text frame. The view is centered on the base with a
// reach-sized extent, so any pose of the arm fits.
func RenderSkeleton(c *arm.Chain, width, height int) string {
	canvas := NewCanvas(width, height)
	DrawSkeleton(canvas, c)
	return canvas.String()
}

// DrawSkeleton draws onto an existing canvas without clearing it,
// letting the live view keep a tip trail.
func DrawSkeleton(canvas *Canvas, c *arm.Chain) {
	pts := kinematics.JointPositions(c)
	px := make([]int, len(pts))
	py := make([]int, len(pts))
	for i, p := range pts {
		px[i], py[i] = canvas.project(p, reach(c))
	}
	for i := 0; i+1 < len(pts); i++ {
		canvas.Line(px[i], py[i], px[i+1], py[i+1])
	}
}

// DrawPoint marks a single base-frame point (used for tip trails).
func (c *Canvas) DrawPoint(p arm.Vec2, extent float64) {
	x, y := c.project(p, extent)
	c.Set(x, y)
}

// project maps a base-frame point into sub-pixel coordinates; the
// origin sits at the canvas center, y up.
func (c *Canvas) project(p arm.Vec2, extent float64) (int, int) {
	if extent <= 0 {
		extent = 1
	}
	w := float64(c.Width * 2)
	h := float64(c.Height * 4)
	scale := (minf(w, h) - 2) / (2 * extent)

	x := w/2 + p.X*scale
	y := h/2 - p.Y*scale
	return int(x), int(y)
}

// reach is the arm's maximum extent: the sum of link lengths.
func reach(c *arm.Chain) float64 {
	total := 0.0
	for _, l := range c.Links() {
		total += l.Prop.Length
	}
	return total
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
