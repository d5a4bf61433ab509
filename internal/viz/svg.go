package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/kinematics"
)

// SkeletonSVG renders a sequence of arm poses as overlaid polylines,
// fading from the first pose to the last. The chain is posed through
// each q row in turn and left at the final pose.
func SkeletonSVG(c *arm.Chain, poses [][]float64, size float64) (string, error) {
	extent := reach(c)
	scale := size / (2 * extent * 1.1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#101018"/>
`, size, size, size, size))

	for k, q := range poses {
		if err := c.SetQ(q); err != nil {
			return "", err
		}
		pts := kinematics.JointPositions(c)

		opacity := 0.15 + 0.85*float64(k)/float64(maxInt(len(poses)-1, 1))
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="#4fd6be" stroke-width="2" opacity="%.3f" points="`, opacity))
		for i, p := range pts {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.2f,%.2f",
				size/2+p.X*scale, size/2-p.Y*scale))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="3" fill="#e0e0e8"/>`, size/2, size/2))
	sb.WriteString("\n</svg>\n")
	return sb.String(), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
