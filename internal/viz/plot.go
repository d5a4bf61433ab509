package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/armsim/internal/sim"
)

// PlotAngles renders every joint's angle trajectory as a stacked set
// of ascii charts.
func PlotAngles(res *sim.Result, height int) string {
	return plotColumns(res.Q, "q", height)
}

// PlotVelocities renders every joint's velocity trajectory.
func PlotVelocities(res *sim.Result, height int) string {
	return plotColumns(res.DQ, "dq", height)
}

func plotColumns(rows [][]float64, label string, height int) string {
	if len(rows) == 0 {
		return ""
	}
	dof := len(rows[0])

	var sb strings.Builder
	for j := 0; j < dof; j++ {
		col := make([]float64, len(rows))
		for i, row := range rows {
			col[i] = row[j]
		}
		sb.WriteString(HeaderStyle.Render(fmt.Sprintf("%s[%d]", label, j)))
		sb.WriteByte('\n')
		sb.WriteString(asciigraph.Plot(col,
			asciigraph.Height(height),
			asciigraph.Width(72),
		))
		sb.WriteString("\n\n")
	}
	return sb.String()
}
