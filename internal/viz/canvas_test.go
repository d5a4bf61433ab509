package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/sim"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)

	if c.grid[0][0] == 0x2800 {
		t.Error("expected dot at (0,0)")
	}

	c.Clear()
	if c.grid[0][0] != 0x2800 {
		t.Error("expected empty cell after clear")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 100) // must not panic
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(0, 0, 19, 39)

	lit := 0
	for _, row := range c.grid {
		for _, cell := range row {
			if cell != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected lit cells along the line")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
}

func chain2(t *testing.T) *arm.Chain {
	t.Helper()
	p := arm.LinkProperty{Length: 1, Mass: 1, Inertia: 0.1, RGx: 0.5, QMin: -math.Pi, QMax: math.Pi}
	c, err := arm.NewChain([]arm.LinkProperty{p, p})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRenderSkeleton(t *testing.T) {
	c := chain2(t)
	c.SetQ([]float64{0.5, -0.3})

	frame := RenderSkeleton(c, 40, 16)
	if !strings.ContainsFunc(frame, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("expected braille dots in the rendered frame")
	}
}

func TestPlotAngles(t *testing.T) {
	res := &sim.Result{
		Times: []float64{0, 1, 2},
		Q:     [][]float64{{0, 1}, {0.5, 0.9}, {1, 0.8}},
		DQ:    [][]float64{{0, 0}, {0, 0}, {0, 0}},
	}

	out := PlotAngles(res, 5)
	if !strings.Contains(out, "q[0]") || !strings.Contains(out, "q[1]") {
		t.Error("expected one chart per joint")
	}
}

func TestSkeletonSVG(t *testing.T) {
	c := chain2(t)
	svg, err := SkeletonSVG(c, [][]float64{{0, 0}, {0.3, 0.2}}, 400)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.Contains(svg, "<polyline") {
		t.Error("malformed svg output")
	}
	if got := strings.Count(svg, "<polyline"); got != 2 {
		t.Errorf("expected 2 poses, got %d", got)
	}
}
