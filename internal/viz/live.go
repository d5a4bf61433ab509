package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/dynamics"
	"github.com/san-kum/armsim/internal/kinematics"
	"github.com/san-kum/armsim/internal/sim"
)

const (
	liveWidth  = 64
	liveHeight = 20
	liveFPS    = 30
)

type tickMsg time.Time

// LiveModel steps a chain in real time and renders its skeleton.
type LiveModel struct {
	chain   *arm.Chain
	law     sim.ControlLaw
	gravity arm.Vec2
	dt      float64

	initQ  []float64
	initDQ []float64

	t       float64
	running bool
	failed  error
	trail   *Canvas
}

func NewLive(chain *arm.Chain, law sim.ControlLaw, gravity arm.Vec2, dt float64) LiveModel {
	return LiveModel{
		chain:   chain,
		law:     law,
		gravity: gravity,
		dt:      dt,
		initQ:   chain.Q(),
		initDQ:  chain.DQ(),
		running: true,
		trail:   NewCanvas(liveWidth, liveHeight),
	}
}

func (m LiveModel) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(time.Second/liveFPS, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.chain.SetQ(m.initQ)
			m.chain.SetDQ(m.initDQ)
			m.t = 0
			m.failed = nil
			m.trail.Clear()
		}
		return m, nil

	case tickMsg:
		if m.running && m.failed == nil {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances wall-clock-sized simulated time in dt substeps using
// the same semi-implicit Euler scheme as the trajectory simulator.
func (m *LiveModel) step() {
	substeps := int(1.0 / (liveFPS * m.dt))
	if substeps < 1 {
		substeps = 1
	}
	for i := 0; i < substeps; i++ {
		tau := m.law(m.t, m.chain)
		ddq, err := dynamics.Forward(m.chain, tau, m.gravity)
		if err != nil {
			m.failed = err
			return
		}
		for j, l := range m.chain.Links() {
			l.DQ += ddq[j] * m.dt
			l.Q += l.DQ * m.dt
		}
		m.t += m.dt
	}

	tip := kinematics.TipPosition(m.chain)
	m.trail.DrawPoint(tip, reach(m.chain))
}

func (m LiveModel) View() string {
	// Trail first so the current pose draws over it.
	frame := m.trailCopy()
	DrawSkeleton(frame, m.chain)

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("armsim live"))
	sb.WriteByte('\n')
	sb.WriteString(CanvasStyle.Render(strings.TrimRight(frame.String(), "\n")))
	sb.WriteByte('\n')

	status := StatusRunning.Render("running")
	if m.failed != nil {
		status = StatusPaused.Render(fmt.Sprintf("failed: %v", m.failed))
	} else if !m.running {
		status = StatusPaused.Render("paused")
	}

	sb.WriteString(LabelStyle.Render("t"))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf("%8.2f s", m.t)))
	sb.WriteByte('\n')
	tip := kinematics.TipPosition(m.chain)
	sb.WriteString(LabelStyle.Render("tip"))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf("(%6.3f, %6.3f)", tip.X, tip.Y)))
	sb.WriteByte('\n')
	sb.WriteString(LabelStyle.Render("energy"))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf("%8.4f J", dynamics.TotalEnergy(m.chain, m.gravity))))
	sb.WriteByte('\n')
	sb.WriteString(LabelStyle.Render("status"))
	sb.WriteString(status)
	sb.WriteByte('\n')

	sb.WriteString(HelpStyle.Render("space pause · r reset · q quit"))
	return sb.String()
}

func (m LiveModel) trailCopy() *Canvas {
	cp := NewCanvas(m.trail.Width, m.trail.Height)
	for i := range m.trail.grid {
		copy(cp.grid[i], m.trail.grid[i])
	}
	return cp
}
