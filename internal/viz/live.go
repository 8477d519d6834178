// Package viz renders a live terminal dashboard for a running resonance
// simulation: elapsed years, the current Trojan periods, and a chart of the
// period series as it grows.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/propagate"
	"github.com/san-kum/trojansim/internal/resonance"
	"github.com/san-kum/trojansim/internal/system"
)

const (
	// stepsPerFrame bounds how much propagation happens between redraws so
	// the UI stays responsive regardless of the configured step size.
	stepsPerFrame = 2000
	chartCapacity = 500
	chartWidth    = 70
	chartHeight   = 10
)

type TickMsg time.Time

type Model struct {
	sys  *system.System
	prop propagate.Propagator
	cfg  resonance.Config

	star   *body.Body
	t1, t2 *body.Body

	elapsed float64
	years   int
	steps   int

	p1Hist []float64
	p2Hist []float64
	last   resonance.Sample

	running bool
	done    bool
	reason  resonance.StopReason
	err     error
}

func NewModel(sys *system.System, prop propagate.Propagator, cfg resonance.Config) Model {
	if cfg.MaxYears == 0 {
		cfg.MaxYears = resonance.DefaultMaxYears
	}
	t1, t2 := sys.TrojanPair()
	return Model{
		sys:     sys,
		prop:    prop,
		cfg:     cfg,
		star:    sys.Star(),
		t1:      t1,
		t2:      t2,
		p1Hist:  make([]float64, 0, chartCapacity),
		p2Hist:  make([]float64, 0, chartCapacity),
		running: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance runs a bounded batch of propagation steps, sampling periods at
// every year boundary exactly like the headless simulation loop.
func (m *Model) advance() {
	for i := 0; i < stepsPerFrame; i++ {
		if err := m.prop.Step(m.sys.Bodies, m.cfg.Step); err != nil {
			m.err = err
			m.done = true
			return
		}
		m.steps++
		m.elapsed += m.cfg.Step

		if int(m.elapsed/body.SecondsPerYear) <= m.years {
			continue
		}
		m.years++

		m.last = resonance.Sample{
			Year: m.years,
			P1:   m.t1.Period(m.star) / body.SecondsPerDay,
			P2:   m.t2.Period(m.star) / body.SecondsPerDay,
		}
		m.p1Hist = append(m.p1Hist, m.last.P1)
		m.p2Hist = append(m.p2Hist, m.last.P2)
		if len(m.p1Hist) > chartCapacity {
			m.p1Hist = m.p1Hist[1:]
			m.p2Hist = m.p2Hist[1:]
		}

		if resonance.PercentDiff(m.last.P1, m.last.P2) > m.cfg.Margin {
			m.reason = resonance.ReasonMarginExceeded
			m.done = true
			return
		}
		if m.years >= m.cfg.MaxYears {
			m.reason = resonance.ReasonTimeLimit
			m.done = true
			return
		}
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("TROJAN RESONANCE") + "\n")

	switch {
	case m.err != nil:
		s.WriteString(statusStopped.Render("FAILED") + "\n")
	case m.done:
		s.WriteString(statusStopped.Render(fmt.Sprintf("STOPPED (%s)", m.reason)) + "\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n")
	}
	s.WriteString("\n")

	s.WriteString(labelStyle.Render("Years") + valueStyle.Render(fmt.Sprintf("%d", m.years)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	if m.last.Year > 0 {
		s.WriteString(labelStyle.Render(m.t1.Name) + valueStyle.Render(fmt.Sprintf("%.4f d", m.last.P1)) + "\n")
		s.WriteString(labelStyle.Render(m.t2.Name) + valueStyle.Render(fmt.Sprintf("%.4f d", m.last.P2)) + "\n")
		diff := resonance.PercentDiff(m.last.P1, m.last.P2)
		s.WriteString(labelStyle.Render("Divergence") + valueStyle.Render(fmt.Sprintf("%.4f%% of %.2f%%", diff, m.cfg.Margin)) + "\n")
	}

	if len(m.p1Hist) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.p1Hist, m.p2Hist},
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("period (days) vs. year"),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + statusStopped.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("space: pause/resume  q: quit"))
	return panelStyle.Render(s.String())
}
