// Package viz renders a live terminal view of a running integration.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ristakaen/PlasmaTransition/internal/dynamics"
	"github.com/ristakaen/PlasmaTransition/internal/equilibrium"
)

const (
	graphWidth  = 70
	graphHeight = 6
	graphTail   = 240
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	settledTag  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model steps the integration a batch of grid points per frame and renders
// the trailing histories.
type Model struct {
	dyn   dynamics.System
	integ dynamics.Integrator
	cfg   dynamics.Config
	det   equilibrium.Detector

	x0   dynamics.State
	x    dynamics.State
	step int

	times, n, e, v []float64
	eqTime         float64
	converged      bool
	diverged       bool

	paramKeys []string
	selected  int
	paused    bool
	done      bool

	stepsPerFrame int
}

func NewModel(dyn dynamics.System, integ dynamics.Integrator, x0 dynamics.State, cfg dynamics.Config) Model {
	var keys []string
	if c, ok := dyn.(dynamics.Configurable); ok {
		for k := range c.GetParams() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	spf := cfg.Points / 900
	if spf < 1 {
		spf = 1
	}

	return Model{
		dyn:           dyn,
		integ:         integ,
		cfg:           cfg,
		det:           equilibrium.Detector{Window: cfg.DetectorWindow(), Tolerance: cfg.Tolerance},
		x0:            x0.Clone(),
		x:             x0.Clone(),
		paramKeys:     keys,
		stepsPerFrame: spf,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m = m.restart()
		case "up":
			if m.selected > 0 {
				m.selected--
			}
		case "down":
			if m.selected < len(m.paramKeys)-1 {
				m.selected++
			}
		case "left":
			m.adjustParam(0.9)
		case "right":
			m.adjustParam(1.1)
		}
		return m, nil

	case TickMsg:
		if !m.paused && !m.done {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	c, ok := m.dyn.(dynamics.Configurable)
	if !ok || len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	_ = c.SetParam(key, c.GetParams()[key]*factor)
}

func (m Model) restart() Model {
	m.x = m.x0.Clone()
	m.step = 0
	m.times, m.n, m.e, m.v = nil, nil, nil, nil
	m.eqTime = 0
	m.converged = false
	m.diverged = false
	m.done = false
	m.paused = false
	return m
}

func (m *Model) advance() {
	du := m.cfg.Du()
	for i := 0; i < m.stepsPerFrame && m.step < m.cfg.Points; i++ {
		u := m.cfg.Lower + float64(m.step)*du
		t := u / (1 - u)

		m.times = append(m.times, t)
		m.n = append(m.n, m.x[0])
		m.e = append(m.e, m.x[1])
		m.v = append(m.v, m.x[2])

		inc := m.integ.Increment(m.dyn, m.x, u, du)
		for j := range m.x {
			m.x[j] += inc[j]
		}
		m.step++

		if !m.diverged && !m.x.IsValid() {
			m.diverged = true
		}
		if !m.converged && m.det.SettledAll(m.n, m.e, m.v) {
			m.eqTime = t
			m.converged = true
		}
	}
	if m.step >= m.cfg.Points {
		m.done = true
		if !m.converged {
			m.eqTime = m.cfg.Fallback
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("three-field transition — live integration"))
	b.WriteString("\n")

	for _, g := range []struct {
		name string
		data []float64
	}{{"N (density gradient)", m.n}, {"E (fluctuation level)", m.e}, {"V (flow-shear gradient)", m.v}} {
		data := g.data
		if len(data) > graphTail {
			data = data[len(data)-graphTail:]
		}
		if len(data) >= 2 {
			b.WriteString(graphStyle.Render(asciigraph.Plot(data,
				asciigraph.Height(graphHeight),
				asciigraph.Width(graphWidth),
				asciigraph.Caption(g.name),
			)))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.statsView())
	b.WriteString(helpStyle.Render("space pause · ↑/↓ select param · ←/→ adjust · r restart · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) statsView() string {
	var b strings.Builder

	t := 0.0
	if len(m.times) > 0 {
		t = m.times[len(m.times)-1]
	}
	b.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.3f", t)))
	b.WriteString("  " + labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d/%d", m.step, m.cfg.Points)))
	b.WriteString("\n")

	if len(m.n) > 0 {
		last := len(m.n) - 1
		b.WriteString(labelStyle.Render("N, E, V") +
			valueStyle.Render(fmt.Sprintf("%.4f  %.4f  %.4f", m.n[last], m.e[last], m.v[last])))
		b.WriteString("\n")
	}

	if c, ok := m.dyn.(dynamics.Configurable); ok {
		params := c.GetParams()
		for i, k := range m.paramKeys {
			style := valueStyle
			if i == m.selected {
				style = activeStyle
			}
			b.WriteString(labelStyle.Render(k) + style.Render(fmt.Sprintf("%.4f", params[k])))
			b.WriteString("\n")
		}
	}

	switch {
	case m.converged:
		b.WriteString(settledTag.Render(fmt.Sprintf("equilibrium at t = %.6g", m.eqTime)))
	case m.done:
		b.WriteString(valueStyle.Render(fmt.Sprintf("no equilibrium found, fallback t = %.6g", m.eqTime)))
	}
	if m.diverged {
		b.WriteString(activeStyle.Render("  [diverged]"))
	}
	b.WriteString("\n")
	return b.String()
}
