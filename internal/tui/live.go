// Package tui provides a live terminal viewer for the circuit: rolling traces
// of pyramidal activity and cholinergic tone, with interactive parameter
// tuning.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/m-kovac/shcsim/internal/dynamo"
	"github.com/m-kovac/shcsim/internal/shc"
	"github.com/m-kovac/shcsim/internal/viz"
)

const (
	historyCapacity = 600
	// Integration sub-steps per display tick. At dt=0.1ms and 30 ticks/s
	// this shows roughly 0.6x real time.
	stepsPerTick = 200
	recordEvery  = 10
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the circuit in the foreground and renders rolling traces.
type Model struct {
	sys        dynamo.System
	integrator dynamo.Integrator
	drive      dynamo.DriveSource

	state dynamo.State
	t, dt float64

	initialState dynamo.State

	ca3Hist []float64
	ca1Hist []float64
	achHist []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	running bool
	tick    int
}

func NewModel(sys dynamo.System, integ dynamo.Integrator, drv dynamo.DriveSource, initState []float64, dt float64) Model {
	params := make(map[string]float64)
	if c, ok := sys.(dynamo.Configurable); ok {
		for k, v := range c.GetParams() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64)
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	return Model{
		sys:           sys,
		integrator:    integ,
		drive:         drv,
		state:         dynamo.State(initState).Clone(),
		dt:            dt,
		initialState:  dynamo.State(initState).Clone(),
		ca3Hist:       make([]float64, 0, historyCapacity),
		ca1Hist:       make([]float64, 0, historyCapacity),
		achHist:       make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		running:       true,
	}
}

func (m Model) Init() tea.Cmd {
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
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	for i := 0; i < stepsPerTick; i++ {
		var u dynamo.Drive
		if m.drive != nil {
			u = m.drive.At(m.t)
		}
		m.state = m.integrator.Step(m.sys, m.state, u, m.t, m.dt)
		m.t += m.dt

		m.tick++
		if m.tick%recordEvery != 0 {
			continue
		}
		m.ca3Hist = appendRolling(m.ca3Hist, m.state[shc.CA3Pyr])
		m.ca1Hist = appendRolling(m.ca1Hist, m.state[shc.CA1Pyr])
		m.achHist = appendRolling(m.achHist, m.state[shc.AChExc])
	}
}

func appendRolling(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	// A zero parameter cannot be scaled up; seed it instead.
	if m.params[key] == 0 && factor > 1 {
		newVal = 1e-6
	}
	if c, ok := m.sys.(dynamo.Configurable); ok {
		if err := c.SetParam(key, newVal); err != nil {
			return
		}
	}
	m.params[key] = newVal
}

func (m *Model) reset() {
	m.t = 0
	m.tick = 0
	m.state = m.initialState.Clone()
	m.ca3Hist = m.ca3Hist[:0]
	m.ca1Hist = m.ca1Hist[:0]
	m.achHist = m.achHist[:0]
	for k, v := range m.initialParams {
		m.params[k] = v
		if c, ok := m.sys.(dynamo.Configurable); ok {
			c.SetParam(k, v)
		}
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("SHC CIRCUIT — LIVE") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.ca3Hist) > 1 {
		s.WriteString(graphStyle.Render(asciigraph.Plot(m.ca3Hist,
			asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption("CA3 pyramidal"))) + "\n")
	}
	if len(m.ca1Hist) > 1 {
		s.WriteString(graphStyle.Render(asciigraph.Plot(m.ca1Hist,
			asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption("CA1 pyramidal"))) + "\n")
	}
	if len(m.achHist) > 1 {
		s.WriteString(labelStyle.Render("ACh tone") + viz.SummarizeSpark(m.achHist, 40) + "\n")
	}

	s.WriteString("\n" + labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1f ms", m.t)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) > 0 {
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-16s %.3f", k, m.params[k])
			if i == m.selected {
				s.WriteString(activeStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause  R:Reset  Tab:Select  ↑↓:Tune  Q:Quit"))
	return s.String()
}
