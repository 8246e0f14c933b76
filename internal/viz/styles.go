package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/m-kovac/shcsim/internal/ripple"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	EventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	GraphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("49")).
			Padding(1, 0)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

// EventTable renders detected events as an aligned table with millisecond
// columns.
func EventTable(events []ripple.Event, dt float64) string {
	if len(events) == 0 {
		return LabelStyle.Render("(no events)")
	}
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-5s %12s %12s %12s", "#", "start (ms)", "end (ms)", "dur (ms)")))
	b.WriteString("\n")
	for i, e := range events {
		start := e.StartMs(dt)
		dur := e.DurationMs(dt)
		line := fmt.Sprintf("%-5d %12.1f %12.1f %12.1f", i+1, start, start+dur, dur)
		b.WriteString(EventStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// MetricsPanel renders run metrics as a bordered key/value panel.
func MetricsPanel(metrics map[string]float64, order []string) string {
	var b strings.Builder
	for _, name := range order {
		val, ok := metrics[name]
		if !ok {
			continue
		}
		b.WriteString(LabelStyle.Render(name))
		b.WriteString(ValueStyle.Render(fmt.Sprintf("%.4f", val)))
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}
