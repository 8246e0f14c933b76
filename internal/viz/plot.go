// Package viz renders simulation traces and detection summaries in the
// terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/m-kovac/shcsim/internal/ripple"
)

const (
	defaultPlotWidth  = 100
	defaultPlotHeight = 14
)

// Downsample reduces a trace to at most n points by strided picking so long
// runs still fit a terminal plot.
func Downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]float64, 0, n)
	step := float64(len(values)) / float64(n)
	for i := 0; i < n; i++ {
		out = append(out, values[int(float64(i)*step)])
	}
	return out
}

// PlotTrace renders a single state trace as an ASCII chart.
func PlotTrace(values []float64, caption string) string {
	series := Downsample(values, defaultPlotWidth*4)
	return asciigraph.Plot(series,
		asciigraph.Height(defaultPlotHeight),
		asciigraph.Width(defaultPlotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotEnvelope overlays the detection threshold on the envelope chart.
func PlotEnvelope(envelope []float64, threshold float64, caption string) string {
	series := Downsample(envelope, defaultPlotWidth*4)
	thresh := make([]float64, len(series))
	for i := range thresh {
		thresh[i] = threshold
	}
	return asciigraph.PlotMany([][]float64{series, thresh},
		asciigraph.Height(defaultPlotHeight),
		asciigraph.Width(defaultPlotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
	)
}

// MarkEvents renders a one-line track under a plot showing where events fall.
func MarkEvents(events []ripple.Event, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	track := make([]rune, width)
	for i := range track {
		track[i] = '·'
	}
	for _, e := range events {
		lo := e.Start * width / total
		hi := (e.Start + e.Duration) * width / total
		if hi >= width {
			hi = width - 1
		}
		for i := lo; i <= hi; i++ {
			track[i] = '█'
		}
	}
	return string(track)
}

// SummarizeEvents formats a compact one-line detection summary.
func SummarizeEvents(events []ripple.Event, dt, durMs float64) string {
	if len(events) == 0 {
		return "no events detected"
	}
	var total float64
	for _, e := range events {
		total += e.DurationMs(dt)
	}
	mean := total / float64(len(events))
	rate := float64(len(events)) / (durMs / 1000.0)
	return fmt.Sprintf("%d events, mean duration %.1f ms, %.2f events/s",
		len(events), mean, rate)
}

// SummarizeSpark renders a trace as a one-line unicode sparkline.
func SummarizeSpark(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", width)
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	series := Downsample(values, width)
	var b strings.Builder
	for _, v := range series {
		idx := int((v - min) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// CompareTraces plots several labeled traces stacked vertically.
func CompareTraces(labels []string, traces [][]float64) string {
	var b strings.Builder
	for i, trace := range traces {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		b.WriteString(PlotTrace(trace, label))
		b.WriteString("\n\n")
	}
	return b.String()
}
