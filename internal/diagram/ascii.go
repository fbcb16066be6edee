package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/kohta/gotfs/internal/murayama"
)

// ResponseCurve renders the sample-vs-pressure curve as a terminal
// chart with the critical point called out below it.
func ResponseCurve(result *murayama.SearchResult, xLabel string) string {
	if len(result.Samples) == 0 {
		return ""
	}

	values := make([]float64, len(result.Samples))
	for i, s := range result.Samples {
		values[i] = s.Pressure
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("P over %s in [%.1f, %.1f]",
			xLabel, result.Samples[0].Sample, result.Samples[len(result.Samples)-1].Sample)),
	)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(graph)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  ▲ critical: P_max = %.2f at %s = %.2f\n",
		result.PMax, xLabel, result.CriticalSample))
	return sb.String()
}

// SummaryBox frames a title and result lines in a box for terminal
// output.
func SummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
