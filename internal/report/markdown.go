package report

import (
	"fmt"
	"strings"
	"time"
)

// Markdown renders the analysis as a markdown report.
func Markdown(a Analysis) string {
	var sb strings.Builder

	sb.WriteString("# Murayama Tunnel Face Stability Report\n\n")
	sb.WriteString(fmt.Sprintf("Analysis date: %s\n\n", time.Now().Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("Calculation mode: %s (%s sweep)\n\n", a.Mode, a.SampleLabel))

	sb.WriteString("## 1. Input Parameters\n\n")
	sb.WriteString("### Tunnel Geometry\n")
	sb.WriteString(fmt.Sprintf("- Face height (H): %.1f m\n", a.Geometry.Height))
	sb.WriteString(fmt.Sprintf("- Crown depth (D_t): %.1f m\n\n", a.Geometry.Depth))

	sb.WriteString("### Soil Parameters\n")
	sb.WriteString(fmt.Sprintf("- Unit weight (γ): %.1f kN/m³\n", a.Soil.Gamma))
	sb.WriteString(fmt.Sprintf("- Cohesion (c): %.1f kPa\n", a.Soil.Cohesion))
	sb.WriteString(fmt.Sprintf("- Friction angle (φ): %.1f°\n\n", a.Soil.Phi))

	sb.WriteString("### Loading Conditions\n")
	sb.WriteString(fmt.Sprintf("- Pore pressure (u): %.1f kPa\n", a.Loading.PorePressure))
	sb.WriteString(fmt.Sprintf("- Surface surcharge (σv): %.1f kPa\n\n", a.Loading.Surcharge))

	sb.WriteString("### Search Settings\n")
	sb.WriteString(fmt.Sprintf("- Sweep range: [%.2f, %.2f] step %.2f\n", a.Config.Start, a.Config.End, a.Config.Step))
	sb.WriteString(fmt.Sprintf("- Tolerance: %.1e, max iterations: %d\n", a.Config.Tolerance, a.Config.MaxIterations))
	sb.WriteString(fmt.Sprintf("- Surcharge method: %s\n\n", a.Result.Surcharge))

	sb.WriteString("## 2. Results\n\n")
	sb.WriteString(fmt.Sprintf("- **Maximum required pressure (P_max)**: %.2f\n", a.Result.PMax))
	sb.WriteString(fmt.Sprintf("- **Critical %s**: %.2f m\n", a.SampleLabel, a.Result.CriticalSample))
	sb.WriteString(fmt.Sprintf("- **Convergence rate**: %.1f%% (%d of %d samples)\n\n",
		a.Result.Convergence.Rate, a.Result.Convergence.Converged, a.Result.Convergence.Total))

	if a.Result.SafetyFactor != nil {
		sf := *a.Result.SafetyFactor
		sb.WriteString(fmt.Sprintf("- **Safety factor**: %.2f\n\n", sf))
		sb.WriteString("### Safety Assessment\n")
		switch {
		case sf >= 1.5:
			sb.WriteString("SAFE - the face is stable with adequate margin.\n\n")
		case sf >= 1.2:
			sb.WriteString("MARGINAL - additional support measures recommended.\n\n")
		default:
			sb.WriteString("UNSAFE - immediate support measures required.\n\n")
		}
	} else {
		sb.WriteString("- Safety factor: not evaluated (no external load supplied)\n\n")
	}

	if a.Result.Convergence.Rate < 50 {
		sb.WriteString(fmt.Sprintf("> Note: only %.1f%% of the searched surfaces converged; treat P_max with reduced confidence.\n\n",
			a.Result.Convergence.Rate))
	}

	sb.WriteString("## 3. Response Curve Data\n\n")
	sb.WriteString(fmt.Sprintf("| %s [m] | P |\n|---|---|\n", a.SampleLabel))
	for _, i := range pickIndices(len(a.Result.Samples), 20) {
		s := a.Result.Samples[i]
		sb.WriteString(fmt.Sprintf("| %.2f | %.2f |\n", s.Sample, s.Pressure))
	}
	sb.WriteString("\n---\n")
	sb.WriteString("*Generated by gotfs*\n")

	return sb.String()
}
