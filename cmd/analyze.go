package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kohta/gotfs/internal/diagram"
	"github.com/kohta/gotfs/internal/murayama"
	"github.com/kohta/gotfs/internal/report"
	"github.com/spf13/cobra"
)

var (
	// Geometry inputs
	analyzeHeight float64
	analyzeDepth  float64

	// Soil inputs
	analyzeGamma    float64
	analyzeCohesion float64
	analyzePhi      float64
	analyzePreset   string
	analyzePresets  string

	// Loading inputs
	analyzePorePressure float64
	analyzeSurchargeVal float64

	// Search settings
	analyzeStart     float64
	analyzeEnd       float64
	analyzeStep      float64
	analyzeTol       float64
	analyzeMaxIter   int
	analyzeSurcharge string

	// Output options
	analyzeChart   string
	analyzeSurface string
	analyzeCSV     string
	analyzeXLSX    string
	analyzePDF     string
	analyzeMD      string
	analyzeNoCurve bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Search the critical slip surface and required support pressure",
	Long: `Run the rigorous Murayama analysis: sweep the slip-surface entry
offset across the configured range, solve the logarithmic-spiral
geometry and moment equilibrium for each candidate, and report the
critical (maximum pressure) surface.

Per-sample convergence failures are skipped and counted; inspect the
reported convergence rate. A low but nonzero rate is valid data with
reduced confidence.

Examples:
  # Stiff ground at 10 m depth, default search range
  gotfs analyze --height 10 --depth 10 --gamma 20 --cohesion 30 --phi 30

  # Terzaghi-arching surcharge with chart and CSV export
  gotfs analyze --height 10 --depth 10 --preset dense-sand \
    --surcharge terzaghi --chart curve.png --csv curve.csv`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Geometry flags
	analyzeCmd.Flags().Float64Var(&analyzeHeight, "height", 0, "Tunnel face height H (m) [required]")
	analyzeCmd.Flags().Float64Var(&analyzeDepth, "depth", 10, "Crown depth D_t (m)")

	// Soil flags
	analyzeCmd.Flags().Float64Var(&analyzeGamma, "gamma", 20, "Unit weight γ (kN/m³)")
	analyzeCmd.Flags().Float64Var(&analyzeCohesion, "cohesion", 0, "Cohesion c (kPa)")
	analyzeCmd.Flags().Float64Var(&analyzePhi, "phi", 30, "Friction angle φ (degrees)")
	analyzeCmd.Flags().StringVar(&analyzePreset, "preset", "", "Soil preset name (overrides gamma/cohesion/phi)")
	analyzeCmd.Flags().StringVar(&analyzePresets, "preset-file", "", "JSON preset table (defaults to the built-in table)")

	// Loading flags
	analyzeCmd.Flags().Float64Var(&analyzePorePressure, "u", 0, "Pore pressure u (kPa; evaluated by 'fast' only)")
	analyzeCmd.Flags().Float64Var(&analyzeSurchargeVal, "sigma-v", 0, "External surface surcharge σv (kPa)")

	// Search flags
	analyzeCmd.Flags().Float64Var(&analyzeStart, "start", -10, "Sweep start offset (m)")
	analyzeCmd.Flags().Float64Var(&analyzeEnd, "end", 10, "Sweep end offset (m)")
	analyzeCmd.Flags().Float64Var(&analyzeStep, "step", 0.5, "Sweep step (m)")
	analyzeCmd.Flags().Float64Var(&analyzeTol, "tol", 1e-6, "Solver convergence tolerance")
	analyzeCmd.Flags().IntVar(&analyzeMaxIter, "max-iter", 100, "Solver iteration cap")
	analyzeCmd.Flags().StringVar(&analyzeSurcharge, "surcharge", "simple", "Overburden surcharge model: simple | terzaghi")

	// Output flags
	analyzeCmd.Flags().StringVar(&analyzeChart, "chart", "", "Write response-curve chart (.png/.svg/.pdf)")
	analyzeCmd.Flags().StringVar(&analyzeSurface, "surface", "", "Write critical slip-surface chart (.png/.svg/.pdf)")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "Write raw series as CSV")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Write summary and series workbook")
	analyzeCmd.Flags().StringVar(&analyzePDF, "pdf", "", "Write PDF report")
	analyzeCmd.Flags().StringVar(&analyzeMD, "md", "", "Write markdown report")
	analyzeCmd.Flags().BoolVar(&analyzeNoCurve, "no-curve", false, "Suppress the terminal response curve")

	analyzeCmd.MarkFlagRequired("height")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	geo, err := murayama.NewTunnelGeometry(analyzeHeight, analyzeDepth)
	if err != nil {
		return err
	}
	soilParams, loading, err := resolveSoil(analyzePreset, analyzePresets,
		analyzeGamma, analyzeCohesion, analyzePhi, analyzePorePressure, analyzeSurchargeVal)
	if err != nil {
		return err
	}
	method, err := murayama.ParseSurchargeMethod(analyzeSurcharge)
	if err != nil {
		return err
	}
	cfg := murayama.SearchConfig{
		Start:         analyzeStart,
		End:           analyzeEnd,
		Step:          analyzeStep,
		Tolerance:     analyzeTol,
		MaxIterations: analyzeMaxIter,
		Surcharge:     method,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	search := murayama.NewCriticalSurfaceSearch(geo, soilParams, loading, cfg)
	result, err := search.Run()
	if err != nil {
		if errors.Is(err, murayama.ErrEmptyResult) {
			return fmt.Errorf("%w\nwiden the sweep range or loosen the tolerance", err)
		}
		return err
	}

	printAnalysisReport("MURAYAMA FACE STABILITY - RIGOROUS OFFSET SWEEP", "x", geo, soilParams, loading, cfg, result)

	if !analyzeNoCurve {
		fmt.Print(diagram.ResponseCurve(result, "x"))
	}

	a := report.Analysis{
		Mode: "rigorous", SampleLabel: "x",
		Geometry: geo, Soil: soilParams, Loading: loading, Config: cfg, Result: result,
	}
	if err := writeExports(a, exportTargets{
		chart: analyzeChart, surface: analyzeSurface,
		csv: analyzeCSV, xlsx: analyzeXLSX, pdf: analyzePDF, md: analyzeMD,
	}); err != nil {
		return err
	}
	return nil
}

// printAnalysisReport renders the terminal report sections shared by
// both sweep modes.
func printAnalysisReport(title, sampleLabel string, geo murayama.TunnelGeometry, soilParams murayama.SoilParameters,
	loading murayama.LoadingConditions, cfg murayama.SearchConfig, result *murayama.SearchResult) {

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Face Height (H):\t%.1f m\n", geo.Height)
	fmt.Fprintf(w, "  Crown Depth (D_t):\t%.1f m\n", geo.Depth)
	fmt.Fprintf(w, "  Unit Weight (γ):\t%.1f kN/m³\n", soilParams.Gamma)
	fmt.Fprintf(w, "  Cohesion (c):\t%.1f kPa\n", soilParams.Cohesion)
	fmt.Fprintf(w, "  Friction Angle (φ):\t%.1f°\n", soilParams.Phi)
	fmt.Fprintf(w, "  Pore Pressure (u):\t%.1f kPa\n", loading.PorePressure)
	fmt.Fprintf(w, "  Surcharge (σv):\t%.1f kPa\n", loading.Surcharge)
	fmt.Fprintf(w, "  Sweep Range:\t[%.2f, %.2f] step %.2f\n", cfg.Start, cfg.End, cfg.Step)
	fmt.Fprintf(w, "  Surcharge Method:\t%s\n", result.Surcharge)
	w.Flush()
	fmt.Println()

	fmt.Println("CONVERGENCE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Samples Attempted:\t%d\n", result.Convergence.Total)
	fmt.Fprintf(w, "  Converged:\t%d\n", result.Convergence.Converged)
	fmt.Fprintf(w, "  Failed:\t%d\n", result.Convergence.Failed)

	fmt.Fprintf(w, "  Convergence Rate:\t%.1f%%", result.Convergence.Rate)
	if result.Convergence.Rate < 50 {
		fmt.Fprintf(w, " ⚠ (reduced confidence)")
	} else {
		fmt.Fprintf(w, " ✓")
	}
	fmt.Fprintln(w)
	w.Flush()
	fmt.Println()

	fmt.Println("CRITICAL SLIP SURFACE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	s := result.CriticalSurface
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Spiral Center:\t(%.2f, %.2f) m\n", s.CenterX, s.CenterY)
	fmt.Fprintf(w, "  Entry Radius (r_i):\t%.2f m\n", s.RI)
	fmt.Fprintf(w, "  Exit Radius (r_d):\t%.2f m\n", s.RD)
	fmt.Fprintf(w, "  Entry Angle (θ_i):\t%.1f°\n", s.ThetaI*180/3.141592653589793)
	fmt.Fprintf(w, "  Exit Angle (θ_d):\t%.1f°\n", s.ThetaD*180/3.141592653589793)
	w.Flush()
	fmt.Println()

	lines := []string{
		fmt.Sprintf("P_max = %.2f at %s = %.2f m", result.PMax, sampleLabel, result.CriticalSample),
	}
	if result.SafetyFactor != nil {
		lines = append(lines, fmt.Sprintf("Safety factor = %.2f", *result.SafetyFactor))
	}
	fmt.Print(diagram.SummaryBox("GOVERNING SLIP SURFACE", lines))
	fmt.Println()
}
