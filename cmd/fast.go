package cmd

import (
	"errors"
	"fmt"

	"github.com/kohta/gotfs/internal/diagram"
	"github.com/kohta/gotfs/internal/murayama"
	"github.com/kohta/gotfs/internal/report"
	"github.com/spf13/cobra"
)

var (
	// Geometry inputs
	fastHeight float64
	fastDepth  float64
	fastRadius float64

	// Soil inputs
	fastGamma    float64
	fastCohesion float64
	fastPhi      float64
	fastPreset   string
	fastPresets  string

	// Loading inputs
	fastPorePressure float64
	fastSurchargeVal float64

	// Search settings
	fastMaxB    float64
	fastStepB   float64
	fastTol     float64
	fastMaxIter int

	// Output options
	fastChart   string
	fastCSV     string
	fastXLSX    string
	fastPDF     string
	fastMD      string
	fastNoCurve bool
)

var fastCmd = &cobra.Command{
	Use:   "fast",
	Short: "Approximate resistance curve over the sliding width (fast mode)",
	Long: `Run the simplified Murayama formulation: sweep the sliding width B,
solve the two spiral angles independently, and evaluate the available
resistance force with closed-form rectangular approximations for the
weight and moment arms.

This mode is cruder than 'analyze' but much cheaper, and it is the
only mode that evaluates pore pressure, external surcharge and the
resistance/surcharge safety factor.

Examples:
  # Quick check of a 10 m face in soft clay
  gotfs fast --height 10 --preset soft-clay --max-b 10 --step-b 0.5

  # With external surcharge, reporting a safety factor
  gotfs fast --height 10 --gamma 18 --cohesion 25 --phi 0 --sigma-v 100`,
	RunE: runFast,
}

func init() {
	rootCmd.AddCommand(fastCmd)

	// Geometry flags
	fastCmd.Flags().Float64Var(&fastHeight, "height", 0, "Tunnel face height H (m) [required]")
	fastCmd.Flags().Float64Var(&fastDepth, "depth", 10, "Crown depth D_t (m)")
	fastCmd.Flags().Float64Var(&fastRadius, "r0", 0, "Spiral base radius r₀ (m); defaults to H/2")

	// Soil flags
	fastCmd.Flags().Float64Var(&fastGamma, "gamma", 20, "Unit weight γ (kN/m³)")
	fastCmd.Flags().Float64Var(&fastCohesion, "cohesion", 0, "Cohesion c (kPa)")
	fastCmd.Flags().Float64Var(&fastPhi, "phi", 30, "Friction angle φ (degrees)")
	fastCmd.Flags().StringVar(&fastPreset, "preset", "", "Soil preset name (overrides gamma/cohesion/phi)")
	fastCmd.Flags().StringVar(&fastPresets, "preset-file", "", "JSON preset table (defaults to the built-in table)")

	// Loading flags
	fastCmd.Flags().Float64Var(&fastPorePressure, "u", 0, "Pore pressure u (kPa)")
	fastCmd.Flags().Float64Var(&fastSurchargeVal, "sigma-v", 0, "External surface surcharge σv (kPa)")

	// Search flags
	fastCmd.Flags().Float64Var(&fastMaxB, "max-b", 10, "Largest sliding width B (m)")
	fastCmd.Flags().Float64Var(&fastStepB, "step-b", 0.5, "Sliding width step (m)")
	fastCmd.Flags().Float64Var(&fastTol, "tol", 1e-6, "Angle solver tolerance")
	fastCmd.Flags().IntVar(&fastMaxIter, "max-iter", 100, "Angle solver iteration cap")

	// Output flags
	fastCmd.Flags().StringVar(&fastChart, "chart", "", "Write resistance-curve chart (.png/.svg/.pdf)")
	fastCmd.Flags().StringVar(&fastCSV, "csv", "", "Write raw series as CSV")
	fastCmd.Flags().StringVar(&fastXLSX, "xlsx", "", "Write summary and series workbook")
	fastCmd.Flags().StringVar(&fastPDF, "pdf", "", "Write PDF report")
	fastCmd.Flags().StringVar(&fastMD, "md", "", "Write markdown report")
	fastCmd.Flags().BoolVar(&fastNoCurve, "no-curve", false, "Suppress the terminal resistance curve")

	fastCmd.MarkFlagRequired("height")
}

func runFast(cmd *cobra.Command, args []string) error {
	geo, err := murayama.NewTunnelGeometry(fastHeight, fastDepth)
	if err != nil {
		return err
	}
	soilParams, loading, err := resolveSoil(fastPreset, fastPresets,
		fastGamma, fastCohesion, fastPhi, fastPorePressure, fastSurchargeVal)
	if err != nil {
		return err
	}
	cfg := murayama.SearchConfig{
		Start:         fastStepB,
		End:           fastMaxB,
		Step:          fastStepB,
		Tolerance:     fastTol,
		MaxIterations: fastMaxIter,
		Surcharge:     murayama.SurchargeSimple,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	variant := murayama.NewSimplifiedVariant(geo, soilParams, loading, fastRadius, cfg)
	result, err := variant.Run()
	if err != nil {
		if errors.Is(err, murayama.ErrEmptyResult) {
			return fmt.Errorf("%w\nreduce the maximum width or increase r₀", err)
		}
		return err
	}

	printAnalysisReport("MURAYAMA FACE STABILITY - FAST WIDTH SWEEP", "B", geo, soilParams, loading, cfg, result)

	if !fastNoCurve {
		fmt.Print(diagram.ResponseCurve(result, "B"))
	}

	a := report.Analysis{
		Mode: "simplified", SampleLabel: "B",
		Geometry: geo, Soil: soilParams, Loading: loading, Config: cfg, Result: result,
	}
	return writeExports(a, exportTargets{
		chart: fastChart, csv: fastCSV, xlsx: fastXLSX, pdf: fastPDF, md: fastMD,
	})
}
