package cmd

import (
	"fmt"
	"os"

	"github.com/kohta/gotfs/internal/diagram"
	"github.com/kohta/gotfs/internal/murayama"
	"github.com/kohta/gotfs/internal/report"
	"github.com/kohta/gotfs/internal/soil"
)

// resolveSoil turns either a preset name or the raw flag values into
// validated core inputs. An explicit preset overrides the raw values.
func resolveSoil(presetName, presetFile string, gamma, cohesion, phi, u, sigmaV float64) (murayama.SoilParameters, murayama.LoadingConditions, error) {
	if presetName == "" {
		soilParams, err := murayama.NewSoilParameters(gamma, cohesion, phi)
		if err != nil {
			return murayama.SoilParameters{}, murayama.LoadingConditions{}, err
		}
		loading, err := murayama.NewLoadingConditions(u, sigmaV)
		if err != nil {
			return murayama.SoilParameters{}, murayama.LoadingConditions{}, err
		}
		return soilParams, loading, nil
	}

	presets, err := loadPresetTable(presetFile)
	if err != nil {
		return murayama.SoilParameters{}, murayama.LoadingConditions{}, err
	}
	p, ok := soil.Find(presets, presetName)
	if !ok {
		return murayama.SoilParameters{}, murayama.LoadingConditions{}, fmt.Errorf("unknown soil preset %q (see 'gotfs presets')", presetName)
	}
	soilParams, loading, err := p.Parameters()
	if err != nil {
		return murayama.SoilParameters{}, murayama.LoadingConditions{}, err
	}
	// Explicit loading flags still apply on top of a preset.
	if u > 0 || sigmaV > 0 {
		loading, err = murayama.NewLoadingConditions(u, sigmaV)
		if err != nil {
			return murayama.SoilParameters{}, murayama.LoadingConditions{}, err
		}
	}
	return soilParams, loading, nil
}

func loadPresetTable(presetFile string) ([]soil.Preset, error) {
	if presetFile == "" {
		return soil.DefaultPresets(), nil
	}
	return soil.LoadPresets(presetFile)
}

type exportTargets struct {
	chart   string
	surface string
	csv     string
	xlsx    string
	pdf     string
	md      string
}

// writeExports emits every requested artifact for a finished analysis.
func writeExports(a report.Analysis, t exportTargets) error {
	if t.chart != "" {
		xLabel := fmt.Sprintf("%s (m)", a.SampleLabel)
		if err := diagram.SaveResponseCurve(a.Result, xLabel, "required pressure P", t.chart); err != nil {
			return fmt.Errorf("writing chart: %w", err)
		}
		fmt.Printf("  Chart written to %s\n", t.chart)
	}
	if t.surface != "" {
		if err := diagram.SaveSlipSurface(a.Result, a.Geometry, a.Soil, t.surface); err != nil {
			return fmt.Errorf("writing slip-surface chart: %w", err)
		}
		fmt.Printf("  Slip surface written to %s\n", t.surface)
	}
	if t.csv != "" {
		if err := report.SaveCSV(a.Result, a.SampleLabel, t.csv); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		fmt.Printf("  CSV written to %s\n", t.csv)
	}
	if t.xlsx != "" {
		if err := report.SaveXLSX(a, t.xlsx); err != nil {
			return fmt.Errorf("writing xlsx: %w", err)
		}
		fmt.Printf("  Workbook written to %s\n", t.xlsx)
	}
	if t.pdf != "" {
		if err := report.WritePDF(a, t.pdf); err != nil {
			return fmt.Errorf("writing pdf report: %w", err)
		}
		fmt.Printf("  PDF report written to %s\n", t.pdf)
	}
	if t.md != "" {
		if err := os.WriteFile(t.md, []byte(report.Markdown(a)), 0644); err != nil {
			return fmt.Errorf("writing markdown report: %w", err)
		}
		fmt.Printf("  Markdown report written to %s\n", t.md)
	}
	return nil
}
