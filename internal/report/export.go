package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/kohta/gotfs/internal/murayama"
)

// WriteCSV streams the raw ordered (sample, pressure) series.
func WriteCSV(result *murayama.SearchResult, sampleLabel string, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{sampleLabel, "pressure"}); err != nil {
		return err
	}
	for _, s := range result.Samples {
		rec := []string{
			strconv.FormatFloat(s.Sample, 'f', -1, 64),
			strconv.FormatFloat(s.Pressure, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the series to a file.
func SaveCSV(result *murayama.SearchResult, sampleLabel, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()
	return WriteCSV(result, sampleLabel, f)
}

// SaveXLSX writes an xlsx workbook with a summary sheet and the full
// response-curve series.
func SaveXLSX(a Analysis, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	summaryRows := [][2]interface{}{
		{"Mode", a.Mode},
		{"Surcharge method", a.Result.Surcharge.String()},
		{"Face height H [m]", a.Geometry.Height},
		{"Crown depth D_t [m]", a.Geometry.Depth},
		{"Unit weight [kN/m3]", a.Soil.Gamma},
		{"Cohesion c [kPa]", a.Soil.Cohesion},
		{"Friction angle [deg]", a.Soil.Phi},
		{"P_max", a.Result.PMax},
		{fmt.Sprintf("Critical %s [m]", a.SampleLabel), a.Result.CriticalSample},
		{"Convergence rate [%]", a.Result.Convergence.Rate},
	}
	for i, row := range summaryRows {
		cellA, _ := excelize.CoordinatesToCellName(1, i+1)
		cellB, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(summary, cellA, row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summary, cellB, row[1]); err != nil {
			return err
		}
	}

	const curve = "Response Curve"
	if _, err := f.NewSheet(curve); err != nil {
		return err
	}
	if err := f.SetCellValue(curve, "A1", a.SampleLabel+" [m]"); err != nil {
		return err
	}
	if err := f.SetCellValue(curve, "B1", "P"); err != nil {
		return err
	}
	for i, s := range a.Result.Samples {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellValue(curve, cellA, s.Sample); err != nil {
			return err
		}
		if err := f.SetCellValue(curve, cellB, s.Pressure); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
