package report

import (
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// WritePDF renders the analysis as an A4 PDF report.
func WritePDF(a Analysis, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Murayama Tunnel Face Stability Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Mode: %s (%s sweep), surcharge method: %s",
		a.Mode, a.SampleLabel, a.Result.Surcharge))
	pdf.Ln(10)

	sectionTitle(pdf, "1. Input Parameters")
	inputRows := [][2]string{
		{"Face height H", fmt.Sprintf("%.1f m", a.Geometry.Height)},
		{"Crown depth D_t", fmt.Sprintf("%.1f m", a.Geometry.Depth)},
		{"Unit weight", fmt.Sprintf("%.1f kN/m3", a.Soil.Gamma)},
		{"Cohesion c", fmt.Sprintf("%.1f kPa", a.Soil.Cohesion)},
		{"Friction angle", fmt.Sprintf("%.1f deg", a.Soil.Phi)},
		{"Pore pressure u", fmt.Sprintf("%.1f kPa", a.Loading.PorePressure)},
		{"Surcharge", fmt.Sprintf("%.1f kPa", a.Loading.Surcharge)},
		{"Sweep range", fmt.Sprintf("[%.2f, %.2f] step %.2f", a.Config.Start, a.Config.End, a.Config.Step)},
		{"Tolerance / max iter", fmt.Sprintf("%.1e / %d", a.Config.Tolerance, a.Config.MaxIterations)},
	}
	table(pdf, inputRows)

	sectionTitle(pdf, "2. Results")
	resultRows := [][2]string{
		{"Maximum required pressure P_max", fmt.Sprintf("%.2f", a.Result.PMax)},
		{fmt.Sprintf("Critical %s", a.SampleLabel), fmt.Sprintf("%.2f m", a.Result.CriticalSample)},
		{"Convergence rate", fmt.Sprintf("%.1f%% (%d/%d)",
			a.Result.Convergence.Rate, a.Result.Convergence.Converged, a.Result.Convergence.Total)},
	}
	if a.Result.SafetyFactor != nil {
		resultRows = append(resultRows, [2]string{"Safety factor", fmt.Sprintf("%.2f", *a.Result.SafetyFactor)})
	} else {
		resultRows = append(resultRows, [2]string{"Safety factor", "not evaluated"})
	}
	table(pdf, resultRows)

	sectionTitle(pdf, "3. Response Curve Data")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 7, fmt.Sprintf("%s [m]", a.SampleLabel), "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "P", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, i := range pickIndices(len(a.Result.Samples), 25) {
		s := a.Result.Samples[i]
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", s.Sample), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", s.Pressure), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Showing representative points out of %d total.", len(a.Result.Samples)))

	return pdf.OutputFileAndClose(path)
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func table(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(70, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, row[1], "1", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
}
