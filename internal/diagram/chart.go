package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/kohta/gotfs/internal/murayama"
)

// SaveResponseCurve exports the sample-vs-pressure curve with the
// critical (maximum) point highlighted. The file format follows the
// extension (.png, .svg, .pdf); anything else gets ".png" appended.
func SaveResponseCurve(result *murayama.SearchResult, xLabel, yLabel, filename string) error {
	if len(result.Samples) == 0 {
		return fmt.Errorf("no converged samples to plot")
	}

	p := plot.New()
	p.Title.Text = "Murayama Face Stability Response Curve"
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	curve := make(plotter.XYs, len(result.Samples))
	for i, s := range result.Samples {
		curve[i] = plotter.XY{X: s.Sample, Y: s.Pressure}
	}

	line, err := plotter.NewLine(curve)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)

	critical, err := plotter.NewScatter(plotter.XYs{{X: result.CriticalSample, Y: result.PMax}})
	if err != nil {
		return err
	}
	critical.GlyphStyle.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	critical.GlyphStyle.Radius = vg.Points(5)
	critical.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(critical)

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: result.CriticalSample, Y: result.PMax}},
		Labels: []string{fmt.Sprintf("P_max=%.1f", result.PMax)},
	})
	if err != nil {
		return err
	}
	p.Add(label)

	p.Legend.Add("response curve", line)
	p.Legend.Add("critical surface", critical)
	p.Legend.Top = true

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// SaveSlipSurface exports the critical slip-surface geometry over the
// tunnel face outline and the ground surface line.
func SaveSlipSurface(result *murayama.SearchResult, geo murayama.TunnelGeometry, soil murayama.SoilParameters, filename string) error {
	p := plot.New()
	p.Title.Text = "Critical Slip Surface"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	s := result.CriticalSurface
	phi := soil.PhiRad()

	// Spiral polyline from exit to entry.
	const nPts = 128
	spiral := make(plotter.XYs, nPts+1)
	for i := 0; i <= nPts; i++ {
		theta := s.ThetaD + (s.ThetaI-s.ThetaD)*float64(i)/nPts
		r := s.Radius(theta, phi)
		spiral[i] = plotter.XY{
			X: s.CenterX + r*math.Cos(theta),
			Y: s.CenterY + r*math.Sin(theta),
		}
	}
	spiralLine, err := plotter.NewLine(spiral)
	if err != nil {
		return err
	}
	spiralLine.LineStyle.Width = vg.Points(2)
	spiralLine.LineStyle.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	p.Add(spiralLine)

	// Tunnel face from invert to crown on the centerline.
	face := plotter.XYs{
		{X: 0, Y: geo.Depth},
		{X: 0, Y: geo.Depth + geo.Height},
	}
	faceLine, err := plotter.NewLine(face)
	if err != nil {
		return err
	}
	faceLine.LineStyle.Width = vg.Points(3)
	faceLine.LineStyle.Color = color.Black
	p.Add(faceLine)

	// Ground surface above the slip-surface entry elevation.
	surfaceY := geo.Depth + geo.Height + geo.Depth
	groundHalf := math.Max(math.Abs(result.CriticalSample), geo.Height) * 1.5
	ground, err := plotter.NewLine(plotter.XYs{
		{X: -groundHalf, Y: surfaceY},
		{X: groundHalf, Y: surfaceY},
	})
	if err != nil {
		return err
	}
	ground.LineStyle.Width = vg.Points(1)
	ground.LineStyle.Color = color.Gray{Y: 100}
	ground.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(ground)

	// Spiral center marker.
	center, err := plotter.NewScatter(plotter.XYs{{X: s.CenterX, Y: s.CenterY}})
	if err != nil {
		return err
	}
	center.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	center.GlyphStyle.Radius = vg.Points(4)
	center.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(center)

	p.Legend.Add("slip surface", spiralLine)
	p.Legend.Add("tunnel face", faceLine)

	return save(p, 7*vg.Inch, 7*vg.Inch, filename)
}

func save(p *plot.Plot, w, h vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating chart directory %s: %w", dir, err)
		}
	}
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(w, h, filename)
	default:
		return p.Save(w, h, filename+".png")
	}
}
