package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kohta/gotfs/internal/murayama"
)

func testResult() *murayama.SearchResult {
	return &murayama.SearchResult{
		Samples: []murayama.SamplePoint{
			{Sample: -2, Pressure: 10},
			{Sample: -1, Pressure: 25},
			{Sample: 0, Pressure: 40},
			{Sample: 1, Pressure: 30},
			{Sample: 2, Pressure: 15},
		},
		PMax:           40,
		CriticalSample: 0,
		CriticalSurface: murayama.SlipSurface{
			CenterX: 12, CenterY: 14,
			RI: 16, RD: 4,
			ThetaI: 2.4, ThetaD: -0.4,
			Sample: 0,
		},
		Convergence: murayama.ConvergenceStats{Total: 5, Converged: 5, Rate: 100},
	}
}

func TestResponseCurve(t *testing.T) {
	out := ResponseCurve(testResult(), "x")

	assert.NotEmpty(t, out)
	assert.Contains(t, out, "critical")
	assert.Contains(t, out, "P_max = 40.00")
	assert.Contains(t, out, "x = 0.00")
}

func TestResponseCurve_EmptyResult(t *testing.T) {
	assert.Empty(t, ResponseCurve(&murayama.SearchResult{}, "x"))
}

func TestSummaryBox(t *testing.T) {
	out := SummaryBox("RESULTS", []string{"P_max = 40.00 kN/m", "critical x = 0.00 m"})

	assert.Contains(t, out, "RESULTS")
	assert.Contains(t, out, "P_max = 40.00 kN/m")
	assert.Contains(t, out, "╔")
	assert.Contains(t, out, "╚")

	// Every framed line closes its border.
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.True(t, strings.HasSuffix(line, "╗") ||
			strings.HasSuffix(line, "║") ||
			strings.HasSuffix(line, "╣") ||
			strings.HasSuffix(line, "╝"), line)
	}
}

func TestSaveResponseCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	require.NoError(t, SaveResponseCurve(testResult(), "x (m)", "P (kN/m)", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveResponseCurve_NoSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	require.Error(t, SaveResponseCurve(&murayama.SearchResult{}, "x", "P", path))
}

func TestSaveSlipSurface(t *testing.T) {
	geo, err := murayama.NewTunnelGeometry(10, 10)
	require.NoError(t, err)
	soil, err := murayama.NewSoilParameters(20, 30, 30)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "surface.svg")
	require.NoError(t, SaveSlipSurface(testResult(), geo, soil, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSave_ReportsDirectoryFailure(t *testing.T) {
	// Parent path occupied by a regular file: directory creation must
	// fail loudly instead of letting the plot save produce a confusing
	// error later.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := SaveResponseCurve(testResult(), "x", "P", filepath.Join(blocker, "sub", "curve.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating chart directory")
}

func TestSave_AppendsExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveResponseCurve(testResult(), "x", "P", filepath.Join(dir, "bare")))

	_, err := os.Stat(filepath.Join(dir, "bare.png"))
	require.NoError(t, err)
}
