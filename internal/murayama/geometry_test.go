package murayama

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() SearchConfig {
	return SearchConfig{
		Start:         -10,
		End:           10,
		Step:          0.5,
		Tolerance:     1e-6,
		MaxIterations: 100,
		Surcharge:     SurchargeSimple,
	}
}

func TestSolveStartAngle_PhiZeroClosedForm(t *testing.T) {
	theta, err := solveStartAngle(5, 8, 0, 1e-6, 100)
	require.NoError(t, err)
	assert.InDelta(t, math.Asin(0.8), theta, 1e-12)
}

func TestSolveStartAngle_RejectsOversizedFace(t *testing.T) {
	_, err := solveStartAngle(5, 12, 0, 1e-6, 100)
	require.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestSolveEndAngle_PhiZeroClosedForm(t *testing.T) {
	theta0 := math.Asin(0.4)
	theta1, err := solveEndAngle(5, 1, 0, theta0, 1e-6, 100)
	require.NoError(t, err)

	want := math.Asin((1 + 5*math.Sin(theta0)) / 5)
	assert.InDelta(t, want, theta1, 1e-12)
	assert.Greater(t, theta1, theta0)
}

func TestSolveEndAngle_RejectsOversizedWidth(t *testing.T) {
	theta0 := math.Asin(0.8)
	_, err := solveEndAngle(5, 10, 0, theta0, 1e-6, 100)
	require.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestSolveStartAngle_FrictionalNewtonSatisfiesResidual(t *testing.T) {
	// r₀ must comfortably exceed H/2 for the frictional root to exist
	// inside the first quadrant.
	const (
		r0  = 15.0
		h   = 10.0
		phi = 30 * math.Pi / 180
	)
	theta, err := solveStartAngle(r0, h, phi, 1e-10, 100)
	require.NoError(t, err)

	residual := r0*(math.Exp(theta*math.Tan(phi))-1)*math.Cos(theta) - h/2
	assert.InDelta(t, 0, residual, 1e-8)
}

func TestSolveEndAngle_FrictionalNewtonSatisfiesResidual(t *testing.T) {
	const (
		r0    = 15.0
		width = 3.0
		phi   = 30 * math.Pi / 180
	)
	theta0, err := solveStartAngle(r0, 10, phi, 1e-10, 100)
	require.NoError(t, err)
	theta1, err := solveEndAngle(r0, width, phi, theta0, 1e-10, 100)
	require.NoError(t, err)

	tanPhi := math.Tan(phi)
	residual := r0*math.Exp(theta1*tanPhi)*math.Sin(theta1) -
		r0*math.Exp(theta0*tanPhi)*math.Sin(theta0) - width
	assert.InDelta(t, 0, residual, 1e-8)
}

func TestGeometrySolver_SatisfiesConstraints(t *testing.T) {
	geo, err := NewTunnelGeometry(10, 10)
	require.NoError(t, err)
	soil, err := NewSoilParameters(20, 30, 30)
	require.NoError(t, err)

	solver := NewGeometrySolver(geo, soil, testConfig())
	s, err := solver.Solve(-5)
	require.NoError(t, err)

	assert.Greater(t, s.RI, 0.0)
	assert.Greater(t, s.RD, 0.0)
	assert.Greater(t, s.ThetaI, s.ThetaD)

	phi := soil.PhiRad()
	iX, iY := -5.0, geo.Depth+geo.Height

	// Center on the (π − φ) line through the entry point.
	assert.InDelta(t, 0,
		(s.CenterY-iY)-math.Tan(math.Pi-phi)*(s.CenterX-iX), 1e-5)

	// Entry radius equals the distance from center to entry point.
	assert.InDelta(t, s.RI, math.Hypot(iX-s.CenterX, iY-s.CenterY), 1e-5)

	// Spiral radius relation between the terminal angles.
	assert.InDelta(t, s.RD,
		s.RI*math.Exp((s.ThetaD-s.ThetaI)*math.Tan(phi)), 1e-5)

	// Exit angle pinned at δ = 45° − φ/2 below horizontal.
	assert.InDelta(t, phi/2-math.Pi/4, s.ThetaD, 1e-6)
}

func TestGeometrySolver_PhiZeroCircularArc(t *testing.T) {
	geo, err := NewTunnelGeometry(10, 10)
	require.NoError(t, err)
	soil, err := NewSoilParameters(17, 25, 0)
	require.NoError(t, err)

	solver := NewGeometrySolver(geo, soil, testConfig())
	s, err := solver.Solve(2)
	require.NoError(t, err)

	// φ = 0 degenerates the spiral to a circle with its center at the
	// entry elevation and the exit at 45° below horizontal.
	assert.InDelta(t, s.RI, s.RD, 1e-5)
	assert.InDelta(t, geo.Depth+geo.Height, s.CenterY, 1e-5)
	assert.InDelta(t, -math.Pi/4, s.ThetaD, 1e-5)
	assert.InDelta(t, geo.Height*math.Sqrt2, s.RI, 1e-4)
}

func TestGeometrySolver_ConvergenceFailure(t *testing.T) {
	geo, err := NewTunnelGeometry(10, 10)
	require.NoError(t, err)
	soil, err := NewSoilParameters(20, 0, 25)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Tolerance = 1e-300
	cfg.MaxIterations = 3

	solver := NewGeometrySolver(geo, soil, cfg)
	_, err = solver.Solve(-5)
	require.ErrorIs(t, err, ErrConvergence)
}

func TestSolve4(t *testing.T) {
	a := [4][4]float64{
		{2, 0, 0, 0},
		{0, 3, 0, 0},
		{1, 0, 1, 0},
		{0, 0, 0, 5},
	}
	b := [4]float64{4, 9, 5, 10}

	x, ok := solve4(a, b)
	require.True(t, ok)
	assert.InDelta(t, 2, x[0], 1e-12)
	assert.InDelta(t, 3, x[1], 1e-12)
	assert.InDelta(t, 3, x[2], 1e-12)
	assert.InDelta(t, 2, x[3], 1e-12)
}

func TestSolve4_Singular(t *testing.T) {
	a := [4][4]float64{
		{1, 1, 0, 0},
		{2, 2, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	_, ok := solve4(a, [4]float64{1, 2, 3, 4})
	assert.False(t, ok)
}
