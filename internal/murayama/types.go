// Package murayama implements Murayama's limit-equilibrium method for
// tunnel face stability on a logarithmic-spiral slip surface.
//
// The engine searches a family of candidate slip surfaces, solves the
// moment equilibrium of the sliding mass for each, and reports the
// governing (maximum support pressure) surface together with
// convergence statistics for the sweep.
package murayama

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for per-sample and whole-sweep failures.
var (
	// ErrConvergence indicates the geometry solve for a sample did not
	// meet tolerance within the iteration budget.
	ErrConvergence = errors.New("murayama: geometry solve did not converge")

	// ErrDegenerateGeometry indicates a moment arm or denominator
	// required by the equilibrium equation is numerically zero.
	ErrDegenerateGeometry = errors.New("murayama: degenerate slip surface geometry")

	// ErrEmptyResult indicates no sample across the entire sweep
	// converged. A zero P_max in this situation does not mean "stable".
	ErrEmptyResult = errors.New("murayama: no slip surface converged over the sweep range")
)

// SurchargeMethod selects how the overburden load above the slip mass
// is computed.
type SurchargeMethod int

const (
	// SurchargeSimple takes the full weight of the soil column.
	SurchargeSimple SurchargeMethod = iota
	// SurchargeTerzaghi reduces the column weight by arching per
	// Terzaghi's earth pressure theory.
	SurchargeTerzaghi
)

func (m SurchargeMethod) String() string {
	switch m {
	case SurchargeSimple:
		return "simple"
	case SurchargeTerzaghi:
		return "terzaghi"
	default:
		return fmt.Sprintf("SurchargeMethod(%d)", int(m))
	}
}

// ParseSurchargeMethod converts a CLI/config string to a SurchargeMethod.
func ParseSurchargeMethod(s string) (SurchargeMethod, error) {
	switch s {
	case "simple":
		return SurchargeSimple, nil
	case "terzaghi":
		return SurchargeTerzaghi, nil
	}
	return 0, fmt.Errorf("unknown surcharge method %q (want simple or terzaghi)", s)
}

// TunnelGeometry describes the excavation face.
type TunnelGeometry struct {
	Height float64 // H - face height (m)
	Depth  float64 // D_t - crown depth / overburden above the face (m)
}

// NewTunnelGeometry validates and builds a TunnelGeometry.
func NewTunnelGeometry(height, depth float64) (TunnelGeometry, error) {
	if height <= 0 {
		return TunnelGeometry{}, fmt.Errorf("invalid tunnel geometry: height=%.2f must be positive", height)
	}
	if depth < 0 {
		return TunnelGeometry{}, fmt.Errorf("invalid tunnel geometry: depth=%.2f must be non-negative", depth)
	}
	return TunnelGeometry{Height: height, Depth: depth}, nil
}

// SoilParameters holds the soil strength parameters.
type SoilParameters struct {
	Gamma    float64 // γ - effective unit weight (kN/m³)
	Cohesion float64 // c - cohesion (kPa)
	Phi      float64 // φ - internal friction angle (degrees)
}

// NewSoilParameters validates and builds SoilParameters.
func NewSoilParameters(gamma, cohesion, phi float64) (SoilParameters, error) {
	if gamma < 10 || gamma > 30 {
		return SoilParameters{}, fmt.Errorf("invalid soil: unit weight γ=%.2f outside [10, 30] kN/m³", gamma)
	}
	if cohesion < 0 {
		return SoilParameters{}, fmt.Errorf("invalid soil: cohesion c=%.2f must be non-negative", cohesion)
	}
	if phi < 0 || phi > 60 {
		return SoilParameters{}, fmt.Errorf("invalid soil: friction angle φ=%.2f outside [0, 60] degrees", phi)
	}
	return SoilParameters{Gamma: gamma, Cohesion: cohesion, Phi: phi}, nil
}

// PhiRad returns the friction angle in radians.
func (s SoilParameters) PhiRad() float64 {
	return s.Phi * math.Pi / 180
}

// LoadingConditions holds external loads acting on the sliding mass.
type LoadingConditions struct {
	PorePressure float64 // u - water pressure (kPa)
	Surcharge    float64 // σᵥ - surface surcharge (kPa)
}

// NewLoadingConditions validates and builds LoadingConditions.
func NewLoadingConditions(porePressure, surcharge float64) (LoadingConditions, error) {
	if porePressure < 0 {
		return LoadingConditions{}, fmt.Errorf("invalid loading: pore pressure u=%.2f must be non-negative", porePressure)
	}
	if surcharge < 0 {
		return LoadingConditions{}, fmt.Errorf("invalid loading: surcharge σv=%.2f must be non-negative", surcharge)
	}
	return LoadingConditions{PorePressure: porePressure, Surcharge: surcharge}, nil
}

// SearchConfig controls the slip-surface sweep and the inner solvers.
type SearchConfig struct {
	Start         float64 // first sample value (inclusive)
	End           float64 // last sample value (inclusive)
	Step          float64 // sample spacing (> 0)
	Tolerance     float64 // solver convergence tolerance (> 0)
	MaxIterations int     // inner solver iteration cap (>= 1)
	Surcharge     SurchargeMethod
}

// Validate checks the sweep and solver settings.
func (c SearchConfig) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("invalid search config: step=%.4f must be positive", c.Step)
	}
	if c.End < c.Start {
		return fmt.Errorf("invalid search config: end=%.2f before start=%.2f", c.End, c.Start)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("invalid search config: tolerance=%.3g must be positive", c.Tolerance)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("invalid search config: max iterations=%d must be at least 1", c.MaxIterations)
	}
	return nil
}

// SlipSurface is one solved logarithmic-spiral slip surface.
// Angles are polar angles about the spiral center; ThetaI marks the
// upper entry point, ThetaD the lower exit.
type SlipSurface struct {
	CenterX float64 // O_x - spiral center
	CenterY float64 // O_y
	RI      float64 // r_i - radius at entry point i
	RD      float64 // r_d - radius at exit point d
	ThetaI  float64 // θ_i - entry angle
	ThetaD  float64 // θ_d - exit angle
	Sample  float64 // sweep parameter that produced this surface
}

func newSlipSurface(cx, cy, ri, rd, thetaI, thetaD, sample float64) (SlipSurface, error) {
	if ri <= 0 || rd <= 0 {
		return SlipSurface{}, fmt.Errorf("%w: non-positive radius (r_i=%.3f, r_d=%.3f)", ErrDegenerateGeometry, ri, rd)
	}
	if thetaI <= thetaD {
		return SlipSurface{}, fmt.Errorf("%w: entry angle θ_i=%.3f not above exit angle θ_d=%.3f", ErrDegenerateGeometry, thetaI, thetaD)
	}
	for _, v := range []float64{cx, cy, ri, rd, thetaI, thetaD} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return SlipSurface{}, fmt.Errorf("%w: non-finite geometry value", ErrDegenerateGeometry)
		}
	}
	return SlipSurface{CenterX: cx, CenterY: cy, RI: ri, RD: rd, ThetaI: thetaI, ThetaD: thetaD, Sample: sample}, nil
}

// SurfaceWidth is the slip-surface width B_s at the ground surface,
// measured from the tunnel centerline.
func (s SlipSurface) SurfaceWidth() float64 {
	return math.Abs(s.Sample)
}

// BaseRadius returns r₀ of the spiral r = r₀·e^(θ·tanφ).
func (s SlipSurface) BaseRadius(phiRad float64) float64 {
	if phiRad == 0 {
		return s.RI
	}
	return s.RI / math.Exp(s.ThetaI*math.Tan(phiRad))
}

// Radius evaluates the spiral radius at polar angle theta.
func (s SlipSurface) Radius(theta, phiRad float64) float64 {
	if phiRad == 0 {
		return s.RI
	}
	return s.BaseRadius(phiRad) * math.Exp(theta*math.Tan(phiRad))
}

// ForceSet holds the integrated forces acting on one slip mass.
type ForceSet struct {
	Weight    float64 // W_h - self weight of the sliding mass (kN/m)
	Surcharge float64 // Q - overburden plus external surcharge (kN/m)
	CentroidX float64 // weight centroid
	CentroidY float64
	Area      float64 // integrated cross-sectional area (m²)
}

// SamplePoint is one (sample, pressure) pair on the response curve.
type SamplePoint struct {
	Sample   float64
	Pressure float64
}

// SampleOutcome is the per-sample result of the sweep: either a solved
// surface with its required pressure, or a typed failure reason in Err.
type SampleOutcome struct {
	Sample   float64
	Pressure float64
	Surface  SlipSurface
	Err      error
}

// Converged reports whether the sample produced a usable result.
func (o SampleOutcome) Converged() bool {
	return o.Err == nil
}

// ConvergenceStats aggregates solver success accounting over a sweep.
type ConvergenceStats struct {
	Total     int
	Converged int
	Failed    int
	Rate      float64 // percentage of samples that converged
}

// SearchResult is the outcome of a full slip-surface sweep. It is
// handed read-only to chart, report and export consumers.
type SearchResult struct {
	Samples         []SamplePoint // ascending sample order
	PMax            float64
	CriticalSample  float64
	CriticalSurface SlipSurface
	Convergence     ConvergenceStats
	Surcharge       SurchargeMethod
	// SafetyFactor is only evaluated by the simplified variant when an
	// external surcharge is present; the rigorous sweep leaves it nil.
	SafetyFactor *float64
}
