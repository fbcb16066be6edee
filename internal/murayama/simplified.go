package murayama

import (
	"errors"
	"fmt"
	"math"
)

// SimplifiedVariant is the fast, approximate Murayama formulation. It
// sweeps the sliding width B instead of the entry offset, replaces the
// coupled geometry solve with two independent scalar root-finds for the
// spiral angles, and uses closed-form rectangular approximations for
// the weight and moment arms.
//
// The computed P is the available resistance force (kN/m): cohesion
// adds to it, pore pressure subtracts from it. This mode is kept
// deliberately cruder than the offset sweep and is not a substitute
// for it.
type SimplifiedVariant struct {
	Geometry   TunnelGeometry
	Soil       SoilParameters
	Loading    LoadingConditions
	BaseRadius float64 // r₀ of the assumed spiral (m)
	Config     SearchConfig
}

// NewSimplifiedVariant builds the fast-mode calculator. A non-positive
// base radius defaults to H/2.
func NewSimplifiedVariant(geo TunnelGeometry, soil SoilParameters, loading LoadingConditions, baseRadius float64, cfg SearchConfig) *SimplifiedVariant {
	if baseRadius <= 0 {
		baseRadius = geo.Height / 2
	}
	return &SimplifiedVariant{Geometry: geo, Soil: soil, Loading: loading, BaseRadius: baseRadius, Config: cfg}
}

// Resistance evaluates the resistance force for one sliding width.
func (v *SimplifiedVariant) Resistance(width float64) SampleOutcome {
	if width <= 0 {
		return SampleOutcome{Sample: width, Err: fmt.Errorf("%w: sliding width B=%.3f must be positive", ErrDegenerateGeometry, width)}
	}

	phi := v.Soil.PhiRad()
	theta0, err := solveStartAngle(v.BaseRadius, v.Geometry.Height, phi, v.Config.Tolerance, v.Config.MaxIterations)
	if err != nil {
		return SampleOutcome{Sample: width, Err: err}
	}
	theta1, err := solveEndAngle(v.BaseRadius, width, phi, theta0, v.Config.Tolerance, v.Config.MaxIterations)
	if err != nil {
		return SampleOutcome{Sample: width, Err: err}
	}
	if theta1 <= theta0 {
		return SampleOutcome{Sample: width, Err: fmt.Errorf("%w: end angle θ₁=%.3f not beyond θ₀=%.3f", ErrDegenerateGeometry, theta1, theta0)}
	}

	// Rectangular approximations: W over H×B with its centroid at B/2,
	// resistance resultant at mid-face.
	weight := v.Soil.Gamma * v.Geometry.Height * width
	lw := width / 2
	lp := v.Geometry.Height / 2

	cohesion := v.cohesionMoment(theta0, theta1)
	water := v.waterMoment(width, lw)
	surcharge := v.Loading.Surcharge * width * lw

	p := (weight*lw + cohesion - water + surcharge) / lp
	if p < 0 || math.IsNaN(p) {
		p = 0
	}

	surface, err := v.surface(theta0, theta1, width, phi)
	if err != nil {
		return SampleOutcome{Sample: width, Err: err}
	}
	return SampleOutcome{Sample: width, Pressure: p, Surface: surface}
}

// Run sweeps the sliding width over the configured range.
func (v *SimplifiedVariant) Run() (*SearchResult, error) {
	if err := v.Config.Validate(); err != nil {
		return nil, err
	}
	if v.Config.Start <= 0 {
		return nil, errors.New("murayama: width sweep must start above zero")
	}

	result := &SearchResult{Surcharge: v.Config.Surcharge}
	var haveMax bool

	for i := 0; ; i++ {
		width := v.Config.Start + float64(i)*v.Config.Step
		if width > v.Config.End+v.Config.Step/2 {
			break
		}
		result.Convergence.Total++

		outcome := v.Resistance(width)
		if !outcome.Converged() {
			result.Convergence.Failed++
			continue
		}
		result.Convergence.Converged++
		result.Samples = append(result.Samples, SamplePoint{Sample: width, Pressure: outcome.Pressure})

		if !haveMax || outcome.Pressure > result.PMax {
			haveMax = true
			result.PMax = outcome.Pressure
			result.CriticalSample = width
			result.CriticalSurface = outcome.Surface
		}
	}

	if result.Convergence.Converged == 0 {
		return nil, fmt.Errorf("%w: %d widths attempted", ErrEmptyResult, result.Convergence.Total)
	}
	result.Convergence.Rate = float64(result.Convergence.Converged) / float64(result.Convergence.Total) * 100

	// The only safety factor the method defines: available resistance
	// against the supplied external surcharge.
	if v.Loading.Surcharge > 0 && result.PMax > 0 {
		sf := result.PMax / v.Loading.Surcharge
		result.SafetyFactor = &sf
	}
	return result, nil
}

// cohesionMoment integrates cohesion along the spiral arc about the
// center: closed arc-length form at φ = 0, exponential integral
// otherwise.
func (v *SimplifiedVariant) cohesionMoment(theta0, theta1 float64) float64 {
	phi := v.Soil.PhiRad()
	r0 := v.BaseRadius
	c := v.Soil.Cohesion
	if phi == 0 {
		arc := r0 * (theta1 - theta0)
		return c * r0 * arc
	}
	tanPhi := math.Tan(phi)
	integral := r0 * r0 * c / tanPhi *
		(math.Exp(2*theta1*tanPhi) - math.Exp(2*theta0*tanPhi)) / 2
	return integral * math.Cos(phi)
}

// waterMoment is the destabilizing moment of pore pressure over the
// sliding block, halved for the triangular pressure distribution.
func (v *SimplifiedVariant) waterMoment(width, lw float64) float64 {
	if v.Loading.PorePressure == 0 {
		return 0
	}
	force := v.Loading.PorePressure * v.Geometry.Height * width
	return force * lw * 0.5
}

func (v *SimplifiedVariant) surface(theta0, theta1, width, phi float64) (SlipSurface, error) {
	tanPhi := math.Tan(phi)
	rStart := v.BaseRadius * math.Exp(theta0*tanPhi)
	rEnd := v.BaseRadius * math.Exp(theta1*tanPhi)
	// The width sweep fixes the spiral by its angles alone; the center
	// is reported at the face top for visualization.
	return newSlipSurface(0, v.Geometry.Depth+v.Geometry.Height, rEnd, rStart, theta1, theta0, width)
}
