package murayama

import (
	"fmt"
	"math"
)

// EquilibriumEvaluator solves the moment balance about the spiral
// center for the support pressure required to hold one slip surface.
type EquilibriumEvaluator struct {
	Soil   SoilParameters
	Height float64 // tunnel face height H, used to convert force to pressure
}

// NewEquilibriumEvaluator builds an evaluator from validated inputs.
func NewEquilibriumEvaluator(geo TunnelGeometry, soil SoilParameters) *EquilibriumEvaluator {
	return &EquilibriumEvaluator{Soil: soil, Height: geo.Height}
}

// RequiredPressure balances P·l_p + M_cohesion = W_h·l_w + Q·l_Q about
// the spiral center and returns the required support pressure, i.e.
// the driving excess normalized by the face height and clamped to ≥ 0.
// A numerically zero support arm l_p yields ErrDegenerateGeometry.
func (e *EquilibriumEvaluator) RequiredPressure(s SlipSurface, forces ForceSet) (float64, error) {
	lw := math.Abs(forces.CentroidX - s.CenterX)
	lq := math.Abs(s.Sample - s.CenterX)
	// The support resultant acts on the face plane at the tunnel
	// centerline; its arm is the horizontal distance to the center.
	lp := math.Abs(s.CenterX)
	if lp < 1e-10 {
		return 0, fmt.Errorf("%w: support arm l_p vanished at sample %.3f", ErrDegenerateGeometry, s.Sample)
	}

	driving := forces.Weight*lw + forces.Surcharge*lq
	resisting := e.cohesionMoment(s)

	p := (driving - resisting) / lp / e.Height
	if p < 0 || math.IsNaN(p) {
		p = 0
	}
	return p, nil
}

// cohesionMoment is the resisting moment of cohesion along the spiral:
// c/(2·tanφ)·(r_i² − r_d²) for φ > 0, degenerating to c·r_i·(θ_i − θ_d)
// on the circular arc at φ = 0.
func (e *EquilibriumEvaluator) cohesionMoment(s SlipSurface) float64 {
	phi := e.Soil.PhiRad()
	if phi == 0 {
		return e.Soil.Cohesion * s.RI * (s.ThetaI - s.ThetaD)
	}
	return e.Soil.Cohesion / (2 * math.Tan(phi)) * (s.RI*s.RI - s.RD*s.RD)
}
