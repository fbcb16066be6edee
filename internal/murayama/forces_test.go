package murayama

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrate_PhiZeroSectorArea(t *testing.T) {
	s := SlipSurface{
		CenterX: 5, CenterY: 20,
		RI: 14, RD: 14,
		ThetaI: math.Pi, ThetaD: -math.Pi / 4,
		Sample: -3,
	}
	f := &ForceIntegrator{
		Soil:   SoilParameters{Gamma: 18, Cohesion: 25, Phi: 0},
		Depth:  10,
		Method: SurchargeSimple,
	}

	forces := f.Integrate(s)

	wantArea := 0.5 * 14 * 14 * (math.Pi + math.Pi/4)
	assert.InDelta(t, wantArea, forces.Area, 1e-9)
	assert.InDelta(t, 18*wantArea, forces.Weight, 1e-6)
}

func TestIntegrate_SpiralAreaMatchesClosedForm(t *testing.T) {
	phi := 30 * math.Pi / 180
	tanPhi := math.Tan(phi)

	s := SlipSurface{
		CenterX: 10, CenterY: 12,
		ThetaI: 2.6, ThetaD: -0.5,
		Sample: -5,
	}
	r0 := 3.0
	s.RI = r0 * math.Exp(s.ThetaI*tanPhi)
	s.RD = r0 * math.Exp(s.ThetaD*tanPhi)

	f := &ForceIntegrator{
		Soil:   SoilParameters{Gamma: 20, Cohesion: 30, Phi: 30},
		Depth:  10,
		Method: SurchargeSimple,
	}
	forces := f.Integrate(s)

	// ∫ ½r₀²e^(2θtanφ) dθ has the closed form r₀²/(4tanφ)·(e^(2θᵢtanφ) − e^(2θdtanφ)).
	want := r0 * r0 / (4 * tanPhi) *
		(math.Exp(2*s.ThetaI*tanPhi) - math.Exp(2*s.ThetaD*tanPhi))
	require.InDelta(t, want, forces.Area, want*1e-8)
}

func TestSurcharge_SimpleColumnWeight(t *testing.T) {
	f := &ForceIntegrator{
		Soil:   SoilParameters{Gamma: 20, Phi: 30},
		Depth:  10,
		Method: SurchargeSimple,
	}
	assert.InDelta(t, 20*4*10, f.simpleSurcharge(4), 1e-12)
	assert.Zero(t, f.simpleSurcharge(0))
}

func TestSurcharge_TerzaghiFallbackEqualsSimple(t *testing.T) {
	// φ = 0 drives the arching denominator 2K·tanδ to zero; the
	// fallback must be exactly the simple column weight, not an
	// approximation of it.
	f := &ForceIntegrator{
		Soil:   SoilParameters{Gamma: 18, Cohesion: 5, Phi: 0},
		Depth:  12,
		Method: SurchargeTerzaghi,
	}
	for _, bs := range []float64{0.5, 2, 7.5} {
		assert.Equal(t, f.simpleSurcharge(bs), f.terzaghiSurcharge(bs), "width %v", bs)
	}
}

func TestSurcharge_TerzaghiReducesColumnWeight(t *testing.T) {
	f := &ForceIntegrator{
		Soil:   SoilParameters{Gamma: 20, Cohesion: 0, Phi: 35},
		Depth:  15,
		Method: SurchargeTerzaghi,
	}
	bs := 3.0
	assert.Less(t, f.terzaghiSurcharge(bs), f.simpleSurcharge(bs))
	assert.Greater(t, f.terzaghiSurcharge(bs), 0.0)
}

func TestSurcharge_TerzaghiClampsNegativePressure(t *testing.T) {
	// 2c exceeds γ·B_s: arching carries the whole column, p_v clamps
	// to zero instead of going negative.
	f := &ForceIntegrator{
		Soil:   SoilParameters{Gamma: 17, Cohesion: 100, Phi: 20},
		Depth:  10,
		Method: SurchargeTerzaghi,
	}
	assert.Zero(t, f.terzaghiSurcharge(1))
}

func TestIntegrate_ExternalSurchargeAdds(t *testing.T) {
	s := SlipSurface{
		CenterX: 5, CenterY: 20,
		RI: 14, RD: 14,
		ThetaI: math.Pi, ThetaD: -math.Pi / 4,
		Sample: -4,
	}
	base := &ForceIntegrator{
		Soil:   SoilParameters{Gamma: 18, Phi: 0},
		Depth:  10,
		Method: SurchargeSimple,
	}
	loaded := &ForceIntegrator{
		Soil:    base.Soil,
		Loading: LoadingConditions{Surcharge: 50},
		Depth:   10,
		Method:  SurchargeSimple,
	}

	q0 := base.Integrate(s).Surcharge
	q1 := loaded.Integrate(s).Surcharge
	assert.InDelta(t, 50*s.SurfaceWidth(), q1-q0, 1e-9)
}

func TestAdaptiveSimpson_Exact(t *testing.T) {
	// Cubic polynomials are integrated exactly by Simpson's rule.
	got := adaptiveSimpson(func(x float64) float64 { return x*x*x - 2*x }, 0, 2, 1e-12, 30)
	assert.InDelta(t, 0.0, got, 1e-10)

	// Exponential needs the adaptive refinement.
	got = adaptiveSimpson(math.Exp, 0, 3, 1e-12, 40)
	assert.InDelta(t, math.Exp(3)-1, got, 1e-8)
}
