package murayama

import "math"

// ForceIntegrator computes the weight of the bounded soil mass and the
// surcharge load transmitted onto it for one solved slip surface.
type ForceIntegrator struct {
	Soil    SoilParameters
	Loading LoadingConditions
	Depth   float64 // overburden depth D_t above the entry point (m)
	Method  SurchargeMethod
}

// NewForceIntegrator builds an integrator from validated inputs.
func NewForceIntegrator(geo TunnelGeometry, soil SoilParameters, loading LoadingConditions, method SurchargeMethod) *ForceIntegrator {
	return &ForceIntegrator{Soil: soil, Loading: loading, Depth: geo.Depth, Method: method}
}

// Integrate evaluates the force set for the given surface.
//
// The weight is W_h = γ·∫ ½r(θ)² dθ over [θ_d, θ_i]. For φ = 0 the
// spiral degenerates to a circular arc and the sector formula applies;
// otherwise the integral is evaluated by adaptive Simpson quadrature,
// which stays stable for both narrow and wide angle spans.
func (f *ForceIntegrator) Integrate(s SlipSurface) ForceSet {
	phi := f.Soil.PhiRad()

	var area float64
	if phi == 0 {
		area = 0.5 * s.RI * s.RI * (s.ThetaI - s.ThetaD)
	} else {
		r0 := s.BaseRadius(phi)
		twoTan := 2 * math.Tan(phi)
		area = adaptiveSimpson(func(theta float64) float64 {
			return 0.5 * r0 * r0 * math.Exp(theta*twoTan)
		}, s.ThetaD, s.ThetaI, 1e-9, 40)
	}

	weight := f.Soil.Gamma * area

	bs := s.SurfaceWidth()
	var q float64
	switch f.Method {
	case SurchargeTerzaghi:
		q = f.terzaghiSurcharge(bs)
	default:
		q = f.simpleSurcharge(bs)
	}
	// External surface surcharge acts over the same width on top of
	// the overburden column.
	q += f.Loading.Surcharge * bs

	// Sector-centroid approximation: two-thirds of the mean radius
	// along the mean angle. Used only for the moment arm.
	cr := 2.0 / 3.0 * (s.RI + s.RD) / 2
	ct := (s.ThetaI + s.ThetaD) / 2

	return ForceSet{
		Weight:    weight,
		Surcharge: q,
		CentroidX: s.CenterX + cr*math.Cos(ct),
		CentroidY: s.CenterY + cr*math.Sin(ct),
		Area:      area,
	}
}

// simpleSurcharge is the full overburden column weight Q = γ·B_s·D_t.
func (f *ForceIntegrator) simpleSurcharge(bs float64) float64 {
	if bs <= 0 {
		return 0
	}
	return f.Soil.Gamma * bs * f.Depth
}

// terzaghiSurcharge reduces the overburden by arching:
//
//	p_v = (γ·B_s − 2c) / (2K·tanδ) · (1 − e^(−2K·tanδ·D_t/B_s))
//
// with K the Rankine active coefficient tan²(45° − φ/2) and δ = φ.
// A near-zero denominator falls back to the simple column weight; the
// exponent is clamped against overflow for extreme D_t/B_s ratios and
// p_v is kept non-negative.
func (f *ForceIntegrator) terzaghiSurcharge(bs float64) float64 {
	if bs <= 0 {
		return 0
	}
	phi := f.Soil.PhiRad()
	k := math.Pow(math.Tan(math.Pi/4-phi/2), 2)
	denom := 2 * k * math.Tan(phi)
	if math.Abs(denom) < 1e-10 {
		return f.simpleSurcharge(bs)
	}

	exponent := -denom * f.Depth / bs
	expTerm := 0.0
	if exponent > -20 {
		expTerm = math.Exp(exponent)
	}

	pv := (f.Soil.Gamma*bs - 2*f.Soil.Cohesion) / denom * (1 - expTerm)
	if pv < 0 {
		pv = 0
	}
	return pv * bs
}

// adaptiveSimpson integrates fn over [a, b] by recursive Simpson
// bisection with Richardson correction.
func adaptiveSimpson(fn func(float64) float64, a, b, eps float64, depth int) float64 {
	c := (a + b) / 2
	fa, fb, fc := fn(a), fn(b), fn(c)
	whole := (b - a) / 6 * (fa + 4*fc + fb)
	return simpsonStep(fn, a, b, fa, fb, fc, whole, eps, depth)
}

func simpsonStep(fn func(float64) float64, a, b, fa, fb, fc, whole, eps float64, depth int) float64 {
	c := (a + b) / 2
	l, r := (a+c)/2, (c+b)/2
	fl, fr := fn(l), fn(r)
	left := (c - a) / 6 * (fa + 4*fl + fc)
	right := (b - c) / 6 * (fc + 4*fr + fb)
	if depth <= 0 || math.Abs(left+right-whole) <= 15*eps*math.Max(1, math.Abs(whole)) {
		return left + right + (left+right-whole)/15
	}
	return simpsonStep(fn, a, c, fa, fc, fl, left, eps/2, depth-1) +
		simpsonStep(fn, c, b, fc, fb, fr, right, eps/2, depth-1)
}
