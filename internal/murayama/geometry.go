package murayama

import (
	"fmt"
	"math"
)

// GeometrySolver fixes the logarithmic-spiral slip surface for one
// sweep sample. The entry point i sits at (sample, Depth+Height); four
// unknowns (center x, center y, r_i, r_d) are pinned by four
// simultaneous constraints:
//
//  1. the center lies on the line through i inclined at (π − φ);
//  2. the spiral relation r = r₀·e^(θ·tanφ) holds between θ_i and θ_d;
//  3. the distance from the center to i equals r_i;
//  4. the spiral exits the tunnel-bottom elevation at δ = 45° − φ/2.
type GeometrySolver struct {
	Geometry      TunnelGeometry
	Soil          SoilParameters
	Tolerance     float64
	MaxIterations int
}

// NewGeometrySolver builds a solver from validated inputs.
func NewGeometrySolver(geo TunnelGeometry, soil SoilParameters, cfg SearchConfig) *GeometrySolver {
	return &GeometrySolver{
		Geometry:      geo,
		Soil:          soil,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
	}
}

// Solve runs Newton iteration on the constraint system for the given
// sample (horizontal offset from the tunnel centerline). A sample whose
// residual does not fall below tolerance within the iteration budget is
// reported as ErrConvergence and never retried with different seeds.
func (g *GeometrySolver) Solve(sample float64) (SlipSurface, error) {
	var (
		h      = g.Geometry.Height
		d      = g.Geometry.Depth
		phi    = g.Soil.PhiRad()
		iX     = sample
		iY     = d + h
		line   = math.Pi - phi
		exit   = phi/2 - math.Pi/4 // θ_d at δ = 45° − φ/2
		tanPhi = math.Tan(phi)
	)

	residual := func(v [4]float64) ([4]float64, error) {
		ox, oy, ri, rd := v[0], v[1], v[2], v[3]
		if ri <= 0 || rd <= 0 {
			return [4]float64{}, fmt.Errorf("%w: radius left positive domain", ErrConvergence)
		}
		sinD := (d - oy) / rd
		if sinD < -1 || sinD > 1 {
			return [4]float64{}, fmt.Errorf("%w: exit point left the spiral domain", ErrConvergence)
		}
		thetaD := math.Asin(sinD)
		thetaI := entryAngle(iX, iY, ox, oy, thetaD)

		var f [4]float64
		f[0] = (oy - iY) - math.Tan(line)*(ox-iX)
		f[1] = rd - ri*math.Exp((thetaD-thetaI)*tanPhi)
		f[2] = ri - math.Hypot(iX-ox, iY-oy)
		// Exit-angle condition written in lengths, (D − O_y) = r_d·sin(θ_d),
		// so the row stays linear in oy and rd.
		f[3] = (d - oy) - rd*math.Sin(exit)
		return f, nil
	}

	// Geometric heuristic seed: center offset from i by H along the
	// (π−φ) direction, r_i ≈ H, r_d ≈ 1.5H.
	v := [4]float64{
		iX - h*math.Cos(line),
		iY - h*math.Sin(line),
		h,
		1.5 * h,
	}

	for iter := 0; iter < g.MaxIterations; iter++ {
		f, err := residual(v)
		if err != nil {
			return SlipSurface{}, err
		}
		norm := normInf(f)
		if norm < g.Tolerance {
			return g.surfaceFromSolution(v, sample)
		}

		jac, err := jacobian(residual, v, f)
		if err != nil {
			return SlipSurface{}, err
		}
		step, ok := solve4(jac, f)
		if !ok {
			return SlipSurface{}, fmt.Errorf("%w: singular Jacobian at sample %.3f", ErrConvergence, sample)
		}

		// Damped update: halve the step while it worsens the residual
		// or leaves the radii's positive domain.
		lambda := 1.0
		for backtrack := 0; ; backtrack++ {
			var trial [4]float64
			for k := 0; k < 4; k++ {
				trial[k] = v[k] - lambda*step[k]
			}
			ft, err := residual(trial)
			if err == nil && (normInf(ft) < norm || backtrack >= 8) {
				v = trial
				break
			}
			if backtrack >= 12 {
				return SlipSurface{}, fmt.Errorf("%w: stalled line search at sample %.3f", ErrConvergence, sample)
			}
			lambda /= 2
		}
	}

	f, err := residual(v)
	if err == nil && normInf(f) < g.Tolerance {
		return g.surfaceFromSolution(v, sample)
	}
	return SlipSurface{}, fmt.Errorf("%w: residual above %.1e after %d iterations at sample %.3f",
		ErrConvergence, g.Tolerance, g.MaxIterations, sample)
}

func (g *GeometrySolver) surfaceFromSolution(v [4]float64, sample float64) (SlipSurface, error) {
	iX := sample
	iY := g.Geometry.Depth + g.Geometry.Height
	ox, oy, ri, rd := v[0], v[1], v[2], v[3]
	sinD := (g.Geometry.Depth - oy) / rd
	if sinD < -1 || sinD > 1 {
		return SlipSurface{}, fmt.Errorf("%w: exit point left the spiral domain at sample %.3f", ErrConvergence, sample)
	}
	thetaD := math.Asin(sinD)
	thetaI := entryAngle(iX, iY, ox, oy, thetaD)
	return newSlipSurface(ox, oy, ri, rd, thetaI, thetaD, sample)
}

// entryAngle is the polar angle of the entry point about the center,
// lifted to the branch above the exit angle. At φ = 0 the entry sits
// exactly at the center elevation and atan2 would otherwise flip
// between ±π on rounding noise.
func entryAngle(iX, iY, ox, oy, thetaD float64) float64 {
	theta := math.Atan2(iY-oy, iX-ox)
	if theta < thetaD {
		theta += 2 * math.Pi
	}
	return theta
}

// jacobian approximates ∂f/∂v by forward differences.
func jacobian(f func([4]float64) ([4]float64, error), v [4]float64, f0 [4]float64) ([4][4]float64, error) {
	var jac [4][4]float64
	for j := 0; j < 4; j++ {
		h := 1e-7 * math.Max(1, math.Abs(v[j]))
		vp := v
		vp[j] += h
		fp, err := f(vp)
		if err != nil {
			return jac, err
		}
		for i := 0; i < 4; i++ {
			jac[i][j] = (fp[i] - f0[i]) / h
		}
	}
	return jac, nil
}

// solve4 solves the 4×4 linear system a·x = b by Gaussian elimination
// with partial pivoting. Reports ok=false for a singular system.
func solve4(a [4][4]float64, b [4]float64) (x [4]float64, ok bool) {
	const n = 4
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-14 {
			return x, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			m := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= m * a[col][k]
			}
			b[row] -= m * b[col]
		}
	}
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, true
}

func normInf(f [4]float64) float64 {
	m := 0.0
	for _, v := range f {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// solveStartAngle finds θ₀ of the simplified spiral from
// r₀·(e^(θ·tanφ) − 1)·cosθ = H/2. For φ = 0 the closed-form arcsine
// applies. With φ > 0, Newton iteration terminates on |Δθ| < tol; when
// the iteration cap is exceeded the last iterate is returned rather
// than failing, matching the fast mode's looser contract.
func solveStartAngle(r0, height, phiRad, tol float64, maxIter int) (float64, error) {
	if r0 <= 0 {
		return 0, fmt.Errorf("%w: base radius r₀=%.3f must be positive", ErrDegenerateGeometry, r0)
	}
	if phiRad == 0 {
		arg := height / (2 * r0)
		if arg > 1 {
			return 0, fmt.Errorf("%w: H/2 exceeds base radius (H=%.2f, r₀=%.2f)", ErrDegenerateGeometry, height, r0)
		}
		return math.Asin(arg), nil
	}

	tanPhi := math.Tan(phiRad)
	theta := 0.1
	for i := 0; i < maxIter; i++ {
		e := math.Exp(theta * tanPhi)
		f := r0*(e-1)*math.Cos(theta) - height/2
		df := r0 * (e*tanPhi*math.Cos(theta) - e*math.Sin(theta) + math.Sin(theta))
		if df == 0 {
			return 0, fmt.Errorf("%w: flat derivative solving start angle", ErrConvergence)
		}
		next := theta - f/df
		if math.Abs(next-theta) < tol {
			return next, nil
		}
		theta = next
	}
	return theta, nil
}

// solveEndAngle finds θ₁ from the width constraint
// r(θ₁)·sinθ₁ − r(θ₀)·sinθ₀ = B. Same termination contract as
// solveStartAngle.
func solveEndAngle(r0, width, phiRad, theta0, tol float64, maxIter int) (float64, error) {
	if phiRad == 0 {
		arg := (width + r0*math.Sin(theta0)) / r0
		if arg > 1 {
			return 0, fmt.Errorf("%w: sliding width B=%.2f too large for base radius r₀=%.2f", ErrDegenerateGeometry, width, r0)
		}
		return math.Asin(arg), nil
	}

	tanPhi := math.Tan(phiRad)
	rTheta0 := r0 * math.Exp(theta0*tanPhi)
	theta := theta0 + 0.5
	for i := 0; i < maxIter; i++ {
		r := r0 * math.Exp(theta*tanPhi)
		f := r*math.Sin(theta) - rTheta0*math.Sin(theta0) - width
		df := r * (tanPhi*math.Sin(theta) + math.Cos(theta))
		if df == 0 {
			return 0, fmt.Errorf("%w: flat derivative solving end angle", ErrConvergence)
		}
		next := theta - f/df
		if math.Abs(next-theta) < tol {
			return next, nil
		}
		theta = next
	}
	return theta, nil
}
