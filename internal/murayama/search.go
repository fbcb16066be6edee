package murayama

import (
	"errors"
	"fmt"
)

type searchState int

const (
	stateIdle searchState = iota
	stateSweeping
	stateDone
)

// CriticalSurfaceSearch sweeps the slip-surface entry offset over the
// configured range and finds the surface demanding the maximum support
// pressure. Per-sample solver failures are counted and skipped; only a
// sweep in which no sample converges is escalated to the caller.
//
// Each sample is a pure function of its inputs, so the sweep is fully
// deterministic: identical inputs always reproduce identical results.
type CriticalSurfaceSearch struct {
	Geometry TunnelGeometry
	Soil     SoilParameters
	Loading  LoadingConditions
	Config   SearchConfig

	state searchState
}

// NewCriticalSurfaceSearch builds a search over validated inputs.
func NewCriticalSurfaceSearch(geo TunnelGeometry, soil SoilParameters, loading LoadingConditions, cfg SearchConfig) *CriticalSurfaceSearch {
	return &CriticalSurfaceSearch{Geometry: geo, Soil: soil, Loading: loading, Config: cfg}
}

// Evaluate runs the full geometry → forces → equilibrium chain for a
// single sample value. It is also the re-entry point for reproducing
// the critical sample of a finished sweep.
func (s *CriticalSurfaceSearch) Evaluate(sample float64) SampleOutcome {
	solver := NewGeometrySolver(s.Geometry, s.Soil, s.Config)
	surface, err := solver.Solve(sample)
	if err != nil {
		return SampleOutcome{Sample: sample, Err: err}
	}

	integrator := NewForceIntegrator(s.Geometry, s.Soil, s.Loading, s.Config.Surcharge)
	forces := integrator.Integrate(surface)

	evaluator := NewEquilibriumEvaluator(s.Geometry, s.Soil)
	pressure, err := evaluator.RequiredPressure(surface, forces)
	if err != nil {
		return SampleOutcome{Sample: sample, Err: err}
	}

	return SampleOutcome{Sample: sample, Pressure: pressure, Surface: surface}
}

// Run executes the sweep once. Calling Run on a finished search is an
// error; build a new search for a new run.
func (s *CriticalSurfaceSearch) Run() (*SearchResult, error) {
	if s.state != stateIdle {
		return nil, errors.New("murayama: search already ran")
	}
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	s.state = stateSweeping
	defer func() { s.state = stateDone }()

	result := &SearchResult{Surcharge: s.Config.Surcharge}
	var haveMax bool

	// Inclusive sweep; the half-step guard keeps the end sample in the
	// range despite floating-point accumulation.
	for i := 0; ; i++ {
		sample := s.Config.Start + float64(i)*s.Config.Step
		if sample > s.Config.End+s.Config.Step/2 {
			break
		}
		result.Convergence.Total++

		outcome := s.Evaluate(sample)
		if !outcome.Converged() {
			result.Convergence.Failed++
			continue
		}
		result.Convergence.Converged++
		result.Samples = append(result.Samples, SamplePoint{Sample: sample, Pressure: outcome.Pressure})

		if !haveMax || outcome.Pressure > result.PMax {
			haveMax = true
			result.PMax = outcome.Pressure
			result.CriticalSample = sample
			result.CriticalSurface = outcome.Surface
		}
	}

	if result.Convergence.Converged == 0 {
		return nil, fmt.Errorf("%w: %d samples attempted", ErrEmptyResult, result.Convergence.Total)
	}
	result.Convergence.Rate = float64(result.Convergence.Converged) / float64(result.Convergence.Total) * 100
	return result, nil
}
