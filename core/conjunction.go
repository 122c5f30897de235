package core

import (
	"fmt"

	"github.com/signalsfoundry/telemetrix/model"
)

// ProximityResult is the outcome of screening one orbit pair. It is derived
// and stateless, recomputed on every evaluation.
type ProximityResult struct {
	MinDistanceKm float64        `json:"min_distance_km"`
	Tier          model.RiskTier `json:"risk_tier"`

	// Full sampled trajectories, kept for downstream 3D rendering.
	TrajectoryA Trajectory `json:"trajectory_a"`
	TrajectoryB Trajectory `json:"trajectory_b"`
}

// Evaluator screens two orbits for close approaches. The zero value is not
// usable; construct with NewEvaluator.
type Evaluator struct {
	thresholds model.RiskThresholds
	provider   ProviderKind
}

// NewEvaluator builds an evaluator with the given risk cutoffs and position
// fidelity. Zero-value thresholds fall back to the defaults; an empty
// provider kind means the circular closed form.
func NewEvaluator(thresholds model.RiskThresholds, provider ProviderKind) (*Evaluator, error) {
	if thresholds == (model.RiskThresholds{}) {
		thresholds = model.DefaultRiskThresholds()
	}
	if err := thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidOrbit, err)
	}
	return &Evaluator{thresholds: thresholds, provider: provider}, nil
}

// Thresholds returns the configured risk cutoffs.
func (e *Evaluator) Thresholds() model.RiskThresholds { return e.thresholds }

// Evaluate samples both orbits at sampleCount uniform offsets spanning one
// period of orbitA and classifies the minimum pairwise distance.
//
// Both orbits are driven by the same elapsed-time offsets. If the periods
// differ, orbitB may complete less or more than one revolution inside the
// window; the question answered is "does a close approach occur within
// orbitA's period", so approaches outside that window go unobserved.
//
// Pure function of its inputs: no state survives between calls.
func (e *Evaluator) Evaluate(orbitA, orbitB model.OrbitDescriptor, sampleCount int) (*ProximityResult, error) {
	if sampleCount < 2 {
		return nil, fmt.Errorf("%w: sample count %d, need at least 2", model.ErrInvalidOrbit, sampleCount)
	}
	if err := ValidateOrbit(orbitA); err != nil {
		return nil, err
	}
	if err := ValidateOrbit(orbitB); err != nil {
		return nil, err
	}

	provA, err := NewPositionProvider(e.provider, orbitA)
	if err != nil {
		return nil, err
	}
	provB, err := NewPositionProvider(e.provider, orbitB)
	if err != nil {
		return nil, err
	}

	window := orbitA.PeriodSeconds()

	trajA, err := SampleTrajectory(provA, window, sampleCount)
	if err != nil {
		return nil, fmt.Errorf("sampling orbit %q: %w", orbitA.Name, err)
	}
	trajB, err := SampleTrajectory(provB, window, sampleCount)
	if err != nil {
		return nil, fmt.Errorf("sampling orbit %q: %w", orbitB.Name, err)
	}

	distances, err := DistanceSeries(trajA, trajB)
	if err != nil {
		return nil, err
	}

	min := distances[0]
	for _, d := range distances[1:] {
		if d < min {
			min = d
		}
	}

	return &ProximityResult{
		MinDistanceKm: min,
		Tier:          e.thresholds.Classify(min),
		TrajectoryA:   trajA,
		TrajectoryB:   trajB,
	}, nil
}
