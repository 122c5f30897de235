package core

import (
	"errors"
	"math"
	"testing"

	"github.com/signalsfoundry/telemetrix/model"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	eval, err := NewEvaluator(model.DefaultRiskThresholds(), ProviderCircular)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	return eval
}

func TestEvaluateCoincidentOrbits(t *testing.T) {
	eval := newTestEvaluator(t)
	orbit := circularOrbit(7000)

	for _, n := range []int{2, 3, 100} {
		res, err := eval.Evaluate(orbit, orbit, n)
		if err != nil {
			t.Fatalf("Evaluate(n=%d): %v", n, err)
		}
		if res.MinDistanceKm != 0 {
			t.Errorf("coincident orbits at n=%d: min distance %v, want 0", n, res.MinDistanceKm)
		}
		if res.Tier != model.RiskCritical {
			t.Errorf("coincident orbits at n=%d: tier %v, want CRITICAL", n, res.Tier)
		}
	}
}

func TestEvaluateReferenceScenario(t *testing.T) {
	// Two equatorial circular orbits at 7000 and 7005 km, 100 samples over
	// one period of the inner orbit. The closest approach is their radius
	// difference, reached at phase alignment.
	eval := newTestEvaluator(t)

	res, err := eval.Evaluate(circularOrbit(7000), circularOrbit(7005), 100)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(res.MinDistanceKm-5) > 0.5 {
		t.Errorf("min distance %v km, want ≈5", res.MinDistanceKm)
	}
	if res.Tier != model.RiskCritical {
		t.Errorf("tier %v, want CRITICAL", res.Tier)
	}
	if len(res.TrajectoryA) != 100 || len(res.TrajectoryB) != 100 {
		t.Errorf("trajectories %d/%d samples, want 100 each", len(res.TrajectoryA), len(res.TrajectoryB))
	}
}

func TestEvaluateMonotonicInSeparation(t *testing.T) {
	eval := newTestEvaluator(t)

	prev := -1.0
	for _, sep := range []float64{5, 20, 60, 200, 1000} {
		res, err := eval.Evaluate(circularOrbit(7000), circularOrbit(7000+sep), 100)
		if err != nil {
			t.Fatalf("Evaluate(sep=%v): %v", sep, err)
		}
		if res.MinDistanceKm < prev {
			t.Errorf("min distance decreased from %v to %v as separation grew to %v",
				prev, res.MinDistanceKm, sep)
		}
		prev = res.MinDistanceKm
	}
}

func TestRiskTierBoundaries(t *testing.T) {
	// Cutoff comparisons are strict: a distance exactly at a threshold
	// belongs to the safer tier.
	thresholds := model.DefaultRiskThresholds()
	cases := []struct {
		distance float64
		want     model.RiskTier
	}{
		{0, model.RiskCritical},
		{9.999, model.RiskCritical},
		{10.0, model.RiskWarning},
		{49.999, model.RiskWarning},
		{50.0, model.RiskSafe},
		{5000, model.RiskSafe},
	}
	for _, tc := range cases {
		if got := thresholds.Classify(tc.distance); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.distance, got, tc.want)
		}
	}
}

func TestEvaluateConfigurableThresholds(t *testing.T) {
	eval, err := NewEvaluator(model.RiskThresholds{CriticalKm: 1, WarningKm: 10}, ProviderCircular)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	res, err := eval.Evaluate(circularOrbit(7000), circularOrbit(7005), 100)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Tier != model.RiskWarning {
		t.Errorf("5 km approach under 1/10 km cutoffs: tier %v, want WARNING", res.Tier)
	}
}

func TestNewEvaluatorRejectsBadThresholds(t *testing.T) {
	cases := []model.RiskThresholds{
		{CriticalKm: 50, WarningKm: 10},
		{CriticalKm: 10, WarningKm: 10},
		{CriticalKm: -1, WarningKm: 50},
	}
	for _, thresholds := range cases {
		if _, err := NewEvaluator(thresholds, ProviderCircular); !errors.Is(err, model.ErrInvalidOrbit) {
			t.Errorf("thresholds %+v: expected ErrInvalidOrbit, got %v", thresholds, err)
		}
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	eval := newTestEvaluator(t)

	if _, err := eval.Evaluate(circularOrbit(7000), circularOrbit(7005), 1); !errors.Is(err, model.ErrInvalidOrbit) {
		t.Errorf("sampleCount=1: expected ErrInvalidOrbit, got %v", err)
	}
	if _, err := eval.Evaluate(circularOrbit(-1), circularOrbit(7005), 10); !errors.Is(err, model.ErrInvalidOrbit) {
		t.Errorf("negative radius: expected ErrInvalidOrbit, got %v", err)
	}
	if _, err := eval.Evaluate(circularOrbit(7000), circularOrbit(6000), 10); !errors.Is(err, model.ErrInvalidOrbit) {
		t.Errorf("sub-surface orbit: expected ErrInvalidOrbit, got %v", err)
	}
}

func TestEvaluateWindowFollowsOrbitA(t *testing.T) {
	// Both orbits are sampled at elapsed offsets spanning one period of
	// orbit A. Orbit B's trajectory must share those exact offsets even
	// though its own period differs.
	eval := newTestEvaluator(t)

	res, err := eval.Evaluate(circularOrbit(7000), circularOrbit(9000), 10)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	periodA := circularOrbit(7000).PeriodSeconds()
	last := res.TrajectoryA[len(res.TrajectoryA)-1].OffsetSeconds
	if math.Abs(last-periodA) > 1e-6 {
		t.Errorf("window end %v, want orbit A period %v", last, periodA)
	}
	for i := range res.TrajectoryA {
		if res.TrajectoryA[i].OffsetSeconds != res.TrajectoryB[i].OffsetSeconds {
			t.Fatalf("offset mismatch at sample %d: %v vs %v",
				i, res.TrajectoryA[i].OffsetSeconds, res.TrajectoryB[i].OffsetSeconds)
		}
	}
}
