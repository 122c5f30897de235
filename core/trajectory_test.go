package core

import (
	"errors"
	"math"
	"testing"

	"github.com/signalsfoundry/telemetrix/model"
)

// fixedProvider always reports the same position, regardless of offset.
type fixedProvider struct {
	pos Vec3
}

func (f fixedProvider) PositionAt(float64) (Vec3, error) { return f.pos, nil }

func TestSampleTrajectoryUniformOffsets(t *testing.T) {
	traj, err := SampleTrajectory(fixedProvider{}, 90, 10)
	if err != nil {
		t.Fatalf("SampleTrajectory: %v", err)
	}
	if len(traj) != 10 {
		t.Fatalf("got %d samples, want 10", len(traj))
	}
	if traj[0].OffsetSeconds != 0 {
		t.Errorf("first offset %v, want 0", traj[0].OffsetSeconds)
	}
	if math.Abs(traj[9].OffsetSeconds-90) > 1e-9 {
		t.Errorf("last offset %v, want 90", traj[9].OffsetSeconds)
	}
	step := traj[1].OffsetSeconds - traj[0].OffsetSeconds
	for i := 1; i < len(traj); i++ {
		got := traj[i].OffsetSeconds - traj[i-1].OffsetSeconds
		if math.Abs(got-step) > 1e-9 {
			t.Errorf("non-uniform step at %d: %v vs %v", i, got, step)
		}
	}
}

func TestSampleTrajectoryEndpointsOnly(t *testing.T) {
	// sampleCount=2 checks only the window endpoints. A mid-window
	// approach would go unseen; that is the documented resolution floor.
	traj, err := SampleTrajectory(fixedProvider{}, 5400, 2)
	if err != nil {
		t.Fatalf("SampleTrajectory: %v", err)
	}
	if len(traj) != 2 {
		t.Fatalf("got %d samples, want 2", len(traj))
	}
	if traj[0].OffsetSeconds != 0 || traj[1].OffsetSeconds != 5400 {
		t.Errorf("endpoints %v/%v, want 0/5400", traj[0].OffsetSeconds, traj[1].OffsetSeconds)
	}
}

func TestSampleTrajectoryRejectsBadInput(t *testing.T) {
	if _, err := SampleTrajectory(fixedProvider{}, 90, 1); !errors.Is(err, model.ErrInvalidOrbit) {
		t.Errorf("sampleCount=1: expected ErrInvalidOrbit, got %v", err)
	}
	if _, err := SampleTrajectory(fixedProvider{}, 0, 10); !errors.Is(err, model.ErrInvalidOrbit) {
		t.Errorf("zero window: expected ErrInvalidOrbit, got %v", err)
	}
	if _, err := SampleTrajectory(fixedProvider{pos: Vec3{X: math.NaN()}}, 90, 3); !errors.Is(err, model.ErrNumerical) {
		t.Errorf("NaN position: expected ErrNumerical, got %v", err)
	}
}

func TestDistanceSeries(t *testing.T) {
	a, err := SampleTrajectory(fixedProvider{pos: Vec3{X: 7000}}, 90, 5)
	if err != nil {
		t.Fatalf("SampleTrajectory a: %v", err)
	}
	b, err := SampleTrajectory(fixedProvider{pos: Vec3{X: 7050}}, 90, 5)
	if err != nil {
		t.Fatalf("SampleTrajectory b: %v", err)
	}

	distances, err := DistanceSeries(a, b)
	if err != nil {
		t.Fatalf("DistanceSeries: %v", err)
	}
	if len(distances) != 5 {
		t.Fatalf("got %d distances, want 5", len(distances))
	}
	for i, d := range distances {
		if d != 50 {
			t.Errorf("distance[%d] = %v, want 50", i, d)
		}
	}

	if _, err := DistanceSeries(a, b[:3]); !errors.Is(err, model.ErrInvalidOrbit) {
		t.Errorf("length mismatch: expected ErrInvalidOrbit, got %v", err)
	}
}
