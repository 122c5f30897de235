package core

import (
	"fmt"

	"github.com/signalsfoundry/telemetrix/model"
)

// TrajectorySample is a position at a fixed time offset from the start of
// the sampling window.
type TrajectorySample struct {
	OffsetSeconds float64 `json:"offset_seconds"`
	Position      Vec3    `json:"position"`
}

// Trajectory is an ordered, finite sequence of samples spanning exactly one
// sampling window at uniform time steps.
type Trajectory []TrajectorySample

// SampleTrajectory samples the provider at sampleCount uniform offsets
// covering [0, periodSeconds] inclusive, so the first and last samples close
// the loop for a full revolution. With sampleCount=2 only the endpoints are
// checked; a closer mid-window approach can be missed. That is a sampling
// resolution trade-off, not a defect: higher counts buy fidelity with compute.
func SampleTrajectory(p PositionProvider, periodSeconds float64, sampleCount int) (Trajectory, error) {
	if sampleCount < 2 {
		return nil, fmt.Errorf("%w: sample count %d, need at least 2", model.ErrInvalidOrbit, sampleCount)
	}
	if periodSeconds <= 0 || !isFinite(periodSeconds) {
		return nil, fmt.Errorf("%w: sampling window %vs must be positive and finite", model.ErrInvalidOrbit, periodSeconds)
	}

	step := periodSeconds / float64(sampleCount-1)
	traj := make(Trajectory, sampleCount)
	for i := range traj {
		offset := float64(i) * step
		pos, err := p.PositionAt(offset)
		if err != nil {
			return nil, err
		}
		if !pos.Finite() {
			return nil, fmt.Errorf("%w: non-finite position at offset %vs", model.ErrNumerical, offset)
		}
		traj[i] = TrajectorySample{OffsetSeconds: offset, Position: pos}
	}
	return traj, nil
}

// DistanceSeries computes the per-offset Euclidean distance between two
// time-aligned trajectories of equal length.
func DistanceSeries(a, b Trajectory) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: trajectory lengths differ (%d vs %d)", model.ErrInvalidOrbit, len(a), len(b))
	}
	distances := make([]float64, len(a))
	for i := range a {
		d := a[i].Position.DistanceTo(b[i].Position)
		if !isFinite(d) {
			return nil, fmt.Errorf("%w: non-finite distance at offset %vs", model.ErrNumerical, a[i].OffsetSeconds)
		}
		distances[i] = d
	}
	return distances, nil
}
