package core

import (
	"math"
	"testing"
)

func TestVec3DistanceTo(t *testing.T) {
	cases := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"coincident", Vec3{X: 7000}, Vec3{X: 7000}, 0},
		{"axis separation", Vec3{X: 7000}, Vec3{X: 7005}, 5},
		{"pythagorean", Vec3{}, Vec3{X: 3, Y: 4}, 5},
		{"full 3d", Vec3{X: 1, Y: 2, Z: 3}, Vec3{X: 4, Y: 6, Z: 3}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.DistanceTo(tc.b)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("DistanceTo = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVec3Norm(t *testing.T) {
	v := Vec3{X: 2, Y: 3, Z: 6}
	if got := v.Norm(); math.Abs(got-7) > 1e-12 {
		t.Errorf("Norm = %v, want 7", got)
	}
}

func TestVec3Finite(t *testing.T) {
	if !(Vec3{X: 1, Y: 2, Z: 3}).Finite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec3{X: math.NaN()}).Finite() {
		t.Error("NaN component reported as finite")
	}
	if (Vec3{Z: math.Inf(1)}).Finite() {
		t.Error("Inf component reported as finite")
	}
}
