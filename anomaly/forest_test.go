package anomaly

import (
	"math"
	"math/rand"
	"testing"
)

func TestAvgPathLength(t *testing.T) {
	cases := []struct {
		n    int
		want float64
	}{
		{0, 0},
		{1, 0},
		{2, 1},
	}
	for _, tc := range cases {
		if got := avgPathLength(tc.n); got != tc.want {
			t.Errorf("avgPathLength(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}

	// c(n) grows with n but stays well below n.
	prev := 0.0
	for _, n := range []int{4, 16, 64, 256} {
		got := avgPathLength(n)
		if got <= prev {
			t.Errorf("avgPathLength(%d) = %v, not increasing past %v", n, got, prev)
		}
		if got >= float64(n) {
			t.Errorf("avgPathLength(%d) = %v, expected well below n", n, got)
		}
		prev = got
	}
}

func TestForestScoresOutlierHigher(t *testing.T) {
	data := make([][]float64, 200)
	for i := range data {
		// Tight cluster around (0,0,0,0) with slight spread.
		off := float64(i%7) * 0.01
		data[i] = []float64{off, -off, off / 2, off / 3}
	}
	outlier := []float64{100, 100, 100, 100}
	data = append(data, outlier)

	rng := rand.New(rand.NewSource(1))
	f := fitForest(data, 50, 64, rng)

	inlierScore := f.score(data[0])
	outlierScore := f.score(outlier)
	if outlierScore <= inlierScore {
		t.Errorf("outlier scored %v, inlier %v; outlier should score higher", outlierScore, inlierScore)
	}
	if outlierScore <= 0.5 {
		t.Errorf("gross outlier scored %v, expected above 0.5", outlierScore)
	}
}

func TestForestScoreRange(t *testing.T) {
	data := make([][]float64, 64)
	for i := range data {
		data[i] = []float64{float64(i), float64(i % 5), float64(i % 3), float64(i % 2)}
	}
	rng := rand.New(rand.NewSource(3))
	f := fitForest(data, 25, 32, rng)

	for i, row := range data {
		s := f.score(row)
		if math.IsNaN(s) || s <= 0 || s >= 1 {
			t.Errorf("score[%d] = %v outside (0, 1)", i, s)
		}
	}
}

func TestBuildTreeIdenticalPoints(t *testing.T) {
	data := [][]float64{
		{1, 2, 3, 4},
		{1, 2, 3, 4},
		{1, 2, 3, 4},
	}
	rng := rand.New(rand.NewSource(9))
	root := buildTree(data, []int{0, 1, 2}, 0, 8, rng)
	if !root.external() {
		t.Fatal("identical points should collapse into one external node")
	}
	if root.size != 3 {
		t.Errorf("external size %d, want 3", root.size)
	}
}
