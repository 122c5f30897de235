package anomaly

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/signalsfoundry/telemetrix/model"
)

// Defaults mirror the usual isolation-forest settings: 100 trees over
// 256-point subsamples (capped at the batch size).
const (
	DefaultTrees      = 100
	DefaultSampleSize = 256
)

// Options tune a detection run. The zero value selects the defaults.
type Options struct {
	// Trees is the ensemble size.
	Trees int
	// SampleSize is the per-tree subsample size, capped at the batch size.
	SampleSize int
	// Seed drives every random draw. The same series, contamination, and
	// seed always produce the same labels.
	Seed int64
}

func (o Options) withDefaults() Options {
	if o.Trees <= 0 {
		o.Trees = DefaultTrees
	}
	if o.SampleSize <= 0 {
		o.SampleSize = DefaultSampleSize
	}
	return o
}

// Result is the outcome of one batch detection run.
type Result struct {
	// Labels holds one label per input sample, in input order.
	Labels []model.AnomalyLabel `json:"labels"`

	// Scores holds the per-sample anomaly scores in (0, 1), input order.
	Scores []float64 `json:"scores"`

	// AnomalousIndices lists the positions labeled anomalous, ascending.
	// Kept so a consumer can render flagged rows without re-scanning.
	AnomalousIndices []int `json:"anomalous_indices"`
}

// Detect fits an isolation forest over the full series and labels each
// sample, with default ensemble settings and the given seed.
// contamination is the expected anomalous fraction in (0, 0.5); the decision
// threshold is set so approximately that fraction of the batch is flagged.
func Detect(series model.TelemetrySeries, contamination float64, seed int64) (*Result, error) {
	return DetectWithOptions(series, contamination, Options{Seed: seed})
}

// DetectWithOptions is Detect with explicit ensemble settings.
//
// Fit and score happen over the same fixed batch; nothing is learned
// incrementally and the input series is never mutated.
func DetectWithOptions(series model.TelemetrySeries, contamination float64, opts Options) (*Result, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", model.ErrInvalidInput, len(series))
	}
	if contamination <= 0 || contamination >= 0.5 {
		return nil, fmt.Errorf("%w: contamination %v outside (0, 0.5)", model.ErrInvalidInput, contamination)
	}

	data := make([][]float64, len(series))
	for i, s := range series {
		feats := s.Features()
		for d, v := range feats {
			if !isFiniteValue(v) {
				return nil, fmt.Errorf("%w: non-finite %s value at sample %d", model.ErrInvalidInput, model.ChannelNames[d], i)
			}
		}
		data[i] = feats
	}

	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))
	f := fitForest(data, opts.Trees, opts.SampleSize, rng)

	scores := make([]float64, len(data))
	for i, row := range data {
		scores[i] = f.score(row)
	}

	// Flag the top contamination-fraction of the batch. Ties are broken by
	// input position so repeated runs agree exactly.
	flagged := int(contamination*float64(len(data)) + 0.5)
	order := make([]int, len(data))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})

	labels := make([]model.AnomalyLabel, len(data))
	indices := make([]int, 0, flagged)
	for _, i := range order[:flagged] {
		labels[i] = model.LabelAnomalous
		indices = append(indices, i)
	}
	sort.Ints(indices)

	return &Result{Labels: labels, Scores: scores, AnomalousIndices: indices}, nil
}

func isFiniteValue(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
