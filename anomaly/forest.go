// Package anomaly implements isolation-forest outlier detection over
// multivariate telemetry batches.
package anomaly

import (
	"math"
	"math/rand"
)

// node is one split in an isolation tree. External nodes carry the number
// of samples that were left unseparated there.
type node struct {
	splitDim int
	splitVal float64
	left     *node
	right    *node
	size     int
}

func (n *node) external() bool { return n.left == nil }

// isolationTree partitions a subsample with recursive random axis-aligned
// splits. Outliers need fewer splits to isolate, so shallow isolation
// depth translates into a high anomaly score.
type isolationTree struct {
	root *node
}

// buildTree grows a tree over data[idx] until every point is isolated or
// the height limit is reached.
func buildTree(data [][]float64, idx []int, depth, maxDepth int, rng *rand.Rand) *node {
	if len(idx) <= 1 || depth >= maxDepth {
		return &node{size: len(idx)}
	}

	// Dimensions with any spread among the current subset, in canonical
	// order so the rng draw is reproducible.
	dims := data[idx[0]]
	lo := make([]float64, len(dims))
	hi := make([]float64, len(dims))
	copy(lo, dims)
	copy(hi, dims)
	for _, i := range idx[1:] {
		for d, v := range data[i] {
			if v < lo[d] {
				lo[d] = v
			}
			if v > hi[d] {
				hi[d] = v
			}
		}
	}
	var candidates []int
	for d := range lo {
		if hi[d] > lo[d] {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		// All remaining points identical; nothing can separate them.
		return &node{size: len(idx)}
	}

	dim := candidates[rng.Intn(len(candidates))]
	val := lo[dim] + rng.Float64()*(hi[dim]-lo[dim])

	var left, right []int
	for _, i := range idx {
		if data[i][dim] < val {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		// Degenerate split (val landed on the subset minimum); treat the
		// subset as unseparable at this height.
		return &node{size: len(idx)}
	}

	return &node{
		splitDim: dim,
		splitVal: val,
		left:     buildTree(data, left, depth+1, maxDepth, rng),
		right:    buildTree(data, right, depth+1, maxDepth, rng),
	}
}

// pathLength walks the sample down the tree and returns its isolation
// depth, extended by the average-path estimate for unresolved externals.
func (t *isolationTree) pathLength(sample []float64) float64 {
	depth := 0
	n := t.root
	for !n.external() {
		if sample[n.splitDim] < n.splitVal {
			n = n.left
		} else {
			n = n.right
		}
		depth++
	}
	return float64(depth) + avgPathLength(n.size)
}

// avgPathLength is c(n), the average path length of an unsuccessful search
// in a binary search tree over n points. It normalizes isolation depths so
// that scores are comparable across subsample sizes.
func avgPathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		f := float64(n)
		return 2*(math.Log(f-1)+eulerGamma) - 2*(f-1)/f
	}
}

const eulerGamma = 0.5772156649015329

// forest is a fitted ensemble of isolation trees.
type forest struct {
	trees      []isolationTree
	sampleSize int
}

// fitForest grows treeCount trees over random subsamples of data, drawn
// without replacement. A single rng drives every draw so a fixed seed
// always yields the same ensemble; tree growth is deliberately sequential
// for that reason.
func fitForest(data [][]float64, treeCount, sampleSize int, rng *rand.Rand) *forest {
	if sampleSize > len(data) {
		sampleSize = len(data)
	}
	maxDepth := int(math.Ceil(math.Log2(float64(sampleSize))))
	if maxDepth < 1 {
		maxDepth = 1
	}

	trees := make([]isolationTree, treeCount)
	for t := range trees {
		perm := rng.Perm(len(data))[:sampleSize]
		trees[t] = isolationTree{root: buildTree(data, perm, 0, maxDepth, rng)}
	}
	return &forest{trees: trees, sampleSize: sampleSize}
}

// score returns the anomaly score s(x) = 2^(−E[h(x)]/c(ψ)) in (0, 1).
// Scores near 1 mean the point isolates quickly and is likely an outlier;
// scores well below 0.5 mean it is buried in the bulk of the data.
func (f *forest) score(sample []float64) float64 {
	var total float64
	for i := range f.trees {
		total += f.trees[i].pathLength(sample)
	}
	mean := total / float64(len(f.trees))
	return math.Exp2(-mean / avgPathLength(f.sampleSize))
}
