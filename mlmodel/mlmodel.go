package mlmodel

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"go-mindfit/types"
)

const (
	DefaultTrees    = 100
	DefaultSeed     = 42
	DefaultTestSize = 0.2
)

// ForestOptions controls ensemble fitting. Zero values take the defaults;
// MaxFeatures 0 means sqrt of the feature count.
type ForestOptions struct {
	Trees       int
	Seed        int64
	MaxFeatures int
}

// Forest is a bagged ensemble of CART trees. It is immutable once fitted and
// safe to share between goroutines for prediction.
type Forest struct {
	trees    []*tree
	features []string
	classes  []int
}

// Fit grows opts.Trees trees, each on a bootstrap sample of the rows, with
// one seed per tree drawn from opts.Seed.
func Fit(X [][]float64, y []int, features []string, opts ForestOptions) (*Forest, error) {
	classes := distinct(y)
	if len(classes) < 2 {
		return nil, fmt.Errorf("fit forest on %d rows with %d class(es): %w", len(y), len(classes), types.ErrDegenerateTraining)
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("fit forest: %d rows but %d targets", len(X), len(y))
	}
	if len(features) != len(X[0]) {
		return nil, fmt.Errorf("fit forest: %d feature names for %d columns", len(features), len(X[0]))
	}

	if opts.Trees <= 0 {
		opts.Trees = DefaultTrees
	}
	maxFeatures := opts.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(len(features))))
	}
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	rng := rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)))
	f := &Forest{
		trees:    make([]*tree, opts.Trees),
		features: append([]string(nil), features...),
		classes:  classes,
	}
	n := len(X)
	for t := range f.trees {
		seed := rng.Uint64()
		treeRng := rand.New(rand.NewPCG(seed, seed))
		sample := make([]int, n)
		for i := range sample {
			sample[i] = treeRng.IntN(n)
		}
		f.trees[t] = growTree(X, y, sample, classes, maxFeatures, treeRng)
	}
	return f, nil
}

// Classes returns the class ids seen in training, ascending.
func (f *Forest) Classes() []int { return append([]int(nil), f.classes...) }

// PredictOne takes the majority vote of the trees; the smallest class id wins ties.
func (f *Forest) PredictOne(row []float64) int {
	votes := make(map[int]int, len(f.classes))
	for _, t := range f.trees {
		votes[t.predict(row)]++
	}
	best, bestVotes := f.classes[0], -1
	for _, c := range f.classes {
		if votes[c] > bestVotes {
			best, bestVotes = c, votes[c]
		}
	}
	return best
}

func (f *Forest) Predict(rows [][]float64) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = f.PredictOne(r)
	}
	return out
}

// FeatureImportance averages each tree's normalized impurity decrease and
// ranks features by it, descending, ties in column order. The scores are
// non-negative and sum to 1; if no tree ever split they are uniform.
func (f *Forest) FeatureImportance() []types.FeatureImportance {
	d := len(f.features)
	sum := make([]float64, d)
	used := 0
	for _, t := range f.trees {
		imp := t.normalizedImportances()
		if imp == nil {
			continue
		}
		used++
		for j, v := range imp {
			sum[j] += v
		}
	}

	total := 0.0
	for _, v := range sum {
		total += v
	}
	out := make([]types.FeatureImportance, d)
	for j, name := range f.features {
		score := 1 / float64(d)
		if used > 0 && total > 0 {
			score = sum[j] / total
		}
		out[j] = types.FeatureImportance{Feature: name, Importance: score}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Importance > out[b].Importance })
	return out
}

// Evaluate predicts the rows and scores them against y.
func (f *Forest) Evaluate(X [][]float64, y []int, label func(int) string) *types.EvaluationReport {
	return Evaluate(y, f.Predict(X), label)
}

func distinct(y []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
