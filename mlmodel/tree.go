package mlmodel

import (
	"math/rand/v2"
	"sort"
)

// node is either a split on feature <= threshold or a leaf predicting class.
type node struct {
	leaf      bool
	class     int
	feature   int
	threshold float64
	left      int
	right     int
}

// tree is a fully grown CART classification tree using Gini impurity.
type tree struct {
	nodes       []node
	importances []float64
	splits      int
}

type treeBuilder struct {
	X           [][]float64
	y           []int
	classes     []int
	maxFeatures int
	rng         *rand.Rand
	t           *tree
}

func growTree(X [][]float64, y []int, samples []int, classes []int, maxFeatures int, rng *rand.Rand) *tree {
	b := &treeBuilder{
		X:           X,
		y:           y,
		classes:     classes,
		maxFeatures: maxFeatures,
		rng:         rng,
		t:           &tree{importances: make([]float64, len(X[0]))},
	}
	b.build(samples)
	return b.t
}

func (b *treeBuilder) build(samples []int) int {
	idx := len(b.t.nodes)
	b.t.nodes = append(b.t.nodes, node{})

	counts := b.classCounts(samples)
	imp := gini(counts, len(samples))
	if imp <= 1e-12 || len(samples) < 2 {
		b.t.nodes[idx] = node{leaf: true, class: b.majority(counts)}
		return idx
	}

	feature, threshold, ok := b.bestSplit(samples)
	if !ok {
		b.t.nodes[idx] = node{leaf: true, class: b.majority(counts)}
		return idx
	}

	var left, right []int
	for _, s := range samples {
		if b.X[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		b.t.nodes[idx] = node{leaf: true, class: b.majority(counts)}
		return idx
	}

	n := float64(len(samples))
	nl, nr := float64(len(left)), float64(len(right))
	decrease := n*imp -
		nl*gini(b.classCounts(left), len(left)) -
		nr*gini(b.classCounts(right), len(right))
	b.t.importances[feature] += decrease
	b.t.splits++

	l := b.build(left)
	r := b.build(right)
	b.t.nodes[idx] = node{feature: feature, threshold: threshold, left: l, right: r}
	return idx
}

// bestSplit visits features in random order until maxFeatures non-constant
// features have been evaluated, or every feature has been tried.
func (b *treeBuilder) bestSplit(samples []int) (int, float64, bool) {
	var (
		bestFeature   = -1
		bestThreshold float64
		bestScore     = 0.0
		visited       int
	)
	n := len(samples)
	sorted := make([]int, n)

	for _, f := range b.rng.Perm(len(b.X[0])) {
		if visited >= b.maxFeatures {
			break
		}
		copy(sorted, samples)
		sort.SliceStable(sorted, func(i, j int) bool { return b.X[sorted[i]][f] < b.X[sorted[j]][f] })
		if b.X[sorted[0]][f] == b.X[sorted[n-1]][f] {
			continue
		}
		visited++

		left := make([]int, len(b.classes))
		right := b.classCounts(sorted)
		for i := 0; i < n-1; i++ {
			c := b.classIndex(b.y[sorted[i]])
			left[c]++
			right[c]--
			lo, hi := b.X[sorted[i]][f], b.X[sorted[i+1]][f]
			if lo == hi {
				continue
			}
			nl, nr := i+1, n-i-1
			score := float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)
			if bestFeature < 0 || score < bestScore {
				bestFeature, bestScore = f, score
				bestThreshold = lo + (hi-lo)/2
				if bestThreshold >= hi {
					bestThreshold = lo
				}
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func (b *treeBuilder) classCounts(samples []int) []int {
	counts := make([]int, len(b.classes))
	for _, s := range samples {
		counts[b.classIndex(b.y[s])]++
	}
	return counts
}

func (b *treeBuilder) classIndex(class int) int {
	return sort.SearchInts(b.classes, class)
}

// majority returns the most frequent class, the smallest id on ties.
func (b *treeBuilder) majority(counts []int) int {
	best := 0
	for c := range counts {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return b.classes[best]
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return g
}

func (t *tree) predict(row []float64) int {
	i := 0
	for {
		nd := t.nodes[i]
		if nd.leaf {
			return nd.class
		}
		if row[nd.feature] <= nd.threshold {
			i = nd.left
		} else {
			i = nd.right
		}
	}
}

// normalizedImportances scales impurity decreases to sum to 1. A tree that
// never split reports nil.
func (t *tree) normalizedImportances() []float64 {
	var sum float64
	for _, v := range t.importances {
		sum += v
	}
	if t.splits == 0 || sum <= 0 {
		return nil
	}
	out := make([]float64, len(t.importances))
	for i, v := range t.importances {
		out[i] = v / sum
	}
	return out
}
