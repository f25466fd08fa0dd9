package segmentation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go-mindfit/types"

	"github.com/sirupsen/logrus"
)

const (
	DefaultClusters  = 3
	DefaultSeed      = 42
	DefaultInits     = 10
	DefaultMaxIter   = 300
	DefaultTolerance = 1e-4
)

var (
	// ErrTooFewRespondents means there are fewer rows than clusters.
	ErrTooFewRespondents = errors.New("too few respondents to cluster")
	// ErrNoFeatures means no question produced a score column.
	ErrNoFeatures = errors.New("no scored questions")
)

// Options controls the Segmentation Engine. Zero values take the defaults.
type Options struct {
	Clusters  int
	Seed      int64
	Inits     int
	MaxIter   int
	Tolerance float64

	// RankLabels assigns labels by descending mean TotalSentimentScore
	// instead of by raw cluster id.
	RankLabels bool
}

// DefaultOptions is k=3, seed 42, 10 initializations.
func DefaultOptions() Options {
	return Options{
		Clusters:  DefaultClusters,
		Seed:      DefaultSeed,
		Inits:     DefaultInits,
		MaxIter:   DefaultMaxIter,
		Tolerance: DefaultTolerance,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Clusters <= 0 {
		o.Clusters = d.Clusters
	}
	if o.Inits <= 0 {
		o.Inits = d.Inits
	}
	if o.MaxIter <= 0 {
		o.MaxIter = d.MaxIter
	}
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	return o
}

// Segment standardizes the matrix against its own statistics and partitions
// respondents with k-means. Cluster id 0 is "High Health", 1 "Moderate
// Health", 2 "Needs Support" by position; nothing checks that cluster 0
// actually has the highest sentiment unless RankLabels is set.
func Segment(m *types.FeatureMatrix, opts Options) (*types.ClusterAssignment, error) {
	opts = opts.withDefaults()
	if m.NumFeatures() == 0 {
		return nil, fmt.Errorf("segment: %w", ErrNoFeatures)
	}
	if m.NumRows() < opts.Clusters {
		return nil, fmt.Errorf("segment %d respondents into %d clusters: %w", m.NumRows(), opts.Clusters, ErrTooFewRespondents)
	}

	scaled := Standardize(fillMissing(m.Rows))
	res := KMeans(scaled, opts)

	a := &types.ClusterAssignment{
		K:         opts.Clusters,
		IDs:       res.Labels,
		Inertia:   res.Inertia,
		Centroids: res.Centers,
	}
	if opts.RankLabels {
		a.LabelOf = rankedLabels(res.Labels, m.Totals(), opts.Clusters)
	} else {
		a.LabelOf = positionalLabels(opts.Clusters)
	}
	a.Labels = make([]types.HealthLabel, len(a.IDs))
	for i, id := range a.IDs {
		a.Labels[i] = a.Label(id)
	}

	logrus.WithFields(logrus.Fields{
		"clusters":   opts.Clusters,
		"counts":     a.Counts(),
		"inertia":    res.Inertia,
		"iterations": res.Iterations,
		"ranked":     opts.RankLabels,
	}).Info("Segmented respondents")
	return a, nil
}

func positionalLabels(k int) []types.HealthLabel {
	out := make([]types.HealthLabel, k)
	for id := range out {
		out[id] = types.LabelForCluster(id)
	}
	return out
}

// rankedLabels orders cluster ids by mean total score, highest first; empty
// clusters rank last and ties keep id order.
func rankedLabels(ids []int, totals []float64, k int) []types.HealthLabel {
	sums := make([]float64, k)
	counts := make([]int, k)
	for i, id := range ids {
		sums[id] += totals[i]
		counts[id]++
	}
	means := make([]float64, k)
	order := make([]int, k)
	for id := range means {
		order[id] = id
		if counts[id] == 0 {
			means[id] = math.Inf(-1)
			continue
		}
		means[id] = sums[id] / float64(counts[id])
	}
	sort.SliceStable(order, func(a, b int) bool { return means[order[a]] > means[order[b]] })

	out := make([]types.HealthLabel, k)
	for rank, id := range order {
		out[id] = types.LabelForCluster(rank)
	}
	return out
}
