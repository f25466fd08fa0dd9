package mlmodel

import (
	"fmt"
	"math"

	"go-mindfit/types"

	"github.com/sirupsen/logrus"
)

// Options is the train/test protocol for the Predictive Model.
type Options struct {
	Trees    int
	Seed     int64
	TestSize float64
}

func DefaultOptions() Options {
	return Options{Trees: DefaultTrees, Seed: DefaultSeed, TestSize: DefaultTestSize}
}

// Outcome is a freshly trained classifier and its held-out evaluation.
// Nothing here outlives the run that produced it.
type Outcome struct {
	Forest      *Forest
	Report      *types.EvaluationReport
	Importances []types.FeatureImportance
	Train       []int
	Test        []int
}

// TrainAndEvaluate fits the forest on the training split of the raw feature
// matrix, with cluster ids as the target, and reports on the test split only.
func TrainAndEvaluate(m *types.FeatureMatrix, a *types.ClusterAssignment, opts Options) (*Outcome, error) {
	if opts.TestSize <= 0 || opts.TestSize >= 1 {
		opts.TestSize = DefaultTestSize
	}
	if m.NumRows() != len(a.IDs) {
		return nil, fmt.Errorf("train: %d feature rows but %d cluster ids", m.NumRows(), len(a.IDs))
	}

	X := fillZero(m.Rows)
	train, test := TrainTestSplit(len(X), opts.TestSize, opts.Seed)
	if len(train) == 0 || len(test) == 0 {
		return nil, fmt.Errorf("split %d rows into %d train / %d test: %w", len(X), len(train), len(test), types.ErrDegenerateTraining)
	}
	xTrain, yTrain := subset(X, a.IDs, train)
	xTest, yTest := subset(X, a.IDs, test)

	forest, err := Fit(xTrain, yTrain, m.Columns, ForestOptions{Trees: opts.Trees, Seed: opts.Seed})
	if err != nil {
		return nil, err
	}

	report := forest.Evaluate(xTest, yTest, func(id int) string { return string(a.Label(id)) })
	report.TrainSize = len(train)

	logrus.WithFields(logrus.Fields{
		"train":    len(train),
		"test":     len(test),
		"trees":    len(forest.trees),
		"accuracy": report.Accuracy,
	}).Info("Trained segment classifier")

	return &Outcome{
		Forest:      forest,
		Report:      report,
		Importances: forest.FeatureImportance(),
		Train:       train,
		Test:        test,
	}, nil
}

func fillZero(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = make([]float64, len(r))
		for j, v := range r {
			if !math.IsNaN(v) {
				out[i][j] = v
			}
		}
	}
	return out
}
