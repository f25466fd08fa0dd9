package processor

import (
	"context"
	"time"

	"go-mindfit/features"
	"go-mindfit/mlmodel"
	"go-mindfit/nlp"
	"go-mindfit/segmentation"
	"go-mindfit/survey"
	"go-mindfit/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Summarizer writes a short narrative per cluster. Optional.
type Summarizer interface {
	Summarize(ctx context.Context, table *types.Table, qs types.QuestionSet, a *types.ClusterAssignment) (map[types.HealthLabel]string, error)
}

// Options configures one pipeline invocation.
type Options struct {
	Segmentation segmentation.Options
	Model        mlmodel.Options
	Summarizer   Summarizer
}

func DefaultOptions() Options {
	return Options{
		Segmentation: segmentation.DefaultOptions(),
		Model:        mlmodel.DefaultOptions(),
	}
}

// sampleRows is how many raw rows an analysis keeps for preview.
const sampleRows = 5

// demographicColumns are cross-tabulated against clusters when present.
var demographicColumns = []string{types.ColumnGender, types.ColumnRole}

// RunPipeline takes a raw table through extraction, scoring, segmentation and
// classification. Only a table that cannot be analysed at all (or a cancelled
// context) is returned as an error; a failed segmentation or degenerate
// training leaves the later fields empty and records the reason, so callers
// can still show what was computed.
func RunPipeline(ctx context.Context, table *types.Table, scorer nlp.PolarityScorer, opts Options) (*types.Analysis, error) {
	start := time.Now()
	qs, err := survey.ExtractQuestions(table)
	if err != nil {
		return nil, err
	}

	matrix, err := features.Build(ctx, table, qs, scorer)
	if err != nil {
		return nil, err
	}

	totals := matrix.Totals()
	analysis := &types.Analysis{
		ID:         uuid.NewString(),
		CreatedAt:  start.UTC(),
		Source:     table.Source,
		Shape:      table.Shape(),
		Columns:    table.Columns,
		Sample:     table.Head(sampleRows),
		Questions:  qs,
		Matrix:     matrix,
		Totals:     totals,
		ScoreStats: features.Describe(totals),
		Overview: types.Overview{
			Personnel:          table.Len(),
			AssessmentQuestion: qs.NumQuestions(),
		},
	}
	logger := logrus.WithFields(logrus.Fields{"analysisId": analysis.ID, "source": table.Source})

	assignment, err := segmentation.Segment(matrix, opts.Segmentation)
	if err != nil {
		analysis.SegmentationError = err.Error()
		logger.WithError(err).Warn("Clustering analysis not available")
		return analysis, nil
	}
	analysis.Assignment = assignment
	analysis.ClusterSummary = segmentation.ClusterSummary(assignment, totals)
	analysis.Overview.HealthGroups = nonEmpty(assignment.Counts())
	for _, col := range demographicColumns {
		if ct, ok := segmentation.Demographics(table, assignment, col); ok {
			if analysis.Demographics == nil {
				analysis.Demographics = map[string]types.Crosstab{}
			}
			analysis.Demographics[col] = ct
		}
	}

	outcome, err := mlmodel.TrainAndEvaluate(matrix, assignment, opts.Model)
	if err != nil {
		analysis.ModelingError = err.Error()
		logger.WithError(err).Warn("Predictive modeling not available")
	} else {
		analysis.Report = outcome.Report
		analysis.Importances = outcome.Importances
	}

	if opts.Summarizer != nil {
		summaries, err := opts.Summarizer.Summarize(ctx, table, qs, assignment)
		if err != nil {
			logger.WithError(err).Warn("Cluster summaries not available")
		}
		analysis.Summaries = summaries
	}

	logger.WithFields(logrus.Fields{
		"respondents": table.Len(),
		"features":    matrix.NumFeatures(),
		"modeled":     analysis.Modeled(),
		"elapsed":     time.Since(start).String(),
	}).Info("Pipeline finished")
	return analysis, nil
}

// RunFile loads a CSV export and runs the pipeline on it.
func RunFile(ctx context.Context, path string, scorer nlp.PolarityScorer, opts Options) (*types.Analysis, error) {
	table, err := survey.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return RunPipeline(ctx, table, scorer, opts)
}

func nonEmpty(counts []int) int {
	n := 0
	for _, c := range counts {
		if c > 0 {
			n++
		}
	}
	return n
}
