package db

import (
	"testing"
	"time"

	"go-mindfit/types"

	"github.com/stretchr/testify/assert"
)

func TestNewAnalysisDoc(t *testing.T) {
	a := &types.Analysis{
		ID:        "run-1",
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Source:    "export.csv",
		Overview:  types.Overview{Personnel: 3, AssessmentQuestion: 2, HealthGroups: 2},
		Questions: types.QuestionSet{Textual: []string{"T1"}, Ordinal: []string{"O1"}},
		Matrix:    &types.FeatureMatrix{Columns: []string{"T1", "O1"}, Rows: [][]float64{{1, 1}, {0, 0}, {-1, -1}}, MalformedCells: 1},
		Totals:    []float64{2, 0, -2},
		Assignment: &types.ClusterAssignment{
			K:       2,
			IDs:     []int{0, 1, 1},
			Inertia: 1.5,
		},
		Demographics: map[string]types.Crosstab{
			types.ColumnGender: {"Female": {types.HighHealth: 1}},
		},
		Summaries: map[types.HealthLabel]string{types.HighHealth: "doing well"},
		Report:    &types.EvaluationReport{Accuracy: 1},
	}

	doc := NewAnalysisDoc(a)
	assert.Equal(t, "run-1", doc.ID)
	assert.Equal(t, a.CreatedAt, doc.CreatedAt)
	assert.Equal(t, []string{"T1"}, doc.TextualQuestions)
	assert.Equal(t, []string{"O1"}, doc.OrdinalQuestions)
	assert.Equal(t, []float64{2, 0, -2}, doc.Totals)
	assert.Equal(t, 1, doc.MalformedCells)
	assert.Equal(t, []int{0, 1, 1}, doc.ClusterIDs)
	assert.Equal(t, 1.5, doc.Inertia)
	assert.Equal(t, map[string]map[string]map[string]int{
		"Gender": {"Female": {"High Health": 1}},
	}, doc.Demographics)
	assert.Equal(t, map[string]string{"High Health": "doing well"}, doc.Summaries)
	assert.Equal(t, 1.0, doc.Report.Accuracy)
}

func TestNewAnalysisDoc_Partial(t *testing.T) {
	doc := NewAnalysisDoc(&types.Analysis{
		ID:                "run-2",
		Shape:             types.Shape{Rows: 2, Columns: 2},
		Columns:           []string{"Name", "Q1"},
		Sample:            []types.Row{{"Name": "a", "Q1": "5"}, {"Name": "b", "Q1": "1"}},
		SegmentationError: "too few respondents to cluster",
	})
	assert.Equal(t, types.Shape{Rows: 2, Columns: 2}, doc.Shape)
	assert.Len(t, doc.Sample, 2)
	assert.Nil(t, doc.ClusterIDs)
	assert.Nil(t, doc.Demographics)
	assert.Nil(t, doc.Report)
	assert.Equal(t, "too few respondents to cluster", doc.SegmentationError)
}
