package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureMatrix(t *testing.T) {
	m := &FeatureMatrix{
		Columns: []string{"How is work?", "Sleep", "Empty"},
		Rows: [][]float64{
			{0.5, 1, 0},
			{-0.25, -1, 0},
		},
	}

	assert.Equal(t, 2, m.NumRows())
	assert.Equal(t, 3, m.NumFeatures())

	v := m.Vector(1)
	assert.Equal(t, SentimentVector{"How is work?": -0.25, "Sleep": -1, "Empty": 0}, v)
	assert.InDelta(t, m.TotalSentimentScore(1), v.Total(), 1e-12)
	assert.InDeltaSlice(t, []float64{1.5, -1.25}, m.Totals(), 1e-12)

	var empty *FeatureMatrix
	assert.Zero(t, empty.NumRows())
	assert.Zero(t, empty.NumFeatures())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, HighHealth, LabelForCluster(0))
	assert.Equal(t, NeedsSupport, LabelForCluster(2))
	assert.Equal(t, HealthLabel("5"), LabelForCluster(5))

	a := &ClusterAssignment{
		K:       4,
		IDs:     []int{0, 2, 2, 1, 0, 2},
		LabelOf: []HealthLabel{NeedsSupport, ModerateHealth, HighHealth},
	}
	assert.Equal(t, []int{2, 1, 3, 0}, a.Counts())
	assert.Equal(t, NeedsSupport, a.Label(0))
	assert.Equal(t, HealthLabel("3"), a.Label(3))
}

func TestAnalysis(t *testing.T) {
	var missing *Analysis
	assert.False(t, missing.Clustered())
	assert.False(t, missing.Modeled())

	a := &Analysis{
		Assignment: &ClusterAssignment{K: 3},
		Importances: []FeatureImportance{
			{Feature: "Sleep", Importance: 0.6},
			{Feature: "Worry", Importance: 0.4},
		},
	}
	assert.True(t, a.Clustered())
	assert.False(t, a.Modeled())
	assert.Len(t, a.TopFeatures(10), 2)
	assert.Equal(t, "Sleep", a.TopFeatures(1)[0].Feature)
}
