package segmentation

import (
	"go-mindfit/features"
	"go-mindfit/types"
)

// ClusterSummary reports mean, count and sample std of the total score per
// cluster id, empty clusters included.
func ClusterSummary(a *types.ClusterAssignment, totals []float64) []types.ClusterStats {
	groups := make([][]float64, a.K)
	for i, id := range a.IDs {
		groups[id] = append(groups[id], totals[i])
	}

	out := make([]types.ClusterStats, a.K)
	for id, g := range groups {
		out[id] = types.ClusterStats{
			ClusterID: id,
			Label:     a.Label(id),
			Count:     len(g),
			Mean:      features.Mean(g),
			Std:       features.SampleStd(g),
		}
	}
	return out
}

// Demographics cross-tabulates a metadata column against cluster labels.
// Respondents with no value are left out. ok is false when the column is absent.
func Demographics(table *types.Table, a *types.ClusterAssignment, column string) (types.Crosstab, bool) {
	if !table.HasColumn(column) {
		return nil, false
	}
	ct := types.Crosstab{}
	for i, row := range table.Rows {
		v, ok := row.Value(column)
		if !ok {
			continue
		}
		if ct[v] == nil {
			ct[v] = map[types.HealthLabel]int{}
		}
		ct[v][a.Labels[i]]++
	}
	return ct, true
}
