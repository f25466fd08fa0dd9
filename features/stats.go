package features

import (
	"math"
	"sort"

	"go-mindfit/types"

	"gonum.org/v1/gonum/stat"
)

// Describe summarises a sample the way a dataframe describe() does:
// sample standard deviation and linearly interpolated quartiles.
func Describe(values []float64) types.ScoreStats {
	stats := types.ScoreStats{Count: len(values)}
	if len(values) == 0 {
		return stats
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	stats.Mean = Mean(sorted)
	stats.Std = SampleStd(sorted)
	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	stats.Q25 = quantile(sorted, 0.25)
	stats.Q50 = quantile(sorted, 0.50)
	stats.Q75 = quantile(sorted, 0.75)
	return stats
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// SampleStd uses n-1 in the denominator. Fewer than two values report 0 so
// the result stays JSON-encodable.
func SampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// quantile interpolates between closest ranks (Hyndman-Fan type 7).
// gonum's stat.Quantile offers only the empirical and type 4 estimators.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
