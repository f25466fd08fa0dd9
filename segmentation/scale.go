package segmentation

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scaler holds per-feature population statistics fitted on one matrix.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

// FitScaler derives mean and population standard deviation per column.
// A constant column gets scale 1 so it standardizes to all zeros.
func FitScaler(rows [][]float64) Scaler {
	if len(rows) == 0 {
		return Scaler{}
	}
	d := len(rows[0])
	s := Scaler{Mean: make([]float64, d), Scale: make([]float64, d)}
	col := make([]float64, len(rows))
	for j := 0; j < d; j++ {
		for i, r := range rows {
			col[i] = r[j]
		}
		s.Mean[j], s.Scale[j] = stat.PopMeanStdDev(col, nil)
		if s.Scale[j] < 1e-12 {
			s.Scale[j] = 1
		}
	}
	return s
}

// Transform returns a standardized copy; the input is left untouched.
func (s Scaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = make([]float64, len(r))
		for j, v := range r {
			out[i][j] = (v - s.Mean[j]) / s.Scale[j]
		}
	}
	return out
}

// Standardize fits and transforms the same data.
func Standardize(rows [][]float64) [][]float64 {
	return FitScaler(rows).Transform(rows)
}

// fillMissing copies rows with NaN replaced by 0.
func fillMissing(rows [][]float64) [][]float64 {
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
