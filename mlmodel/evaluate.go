package mlmodel

import (
	"strconv"

	"go-mindfit/types"
)

// Evaluate builds a classification report over the union of true and
// predicted classes. A ratio with a zero denominator is reported as 0.
// label renames class keys; nil keeps the numeric ids.
func Evaluate(yTrue, yPred []int, label func(int) string) *types.EvaluationReport {
	if label == nil {
		label = strconv.Itoa
	}
	classes := distinct(append(append([]int(nil), yTrue...), yPred...))

	report := &types.EvaluationReport{
		Classes:  make(map[string]types.ClassMetrics, len(classes)),
		TestSize: len(yTrue),
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	report.Accuracy = ratio(correct, len(yTrue))

	total := len(yTrue)
	for _, c := range classes {
		var tp, fp, fn, support int
		for i := range yTrue {
			switch {
			case yTrue[i] == c && yPred[i] == c:
				tp++
			case yTrue[i] != c && yPred[i] == c:
				fp++
			case yTrue[i] == c && yPred[i] != c:
				fn++
			}
			if yTrue[i] == c {
				support++
			}
		}
		m := types.ClassMetrics{
			Precision: ratio(tp, tp+fp),
			Recall:    ratio(tp, tp+fn),
			Support:   support,
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}

		key := label(c)
		report.ClassOrder = append(report.ClassOrder, key)
		report.Classes[key] = m

		report.MacroAvg.Precision += m.Precision
		report.MacroAvg.Recall += m.Recall
		report.MacroAvg.F1 += m.F1
		if total > 0 {
			w := float64(support) / float64(total)
			report.WeightedAvg.Precision += w * m.Precision
			report.WeightedAvg.Recall += w * m.Recall
			report.WeightedAvg.F1 += w * m.F1
		}
	}

	if k := float64(len(classes)); k > 0 {
		report.MacroAvg.Precision /= k
		report.MacroAvg.Recall /= k
		report.MacroAvg.F1 /= k
	}
	report.MacroAvg.Support = total
	report.WeightedAvg.Support = total
	return report
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
