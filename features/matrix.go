package features

import (
	"context"
	"errors"
	"fmt"

	"go-mindfit/nlp"
	"go-mindfit/types"

	"github.com/sirupsen/logrus"
)

// Build scores every question for every respondent and lays the scores out
// text columns first, then ordinal columns, in header order within each group.
// Malformed cells are scored 0 and counted; only a cancelled context or an
// empty table stops the build.
func Build(ctx context.Context, table *types.Table, qs types.QuestionSet, scorer nlp.PolarityScorer) (*types.FeatureMatrix, error) {
	if table.Len() == 0 {
		return nil, fmt.Errorf("build feature matrix: %w", types.ErrDataUnavailable)
	}

	m := &types.FeatureMatrix{
		Columns: qs.Scored(),
		Rows:    make([][]float64, table.Len()),
	}
	for i := range m.Rows {
		m.Rows[i] = make([]float64, len(m.Columns))
	}

	for j, col := range qs.Textual {
		for i, row := range table.Rows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			text, _ := row.Value(col)
			p, err := nlp.TextSentiment(ctx, scorer, text)
			if err != nil {
				if !errors.Is(err, types.ErrMalformedCell) {
					return nil, err
				}
				m.MalformedCells++
				logMalformed(err, col, i)
			}
			m.Rows[i][j] = p
		}
	}

	offset := len(qs.Textual)
	for j, col := range qs.Ordinal {
		for i, row := range table.Rows {
			raw, _ := row.Value(col)
			s, err := nlp.OrdinalSentiment(raw)
			if err != nil {
				m.MalformedCells++
				logMalformed(err, col, i)
			}
			m.Rows[i][offset+j] = float64(s)
		}
	}

	logrus.WithFields(logrus.Fields{
		"rows":      m.NumRows(),
		"features":  m.NumFeatures(),
		"malformed": m.MalformedCells,
		"provider":  scorer.Name(),
	}).Info("Built feature matrix")
	return m, nil
}

func logMalformed(err error, column string, row int) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"column": column,
		"row":    row,
	}).Warn("Malformed cell scored as neutral")
}
