package survey

import (
	"fmt"
	"strconv"

	"go-mindfit/types"

	"github.com/sirupsen/logrus"
)

// ExtractQuestions infers the QuestionSet once for the whole table.
// A column is ordinal when every non-empty value parses as a number,
// including a column with no values at all. Metadata columns are matched
// by exact name and skipped when absent.
func ExtractQuestions(table *types.Table) (types.QuestionSet, error) {
	var qs types.QuestionSet
	if table.Len() == 0 || len(table.Columns) == 0 {
		return qs, fmt.Errorf("extract questions: %w", types.ErrDataUnavailable)
	}

	for _, col := range table.Columns {
		switch {
		case isMetadata(col):
			qs.Metadata = append(qs.Metadata, col)
		case isNumericColumn(table, col):
			qs.Ordinal = append(qs.Ordinal, col)
		default:
			qs.Textual = append(qs.Textual, col)
		}
	}

	logrus.WithFields(logrus.Fields{
		"metadata": len(qs.Metadata),
		"textual":  len(qs.Textual),
		"ordinal":  len(qs.Ordinal),
	}).Debug("Inferred question set")
	return qs, nil
}

// IsNumeric reports whether a single trimmed cell parses as a number.
func IsNumeric(v string) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func isMetadata(col string) bool {
	for _, m := range types.MetadataColumns {
		if col == m {
			return true
		}
	}
	return false
}

func isNumericColumn(table *types.Table, col string) bool {
	for _, row := range table.Rows {
		v, ok := row.Value(col)
		if !ok {
			continue
		}
		if !IsNumeric(v) {
			return false
		}
	}
	return true
}
