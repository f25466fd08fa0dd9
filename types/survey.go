package types

import "strings"

// Metadata columns never scored as questions.
const (
	ColumnTimestamp = "Timestamp"
	ColumnName      = "Name"
	ColumnGender    = "Gender"
	ColumnRole      = "Role"
)

// MetadataColumns is the fixed exclusion list, matched by exact name.
var MetadataColumns = []string{ColumnTimestamp, ColumnName, ColumnGender, ColumnRole}

// Row is one respondent's record keyed by column name. Empty values are missing.
type Row map[string]string

// Value returns the trimmed cell and whether it is present.
func (r Row) Value(column string) (string, bool) {
	v, ok := r[column]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Table is a loaded survey: header order plus one Row per respondent.
type Table struct {
	Source  string   `json:"source"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"-"`
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Shape is the size of the raw table.
type Shape struct {
	Rows    int `json:"rows" firestore:"rows"`
	Columns int `json:"columns" firestore:"columns"`
}

func (t *Table) Shape() Shape {
	if t == nil {
		return Shape{}
	}
	return Shape{Rows: len(t.Rows), Columns: len(t.Columns)}
}

// Head copies the first n rows so callers can keep them after the table is gone.
func (t *Table) Head(n int) []Row {
	if n > t.Len() {
		n = t.Len()
	}
	out := make([]Row, n)
	for i := range out {
		out[i] = make(Row, len(t.Rows[i]))
		for k, v := range t.Rows[i] {
			out[i][k] = v
		}
	}
	return out
}

// Column returns every row's raw value for the column, in row order.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i], _ = r.Value(name)
	}
	return out
}

// QuestionSet partitions the table's columns. The three slices are disjoint
// and together cover every column, each kept in header order.
type QuestionSet struct {
	Metadata []string `json:"metadata_columns" firestore:"metadataColumns"`
	Textual  []string `json:"textual_columns" firestore:"textualColumns"`
	Ordinal  []string `json:"ordinal_columns" firestore:"ordinalColumns"`
}

// Scored returns the feature column order used across a run: text then ordinal.
func (q QuestionSet) Scored() []string {
	out := make([]string, 0, len(q.Textual)+len(q.Ordinal))
	out = append(out, q.Textual...)
	return append(out, q.Ordinal...)
}

func (q QuestionSet) NumQuestions() int {
	return len(q.Textual) + len(q.Ordinal)
}
