package survey

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-mindfit/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "\ufeffTimestamp,Name,Gender,Role,How do you feel about work?,Stress handling,Sleep quality\n" +
	"2024-01-01,Ana,Female,Officer,I feel great and motivated,5,4\n" +
	"2024-01-02,Ben,Male,Soldier,,3,N/A\n" +
	",,,,,,\n" +
	"2024-01-03,Cy,Male,Soldier,Very stressed lately,1\n"

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV), "responses.csv")
	require.NoError(t, err)

	assert.Equal(t, "responses.csv", table.Source)
	assert.Equal(t, "Timestamp", table.Columns[0], "byte order mark is stripped")
	assert.Len(t, table.Columns, 7)
	assert.Equal(t, 3, table.Len(), "blank record is skipped")

	v, ok := table.Rows[0].Value("How do you feel about work?")
	assert.True(t, ok)
	assert.Equal(t, "I feel great and motivated", v)

	_, ok = table.Rows[1].Value("Sleep quality")
	assert.False(t, ok, "N/A is read as missing")

	_, ok = table.Rows[2].Value("Sleep quality")
	assert.False(t, ok, "short record is padded with missing cells")
}

func TestReadCSV_DuplicateHeaders(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("Q,Q,Q\n1,2,3\n"), "dup.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"Q", "Q.1", "Q.2"}, table.Columns)
	v, _ := table.Rows[0].Value("Q.2")
	assert.Equal(t, "3", v)
}

func TestReadCSV_DuplicateHeaderCollision(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("Name,Q,Q,Q.1\na,1,2,5\nb,3,4,5\n"), "dup.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "Q", "Q.1", "Q.1.1"}, table.Columns)

	row := table.Rows[0]
	assert.Len(t, row, 4, "no column is shadowed")
	for col, want := range map[string]string{"Q": "1", "Q.1": "2", "Q.1.1": "5"} {
		v, ok := row.Value(col)
		assert.True(t, ok, col)
		assert.Equal(t, want, v, col)
	}

	qs, err := ExtractQuestions(table)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Q", "Q.1", "Q.1.1"}, qs.Ordinal)
	assert.Equal(t, len(table.Columns), len(qs.Metadata)+len(qs.Ordinal)+len(qs.Textual))
}

func TestReadCSV_Unavailable(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"header only", "Timestamp,Name,Q1\n"},
		{"only blank rows", "Timestamp,Q1\n,\n,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), "bad.csv")
			assert.ErrorIs(t, err, types.ErrDataUnavailable)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "export.csv", table.Source)
	assert.Equal(t, 3, table.Len())

	_, err = LoadCSV(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, types.ErrDataUnavailable)
}

func TestExtractQuestions(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV), "responses.csv")
	require.NoError(t, err)

	qs, err := ExtractQuestions(table)
	require.NoError(t, err)

	assert.Equal(t, []string{"Timestamp", "Name", "Gender", "Role"}, qs.Metadata)
	assert.Equal(t, []string{"How do you feel about work?"}, qs.Textual)
	assert.Equal(t, []string{"Stress handling", "Sleep quality"}, qs.Ordinal)
	assert.Equal(t, 3, qs.NumQuestions())
	assert.Equal(t, []string{"How do you feel about work?", "Stress handling", "Sleep quality"}, qs.Scored())
}

func TestExtractQuestions_Inference(t *testing.T) {
	csv := "Name,Mixed,Decimal,Empty\n" +
		"a,3,2.5,\n" +
		"b,often,4,\n"
	table, err := ReadCSV(strings.NewReader(csv), "inference.csv")
	require.NoError(t, err)

	qs, err := ExtractQuestions(table)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name"}, qs.Metadata, "absent metadata columns are skipped")
	assert.Equal(t, []string{"Mixed"}, qs.Textual, "one non-numeric value makes a column textual")
	assert.Equal(t, []string{"Decimal", "Empty"}, qs.Ordinal, "an all-empty column counts as ordinal")
}

func TestExtractQuestions_EmptyTable(t *testing.T) {
	_, err := ExtractQuestions(&types.Table{Columns: []string{"Q1"}})
	assert.ErrorIs(t, err, types.ErrDataUnavailable)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("3"))
	assert.True(t, IsNumeric("2.5"))
	assert.True(t, IsNumeric("-1"))
	assert.False(t, IsNumeric("three"))
	assert.False(t, IsNumeric(""))
}
