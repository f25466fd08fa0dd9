package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportCSV = "Timestamp,Name,Gender,Role,How is work?,Worry,Sleep\n" +
	"1,a,Female,Officer,I feel happy,5,5\n" +
	"2,b,Male,Officer,I feel happy,5,5\n" +
	"3,c,Female,Soldier,I feel happy,5,5\n" +
	"4,d,Male,Soldier,Nothing to add,3,3\n" +
	"5,e,Female,Soldier,Nothing to add,3,3\n" +
	"6,f,Male,Soldier,Nothing to add,3,3\n" +
	"7,g,Female,Soldier,I am stressed,1,1\n" +
	"8,h,Male,Officer,I am stressed,1,1\n" +
	"9,i,Female,Officer,I am stressed,1,1\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	color.NoColor = true
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), err
}

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(exportCSV), 0o600))
	return path
}

func TestAssessCommand(t *testing.T) {
	out, err := run(t, "assess", "4", "4", "3", "3", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Assessment Result: Moderate Health")
	assert.Contains(t, out, "3.40")
	assert.Contains(t, out, "Maintain current wellness practices")
}

func TestAssessCommand_Invalid(t *testing.T) {
	_, err := run(t, "assess", "4", "4", "3", "3", "9")
	assert.Error(t, err)

	_, err = run(t, "assess", "4", "4", "three", "3", "3")
	assert.Error(t, err)

	_, err = run(t, "assess", "4", "4")
	assert.Error(t, err)
}

func TestAnalyzeCommand_Text(t *testing.T) {
	path := writeExport(t)
	out, err := run(t, "analyze", path, "--output", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Raw Data (9 rows, 7 columns)")
	assert.Contains(t, out, "Dataset Overview")
	assert.Contains(t, out, "Cluster Characteristics")
	assert.Contains(t, out, "Gender Distribution")
	assert.Contains(t, out, "Classification Report")
	assert.Contains(t, out, "Top Features")
}

func TestAnalyzeCommand_RawDataOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,How is work?,Worry\na,A very long answer about the night shifts,5\nb,fine,1\n"), 0o600))

	out, err := run(t, "analyze", path, "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Raw Data (2 rows, 3 columns)")
	assert.Contains(t, out, "A very long answer ab...")
	assert.Contains(t, out, "Clustering analysis not available")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	path := writeExport(t)
	out, err := run(t, "analyze", path, "--output", "json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Equal(t, "export.csv", report["source"])
	assert.Contains(t, report, "evaluation")
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	_, err := run(t, "analyze", filepath.Join(t.TempDir(), "missing.csv"), "--output", "text")
	assert.Error(t, err)
}
