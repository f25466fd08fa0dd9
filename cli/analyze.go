package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go-mindfit/nlp"
	"go-mindfit/processor"
	"go-mindfit/types"

	"github.com/spf13/cobra"
)

var analyzeOutput string

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [csv]",
	Short: "Analyze a survey export and print the report",
	Long: `Run the full pipeline once on a survey export: sentiment scoring,
mental health segmentation and the predictive model evaluation.

Examples:
  mindfit analyze                          # Analyze the configured data.csv_path
  mindfit analyze responses.csv            # Analyze a specific export
  mindfit analyze --output json data.csv   # Machine readable report`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Data.CSVPath
		if len(args) == 1 {
			path = args[0]
		}

		scorer, opts, err := pipelineSetup(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer nlp.CloseLanguageClient()
		a, err := processor.RunFile(cmd.Context(), path, scorer, opts)
		if err != nil {
			return err
		}

		switch analyzeOutput {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a)
		case "text":
			return printAnalysis(cmd.OutOrStdout(), a)
		default:
			return fmt.Errorf("unknown output format %q", analyzeOutput)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "text", "output format (text, json)")
}

func printAnalysis(out io.Writer, a *types.Analysis) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Raw Data (%d rows, %d columns)\n", a.Shape.Rows, a.Shape.Columns)
	header := make([]string, len(a.Columns))
	for i, col := range a.Columns {
		header[i] = truncate(col, sampleCellWidth)
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(header, "\t"))
	for _, row := range a.Sample {
		cells := make([]string, len(a.Columns))
		for i, col := range a.Columns {
			cells[i] = truncate(row[col], sampleCellWidth)
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(cells, "\t"))
	}

	fmt.Fprintf(w, "\nDataset Overview\n")
	fmt.Fprintf(w, "  Total Personnel\t%d\n", a.Overview.Personnel)
	fmt.Fprintf(w, "  Assessment Questions\t%d\n", a.Overview.AssessmentQuestion)
	fmt.Fprintf(w, "  Mental Health Groups\t%d\n", a.Overview.HealthGroups)
	if a.Matrix != nil && a.Matrix.MalformedCells > 0 {
		fmt.Fprintf(w, "  Malformed Cells\t%d\n", a.Matrix.MalformedCells)
	}

	s := a.ScoreStats
	fmt.Fprintf(w, "\nTotal Sentiment Score\n")
	fmt.Fprintf(w, "  count\tmean\tstd\tmin\t25%%\t50%%\t75%%\tmax\n")
	fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n", s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max)

	if !a.Clustered() {
		fmt.Fprintf(w, "\nClustering analysis not available: %s\n", a.SegmentationError)
		return w.Flush()
	}

	fmt.Fprintf(w, "\nCluster Characteristics\n")
	fmt.Fprintf(w, "  cluster\tlabel\tcount\tmean\tstd\n")
	for _, cs := range a.ClusterSummary {
		fmt.Fprintf(w, "  %d\t%s\t%d\t%.3f\t%.3f\n", cs.ClusterID, cs.Label, cs.Count, cs.Mean, cs.Std)
	}

	for _, col := range []string{types.ColumnGender, types.ColumnRole} {
		ct, ok := a.Demographics[col]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s Distribution\n", col)
		fmt.Fprintf(w, "  %s\t%s\n", strings.ToLower(col), joinLabels(a.Assignment.LabelOf))
		for _, category := range sortedKeys(ct) {
			row := []string{}
			for _, label := range a.Assignment.LabelOf {
				row = append(row, fmt.Sprint(ct[category][label]))
			}
			fmt.Fprintf(w, "  %s\t%s\n", category, strings.Join(row, "\t"))
		}
	}

	for _, label := range a.Assignment.LabelOf {
		if summary, ok := a.Summaries[label]; ok {
			fmt.Fprintf(w, "\n%s\n  %s\n", labelText(label), summary)
		}
	}

	if !a.Modeled() {
		fmt.Fprintf(w, "\nPredictive modeling not available: %s\n", a.ModelingError)
		return w.Flush()
	}

	r := a.Report
	fmt.Fprintf(w, "\nModel Performance (test split of %d, trained on %d)\n", r.TestSize, r.TrainSize)
	fmt.Fprintf(w, "  Accuracy\t%.2f%%\n", r.Accuracy*100)
	fmt.Fprintf(w, "\nClassification Report\n")
	fmt.Fprintf(w, "  \tprecision\trecall\tf1-score\tsupport\n")
	for _, key := range r.ClassOrder {
		m := r.Classes[key]
		fmt.Fprintf(w, "  %s\t%.2f\t%.2f\t%.2f\t%d\n", key, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Fprintf(w, "  macro avg\t%.2f\t%.2f\t%.2f\t%d\n", r.MacroAvg.Precision, r.MacroAvg.Recall, r.MacroAvg.F1, r.MacroAvg.Support)
	fmt.Fprintf(w, "  weighted avg\t%.2f\t%.2f\t%.2f\t%d\n", r.WeightedAvg.Precision, r.WeightedAvg.Recall, r.WeightedAvg.F1, r.WeightedAvg.Support)

	fmt.Fprintf(w, "\nTop Features\n")
	for i, fi := range a.TopFeatures(10) {
		fmt.Fprintf(w, "  %d.\t%s\t%.4f\n", i+1, fi.Feature, fi.Importance)
	}
	return w.Flush()
}

const sampleCellWidth = 24

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}

func joinLabels(labels []types.HealthLabel) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\t")
}
