package cli

import (
	"fmt"
	"sort"
	"strconv"

	"go-mindfit/assessment"
	"go-mindfit/types"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var labelColors = map[types.HealthLabel]*color.Color{
	types.HighHealth:     color.New(color.FgGreen, color.Bold),
	types.ModerateHealth: color.New(color.FgYellow, color.Bold),
	types.NeedsSupport:   color.New(color.FgRed, color.Bold),
}

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess <worry> <perception> <stress> <emotions> <decisions>",
	Short: "Assess one respondent from five 1-5 answers",
	Long: `Band the mean of five slider answers (1-5) into a mental health label:
a mean of 4 or more is High Health, 3 or more Moderate Health, anything
lower Needs Support.

The answers, in order:
  worry        How often do you worry about work-related matters?
  perception   How do you perceive your overall mental health?
  stress       How well do you handle stress?
  emotions     How would you rate your emotional regulation?
  decisions    How confident are you in your decision-making?

Example:
  mindfit assess 4 4 3 3 3`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		vals := make([]int, len(args))
		for i, arg := range args {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("answer %d: %q is not a whole number", i+1, arg)
			}
			vals[i] = v
		}

		result, err := assessment.AssessAnswers(assessment.Answers{
			Worry:                  vals[0],
			MentalHealthPerception: vals[1],
			StressHandling:         vals[2],
			EmotionalRegulation:    vals[3],
			DecisionMaking:         vals[4],
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Assessment Result: %s\n", labelText(result.Label))
		fmt.Fprintf(out, "Average answer:    %.2f\n", result.Mean)
		fmt.Fprintln(out, result.Guidance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
}

func labelText(label types.HealthLabel) string {
	if c, ok := labelColors[label]; ok {
		return c.Sprint(string(label))
	}
	return string(label)
}

func sortedKeys(ct types.Crosstab) []string {
	keys := make([]string, 0, len(ct))
	for k := range ct {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
