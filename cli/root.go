package cli

import (
	"go-mindfit/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mindfit",
	Short: "MindFIT - mental health readiness analytics for survey exports",
	Long: `MindFIT analyzes a mental health survey export: it scores every answer
for sentiment, groups respondents into three mental health tiers with k-means,
and trains a random forest to find the questions that separate the tiers.

Run "mindfit serve" for the HTTP API or "mindfit analyze" for a one-off report.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	c, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	if err := c.ConfigureLogging(); err != nil {
		return err
	}
	cfg = c
	return nil
}
