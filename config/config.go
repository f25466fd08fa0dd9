// Package config loads MindFIT settings from a .env file, an optional YAML
// config file and MINDFIT_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"go-mindfit/mlmodel"
	"go-mindfit/nlp"
	"go-mindfit/processor"
	"go-mindfit/segmentation"
	"go-mindfit/survey"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const EnvPrefix = "MINDFIT"

type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Server    ServerConfig    `mapstructure:"server"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Store     StoreConfig     `mapstructure:"store"`
	Log       LogConfig       `mapstructure:"log"`
}

type DataConfig struct {
	CSVPath   string `mapstructure:"csv_path"`
	AssetsDir string `mapstructure:"assets_dir"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type AnalysisConfig struct {
	Clusters   int     `mapstructure:"clusters"`
	Seed       int64   `mapstructure:"seed"`
	Inits      int     `mapstructure:"n_init"`
	MaxIter    int     `mapstructure:"max_iter"`
	Trees      int     `mapstructure:"trees"`
	TestSize   float64 `mapstructure:"test_size"`
	RankLabels bool    `mapstructure:"rank_labels"`
}

type SentimentConfig struct {
	Provider    string `mapstructure:"provider"`
	OpenAIModel string `mapstructure:"openai_model"`
}

type ScheduleConfig struct {
	// Refresh is a cron spec; empty disables scheduled re-analysis.
	Refresh string `mapstructure:"refresh"`
}

type StoreConfig struct {
	Firestore bool `mapstructure:"firestore"`
	// Summaries enables OpenAI cluster summaries.
	Summaries bool `mapstructure:"summaries"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every key so environment overrides are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.csv_path", survey.DefaultDataFile)
	v.SetDefault("data.assets_dir", "assets")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("analysis.clusters", segmentation.DefaultClusters)
	v.SetDefault("analysis.seed", segmentation.DefaultSeed)
	v.SetDefault("analysis.n_init", segmentation.DefaultInits)
	v.SetDefault("analysis.max_iter", segmentation.DefaultMaxIter)
	v.SetDefault("analysis.trees", mlmodel.DefaultTrees)
	v.SetDefault("analysis.test_size", mlmodel.DefaultTestSize)
	v.SetDefault("analysis.rank_labels", false)
	v.SetDefault("sentiment.provider", nlp.ProviderLexicon)
	v.SetDefault("sentiment.openai_model", "")
	v.SetDefault("schedule.refresh", "")
	v.SetDefault("store.firestore", false)
	v.SetDefault("store.summaries", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration into a fresh Config. configFile may be empty, in
// which case ./config.yaml and ./.mindfit/config.yaml are tried.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(".mindfit")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		logrus.WithField("file", v.ConfigFileUsed()).Debug("Using config file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Sentiment.Provider {
	case nlp.ProviderLexicon, nlp.ProviderGoogle, nlp.ProviderOpenAI:
	default:
		return fmt.Errorf("sentiment.provider: unknown provider %q", c.Sentiment.Provider)
	}
	if c.Analysis.Clusters < 1 {
		return fmt.Errorf("analysis.clusters must be positive, got %d", c.Analysis.Clusters)
	}
	if c.Analysis.TestSize <= 0 || c.Analysis.TestSize >= 1 {
		return fmt.Errorf("analysis.test_size must be in (0, 1), got %g", c.Analysis.TestSize)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// PipelineOptions maps the analysis settings onto the pipeline stages.
func (c *Config) PipelineOptions() processor.Options {
	opts := processor.DefaultOptions()
	opts.Segmentation.Clusters = c.Analysis.Clusters
	opts.Segmentation.Seed = c.Analysis.Seed
	opts.Segmentation.Inits = c.Analysis.Inits
	opts.Segmentation.MaxIter = c.Analysis.MaxIter
	opts.Segmentation.RankLabels = c.Analysis.RankLabels
	opts.Model.Trees = c.Analysis.Trees
	opts.Model.Seed = c.Analysis.Seed
	opts.Model.TestSize = c.Analysis.TestSize
	return opts
}

// ConfigureLogging applies the log settings to the standard logrus logger.
func (c *Config) ConfigureLogging() error {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	logrus.SetLevel(level)
	switch c.Log.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}
