package cli

import (
	"context"
	"os"

	"go-mindfit/config"
	"go-mindfit/nlp"
	"go-mindfit/processor"
	"go-mindfit/summarization"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// pipelineSetup resolves the scorer and options shared by analyze and serve.
func pipelineSetup(ctx context.Context, c *config.Config) (nlp.PolarityScorer, processor.Options, error) {
	scorer, err := nlp.NewScorer(ctx, c.Sentiment.Provider, c.Sentiment.OpenAIModel)
	if err != nil {
		return nil, processor.Options{}, err
	}

	opts := c.PipelineOptions()
	if c.Store.Summaries {
		if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
			opts.Summarizer = summarization.NewOpenAISummarizer(openai.NewClient(apiKey), c.Sentiment.OpenAIModel)
		} else {
			logrus.Warn("store.summaries is set but OPENAI_API_KEY is not; cluster summaries disabled")
		}
	}

	logrus.WithFields(logrus.Fields{
		"provider":  scorer.Name(),
		"clusters":  opts.Segmentation.Clusters,
		"seed":      opts.Segmentation.Seed,
		"summaries": opts.Summarizer != nil,
	}).Debug("Pipeline configured")
	return scorer, opts, nil
}
