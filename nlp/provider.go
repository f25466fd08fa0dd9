package nlp

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

// NewScorer builds the configured polarity provider. Remote providers read
// their credentials from the environment the same way the clients always have.
func NewScorer(ctx context.Context, provider, openAIModel string) (PolarityScorer, error) {
	switch provider {
	case "", ProviderLexicon:
		return NewLexiconScorer(), nil
	case ProviderGoogle:
		client, err := InitLanguageClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewGoogleScorer(client), nil
	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return NewOpenAIScorer(openai.NewClient(apiKey), openAIModel), nil
	default:
		return nil, fmt.Errorf("unknown sentiment provider %q", provider)
	}
}
