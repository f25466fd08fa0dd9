package nlp

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ChatCompleter is satisfied by *openai.Client.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIScorer asks a chat model for a single polarity number.
type OpenAIScorer struct {
	client ChatCompleter
	model  string
}

func NewOpenAIScorer(client ChatCompleter, model string) *OpenAIScorer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIScorer{client: client, model: model}
}

func (o *OpenAIScorer) Name() string { return ProviderOpenAI }

func (o *OpenAIScorer) Polarity(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You rate the sentiment polarity of survey answers written by defense personnel about their wellbeing. Reply with one number between -1 (very negative) and 1 (very positive), 0 for neutral. No other text.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: text,
				},
			},
			MaxTokens:   8,
			N:           1,
			Temperature: 0,
		},
	)
	if err != nil {
		return 0, fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("openai returned no choices")
	}

	return ParsePolarityReply(resp.Choices[0].Message.Content)
}

// ParsePolarityReply pulls the first number out of a model reply and clamps it.
func ParsePolarityReply(reply string) (float64, error) {
	m := numberPattern.FindString(reply)
	if m == "" {
		return 0, fmt.Errorf("no polarity in reply %q", reply)
	}
	p, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("parse polarity %q: %w", m, err)
	}
	return clamp(p), nil
}
