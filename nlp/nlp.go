package nlp

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"

	"go-mindfit/types"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"
)

// languageClient a singleton languageClient instance.
var (
	languageClient *language.Client
	clientOnce     sync.Once
	clientErr      error
)

// AnalyzeSentiment sends text to the Cloud Natural Language API and returns
// the document sentiment.
func AnalyzeSentiment(ctx context.Context, client *language.Client, text string) (types.Sentiment, error) {
	var sentiment types.Sentiment
	req := &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := client.AnalyzeSentiment(ctx, req)
	if err != nil {
		return sentiment, fmt.Errorf("AnalyzeSentiment request error: %w", err)
	}

	sentiment.Score = resp.DocumentSentiment.Score
	sentiment.Magnitude = resp.DocumentSentiment.Magnitude

	return sentiment, nil
}

// InitLanguageClient initializes and returns the shared language client from
// the base64 NATURAL_LANGUAGE_CREDENTIALS env var.
func InitLanguageClient(ctx context.Context) (*language.Client, error) {
	clientOnce.Do(func() {
		encodedCreds := os.Getenv("NATURAL_LANGUAGE_CREDENTIALS")
		if encodedCreds == "" {
			clientErr = fmt.Errorf("NATURAL_LANGUAGE_CREDENTIALS environment variable not set")
			return
		}
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			clientErr = fmt.Errorf("decode natural language credentials: %w", err)
			return
		}

		opt := option.WithCredentialsJSON(creds)
		languageClient, clientErr = language.NewClient(ctx, opt)
		if clientErr != nil {
			clientErr = fmt.Errorf("create natural language client: %w", clientErr)
		}
	})

	return languageClient, clientErr
}

func CloseLanguageClient() {
	if languageClient != nil {
		languageClient.Close()
	}
}

// GoogleScorer uses the document sentiment score, already in [-1, 1].
type GoogleScorer struct {
	client *language.Client
}

func NewGoogleScorer(client *language.Client) *GoogleScorer {
	return &GoogleScorer{client: client}
}

func (g *GoogleScorer) Name() string { return ProviderGoogle }

func (g *GoogleScorer) Polarity(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	s, err := AnalyzeSentiment(ctx, g.client, text)
	if err != nil {
		return 0, err
	}
	return float64(s.Score), nil
}
