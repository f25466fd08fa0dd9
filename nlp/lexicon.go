package nlp

import (
	"context"
	"strings"

	"github.com/jonreiter/govader"
)

// LexiconScorer scores text offline with the VADER lexicon. The compound
// score is already normalized to [-1, 1]; blank text is neutral.
type LexiconScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (l *LexiconScorer) Name() string { return ProviderLexicon }

func (l *LexiconScorer) Polarity(_ context.Context, text string) (float64, error) {
	return l.Score(text), nil
}

// Score is Polarity without a context, for callers that never block.
func (l *LexiconScorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return clamp(l.analyzer.PolarityScores(text).Compound)
}
