package nlp

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go-mindfit/types"
)

// Polarity providers selectable from config.
const (
	ProviderLexicon = "lexicon"
	ProviderGoogle  = "google"
	ProviderOpenAI  = "openai"
)

// PolarityScorer maps free text to a polarity in [-1, 1].
type PolarityScorer interface {
	Name() string
	Polarity(ctx context.Context, text string) (float64, error)
}

// TextSentiment scores one textual cell. Empty text is neutral. A provider
// failure or a non-finite score is a malformed cell and scores 0.
func TextSentiment(ctx context.Context, scorer PolarityScorer, text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	p, err := scorer.Polarity(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("%s polarity: %w: %v", scorer.Name(), types.ErrMalformedCell, err)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("%s polarity %v: %w", scorer.Name(), p, types.ErrMalformedCell)
	}
	return clamp(p), nil
}

// OrdinalScore is the fixed 1-5 mapping: <=2 is -1, exactly 3 is 0, anything
// else is 1. The neutral point stays at 3 whichever way a question is phrased.
func OrdinalScore(v float64) int {
	switch {
	case v <= 2:
		return -1
	case v == 3:
		return 0
	default:
		return 1
	}
}

// OrdinalSentiment scores one ordinal cell. Missing is 0; an unparseable
// value is a malformed cell and also 0.
func OrdinalSentiment(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("ordinal %q: %w", raw, types.ErrMalformedCell)
	}
	if math.IsNaN(v) {
		return 0, nil
	}
	return OrdinalScore(v), nil
}

func clamp(p float64) float64 {
	return math.Max(-1, math.Min(1, p))
}
