package nlp

import (
	"context"
	"errors"
	"math"
	"testing"

	"go-mindfit/types"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedScorer struct {
	p   float64
	err error
}

func (f fixedScorer) Name() string { return "fixed" }

func (f fixedScorer) Polarity(context.Context, string) (float64, error) { return f.p, f.err }

type fakeChat struct {
	reply string
	err   error
	req   openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.reply}}},
	}, nil
}

func TestOrdinalScore(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{1, -1},
		{2, -1},
		{2.5, 1},
		{3, 0},
		{4, 1},
		{5, 1},
		{0, -1},
		{7, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OrdinalScore(tt.value), "value %v", tt.value)
	}
}

func TestOrdinalSentiment(t *testing.T) {
	s, err := OrdinalSentiment("")
	require.NoError(t, err)
	assert.Equal(t, 0, s, "missing is neutral")

	s, err = OrdinalSentiment(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 1, s)

	s, err = OrdinalSentiment("2")
	require.NoError(t, err)
	assert.Equal(t, -1, s)

	s, err = OrdinalSentiment("sometimes")
	assert.ErrorIs(t, err, types.ErrMalformedCell)
	assert.Equal(t, 0, s)
}

func TestTextSentiment(t *testing.T) {
	ctx := context.Background()

	p, err := TextSentiment(ctx, fixedScorer{p: 0.9}, "   ")
	require.NoError(t, err)
	assert.Zero(t, p, "empty text is neutral")

	p, err = TextSentiment(ctx, fixedScorer{p: 3}, "fine")
	require.NoError(t, err)
	assert.Equal(t, 1.0, p, "scores are clamped")

	p, err = TextSentiment(ctx, fixedScorer{err: errors.New("quota")}, "fine")
	assert.ErrorIs(t, err, types.ErrMalformedCell)
	assert.Zero(t, p)

	p, err = TextSentiment(ctx, fixedScorer{p: math.NaN()}, "fine")
	assert.ErrorIs(t, err, types.ErrMalformedCell)
	assert.Zero(t, p)
}

func TestLexiconScorer(t *testing.T) {
	l := NewLexiconScorer()

	tests := []struct {
		text string
		sign int
	}{
		{"I feel happy and good at work", 1},
		{"I am stressed and anxious all the time", -1},
		{"I am not happy", -1},
		{"I don't feel bad", 1},
		{"The schedule is on Tuesday", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p := l.Score(tt.text)
			assert.GreaterOrEqual(t, p, -1.0)
			assert.LessOrEqual(t, p, 1.0)
			switch tt.sign {
			case 1:
				assert.Positive(t, p)
			case -1:
				assert.Negative(t, p)
			default:
				assert.Zero(t, p)
			}
		})
	}

	assert.Greater(t, l.Score("very happy"), l.Score("happy"), "boosters raise the intensity")
	assert.Less(t, l.Score("extremely perfect and wonderful!!!"), 1.0+1e-12)
}

func TestLexiconScorer_Polarity(t *testing.T) {
	l := NewLexiconScorer()
	p, err := l.Polarity(context.Background(), "terrible")
	require.NoError(t, err)
	assert.Negative(t, p)
	assert.Greater(t, p, -1.0)

	p, err = l.Polarity(context.Background(), "   ")
	require.NoError(t, err)
	assert.Zero(t, p)
	assert.Equal(t, ProviderLexicon, l.Name())
}

func TestParsePolarityReply(t *testing.T) {
	tests := []struct {
		reply string
		want  float64
	}{
		{"0.6", 0.6},
		{"-0.25", -0.25},
		{"Polarity: .5", 0.5},
		{"1.7", 1},
		{"-4", -1},
	}
	for _, tt := range tests {
		got, err := ParsePolarityReply(tt.reply)
		require.NoError(t, err, tt.reply)
		assert.InDelta(t, tt.want, got, 1e-9, tt.reply)
	}

	_, err := ParsePolarityReply("neutral")
	assert.Error(t, err)
}

func TestOpenAIScorer(t *testing.T) {
	chat := &fakeChat{reply: "-0.4"}
	s := NewOpenAIScorer(chat, "")

	p, err := s.Polarity(context.Background(), "I am worried")
	require.NoError(t, err)
	assert.InDelta(t, -0.4, p, 1e-9)
	assert.Equal(t, openai.GPT4oMini, chat.req.Model)
	assert.Equal(t, "I am worried", chat.req.Messages[1].Content)

	p, err = s.Polarity(context.Background(), "  ")
	require.NoError(t, err)
	assert.Zero(t, p)

	_, err = NewOpenAIScorer(&fakeChat{err: errors.New("down")}, "gpt-4o").Polarity(context.Background(), "hi")
	assert.Error(t, err)
}

func TestNewScorer(t *testing.T) {
	s, err := NewScorer(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, ProviderLexicon, s.Name())

	_, err = NewScorer(context.Background(), "vader", "")
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "")
	_, err = NewScorer(context.Background(), ProviderOpenAI, "")
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	s, err = NewScorer(context.Background(), ProviderOpenAI, "")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, s.Name())
}
