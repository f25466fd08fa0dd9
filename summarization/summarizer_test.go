package summarization

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"go-mindfit/types"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	mu      sync.Mutex
	prompts []string
	fail    string
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prompt := req.Messages[1].Content
	f.prompts = append(f.prompts, prompt)
	if f.fail != "" && strings.Contains(prompt, f.fail) {
		return openai.ChatCompletionResponse{}, errors.New("rate limited")
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "  Members report steady routines.  "}}},
	}, nil
}

func fixture() (*types.Table, types.QuestionSet, *types.ClusterAssignment) {
	table := &types.Table{
		Columns: []string{"Name", "How is work?"},
		Rows: []types.Row{
			{"Name": "a", "How is work?": "busy but fine"},
			{"Name": "b", "How is work?": "too many night shifts"},
			{"Name": "c", "How is work?": ""},
		},
	}
	qs := types.QuestionSet{Metadata: []string{"Name"}, Textual: []string{"How is work?"}}
	a := &types.ClusterAssignment{
		K:       3,
		IDs:     []int{0, 1, 2},
		LabelOf: []types.HealthLabel{types.HighHealth, types.ModerateHealth, types.NeedsSupport},
	}
	return table, qs, a
}

func TestSummarize(t *testing.T) {
	chat := &fakeChat{}
	s := NewOpenAISummarizer(chat, "")
	table, qs, a := fixture()

	out, err := s.Summarize(context.Background(), table, qs, a)
	require.NoError(t, err)

	assert.Len(t, chat.prompts, 2, "cluster with no text is skipped")
	assert.Equal(t, "Members report steady routines.", out[types.HighHealth])
	assert.Contains(t, out, types.ModerateHealth)
	assert.NotContains(t, out, types.NeedsSupport)
}

func TestSummarize_PartialFailure(t *testing.T) {
	chat := &fakeChat{fail: "night shifts"}
	s := NewOpenAISummarizer(chat, "gpt-4o")
	table, qs, a := fixture()

	out, err := s.Summarize(context.Background(), table, qs, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(types.ModerateHealth))
	assert.Contains(t, out, types.HighHealth)
	assert.NotContains(t, out, types.ModerateHealth)
}

func TestCollectAnswers(t *testing.T) {
	table, qs, a := fixture()
	assert.Equal(t, "busy but fine", collectAnswers(table, qs, a, 0))
	assert.Empty(t, collectAnswers(table, qs, a, 2))
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "héllo", truncateUTF8("héllo", 10))
	assert.Equal(t, "h", truncateUTF8("hé", 2), "never splits a two-byte rune")
	assert.Equal(t, "hé", truncateUTF8("hé", 3))

	long := strings.Repeat("é", maxPromptLength)
	cut := truncateUTF8(long, maxPromptLength)
	assert.True(t, utf8.ValidString(cut))
	assert.LessOrEqual(t, len(cut), maxPromptLength)
	assert.Equal(t, maxPromptLength, len(cut), "é is two bytes and the limit is even")
}

func TestCollectAnswers_MultiByteLimit(t *testing.T) {
	answer := "x" + strings.Repeat("é", 2000)
	table := &types.Table{Columns: []string{"Q"}}
	for i := 0; i < 10; i++ {
		table.Rows = append(table.Rows, types.Row{"Q": answer})
	}
	qs := types.QuestionSet{Textual: []string{"Q"}}
	a := &types.ClusterAssignment{K: 1, IDs: make([]int, 10), LabelOf: []types.HealthLabel{types.HighHealth}}

	got := collectAnswers(table, qs, a, 0)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxPromptLength)
}
