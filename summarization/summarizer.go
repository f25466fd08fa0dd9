package summarization

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go-mindfit/nlp"
	"go-mindfit/types"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	maxAnswersForSummary = 69
	maxPromptLength      = 15000 // Rough character limit for prompt
)

var errEmptyReply = errors.New("openai returned empty response or choices")

// OpenAISummarizer writes a short narrative for each mental health group
// from the free-text answers of its members.
type OpenAISummarizer struct {
	client nlp.ChatCompleter
	model  string
}

func NewOpenAISummarizer(client nlp.ChatCompleter, model string) *OpenAISummarizer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummarizer{client: client, model: model}
}

// Summarize requests one summary per non-empty cluster concurrently. A
// cluster whose request fails is left out; the joined error reports which.
func (s *OpenAISummarizer) Summarize(ctx context.Context, table *types.Table, qs types.QuestionSet, a *types.ClusterAssignment) (map[types.HealthLabel]string, error) {
	logrus.WithField("clusters", a.K).Info("Starting cluster summary generation")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		summaries = make(map[types.HealthLabel]string, a.K)
		errs      []error
	)

	for id := 0; id < a.K; id++ {
		label := a.Label(id)
		text := collectAnswers(table, qs, a, id)
		if text == "" {
			logrus.WithField("label", label).Debug("No free-text answers for cluster, skipping summary")
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, err := s.callOpenAISummary(ctx, text, label)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logrus.WithError(err).WithField("label", label).Warn("Summary request failed")
				errs = append(errs, fmt.Errorf("%s: %w", label, err))
				return
			}
			summaries[label] = summary
		}()
	}

	wg.Wait()
	logrus.WithField("summaries", len(summaries)).Info("Summary generation finished")
	return summaries, errors.Join(errs...)
}

// collectAnswers joins the textual answers of cluster id's members, capped
// by answer count and prompt length.
func collectAnswers(table *types.Table, qs types.QuestionSet, a *types.ClusterAssignment, id int) string {
	var answers []string
	for i, row := range table.Rows {
		if a.IDs[i] != id {
			continue
		}
		for _, q := range qs.Textual {
			if len(answers) >= maxAnswersForSummary {
				break
			}
			if v, ok := row.Value(q); ok {
				answers = append(answers, v)
			}
		}
	}
	if len(answers) == 0 {
		return ""
	}

	combined := strings.Join(answers, "\n---\n")
	return truncateUTF8(combined, maxPromptLength)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func (s *OpenAISummarizer) callOpenAISummary(ctx context.Context, answers string, label types.HealthLabel) (string, error) {
	prompt := fmt.Sprintf("The following are anonymous free-text survey answers from a group of personnel classified as %q in a workplace mental health survey. Describe the common themes, stressors and coping patterns in the group. Do not identify individuals. Provide a concise summary (2-3 sentences maximum):\n\n---\n%s\n---\n\nSummary:", label, answers)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an assistant that summarizes workplace wellbeing survey answers concisely and neutrally.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   150,
		N:           1,
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errEmptyReply
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
