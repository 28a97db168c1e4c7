package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/generation"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTranscriptFetcher mocks the TranscriptFetcher interface
type MockTranscriptFetcher struct {
	mock.Mock
}

func (m *MockTranscriptFetcher) FetchTranscript(
	ctx context.Context,
	videoID string,
) ([]domain.TranscriptSegment, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TranscriptSegment), args.Error(1)
}

// MockVideoSearcher mocks the VideoSearcher interface
type MockVideoSearcher struct {
	mock.Mock
}

func (m *MockVideoSearcher) FirstEmbeddableVideo(ctx context.Context, query string) (string, bool, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Bool(1), args.Error(2)
}

// fakeSearcher is a VideoSearcher driven by a function.
type fakeSearcher struct {
	FirstEmbeddableVideoFn func(ctx context.Context, query string) (string, bool, error)
	calls                  atomic.Int64
}

func (f *fakeSearcher) FirstEmbeddableVideo(ctx context.Context, query string) (string, bool, error) {
	f.calls.Add(1)
	return f.FirstEmbeddableVideoFn(ctx, query)
}

// videoPerQuery returns a searcher that derives the video id from the query.
func videoPerQuery() *fakeSearcher {
	return &fakeSearcher{
		FirstEmbeddableVideoFn: func(_ context.Context, query string) (string, bool, error) {
			return "vid:" + query, true, nil
		},
	}
}

// fakeCompleter records prompts and replies from a function.
type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	replyFn func(prompt string) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.replyFn(prompt)
}

func (f *fakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeCompleter) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

var _ generation.Completer = (*fakeCompleter)(nil)

func replying(text string) *fakeCompleter {
	return &fakeCompleter{replyFn: func(string) (string, error) { return text, nil }}
}

func failing(err error) *fakeCompleter {
	return &fakeCompleter{replyFn: func(string) (string, error) { return "", err }}
}

// planReply renders a model reply with n lessons titled "<prefix> N",
// surrounded by prose the extractor has to strip.
func planReply(t *testing.T, prefix string, n int) string {
	t.Helper()

	type lesson struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		SearchQuery string `json:"search_query"`
	}
	lessons := make([]lesson, n)
	for i := range lessons {
		title := fmt.Sprintf("%s %d", prefix, i+1)
		lessons[i] = lesson{
			Title:       title,
			Description: "About " + title,
			SearchQuery: strings.ToLower(title) + " tutorial",
		}
	}

	body, err := json.Marshal(map[string]any{"lessons": lessons})
	require.NoError(t, err)
	return "Here is your course plan:\n```json\n" + string(body) + "\n```\nGood luck!"
}

// quizReply renders a model reply with n questions of optionCount options.
func quizReply(t *testing.T, n, optionCount int) string {
	t.Helper()

	type question struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
	}
	questions := make([]question, n)
	for i := range questions {
		options := make([]string, optionCount)
		for j := range options {
			options[j] = fmt.Sprintf("Q%d option %d", i+1, j+1)
		}
		questions[i] = question{
			Question:      fmt.Sprintf("Question %d?", i+1),
			Options:       options,
			CorrectAnswer: options[0],
		}
	}

	body, err := json.Marshal(map[string]any{"quiz": questions})
	require.NoError(t, err)
	return string(body)
}

func titles(lessons []domain.Lesson) []string {
	out := make([]string, len(lessons))
	for i, l := range lessons {
		out[i] = l.Title
	}
	return out
}

func testPrompts() *generation.Prompts {
	return generation.MustLoadDefaultPrompts()
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	return logger.WithLogger(context.Background(), log)
}
