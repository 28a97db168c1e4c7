package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/coursegen-api/internal/api/shared"
	"github.com/phrazzld/coursegen-api/internal/config"
	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/generation"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
	"github.com/phrazzld/coursegen-api/internal/platform/memory"
	"github.com/phrazzld/coursegen-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuizzes struct{}

func (stubQuizzes) GenerateQuiz(context.Context, string) (domain.Quiz, error) {
	return domain.Quiz{{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"}}, nil
}

type stubSummaries struct{}

func (stubSummaries) Summarize(_ context.Context, videoID string) (string, error) {
	if videoID == "panic" {
		panic("boom")
	}
	return "summary of " + videoID, nil
}

type stubSearcher struct{}

func (stubSearcher) FirstEmbeddableVideo(_ context.Context, query string) (string, bool, error) {
	return "vid-" + query, true, nil
}

const planJSON = `Here you go: {"lessons":[
	{"title":"L1","description":"d","search_query":"q1"},
	{"title":"L2","description":"d","search_query":"q2"},
	{"title":"L3","description":"d","search_query":"q3"},
	{"title":"L4","description":"d","search_query":"q4"},
	{"title":"L5","description":"d","search_query":"q5"},
	{"title":"L6","description":"d","search_query":"q6"},
	{"title":"L7","description":"d","search_query":"q7"}
]}`

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "debug",
			AllowedOrigins:         "http://localhost:3000, http://127.0.0.1:3000",
			ReadTimeoutSeconds:     5,
			WriteTimeoutSeconds:    5,
			ShutdownTimeoutSeconds: 5,
		},
	}
}

// newTestRouter wires the real course service over an in-memory store with
// a scripted model and search backend.
func newTestRouter(t *testing.T) (http.Handler, *logger.TestLogBuffer) {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	completer := generation.CompleterFunc(func(context.Context, string) (string, error) {
		return planJSON, nil
	})
	prompts := generation.MustLoadDefaultPrompts()

	planner, err := service.NewPlanner(completer, prompts, log)
	require.NoError(t, err)
	enricher, err := service.NewEnricher(stubSearcher{}, false, log)
	require.NoError(t, err)
	courses, err := service.NewCourseService(planner, enricher, memory.NewPlanStore(0, 0, log), log)
	require.NoError(t, err)

	app := &application{
		config:    testConfig(),
		logger:    log,
		courses:   courses,
		quizzes:   stubQuizzes{},
		summaries: stubSummaries{},
	}
	router, err := app.setupRouter()
	require.NoError(t, err)
	return router, buf
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Len(t, w.Header().Get(shared.TraceIDHeader), shared.TraceIDLength)
}

func TestRouter_CourseFlow(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	var page struct {
		Lessons []struct {
			Title   string  `json:"title"`
			VideoID *string `json:"video_id"`
		} `json:"lessons"`
		HasMore bool `json:"hasMore"`
	}

	w := do(t, router, http.MethodPost, "/api/get-course", `{"topic":"Go"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Lessons, 5)
	assert.Equal(t, "L1", page.Lessons[0].Title)
	require.NotNil(t, page.Lessons[0].VideoID)
	assert.Equal(t, "vid-q1", *page.Lessons[0].VideoID)
	assert.True(t, page.HasMore)

	w = do(t, router, http.MethodPost, "/api/get-course", `{"topic":"Go","page":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Lessons, 2)
	assert.Equal(t, "L6", page.Lessons[0].Title)
	assert.False(t, page.HasMore)

	w = do(t, router, http.MethodPost, "/api/get-course", `{"topic":"Rust","page":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Course not found. Please generate a new course first.")
}

func TestRouter_QuizAndSummary(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/generate-quiz?topic=Go", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"correctAnswer":"a"`)

	w = do(t, router, http.MethodPost, "/api/summarize-video", `{"videoId":"abc"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"summary":"summary of abc"}`, w.Body.String())
}

func TestRouter_MethodAndPathMismatch(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, router, http.MethodGet, "/api/get-course", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, router, http.MethodPost, "/api/generate-quiz", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/unknown", "").Code)
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/summarize-video", `{"videoId":"panic"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/get-course", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_LogsRequests(t *testing.T) {
	t.Parallel()

	router, buf := newTestRouter(t)
	do(t, router, http.MethodGet, "/api/generate-quiz", "")

	logger.AssertLogContains(t, buf, "request completed")
	logger.AssertLogField(t, buf, "user_message", "A topic is required for the quiz.")
}
