package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/coursegen-api/internal/api"
	"github.com/phrazzld/coursegen-api/internal/config"
	"github.com/phrazzld/coursegen-api/internal/generation"
	"github.com/phrazzld/coursegen-api/internal/platform/gemini"
	"github.com/phrazzld/coursegen-api/internal/platform/memory"
	"github.com/phrazzld/coursegen-api/internal/platform/youtube"
	"github.com/phrazzld/coursegen-api/internal/service"
)

// application holds the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	courses   api.CourseProvider
	quizzes   api.QuizGenerator
	summaries api.VideoSummarizer
}

// newApplication creates the application with every external client and
// service initialized from cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	prompts, err := generation.LoadPrompts(cfg.LLM.PromptTemplateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	completer, err := gemini.NewCompleter(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize language model client: %w", err)
	}
	logger.Info("Language model client initialized", slog.String("model", cfg.LLM.ModelName))

	searcher, err := youtube.NewSearchClient(ctx, logger, cfg.YouTube)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize video search client: %w", err)
	}
	transcripts := youtube.NewTranscriptClient(logger, cfg.YouTube, &http.Client{
		Timeout: cfg.Server.WriteTimeout(),
	})

	plans := memory.NewPlanStore(cfg.Course.CacheMaxEntries, cfg.Course.CacheTTL(), logger)

	planner, err := service.NewPlanner(completer, prompts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create planner: %w", err)
	}
	enricher, err := service.NewEnricher(searcher, cfg.Enrichment.IsolateFailures, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create enricher: %w", err)
	}

	app.courses, err = service.NewCourseService(planner, enricher, plans, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create course service: %w", err)
	}
	app.quizzes, err = service.NewQuizService(completer, prompts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz service: %w", err)
	}
	app.summaries, err = service.NewSummaryService(transcripts, completer, prompts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
