package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/coursegen-api/internal/api"
	apiMiddleware "github.com/phrazzld/coursegen-api/internal/api/middleware"
	"github.com/phrazzld/coursegen-api/internal/api/shared"
)

// setupRouter creates the router with all middleware and routes registered.
func (app *application) setupRouter() (http.Handler, error) {
	courseHandler, err := api.NewCourseHandler(app.courses, app.logger)
	if err != nil {
		return nil, fmt.Errorf("course handler: %w", err)
	}
	quizHandler, err := api.NewQuizHandler(app.quizzes, app.logger)
	if err != nil {
		return nil, fmt.Errorf("quiz handler: %w", err)
	}
	summaryHandler, err := api.NewSummaryHandler(app.summaries, app.logger)
	if err != nil {
		return nil, fmt.Errorf("summary handler: %w", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.Origins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/get-course", courseHandler.GetCourse)
		r.Get("/generate-quiz", quizHandler.GenerateQuiz)
		r.Post("/summarize-video", summaryHandler.SummarizeVideo)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r, nil
}
