package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/coursegen-api/internal/api/shared"
	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
)

// QuizGenerator produces a quiz for a lesson title.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, title string) (domain.Quiz, error)
}

// QuizHandler handles quiz requests.
type QuizHandler struct {
	quizzes QuizGenerator
	logger  *slog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizzes QuizGenerator, log *slog.Logger) (*QuizHandler, error) {
	if quizzes == nil {
		return nil, errors.New("quiz generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &QuizHandler{
		quizzes: quizzes,
		logger:  log.With(slog.String("component", "quiz_handler")),
	}, nil
}

// GenerateQuiz handles GET /api/generate-quiz?topic=<title>.
func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req := GenerateQuizRequest{Topic: r.URL.Query().Get("topic")}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, OpGenerateQuiz)
		return
	}

	log.Info("quiz requested", slog.String("topic", req.Topic))

	quiz, err := h.quizzes.GenerateQuiz(r.Context(), req.Topic)
	if err != nil {
		HandleAPIError(w, r, err, OpGenerateQuiz)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, quizToResponse(quiz))
}
