package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/generation"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
)

// quizSchema is the JSON shape the quiz prompt asks for. Whether correctAnswer
// is one of the options is not checked.
type quizSchema struct {
	Quiz []questionSchema `json:"quiz" validate:"required,min=1,dive"`
}

type questionSchema struct {
	Question      string   `json:"question"      validate:"required"`
	Options       []string `json:"options"       validate:"len=4,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

// QuizService generates multiple-choice quizzes. It keeps no state.
type QuizService struct {
	completer generation.Completer
	prompts   *generation.Prompts
	logger    *slog.Logger
}

// NewQuizService creates a QuizService.
// It returns an error if any of the required dependencies are nil.
func NewQuizService(completer generation.Completer, prompts *generation.Prompts, log *slog.Logger) (*QuizService, error) {
	if completer == nil {
		return nil, errors.New("completer cannot be nil")
	}
	if prompts == nil {
		return nil, errors.New("prompts cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &QuizService{
		completer: completer,
		prompts:   prompts,
		logger:    log.With(slog.String("component", "quiz_service")),
	}, nil
}

// GenerateQuiz asks the model for a quiz on a lesson title.
func (s *QuizService) GenerateQuiz(ctx context.Context, title string) (domain.Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt, err := s.prompts.Quiz(title)
	if err != nil {
		if errors.Is(err, generation.ErrEmptyPromptInput) {
			return nil, domain.ErrEmptyTopic
		}
		return nil, NewServiceError("generate_quiz", "failed to render prompt", err)
	}

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, NewServiceError("generate_quiz", "language model call failed", err)
	}

	var parsed quizSchema
	if err := generation.Decode(text, &parsed); err != nil {
		log.Warn("quiz response rejected",
			slog.String("title", title),
			slog.String("error", err.Error()))
		return nil, NewServiceError("generate_quiz", "unusable quiz", err)
	}

	quiz := make(domain.Quiz, len(parsed.Quiz))
	for i, q := range parsed.Quiz {
		quiz[i] = domain.Question{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	log.Debug("quiz generated",
		slog.String("title", title),
		slog.Int("question_count", len(quiz)))
	return quiz, nil
}
