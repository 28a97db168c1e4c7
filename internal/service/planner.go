package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/generation"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
)

// lessonPlanSchema is the JSON shape the course plan prompt asks for.
type lessonPlanSchema struct {
	Lessons []lessonSchema `json:"lessons" validate:"required,min=1,dive"`
}

type lessonSchema struct {
	Title       string `json:"title"        validate:"required"`
	Description string `json:"description"`
	SearchQuery string `json:"search_query" validate:"required"`
}

// Planner turns a topic into an ordered list of lesson stubs with one model call.
type Planner struct {
	completer generation.Completer
	prompts   *generation.Prompts
	logger    *slog.Logger
}

// NewPlanner creates a Planner.
// It returns an error if any of the required dependencies are nil.
func NewPlanner(completer generation.Completer, prompts *generation.Prompts, log *slog.Logger) (*Planner, error) {
	if completer == nil {
		return nil, errors.New("completer cannot be nil")
	}
	if prompts == nil {
		return nil, errors.New("prompts cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Planner{
		completer: completer,
		prompts:   prompts,
		logger:    log.With(slog.String("component", "planner")),
	}, nil
}

// GeneratePlan asks the model for a course plan on topic and returns the lessons
// in the order the model produced them, none with a video attached.
// Model failures wrap domain.ErrUpstreamFailure; unparseable or mis-shaped
// output wraps domain.ErrMalformedModelOutput.
func (p *Planner) GeneratePlan(ctx context.Context, topic string) ([]domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	prompt, err := p.prompts.CoursePlan(topic)
	if err != nil {
		if errors.Is(err, generation.ErrEmptyPromptInput) {
			return nil, domain.ErrEmptyTopic
		}
		return nil, NewServiceError("generate_plan", "failed to render prompt", err)
	}

	log.Debug("requesting course plan", slog.String("topic", topic))

	text, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, NewServiceError("generate_plan", "language model call failed", err)
	}

	var plan lessonPlanSchema
	if err := generation.Decode(text, &plan); err != nil {
		log.Warn("course plan response rejected",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
			slog.Int("response_length", len(text)))
		return nil, NewServiceError("generate_plan", "unusable course plan", err)
	}

	lessons := make([]domain.Lesson, len(plan.Lessons))
	for i, l := range plan.Lessons {
		lessons[i] = domain.Lesson{
			Title:       l.Title,
			Description: l.Description,
			SearchQuery: l.SearchQuery,
		}
	}

	if len(lessons) != domain.PlanLessonCount {
		log.Info("course plan lesson count differs from request",
			slog.String("topic", topic),
			slog.Int("requested", domain.PlanLessonCount),
			slog.Int("received", len(lessons)))
	}

	return lessons, nil
}
