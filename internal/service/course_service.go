package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
	"github.com/phrazzld/coursegen-api/internal/store"
	"golang.org/x/sync/singleflight"
)

// planGenerationTimeout bounds a shared plan generation once it no longer
// follows the context of the request that started it.
const planGenerationTimeout = 2 * time.Minute

// CourseService serves pages of course plans. Page 1 always generates a fresh
// plan for the topic and replaces the stored one; later pages are read from
// the store. Every served page has its videos looked up on demand.
type CourseService struct {
	planner  *Planner
	enricher *Enricher
	plans    store.PlanStore
	logger   *slog.Logger

	// flights collapses concurrent page-1 requests for one topic into a
	// single model call.
	flights singleflight.Group
	// generation orders plans so that a late writer cannot replace a newer plan.
	generation atomic.Uint64
}

// NewCourseService creates a CourseService.
// It returns an error if any of the required dependencies are nil.
func NewCourseService(
	planner *Planner,
	enricher *Enricher,
	plans store.PlanStore,
	log *slog.Logger,
) (*CourseService, error) {
	if planner == nil {
		return nil, errors.New("planner cannot be nil")
	}
	if enricher == nil {
		return nil, errors.New("enricher cannot be nil")
	}
	if plans == nil {
		return nil, errors.New("plan store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CourseService{
		planner:  planner,
		enricher: enricher,
		plans:    plans,
		logger:   log.With(slog.String("component", "course_service")),
	}, nil
}

// GetCourse returns the requested page of the course for topic with videos
// attached. Page 1 regenerates the plan; other pages require a stored plan and
// fail with domain.ErrCourseNotFound otherwise.
func (s *CourseService) GetCourse(ctx context.Context, topic string, page int) (domain.Page, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if topic == "" {
		return domain.Page{}, domain.ErrEmptyTopic
	}
	if page < 1 {
		return domain.Page{}, domain.ErrInvalidPage
	}

	var (
		stubs domain.Page
		err   error
	)
	if page == 1 {
		stubs, err = s.generateFirstPage(ctx, topic)
	} else {
		stubs, err = s.GetPage(ctx, topic, page)
	}
	if err != nil {
		return domain.Page{}, err
	}

	lessons, err := s.enricher.Enrich(ctx, stubs.Items)
	if err != nil {
		return domain.Page{}, NewServiceError("get_course", "video enrichment failed", err)
	}

	log.Info("course page served",
		slog.String("topic", topic),
		slog.Int("page", page),
		slog.Int("lesson_count", len(lessons)),
		slog.Bool("has_more", stubs.HasMore))

	return domain.Page{Items: lessons, HasMore: stubs.HasMore}, nil
}

// GetPage returns a page of the stored plan for topic without videos.
// Returns domain.ErrCourseNotFound when no plan is stored.
func (s *CourseService) GetPage(ctx context.Context, topic string, page int) (domain.Page, error) {
	plan, err := s.plans.Get(ctx, topic)
	if err != nil {
		return domain.Page{}, err
	}
	return plan.Page(page)
}

// Regenerate generates a new plan for topic and stores it, replacing any
// existing plan. Concurrent calls for the same topic share one generation.
func (s *CourseService) Regenerate(ctx context.Context, topic string) (*domain.CoursePlan, error) {
	if topic == "" {
		return nil, domain.ErrEmptyTopic
	}

	ch := s.flights.DoChan(topic, func() (any, error) {
		// The shared call must outlive any single caller's cancellation.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), planGenerationTimeout)
		defer cancel()
		return s.generateAndStore(fctx, topic)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.FromContextOrDefault(ctx, s.logger).Debug("joined in-flight plan generation",
				slog.String("topic", topic))
		}
		return res.Val.(*domain.CoursePlan), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *CourseService) generateFirstPage(ctx context.Context, topic string) (domain.Page, error) {
	plan, err := s.Regenerate(ctx, topic)
	if err != nil {
		return domain.Page{}, err
	}
	return plan.Page(1)
}

func (s *CourseService) generateAndStore(ctx context.Context, topic string) (*domain.CoursePlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	generation := s.generation.Add(1)

	lessons, err := s.planner.GeneratePlan(ctx, topic)
	if err != nil {
		return nil, err
	}

	plan, err := domain.NewCoursePlan(topic, lessons, generation)
	if err != nil {
		return nil, err
	}

	if err := s.plans.Save(ctx, plan); err != nil {
		if !errors.Is(err, store.ErrStalePlan) {
			return nil, NewServiceError("generate_plan", "failed to store plan", err)
		}
		// A newer plan is already stored; this caller still gets the plan it
		// asked for.
		log.Info("newer plan already stored, keeping it",
			slog.String("topic", topic),
			slog.Uint64("generation", generation))
	}

	log.Info("course plan generated",
		slog.String("topic", topic),
		slog.String("plan_id", plan.ID.String()),
		slog.Uint64("generation", generation),
		slog.Int("lesson_count", len(plan.Lessons)),
		slog.Int("cached_plans", s.plans.Len()))

	return plan, nil
}
