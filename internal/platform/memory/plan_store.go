package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
	"github.com/phrazzld/coursegen-api/internal/store"
)

// PlanStore implements the store.PlanStore interface using an in-process
// expirable LRU cache. Plans live for the lifetime of the process unless
// evicted by the size bound or TTL.
type PlanStore struct {
	// mu serializes the generation check with the write that follows it.
	mu     sync.Mutex
	cache  *expirable.LRU[string, *domain.CoursePlan]
	logger *slog.Logger
}

// Ensure PlanStore implements store.PlanStore interface
var _ store.PlanStore = (*PlanStore)(nil)

// NewPlanStore creates an in-memory plan store.
// maxEntries <= 0 means unbounded; ttl <= 0 disables expiry.
// If logger is nil, a default logger will be used.
func NewPlanStore(maxEntries int, ttl time.Duration, log *slog.Logger) *PlanStore {
	if log == nil {
		log = slog.Default()
	}
	if maxEntries < 0 {
		maxEntries = 0
	}

	s := &PlanStore{
		logger: log.With(slog.String("component", "plan_store")),
	}
	s.cache = expirable.NewLRU[string, *domain.CoursePlan](maxEntries, s.onEvict, ttl)
	return s
}

func (s *PlanStore) onEvict(topic string, plan *domain.CoursePlan) {
	s.logger.Debug("course plan evicted",
		slog.String("topic", topic),
		slog.String("plan_id", plan.ID.String()))
}

// Save implements store.PlanStore.Save.
// Returns store.ErrStalePlan if a newer generation is already stored.
func (s *PlanStore) Save(ctx context.Context, plan *domain.CoursePlan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if plan == nil || plan.Topic == "" {
		return fmt.Errorf("%w: plan must have a topic", store.ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.cache.Peek(plan.Topic); ok && current.Generation > plan.Generation {
		log.Debug("ignoring stale course plan",
			slog.String("topic", plan.Topic),
			slog.Uint64("generation", plan.Generation),
			slog.Uint64("stored_generation", current.Generation))
		return store.NewStoreError("save", plan.Topic,
			fmt.Sprintf("generation %d is older than stored generation %d", plan.Generation, current.Generation),
			store.ErrStalePlan)
	}

	s.cache.Add(plan.Topic, clonePlan(plan))

	log.Debug("course plan stored",
		slog.String("topic", plan.Topic),
		slog.String("plan_id", plan.ID.String()),
		slog.Uint64("generation", plan.Generation),
		slog.Int("lesson_count", len(plan.Lessons)))
	return nil
}

// Get implements store.PlanStore.Get.
// Returns store.ErrCourseNotFound if no plan is stored for topic.
func (s *PlanStore) Get(ctx context.Context, topic string) (*domain.CoursePlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	plan, ok := s.cache.Get(topic)
	if !ok {
		log.Debug("course plan not found", slog.String("topic", topic))
		return nil, store.ErrCourseNotFound
	}

	return clonePlan(plan), nil
}

// Len implements store.PlanStore.Len.
func (s *PlanStore) Len() int {
	return s.cache.Len()
}

// clonePlan copies the plan and its lessons so callers never share the
// cached instance.
func clonePlan(p *domain.CoursePlan) *domain.CoursePlan {
	c := *p
	c.Lessons = make([]domain.Lesson, len(p.Lessons))
	copy(c.Lessons, p.Lessons)
	return &c
}
