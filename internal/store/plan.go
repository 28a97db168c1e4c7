package store

import (
	"context"

	"github.com/phrazzld/coursegen-api/internal/domain"
)

// PlanStore defines the interface for course plan storage.
// Plans are keyed by their exact topic string; no normalization is applied.
// Implementations must be safe for concurrent use.
type PlanStore interface {
	// Save stores the plan under plan.Topic, replacing any plan with an equal
	// or older generation.
	// Returns ErrStalePlan if a newer generation is already stored.
	// Returns ErrInvalidEntity if the plan is nil or has no topic.
	Save(ctx context.Context, plan *domain.CoursePlan) error

	// Get retrieves the plan most recently saved for topic.
	// Returns ErrCourseNotFound if no plan is stored (or it has expired).
	Get(ctx context.Context, topic string) (*domain.CoursePlan, error)

	// Len returns the number of plans currently stored.
	Len() int
}
