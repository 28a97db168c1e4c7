package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanLessonCount is the number of lessons requested from the model for one plan.
const PlanLessonCount = 15

// Lesson is a single lesson of a course plan. A lesson without a VideoID is a
// stub; video enrichment attaches the identifier of the best matching video,
// or leaves it nil when nothing matched.
type Lesson struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SearchQuery string  `json:"search_query"`
	VideoID     *string `json:"video_id"`
}

// WithVideo returns a copy of the lesson with the given video attached.
// An empty id yields a lesson with no video.
func (l Lesson) WithVideo(videoID string) Lesson {
	if videoID == "" {
		l.VideoID = nil
		return l
	}
	id := videoID
	l.VideoID = &id
	return l
}

// HasVideo reports whether a video has been attached.
func (l Lesson) HasVideo() bool {
	return l.VideoID != nil && *l.VideoID != ""
}

// CoursePlan is the full ordered set of lessons generated for one topic in one
// generation call. Generation orders plans for the same topic: a plan with a
// higher generation always supersedes a lower one.
type CoursePlan struct {
	ID         uuid.UUID `json:"id"`
	Topic      string    `json:"topic"`
	Lessons    []Lesson  `json:"lessons"`
	Generation uint64    `json:"generation"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCoursePlan creates a plan for the topic. The lessons are copied so later
// mutation by the caller cannot leak into a cached plan.
func NewCoursePlan(topic string, lessons []Lesson, generation uint64) (*CoursePlan, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	stored := make([]Lesson, len(lessons))
	copy(stored, lessons)

	return &CoursePlan{
		ID:         uuid.New(),
		Topic:      topic,
		Lessons:    stored,
		Generation: generation,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Page returns the requested page of this plan.
func (p *CoursePlan) Page(page int) (Page, error) {
	return Paginate(p.Lessons, page, PageSize)
}
