package api

import "github.com/phrazzld/coursegen-api/internal/domain"

// GetCourseRequest defines the payload for POST /api/get-course. Page
// defaults to 1 when omitted.
type GetCourseRequest struct {
	Topic string `json:"topic" validate:"required"`
	Page  *int   `json:"page"`
}

// PageOrDefault returns the requested page, or 1 when none was sent.
func (r GetCourseRequest) PageOrDefault() int {
	if r.Page == nil {
		return 1
	}
	return *r.Page
}

// GenerateQuizRequest carries the query parameters of GET /api/generate-quiz.
type GenerateQuizRequest struct {
	Topic string `validate:"required"`
}

// SummarizeVideoRequest defines the payload for POST /api/summarize-video.
type SummarizeVideoRequest struct {
	VideoID string `json:"videoId" validate:"required"`
}

// LessonResponse is one lesson of a course page.
type LessonResponse struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SearchQuery string  `json:"search_query"`
	VideoID     *string `json:"video_id"`
}

// CourseResponse is one page of a course.
type CourseResponse struct {
	Lessons []LessonResponse `json:"lessons"`
	HasMore bool             `json:"hasMore"`
}

// QuestionResponse is one multiple-choice question.
type QuestionResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// QuizResponse wraps a generated quiz.
type QuizResponse struct {
	Quiz []QuestionResponse `json:"quiz"`
}

// SummaryResponse wraps a generated video summary.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

func pageToResponse(page domain.Page) CourseResponse {
	lessons := make([]LessonResponse, len(page.Items))
	for i, l := range page.Items {
		lessons[i] = LessonResponse{
			Title:       l.Title,
			Description: l.Description,
			SearchQuery: l.SearchQuery,
			VideoID:     l.VideoID,
		}
	}
	return CourseResponse{Lessons: lessons, HasMore: page.HasMore}
}

func quizToResponse(quiz domain.Quiz) QuizResponse {
	questions := make([]QuestionResponse, len(quiz))
	for i, q := range quiz {
		questions[i] = QuestionResponse{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return QuizResponse{Quiz: questions}
}
