package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/coursegen-api/internal/api/shared"
	"github.com/phrazzld/coursegen-api/internal/domain"
)

// Operation names the endpoint an error came from. Each endpoint words its
// client-facing messages differently.
type Operation string

const (
	OpGetCourse      Operation = "get_course"
	OpGenerateQuiz   Operation = "generate_quiz"
	OpSummarizeVideo Operation = "summarize_video"
)

const (
	msgUnexpected        = "An unexpected error occurred"
	msgInvalidFormat     = "Invalid request format"
	msgInvalidPage       = "The page must be a positive integer."
	msgCourseNotFound    = "Course not found. Please generate a new course first."
	msgTranscriptMissing = "Sorry, a transcript is not available for this video, so it cannot be summarized."
	msgTopicRequired     = "A topic is required."
	msgQuizTopicRequired = "A topic is required for the quiz."
	msgVideoIDRequired   = "A videoId is required."
	msgCourseFailed      = "Failed to generate the course."
	msgQuizFailed        = "Failed to generate the quiz."
	msgSummaryFailed     = "Failed to generate the video summary."
)

var requiredMessages = map[Operation]string{
	OpGetCourse:      msgTopicRequired,
	OpGenerateQuiz:   msgQuizTopicRequired,
	OpSummarizeVideo: msgVideoIDRequired,
}

var failureMessages = map[Operation]string{
	OpGetCourse:      msgCourseFailed,
	OpGenerateQuiz:   msgQuizFailed,
	OpSummarizeVideo: msgSummaryFailed,
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCourseNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err as reported
// by op. Internal details never reach the message.
func GetSafeErrorMessage(err error, op Operation) string {
	if err == nil {
		return msgUnexpected
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPage):
		return msgInvalidPage
	case errors.Is(err, domain.ErrInvalidRequest):
		if msg, ok := requiredMessages[op]; ok {
			return msg
		}
		return msgInvalidFormat
	case errors.Is(err, domain.ErrCourseNotFound):
		return msgCourseNotFound
	case errors.Is(err, domain.ErrTranscriptUnavailable) && op == OpSummarizeVideo:
		return msgTranscriptMissing
	}

	if msg, ok := failureMessages[op]; ok {
		return msg
	}
	return msgUnexpected
}

// HandleAPIError writes the status and safe message for err, logging the
// redacted error on the request logger.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, op Operation) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err, op), err)
}
