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

// CourseProvider serves pages of generated courses.
type CourseProvider interface {
	GetCourse(ctx context.Context, topic string, page int) (domain.Page, error)
}

// CourseHandler handles course requests.
type CourseHandler struct {
	courses CourseProvider
	logger  *slog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courses CourseProvider, log *slog.Logger) (*CourseHandler, error) {
	if courses == nil {
		return nil, errors.New("course provider cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &CourseHandler{
		courses: courses,
		logger:  log.With(slog.String("component", "course_handler")),
	}, nil
}

// GetCourse handles POST /api/get-course. Page 1 generates a new plan for
// the topic; later pages are served from the stored plan.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GetCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidFormat, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, OpGetCourse)
		return
	}

	page := req.PageOrDefault()
	log.Info("course requested", slog.String("topic", req.Topic), slog.Int("page", page))

	result, err := h.courses.GetCourse(r.Context(), req.Topic, page)
	if err != nil {
		HandleAPIError(w, r, err, OpGetCourse)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(result))
}
