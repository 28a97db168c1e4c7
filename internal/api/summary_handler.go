package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/coursegen-api/internal/api/shared"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
)

// VideoSummarizer summarizes a video from its transcript.
type VideoSummarizer interface {
	Summarize(ctx context.Context, videoID string) (string, error)
}

// SummaryHandler handles video summary requests.
type SummaryHandler struct {
	summaries VideoSummarizer
	logger    *slog.Logger
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaries VideoSummarizer, log *slog.Logger) (*SummaryHandler, error) {
	if summaries == nil {
		return nil, errors.New("video summarizer cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SummaryHandler{
		summaries: summaries,
		logger:    log.With(slog.String("component", "summary_handler")),
	}, nil
}

// SummarizeVideo handles POST /api/summarize-video.
func (h *SummaryHandler) SummarizeVideo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SummarizeVideoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidFormat, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, OpSummarizeVideo)
		return
	}

	log.Info("summary requested", slog.String("video_id", req.VideoID))

	summary, err := h.summaries.Summarize(r.Context(), req.VideoID)
	if err != nil {
		HandleAPIError(w, r, err, OpSummarizeVideo)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{Summary: summary})
}
