package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/generation"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
)

// ErrEmptyVideoID is returned when a summary is requested without a video.
var ErrEmptyVideoID = fmt.Errorf("%w: video id cannot be empty", domain.ErrInvalidRequest)

// SummaryService summarizes videos from their transcripts. Nothing is cached.
type SummaryService struct {
	transcripts TranscriptFetcher
	completer   generation.Completer
	prompts     *generation.Prompts
	logger      *slog.Logger
}

// NewSummaryService creates a SummaryService.
// It returns an error if any of the required dependencies are nil.
func NewSummaryService(
	transcripts TranscriptFetcher,
	completer generation.Completer,
	prompts *generation.Prompts,
	log *slog.Logger,
) (*SummaryService, error) {
	if transcripts == nil {
		return nil, errors.New("transcript fetcher cannot be nil")
	}
	if completer == nil {
		return nil, errors.New("completer cannot be nil")
	}
	if prompts == nil {
		return nil, errors.New("prompts cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &SummaryService{
		transcripts: transcripts,
		completer:   completer,
		prompts:     prompts,
		logger:      log.With(slog.String("component", "summary_service")),
	}, nil
}

// Summarize fetches the transcript of videoID, keeps its first
// domain.MaxTranscriptChars characters and returns the model's summary verbatim.
// A missing or empty transcript yields domain.ErrTranscriptUnavailable.
func (s *SummaryService) Summarize(ctx context.Context, videoID string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if videoID == "" {
		return "", ErrEmptyVideoID
	}

	segments, err := s.transcripts.FetchTranscript(ctx, videoID)
	if err != nil {
		if !errors.Is(err, domain.ErrTranscriptUnavailable) && !errors.Is(err, domain.ErrUpstreamFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
		}
		return "", NewServiceError("summarize_video", "failed to fetch transcript", err)
	}

	text := domain.JoinTranscript(segments)
	if strings.TrimSpace(text) == "" {
		return "", NewServiceError("summarize_video", "transcript is empty", domain.ErrTranscriptUnavailable)
	}

	truncated := domain.TruncateRunes(text, domain.MaxTranscriptChars)
	if len(truncated) < len(text) {
		log.Debug("transcript truncated",
			slog.String("video_id", videoID),
			slog.Int("original_bytes", len(text)),
			slog.Int("kept_chars", domain.MaxTranscriptChars))
	}

	prompt, err := s.prompts.Summary(truncated)
	if err != nil {
		return "", NewServiceError("summarize_video", "failed to render prompt", err)
	}

	summary, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", NewServiceError("summarize_video", "language model call failed", err)
	}

	log.Debug("video summarized",
		slog.String("video_id", videoID),
		slog.Int("summary_length", len(summary)))
	return summary, nil
}
