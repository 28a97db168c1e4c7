package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	ytdl "github.com/kkdai/youtube/v2"
	"github.com/phrazzld/coursegen-api/internal/config"
	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
)

// transcriptSource is the subset of *ytdl.Client used by TranscriptClient.
type transcriptSource interface {
	GetVideoContext(ctx context.Context, url string) (*ytdl.Video, error)
	GetTranscriptCtx(ctx context.Context, video *ytdl.Video, lang string) (ytdl.VideoTranscript, error)
}

// TranscriptClient fetches caption tracks for public YouTube videos.
type TranscriptClient struct {
	source   transcriptSource
	language string
	logger   *slog.Logger
}

// NewTranscriptClient creates a TranscriptClient that requests captions in the
// configured language. A nil httpClient uses http.DefaultClient.
func NewTranscriptClient(log *slog.Logger, cfg config.YouTubeConfig, httpClient *http.Client) *TranscriptClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return newTranscriptClient(log, &ytdl.Client{HTTPClient: httpClient}, cfg.TranscriptLanguage)
}

func newTranscriptClient(log *slog.Logger, source transcriptSource, language string) *TranscriptClient {
	if log == nil {
		log = slog.Default()
	}
	if language == "" {
		language = "en"
	}
	return &TranscriptClient{
		source:   source,
		language: language,
		logger:   log.With(slog.String("component", "youtube_transcript")),
	}
}

// FetchTranscript returns the ordered caption segments of a video.
// Videos with captions disabled or without any segments yield
// domain.ErrTranscriptUnavailable; any other failure wraps
// domain.ErrUpstreamFailure.
func (c *TranscriptClient) FetchTranscript(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	video, err := c.source.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch video %s: %w", domain.ErrUpstreamFailure, videoID, err)
	}

	raw, err := c.source.GetTranscriptCtx(ctx, video, c.language)
	if err != nil {
		if errors.Is(err, ytdl.ErrTranscriptDisabled) {
			log.Debug("transcript disabled", slog.String("video_id", videoID))
			return nil, fmt.Errorf("%w: %v", domain.ErrTranscriptUnavailable, err)
		}
		return nil, fmt.Errorf("%w: fetch transcript %s: %w", domain.ErrUpstreamFailure, videoID, err)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: video %s has no caption segments", domain.ErrTranscriptUnavailable, videoID)
	}

	segments := make([]domain.TranscriptSegment, 0, len(raw))
	for _, s := range raw {
		segments = append(segments, domain.TranscriptSegment{
			Text:     s.Text,
			Offset:   time.Duration(s.StartMs) * time.Millisecond,
			Duration: time.Duration(s.Duration) * time.Millisecond,
		})
	}

	log.Debug("transcript fetched",
		slog.String("video_id", videoID),
		slog.Int("segment_count", len(segments)))
	return segments, nil
}
