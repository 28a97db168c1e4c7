package service

import (
	"context"

	"github.com/phrazzld/coursegen-api/internal/domain"
)

// VideoSearcher finds the single best embeddable video for a search query.
type VideoSearcher interface {
	// FirstEmbeddableVideo returns the ID of the top result. found is false
	// when nothing matched; that is not an error.
	FirstEmbeddableVideo(ctx context.Context, query string) (videoID string, found bool, err error)
}

// TranscriptFetcher retrieves the caption segments of a video.
type TranscriptFetcher interface {
	// FetchTranscript returns domain.ErrTranscriptUnavailable when the video
	// has no usable transcript.
	FetchTranscript(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error)
}
