package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
	"golang.org/x/sync/errgroup"
)

// Enricher attaches a video to each lesson of a page.
type Enricher struct {
	searcher VideoSearcher
	// isolateFailures keeps the page when single searches fail; the failing
	// lessons are returned without a video.
	isolateFailures bool
	logger          *slog.Logger
}

// NewEnricher creates an Enricher. With isolateFailures false, any failed
// search fails the whole call.
func NewEnricher(searcher VideoSearcher, isolateFailures bool, log *slog.Logger) (*Enricher, error) {
	if searcher == nil {
		return nil, errors.New("searcher cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Enricher{
		searcher:        searcher,
		isolateFailures: isolateFailures,
		logger:          log.With(slog.String("component", "enricher")),
	}, nil
}

// Enrich searches for a video for every stub concurrently and returns copies
// of the stubs, in input order, with VideoID set to the first result or nil
// when nothing matched. The input slice is not modified.
func (e *Enricher) Enrich(ctx context.Context, stubs []domain.Lesson) ([]domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	enriched := make([]domain.Lesson, len(stubs))
	if len(stubs) == 0 {
		return enriched, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, stub := range stubs {
		g.Go(func() error {
			videoID, found, err := e.searcher.FirstEmbeddableVideo(gctx, stub.SearchQuery)
			if err != nil {
				// A cancelled request is not a per-lesson failure.
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return fmt.Errorf("video search for lesson %d: %w", i+1, err)
				}
				if e.isolateFailures {
					log.Warn("video search failed, lesson left without video",
						slog.Int("lesson_index", i),
						slog.String("query", stub.SearchQuery),
						slog.String("error", err.Error()))
					enriched[i] = stub.WithVideo("")
					return nil
				}
				if !errors.Is(err, domain.ErrUpstreamFailure) {
					err = fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
				}
				return fmt.Errorf("video search for lesson %d: %w", i+1, err)
			}

			if !found {
				videoID = ""
			}
			enriched[i] = stub.WithVideo(videoID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	attached := 0
	for _, lesson := range enriched {
		if lesson.HasVideo() {
			attached++
		}
	}
	log.Debug("lessons enriched",
		slog.Int("lesson_count", len(enriched)),
		slog.Int("videos_attached", attached))

	return enriched, nil
}
