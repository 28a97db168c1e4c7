package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/coursegen-api/internal/config"
	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// SearchClient finds videos through the YouTube Data API v3.
type SearchClient struct {
	service *ytapi.Service
	logger  *slog.Logger
}

// NewSearchClient creates a SearchClient authenticated with the configured API key.
// Additional client options are applied after the defaults, so callers can
// replace the HTTP client or endpoint.
func NewSearchClient(
	ctx context.Context,
	log *slog.Logger,
	cfg config.YouTubeConfig,
	opts ...option.ClientOption,
) (*SearchClient, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("youtube API key cannot be empty")
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := ytapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}

	return &SearchClient{
		service: svc,
		logger:  log.With(slog.String("component", "youtube_search")),
	}, nil
}

// FirstEmbeddableVideo returns the ID of the top embeddable video matching query.
// found is false when the search returned no usable result; that is not an error.
func (c *SearchClient) FirstEmbeddableVideo(ctx context.Context, query string) (string, bool, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		VideoEmbeddable("true").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", false, fmt.Errorf("%w: youtube search: %w", domain.ErrUpstreamFailure, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.VideoId == "" {
		log.Debug("no video found for query", slog.String("query", query))
		return "", false, nil
	}

	return resp.Items[0].Id.VideoId, true, nil
}
