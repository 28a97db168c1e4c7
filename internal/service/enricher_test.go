package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
	"github.com/phrazzld/coursegen-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stubLessons(n int) []domain.Lesson {
	lessons := make([]domain.Lesson, n)
	for i := range lessons {
		lessons[i] = domain.Lesson{
			Title:       fmt.Sprintf("Lesson %d", i+1),
			SearchQuery: fmt.Sprintf("query %d", i+1),
		}
	}
	return lessons
}

func newEnricher(t *testing.T, searcher service.VideoSearcher, isolate bool) *service.Enricher {
	t.Helper()
	e, err := service.NewEnricher(searcher, isolate, nil)
	require.NoError(t, err)
	return e
}

func TestEnrich_AttachesVideos(t *testing.T) {
	t.Parallel()

	searcher := &MockVideoSearcher{}
	searcher.On("FirstEmbeddableVideo", mock.Anything, "query 1").Return("vid-1", true, nil)
	searcher.On("FirstEmbeddableVideo", mock.Anything, "query 2").Return("vid-2", true, nil)

	stubs := stubLessons(2)
	got, err := newEnricher(t, searcher, false).Enrich(testContext(t), stubs)

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].VideoID)
	assert.Equal(t, "vid-1", *got[0].VideoID)
	require.NotNil(t, got[1].VideoID)
	assert.Equal(t, "vid-2", *got[1].VideoID)

	// Inputs are untouched.
	assert.Nil(t, stubs[0].VideoID)
	assert.Nil(t, stubs[1].VideoID)
	searcher.AssertExpectations(t)
}

func TestEnrich_PreservesOrderUnderOutOfOrderCompletion(t *testing.T) {
	t.Parallel()

	stubs := stubLessons(5)
	searcher := &MockVideoSearcher{}
	for i, stub := range stubs {
		// Earlier lessons finish last.
		searcher.On("FirstEmbeddableVideo", mock.Anything, stub.SearchQuery).
			After(time.Duration(len(stubs)-i) * 10 * time.Millisecond).
			Return(fmt.Sprintf("vid-%d", i+1), true, nil)
	}

	got, err := newEnricher(t, searcher, false).Enrich(testContext(t), stubs)

	require.NoError(t, err)
	require.Len(t, got, len(stubs))
	for i, lesson := range got {
		assert.Equal(t, stubs[i].Title, lesson.Title)
		require.NotNil(t, lesson.VideoID)
		assert.Equal(t, fmt.Sprintf("vid-%d", i+1), *lesson.VideoID)
	}
}

func TestEnrich_ZeroResultsLeaveVideoNil(t *testing.T) {
	t.Parallel()

	searcher := &MockVideoSearcher{}
	searcher.On("FirstEmbeddableVideo", mock.Anything, "query 1").Return("", false, nil)
	searcher.On("FirstEmbeddableVideo", mock.Anything, "query 2").Return("vid-2", true, nil)

	got, err := newEnricher(t, searcher, false).Enrich(testContext(t), stubLessons(2))

	require.NoError(t, err)
	assert.Nil(t, got[0].VideoID)
	require.NotNil(t, got[1].VideoID)
	assert.Equal(t, "vid-2", *got[1].VideoID)
}

func TestEnrich_FailureAbortsPage(t *testing.T) {
	t.Parallel()

	searcher := &MockVideoSearcher{}
	searcher.On("FirstEmbeddableVideo", mock.Anything, "query 2").Return("", false, errors.New("quota exceeded"))
	searcher.On("FirstEmbeddableVideo", mock.Anything, mock.Anything).Return("vid", true, nil)

	got, err := newEnricher(t, searcher, false).Enrich(testContext(t), stubLessons(3))

	require.Error(t, err)
	assert.Nil(t, got, "no partial result")
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestEnrich_IsolatedFailuresDegradeToNoVideo(t *testing.T) {
	t.Parallel()

	searcher := &MockVideoSearcher{}
	searcher.On("FirstEmbeddableVideo", mock.Anything, "query 2").Return("", false, errors.New("quota exceeded"))
	searcher.On("FirstEmbeddableVideo", mock.Anything, mock.Anything).Return("vid", true, nil)

	got, err := newEnricher(t, searcher, true).Enrich(testContext(t), stubLessons(3))

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.NotNil(t, got[0].VideoID)
	assert.Nil(t, got[1].VideoID)
	assert.NotNil(t, got[2].VideoID)
}

func TestEnrich_IsolatedFailuresDoNotMaskCancellation(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{
		FirstEmbeddableVideoFn: func(ctx context.Context, _ string) (string, bool, error) {
			<-ctx.Done()
			return "", false, ctx.Err()
		},
	}

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	got, err := newEnricher(t, searcher, true).Enrich(ctx, stubLessons(3))

	require.Error(t, err)
	assert.Nil(t, got, "a cancelled page is not served")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnrich_LogsAttachedVideoCount(t *testing.T) {
	t.Parallel()

	searcher := &MockVideoSearcher{}
	searcher.On("FirstEmbeddableVideo", mock.Anything, "query 2").Return("", false, nil)
	searcher.On("FirstEmbeddableVideo", mock.Anything, mock.Anything).Return("vid", true, nil)

	log, logBuf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), log)

	_, err := newEnricher(t, searcher, false).Enrich(ctx, stubLessons(3))

	require.NoError(t, err)
	logger.AssertLogContains(t, logBuf, "lessons enriched")
	logger.AssertLogField(t, logBuf, "videos_attached", float64(2))
}

func TestEnrich_EmptyPage(t *testing.T) {
	t.Parallel()

	searcher := &MockVideoSearcher{}
	got, err := newEnricher(t, searcher, false).Enrich(testContext(t), nil)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	searcher.AssertNotCalled(t, "FirstEmbeddableVideo", mock.Anything, mock.Anything)
}

func TestEnrich_RunsSearchesConcurrently(t *testing.T) {
	t.Parallel()

	const n = 5
	started := make(chan struct{}, n)
	release := make(chan struct{})
	searcher := &fakeSearcher{
		FirstEmbeddableVideoFn: func(ctx context.Context, query string) (string, bool, error) {
			started <- struct{}{}
			select {
			case <-release:
			case <-ctx.Done():
				return "", false, ctx.Err()
			}
			return "vid:" + query, true, nil
		},
	}

	done := make(chan error, 1)
	go func() {
		_, err := newEnricher(t, searcher, false).Enrich(testContext(t), stubLessons(n))
		done <- err
	}()

	// Every search must be in flight before any of them is allowed to finish.
	for i := 0; i < n; i++ {
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatalf("only %d of %d searches started concurrently", i, n)
		}
	}
	close(release)

	require.NoError(t, <-done)
	assert.EqualValues(t, n, searcher.calls.Load())
}
