package mock_generator

import (
	"context"
	"strings"
	"time"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/application/services"
	"github.com/eman0056/dream-to-story-app/domain"
)

// Runner replays a canned token stream so the frontend can be developed
// without an API key.
type Runner struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	chunkReader ChunkReader
	fixture     string
}

func NewRunner(workerPool outbound.TaskDispatcher, chunkReader ChunkReader, fixture string,
	logger outbound.LoggerPort) *Runner {
	return &Runner{
		logger:      logger,
		workerPool:  workerPool,
		chunkReader: chunkReader,
		fixture:     fixture,
	}
}

func (r *Runner) Run(ctx context.Context, storyID string) (<-chan domain.StoryEvent, <-chan error) {
	out := make(chan domain.StoryEvent)
	errCh := make(chan error, 5)

	newCtx, cancel := context.WithCancel(ctx)

	err := r.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		chunks, err := r.chunkReader.Read(r.fixture)
		if err != nil {
			r.logger.Error(err, "failed to read token fixture")
			errCh <- err
			return
		}

		var builder strings.Builder
		for _, chunk := range chunks {
			select {
			case <-newCtx.Done():
				return
			default:
				time.Sleep(time.Duration(chunk.DelayMs) * time.Millisecond)
				builder.WriteString(chunk.Token)
				out <- domain.StoryEvent{StoryID: storyID, Type: domain.TokenEventType, Content: chunk.Token}
			}
		}

		result := services.ParseStoryResult(builder.String())
		out <- domain.StoryEvent{
			StoryID: storyID,
			Type:    domain.ResultEventType,
			Result: &domain.ResultEvent{
				StoryID: storyID,
				Mood:    result.Mood,
				Story:   result.Story,
				Moral:   result.Moral,
			},
		}

		r.logger.Info("Finished replaying the token fixture.")
	})
	if err != nil {
		cancel()
		errCh <- err
		close(errCh)
		close(out)
	}

	return out, errCh
}
