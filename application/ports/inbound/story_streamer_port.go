package inbound

import (
	"context"

	"github.com/eman0056/dream-to-story-app/domain"
)

type StreamStoryParams struct {
	StoryID string
	Request domain.DreamRequest
}

type StoryStreamerPort interface {
	Stream(ctx context.Context, params StreamStoryParams) (<-chan domain.StoryEvent, <-chan error)
}
