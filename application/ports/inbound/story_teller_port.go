package inbound

import (
	"context"

	"github.com/eman0056/dream-to-story-app/domain"
)

type TellStoryParams struct {
	StoryID string
	Request domain.DreamRequest
}

type TellStoryResult struct {
	Result      domain.StoryResult
	ArchiveFile string
}

type StoryTellerPort interface {
	Tell(ctx context.Context, params TellStoryParams) (*TellStoryResult, error)
}
