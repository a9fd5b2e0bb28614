package outbound

import (
	"context"

	"github.com/eman0056/dream-to-story-app/domain"
)

type StoryArchivePort interface {
	Save(ctx context.Context, artifact domain.StoryArtifact) (string, error)
}
