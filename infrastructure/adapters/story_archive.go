package adapters

import (
	"context"
	"os"
	"path/filepath"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/domain"
)

type fileStoryArchive struct {
	logger outbound.LoggerPort
	dir    string
}

// NewFileStoryArchive stores rendered story artifacts as plain text files
// under dir, one file per dream text.
func NewFileStoryArchive(dir string, logger outbound.LoggerPort) outbound.StoryArchivePort {
	return &fileStoryArchive{
		logger: logger,
		dir:    dir,
	}
}

func (f *fileStoryArchive) Save(_ context.Context, artifact domain.StoryArtifact) (string, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		f.logger.ErrorWithFields(err, "Failed to create the archive directory", map[string]interface{}{
			"dir": f.dir,
		})
		return "", err
	}

	fileName := artifact.FileName()
	path := filepath.Join(f.dir, fileName)

	if err := os.WriteFile(path, []byte(artifact.Render()), 0o644); err != nil {
		f.logger.ErrorWithFields(err, "Failed to write the story artifact", map[string]interface{}{
			"path": path,
		})
		return "", err
	}

	f.logger.DebugWithFields("story artifact archived", map[string]interface{}{
		"path": path,
	})

	return fileName, nil
}
