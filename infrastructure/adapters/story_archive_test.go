package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eman0056/dream-to-story-app/domain"
)

func TestFileStoryArchive_Save(t *testing.T) {
	dir := t.TempDir()

	logger := NewZerologWrapper()
	archive := NewFileStoryArchive(filepath.Join(dir, "stories"), logger)

	artifact := domain.StoryArtifact{
		Dream: "I was flying over mountains",
		Result: domain.StoryResult{
			Mood:  "Joyful",
			Story: "A tale of flight...",
			Moral: "Freedom is within reach.",
		},
	}

	fileName, err := archive.Save(context.Background(), artifact)
	if err != nil {
		t.Fatal("Failed to save artifact:", err)
	}

	if !strings.HasPrefix(fileName, "dream_") || !strings.HasSuffix(fileName, ".txt") {
		t.Fatalf("Unexpected archive file name: %q", fileName)
	}

	payload, err := os.ReadFile(filepath.Join(dir, "stories", fileName))
	if err != nil {
		t.Fatal("Failed to read archived file:", err)
	}

	content := string(payload)
	for _, want := range []string{"I was flying over mountains", "Mood: Joyful", "A tale of flight...", "Freedom is within reach."} {
		if !strings.Contains(content, want) {
			t.Fatalf("Expected the archive to contain %q, got:\n%s", want, content)
		}
	}
}

func TestFileStoryArchive_Save_StableFileName(t *testing.T) {
	logger := NewZerologWrapper()
	archive := NewFileStoryArchive(t.TempDir(), logger)

	artifact := domain.StoryArtifact{Dream: "the same dream"}

	first, err := archive.Save(context.Background(), artifact)
	if err != nil {
		t.Fatal("Failed to save artifact:", err)
	}
	second, err := archive.Save(context.Background(), artifact)
	if err != nil {
		t.Fatal("Failed to save artifact:", err)
	}

	if first != second {
		t.Fatalf("Expected a stable file name for the same dream, got %q and %q", first, second)
	}
}
