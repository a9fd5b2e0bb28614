package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

const ArtifactFileName = "dream_story.txt"

type StoryArtifact struct {
	Dream  string
	Result StoryResult
}

// Render produces the plain UTF-8 text handed out by the download endpoint
// and written to the local archive.
func (a StoryArtifact) Render() string {
	return fmt.Sprintf("Dream:\n%s\n\nMood: %s\n\nStory:\n%s\n\nMoral:\n%s\n",
		a.Dream, a.Result.Mood, a.Result.Story, a.Result.Moral)
}

// FileName derives a stable archive name from the dream text.
func (a StoryArtifact) FileName() string {
	sum := sha1.Sum([]byte(a.Dream))
	return fmt.Sprintf("dream_%s.txt", hex.EncodeToString(sum[:])[:8])
}
