package dto

import "github.com/eman0056/dream-to-story-app/domain"

type DownloadStoryRequest struct {
	Text  string `json:"text" binding:"required"`
	Mood  string `json:"mood"`
	Story string `json:"story" binding:"required"`
	Moral string `json:"moral"`
}

func (r DownloadStoryRequest) ToArtifact() domain.StoryArtifact {
	return domain.StoryArtifact{
		Dream: r.Text,
		Result: domain.StoryResult{
			Mood:  r.Mood,
			Story: r.Story,
			Moral: r.Moral,
		},
	}
}
