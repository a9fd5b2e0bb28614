package dto

type GenerateStoryResponse struct {
	StoryID     string `json:"story_id"`
	Mood        string `json:"mood"`
	Story       string `json:"story"`
	Moral       string `json:"moral"`
	ArchiveFile string `json:"archive_file,omitempty"`
}
