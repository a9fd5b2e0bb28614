package outbound

import "context"

type GenerateStoryScriptRequest struct {
	SystemPrompt string
	UserPrompt   string
}

type StoryScriptGeneratorPort interface {
	Generate(ctx context.Context, req GenerateStoryScriptRequest) (<-chan string, <-chan error)
}
