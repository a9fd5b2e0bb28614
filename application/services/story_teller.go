package services

import (
	"context"
	"strings"

	"github.com/eman0056/dream-to-story-app/application/ports/inbound"
	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/domain"
)

type storyTeller struct {
	logger          outbound.LoggerPort
	promptBuilder   *PromptBuilder
	scriptGenerator outbound.StoryScriptGeneratorPort
	moodClassifier  outbound.MoodClassifierPort
	archive         outbound.StoryArchivePort
}

func NewStoryTeller(logger outbound.LoggerPort, promptBuilder *PromptBuilder,
	scriptGenerator outbound.StoryScriptGeneratorPort, moodClassifier outbound.MoodClassifierPort,
	archive outbound.StoryArchivePort) inbound.StoryTellerPort {
	return &storyTeller{
		logger:          logger,
		promptBuilder:   promptBuilder,
		scriptGenerator: scriptGenerator,
		moodClassifier:  moodClassifier,
		archive:         archive,
	}
}

func (s *storyTeller) Tell(ctx context.Context, params inbound.TellStoryParams) (*inbound.TellStoryResult, error) {
	systemPrompt, userPrompt, err := s.promptBuilder.Build(params.Request)
	if err != nil {
		return nil, err
	}

	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tokenCh, genErrCh := s.scriptGenerator.Generate(newCtx, outbound.GenerateStoryScriptRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	})

	var builder strings.Builder

collect:
	for {
		select {
		case <-newCtx.Done():
			return nil, newCtx.Err()
		case err, ok := <-genErrCh:
			if ok {
				return nil, err
			}
			genErrCh = nil
		case token, ok := <-tokenCh:
			if !ok {
				break collect
			}
			builder.WriteString(token)
		}
	}

	// The generator closes its error channel before the token channel, so
	// a late error is still visible here.
	if genErrCh != nil {
		if err, ok := <-genErrCh; ok {
			return nil, err
		}
	}

	raw := builder.String()
	result := ParseStoryResult(raw)

	if result.Mood == "" && s.moodClassifier != nil {
		mood, err := s.moodClassifier.Classify(newCtx, params.Request.Text)
		if err != nil {
			s.logger.WarnWithFields("failed to classify dream mood", map[string]interface{}{
				"story_id": params.StoryID,
				"error":    err.Error(),
			})
		} else {
			result.Mood = mood
		}
	}

	s.logger.InfoWithFields("story generated", map[string]interface{}{
		"story_id": params.StoryID,
		"mood":     result.Mood,
	})

	return &inbound.TellStoryResult{
		Result:      result,
		ArchiveFile: s.archiveResult(newCtx, params, result),
	}, nil
}

func (s *storyTeller) archiveResult(ctx context.Context, params inbound.TellStoryParams, result domain.StoryResult) string {
	if s.archive == nil {
		return ""
	}

	fileName, err := s.archive.Save(ctx, domain.StoryArtifact{
		Dream:  params.Request.Text,
		Result: result,
	})
	if err != nil {
		s.logger.WarnWithFields("failed to archive story", map[string]interface{}{
			"story_id": params.StoryID,
			"error":    err.Error(),
		})
		return ""
	}

	return fileName
}
