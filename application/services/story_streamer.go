package services

import (
	"context"
	"strings"

	"github.com/eman0056/dream-to-story-app/application/ports/inbound"
	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/channel_utils"
	"github.com/eman0056/dream-to-story-app/domain"
)

type storyStreamer struct {
	logger          outbound.LoggerPort
	workerPool      outbound.TaskDispatcher
	promptBuilder   *PromptBuilder
	scriptGenerator outbound.StoryScriptGeneratorPort
	moodClassifier  outbound.MoodClassifierPort
	archive         outbound.StoryArchivePort
}

func NewStoryStreamer(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	promptBuilder *PromptBuilder, scriptGenerator outbound.StoryScriptGeneratorPort,
	moodClassifier outbound.MoodClassifierPort, archive outbound.StoryArchivePort) inbound.StoryStreamerPort {
	return &storyStreamer{
		logger:          logger,
		workerPool:      workerPool,
		promptBuilder:   promptBuilder,
		scriptGenerator: scriptGenerator,
		moodClassifier:  moodClassifier,
		archive:         archive,
	}
}

func (s *storyStreamer) Stream(ctx context.Context, params inbound.StreamStoryParams) (<-chan domain.StoryEvent, <-chan error) {
	out := make(chan domain.StoryEvent)
	errCh := make(chan error, 5)

	systemPrompt, userPrompt, err := s.promptBuilder.Build(params.Request)
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
		return out, errCh
	}

	newCtx, cancel := context.WithCancel(ctx)

	moodCh, moodErrCh := s.classifyMood(newCtx, params)

	tokenCh, genErrCh := s.scriptGenerator.Generate(newCtx, outbound.GenerateStoryScriptRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	})

	mergedErrCh, err := channel_utils.MergeChannels(s.workerPool, moodErrCh, genErrCh, errCh)
	if err != nil {
		cancel()
		errCh <- err
		close(out)
		close(errCh)
		return out, errCh
	}

	err = s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		var builder strings.Builder
		var mood string

		for moodCh != nil || tokenCh != nil {
			select {
			case <-newCtx.Done():
				return
			case m, ok := <-moodCh:
				if ok {
					mood = m
					out <- domain.StoryEvent{StoryID: params.StoryID, Type: domain.MoodEventType, Content: m}
				}
				moodCh = nil
			case token, ok := <-tokenCh:
				if !ok {
					tokenCh = nil
					continue
				}
				builder.WriteString(token)
				out <- domain.StoryEvent{StoryID: params.StoryID, Type: domain.TokenEventType, Content: token}
			}
		}

		result := ParseStoryResult(builder.String())
		if mood != "" {
			result.Mood = mood
		}

		out <- domain.StoryEvent{
			StoryID: params.StoryID,
			Type:    domain.ResultEventType,
			Result: &domain.ResultEvent{
				StoryID:     params.StoryID,
				Mood:        result.Mood,
				Story:       result.Story,
				Moral:       result.Moral,
				ArchiveFile: s.archiveResult(newCtx, params, result),
			},
		}
	})
	if err != nil {
		cancel()
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, mergedErrCh
}

func (s *storyStreamer) classifyMood(ctx context.Context, params inbound.StreamStoryParams) (<-chan string, <-chan error) {
	out := make(chan string, 1)
	errCh := make(chan error, 1)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		mood, err := s.moodClassifier.Classify(ctx, params.Request.Text)
		if err != nil {
			s.logger.Error(err, "failed to classify dream mood")
			errCh <- err
			return
		}

		select {
		case <-ctx.Done():
		case out <- mood:
		}
	})
	if err != nil {
		errCh <- err
		close(errCh)
		close(out)
	}

	return out, errCh
}

func (s *storyStreamer) archiveResult(ctx context.Context, params inbound.StreamStoryParams, result domain.StoryResult) string {
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
