package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/donovanhide/eventsource"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/config"
)

const DoneSignal = "[DONE]"
const MaxRetries = 3

const (
	storyTemperature = 0.7
	storyMaxTokens   = 550
)

type chatGptRequest struct {
	Stream      bool             `json:"stream"`
	Model       string           `json:"model"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
	Messages    []chatGptMessage `json:"messages"`
}

type chatGptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatGptChunkBody struct {
	Choices []chatGptChunkChoice `json:"choices"`
}

type chatGptChunkChoice struct {
	Index int `json:"index"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type storyScriptGenerator struct {
	logger     outbound.LoggerPort
	gptConfig  *config.GptConfig
	workerPool outbound.TaskDispatcher
}

func NewStoryScriptGenerator(gptConfig *config.GptConfig, workerPool outbound.TaskDispatcher,
	logger outbound.LoggerPort) outbound.StoryScriptGeneratorPort {
	return &storyScriptGenerator{
		logger:     logger,
		gptConfig:  gptConfig,
		workerPool: workerPool,
	}
}

// Generate streams completion tokens for the given prompts. The error
// channel closes before the token channel, so consumers that drain tokens
// to the end can still pick up a late error.
func (s *storyScriptGenerator) Generate(ctx context.Context, req outbound.GenerateStoryScriptRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	retryCount := 0

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		httpReq, err := s.createRequest(newCtx, req)
		if err != nil {
			s.logger.Error(err, "Failed to create HTTP request for the completion stream")
			errCh <- err
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", httpReq)
		if err != nil {
			s.logger.Error(err, "Failed to subscribe to the completion stream")
			errCh <- err
			return
		}

		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				if ev.Data() != DoneSignal {
					payload, err := s.extractPayload(ev)
					if err != nil {
						errCh <- err
						cancel()
						return
					}
					out <- payload
				}
				retryCount = 0
			case err := <-stream.Errors:
				if err == io.EOF {
					s.logger.Debug("Completion stream closed")
					return
				}
				if retryCount < MaxRetries {
					s.logger.ErrorWithFields(err, "Error occurred during streaming, retrying", map[string]interface{}{
						"retry_count": retryCount,
					})
					retryCount++
					continue
				}
				s.logger.Error(err, "Error occurred during streaming, max retries reached")
				errCh <- err
				cancel()
				return
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit task to worker pool")
		cancel()
		errCh <- err
		close(errCh)
		close(out)
	}

	return out, errCh
}

func (s *storyScriptGenerator) extractPayload(event eventsource.Event) (string, error) {
	var chunkBody chatGptChunkBody
	err := json.Unmarshal([]byte(event.Data()), &chunkBody)
	if err != nil {
		s.logger.Error(err, "Failed to unmarshal event data")
		return "", err
	}

	if len(chunkBody.Choices) == 0 {
		return "", nil
	}

	return chunkBody.Choices[0].Delta.Content, nil
}

func (s *storyScriptGenerator) createRequest(ctx context.Context, req outbound.GenerateStoryScriptRequest) (*http.Request, error) {
	promptReq := chatGptRequest{
		Stream:      true,
		Model:       s.gptConfig.Model,
		Temperature: storyTemperature,
		MaxTokens:   storyMaxTokens,
		Messages: []chatGptMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		s.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gptConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		s.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+s.gptConfig.ApiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}
