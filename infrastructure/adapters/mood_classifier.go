package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/config"
)

const moodSystemPrompt = "You are a short-text mood classifier for dreams. " +
	"Given a user dream text, reply with one short mood label only. " +
	"Choose from: Scary, Happy, Peaceful, Anxious, Confusing, Exciting, Sad, Surreal, Neutral."

const (
	moodTemperature = 0.0
	moodMaxTokens   = 30
)

type chatGptCompletionBody struct {
	Choices []chatGptCompletionChoice `json:"choices"`
}

type chatGptCompletionChoice struct {
	Index   int `json:"index"`
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

type moodClassifier struct {
	ContentFetcher
	logger    outbound.LoggerPort
	gptConfig *config.GptConfig
}

func NewMoodClassifier(contentFetcher ContentFetcher, gptConfig *config.GptConfig,
	logger outbound.LoggerPort) outbound.MoodClassifierPort {
	return &moodClassifier{
		ContentFetcher: contentFetcher,
		logger:         logger,
		gptConfig:      gptConfig,
	}
}

func (m *moodClassifier) Classify(ctx context.Context, dreamText string) (string, error) {
	req, err := m.getRequest(ctx, dreamText)
	if err != nil {
		m.logger.Error(err, "Failed to create the HTTP request for mood classification")
		return "", err
	}

	rawRes, err := m.FetchContent(req)
	if err != nil {
		m.logger.Error(err, "Failed to fetch the mood classification")
		return "", err
	}

	var completion chatGptCompletionBody
	err = json.Unmarshal(rawRes, &completion)
	if err != nil {
		m.logger.Error(err, "Failed to unmarshal the mood classification response")
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("mood classification response contained no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func (m *moodClassifier) getRequest(ctx context.Context, dreamText string) (*http.Request, error) {
	reqBody := chatGptRequest{
		Stream:      false,
		Model:       m.gptConfig.Model,
		Temperature: moodTemperature,
		MaxTokens:   moodMaxTokens,
		Messages: []chatGptMessage{
			{Role: "system", Content: moodSystemPrompt},
			{Role: "user", Content: dreamText},
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		m.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.gptConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		m.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+m.gptConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
