package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eman0056/dream-to-story-app/domain"
)

var ErrEmptyDreamText = errors.New("dream text must not be empty")

const storySystemPrompt = "You are a creative writer who turns people's dreams into short fictional stories. " +
	"Respond in three labeled sections:\n" +
	"MOOD: <one short mood label, chosen from: Scary, Happy, Peaceful, Anxious, Confusing, Exciting, Sad, Surreal, Neutral>\n" +
	"STORY: <the story>\n" +
	"MORAL: <a one-sentence moral>\n" +
	"Keep the language simple and vivid. Respect the chosen genre, the requested length and the requested language."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build assembles the system and user prompts for a dream request. It
// rejects empty or whitespace-only dream text, in which case no API call
// must be made by the caller.
func (p *PromptBuilder) Build(req domain.DreamRequest) (string, string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", "", ErrEmptyDreamText
	}

	userPrompt := fmt.Sprintf("User dream: %s\n"+
		"Genre: %s\n"+
		"Length: %s. %s\n"+
		"Write the story in %s.\n"+
		"Write a short creative story inspired by the dream, then a one-sentence moral.",
		req.Text, req.Genre, req.Length, lengthHint(req.Length), language(req.Language))

	return storySystemPrompt, userPrompt, nil
}

func lengthHint(length domain.Length) string {
	switch length {
	case domain.LengthShort:
		return "Keep it very short (3-5 sentences)."
	case domain.LengthMedium:
		return "Make it medium length (5-8 sentences)."
	case domain.LengthLong:
		return "Make it longer (8-12 sentences)."
	default:
		return "Keep it short."
	}
}

func language(lang domain.Language) domain.Language {
	if lang == "" {
		return domain.LanguageEnglish
	}
	return lang
}
