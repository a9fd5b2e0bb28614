package dto

import "github.com/eman0056/dream-to-story-app/domain"

type GenerateStoryRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language" binding:"omitempty,oneof=English Urdu"`
	Genre    string `json:"genre" binding:"omitempty,oneof=Fantasy Mystery Drama Comedy Surreal Horror Realistic"`
	Length   string `json:"length" binding:"omitempty,oneof=Short Medium Long"`
}

// ToDomain applies the form defaults: English, Fantasy, Medium.
func (r GenerateStoryRequest) ToDomain() domain.DreamRequest {
	language := domain.Language(r.Language)
	if language == "" {
		language = domain.LanguageEnglish
	}

	genre := domain.Genre(r.Genre)
	if genre == "" {
		genre = domain.GenreFantasy
	}

	length := domain.Length(r.Length)
	if length == "" {
		length = domain.LengthMedium
	}

	return domain.NewDreamRequest(r.Text, language, genre, length)
}
