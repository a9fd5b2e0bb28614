package domain

type Language string

const (
	LanguageEnglish Language = "English"
	LanguageUrdu    Language = "Urdu"
)

type Genre string

const (
	GenreFantasy   Genre = "Fantasy"
	GenreMystery   Genre = "Mystery"
	GenreDrama     Genre = "Drama"
	GenreComedy    Genre = "Comedy"
	GenreSurreal   Genre = "Surreal"
	GenreHorror    Genre = "Horror"
	GenreRealistic Genre = "Realistic"
)

type Length string

const (
	LengthShort  Length = "Short"
	LengthMedium Length = "Medium"
	LengthLong   Length = "Long"
)

func NewDreamRequest(text string, language Language, genre Genre, length Length) DreamRequest {
	return DreamRequest{
		Text:     text,
		Language: language,
		Genre:    genre,
		Length:   length,
	}
}

type DreamRequest struct {
	Text     string
	Language Language
	Genre    Genre
	Length   Length
}

type StoryResult struct {
	Mood  string
	Story string
	Moral string
}

type EventType string

const (
	MoodEventType   EventType = "mood"
	TokenEventType  EventType = "token"
	ResultEventType EventType = "result"
)

type StoryEvent struct {
	StoryID string       `json:"story_id"`
	Type    EventType    `json:"type"`
	Content string       `json:"content,omitempty"`
	Result  *ResultEvent `json:"result,omitempty"`
}

type ResultEvent struct {
	StoryID     string `json:"story_id"`
	Mood        string `json:"mood"`
	Story       string `json:"story"`
	Moral       string `json:"moral"`
	ArchiveFile string `json:"archive_file,omitempty"`
}
