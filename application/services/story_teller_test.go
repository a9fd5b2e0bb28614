package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eman0056/dream-to-story-app/application/ports/inbound"
	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/domain"
	"github.com/eman0056/dream-to-story-app/infrastructure/adapters"
)

type fakeScriptGenerator struct {
	tokens  []string
	err     error
	calls   int
	lastReq outbound.GenerateStoryScriptRequest
}

func (f *fakeScriptGenerator) Generate(_ context.Context, req outbound.GenerateStoryScriptRequest) (<-chan string, <-chan error) {
	f.calls++
	f.lastReq = req

	out := make(chan string)
	errCh := make(chan error)

	go func() {
		defer close(out)
		defer close(errCh)
		if f.err != nil {
			errCh <- f.err
			return
		}
		for _, token := range f.tokens {
			out <- token
		}
	}()

	return out, errCh
}

type fakeMoodClassifier struct {
	mood  string
	err   error
	calls int
}

func (f *fakeMoodClassifier) Classify(context.Context, string) (string, error) {
	f.calls++
	return f.mood, f.err
}

type fakeStoryArchive struct {
	artifacts []domain.StoryArtifact
	err       error
}

func (f *fakeStoryArchive) Save(_ context.Context, artifact domain.StoryArtifact) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.artifacts = append(f.artifacts, artifact)
	return artifact.FileName(), nil
}

func TestStoryTeller_Tell(t *testing.T) {
	logger := adapters.NewZerologWrapper()

	generator := &fakeScriptGenerator{tokens: []string{
		"Mood: Joyful\n",
		"Story: A tale of flight...\n",
		"Moral: Freedom is within reach.",
	}}
	classifier := &fakeMoodClassifier{mood: "Neutral"}
	archive := &fakeStoryArchive{}

	teller := NewStoryTeller(logger, NewPromptBuilder(), generator, classifier, archive)

	res, err := teller.Tell(context.Background(), inbound.TellStoryParams{
		StoryID: "story-1",
		Request: domain.NewDreamRequest("I was flying over mountains", domain.LanguageEnglish, domain.GenreFantasy, domain.LengthShort),
	})
	if err != nil {
		t.Fatal("Failed to tell story:", err)
	}

	if res.Result.Mood != "Joyful" {
		t.Fatalf("Expected mood %q, got %q", "Joyful", res.Result.Mood)
	}
	if res.Result.Story != "A tale of flight..." {
		t.Fatalf("Unexpected story: %q", res.Result.Story)
	}
	if res.Result.Moral != "Freedom is within reach." {
		t.Fatalf("Unexpected moral: %q", res.Result.Moral)
	}

	if !strings.Contains(generator.lastReq.UserPrompt, "flying over mountains") {
		t.Fatal("Expected the prompt to embed the dream text, got:", generator.lastReq.UserPrompt)
	}
	if !strings.Contains(generator.lastReq.UserPrompt, "Fantasy") || !strings.Contains(generator.lastReq.UserPrompt, "Short") {
		t.Fatal("Expected the prompt to embed genre and length, got:", generator.lastReq.UserPrompt)
	}

	if classifier.calls != 0 {
		t.Fatal("Expected no mood classification call when the response carries a mood label")
	}

	if len(archive.artifacts) != 1 {
		t.Fatalf("Expected one archived artifact, got %d", len(archive.artifacts))
	}
	if res.ArchiveFile == "" {
		t.Fatal("Expected an archive file name")
	}
}

func TestStoryTeller_Tell_EmptyDreamText(t *testing.T) {
	logger := adapters.NewZerologWrapper()

	generator := &fakeScriptGenerator{tokens: []string{"should not be used"}}

	teller := NewStoryTeller(logger, NewPromptBuilder(), generator, &fakeMoodClassifier{}, nil)

	_, err := teller.Tell(context.Background(), inbound.TellStoryParams{
		StoryID: "story-2",
		Request: domain.NewDreamRequest("   ", domain.LanguageEnglish, domain.GenreFantasy, domain.LengthShort),
	})
	if !errors.Is(err, ErrEmptyDreamText) {
		t.Fatal("Expected ErrEmptyDreamText, got:", err)
	}

	if generator.calls != 0 {
		t.Fatal("Expected no generator call for empty dream text")
	}
}

func TestStoryTeller_Tell_MoodFallback(t *testing.T) {
	logger := adapters.NewZerologWrapper()

	generator := &fakeScriptGenerator{tokens: []string{"A plain story with no labels at all."}}
	classifier := &fakeMoodClassifier{mood: "Surreal"}

	teller := NewStoryTeller(logger, NewPromptBuilder(), generator, classifier, nil)

	res, err := teller.Tell(context.Background(), inbound.TellStoryParams{
		StoryID: "story-3",
		Request: domain.NewDreamRequest("an endless city", domain.LanguageEnglish, domain.GenreSurreal, domain.LengthMedium),
	})
	if err != nil {
		t.Fatal("Failed to tell story:", err)
	}

	if res.Result.Story != "A plain story with no labels at all." {
		t.Fatalf("Expected the raw response as the story, got %q", res.Result.Story)
	}
	if classifier.calls != 1 {
		t.Fatalf("Expected one mood classification call, got %d", classifier.calls)
	}
	if res.Result.Mood != "Surreal" {
		t.Fatalf("Expected backfilled mood %q, got %q", "Surreal", res.Result.Mood)
	}
}

func TestStoryTeller_Tell_GeneratorError(t *testing.T) {
	logger := adapters.NewZerologWrapper()

	generator := &fakeScriptGenerator{err: errors.New("upstream unavailable")}

	teller := NewStoryTeller(logger, NewPromptBuilder(), generator, &fakeMoodClassifier{}, nil)

	_, err := teller.Tell(context.Background(), inbound.TellStoryParams{
		StoryID: "story-4",
		Request: domain.NewDreamRequest("a storm of letters", domain.LanguageEnglish, domain.GenreMystery, domain.LengthLong),
	})
	if err == nil {
		t.Fatal("Expected an error from the generator")
	}
}

func TestStoryTeller_Tell_ArchiveFailureIsNotFatal(t *testing.T) {
	logger := adapters.NewZerologWrapper()

	generator := &fakeScriptGenerator{tokens: []string{"Story: fine.\nMoral: ok.\nMood: Calm"}}
	archive := &fakeStoryArchive{err: errors.New("disk full")}

	teller := NewStoryTeller(logger, NewPromptBuilder(), generator, &fakeMoodClassifier{}, archive)

	res, err := teller.Tell(context.Background(), inbound.TellStoryParams{
		StoryID: "story-5",
		Request: domain.NewDreamRequest("a talking river", domain.LanguageEnglish, domain.GenreComedy, domain.LengthShort),
	})
	if err != nil {
		t.Fatal("Expected archive failures to be non-fatal, got:", err)
	}
	if res.ArchiveFile != "" {
		t.Fatal("Expected no archive file name on archive failure")
	}
}
