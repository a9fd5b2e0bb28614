package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"

	"github.com/eman0056/dream-to-story-app/application/ports/inbound"
	"github.com/eman0056/dream-to-story-app/application/services"
	"github.com/eman0056/dream-to-story-app/domain"
	"github.com/eman0056/dream-to-story-app/infrastructure/adapters"
)

type fakeStoryTeller struct {
	result *inbound.TellStoryResult
	err    error
	last   inbound.TellStoryParams
}

func (f *fakeStoryTeller) Tell(_ context.Context, params inbound.TellStoryParams) (*inbound.TellStoryResult, error) {
	f.last = params
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStoryStreamer struct {
	events []domain.StoryEvent
}

func (f *fakeStoryStreamer) Stream(_ context.Context, params inbound.StreamStoryParams) (<-chan domain.StoryEvent, <-chan error) {
	out := make(chan domain.StoryEvent)
	errCh := make(chan error)

	go func() {
		defer close(out)
		defer close(errCh)
		for _, event := range f.events {
			event.StoryID = params.StoryID
			out <- event
		}
	}()

	return out, errCh
}

func newTestRouter(t *testing.T, teller inbound.StoryTellerPort, streamer inbound.StoryStreamerPort) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(workerPool.Release)

	router := gin.New()
	controller := NewDreamStoryController(adapters.NewZerologWrapper(), workerPool, teller, streamer)
	controller.RegisterRoutes(router)

	return router
}

func TestDreamStoryController_CreateStory(t *testing.T) {
	teller := &fakeStoryTeller{result: &inbound.TellStoryResult{
		Result: domain.StoryResult{
			Mood:  "Joyful",
			Story: "A tale of flight...",
			Moral: "Freedom is within reach.",
		},
		ArchiveFile: "dream_12345678.txt",
	}}

	router := newTestRouter(t, teller, &fakeStoryStreamer{})

	body := `{"text":"I was flying over mountains","language":"English","genre":"Fantasy","length":"Short"}`
	req := httptest.NewRequest(http.MethodPost, "/stories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	payload := recorder.Body.String()
	for _, want := range []string{`"mood":"Joyful"`, `"story":"A tale of flight..."`, `"moral":"Freedom is within reach."`, `"archive_file":"dream_12345678.txt"`} {
		if !strings.Contains(payload, want) {
			t.Fatalf("Expected response to contain %s, got: %s", want, payload)
		}
	}

	if teller.last.Request.Text != "I was flying over mountains" {
		t.Fatalf("Unexpected dream text passed to the teller: %q", teller.last.Request.Text)
	}
	if teller.last.Request.Genre != domain.GenreFantasy || teller.last.Request.Length != domain.LengthShort {
		t.Fatal("Expected genre and length to be passed through")
	}
}

func TestDreamStoryController_CreateStory_MissingText(t *testing.T) {
	router := newTestRouter(t, &fakeStoryTeller{}, &fakeStoryStreamer{})

	req := httptest.NewRequest(http.MethodPost, "/stories", strings.NewReader(`{"genre":"Fantasy"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", recorder.Code)
	}
}

func TestDreamStoryController_CreateStory_WhitespaceText(t *testing.T) {
	teller := &fakeStoryTeller{err: services.ErrEmptyDreamText}
	router := newTestRouter(t, teller, &fakeStoryStreamer{})

	req := httptest.NewRequest(http.MethodPost, "/stories", strings.NewReader(`{"text":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", recorder.Code)
	}
}

func TestDreamStoryController_CreateStory_UpstreamFailure(t *testing.T) {
	teller := &fakeStoryTeller{err: errors.New("api unavailable")}
	router := newTestRouter(t, teller, &fakeStoryStreamer{})

	req := httptest.NewRequest(http.MethodPost, "/stories", strings.NewReader(`{"text":"a dream"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", recorder.Code)
	}
}

func TestDreamStoryController_StreamStory(t *testing.T) {
	streamer := &fakeStoryStreamer{events: []domain.StoryEvent{
		{Type: domain.MoodEventType, Content: "Joyful"},
		{Type: domain.TokenEventType, Content: "A tale "},
		{Type: domain.TokenEventType, Content: "of flight."},
		{Type: domain.ResultEventType, Result: &domain.ResultEvent{
			Mood:  "Joyful",
			Story: "A tale of flight.",
			Moral: "Freedom is within reach.",
		}},
	}}

	router := newTestRouter(t, &fakeStoryTeller{}, streamer)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/stories/stream", strings.NewReader(`{"text":"a dream of flight"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)
	cancel()

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("Expected an event-stream content type, got %q", got)
	}

	payload := recorder.Body.String()
	for _, want := range []string{"event:mood", "event:token", "event:result", "event:generation_complete"} {
		if !strings.Contains(payload, want) {
			t.Fatalf("Expected the stream to contain %q, got:\n%s", want, payload)
		}
	}
}

func TestDreamStoryController_DownloadStory(t *testing.T) {
	router := newTestRouter(t, &fakeStoryTeller{}, &fakeStoryStreamer{})

	body := `{"text":"I was flying over mountains","mood":"Joyful","story":"A tale of flight...","moral":"Freedom is within reach."}`
	req := httptest.NewRequest(http.MethodPost, "/stories/download", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Content-Disposition"); !strings.Contains(got, "dream_story.txt") {
		t.Fatalf("Expected an attachment disposition, got %q", got)
	}

	payload := recorder.Body.String()
	for _, want := range []string{"Dream:\nI was flying over mountains", "Mood: Joyful", "Story:\nA tale of flight...", "Moral:\nFreedom is within reach."} {
		if !strings.Contains(payload, want) {
			t.Fatalf("Expected the artifact to contain %q, got:\n%s", want, payload)
		}
	}
}
