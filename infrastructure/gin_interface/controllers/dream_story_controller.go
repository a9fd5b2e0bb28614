package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eman0056/dream-to-story-app/application/ports/inbound"
	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/application/services"
	"github.com/eman0056/dream-to-story-app/domain"
	"github.com/eman0056/dream-to-story-app/infrastructure/gin_interface/dto"
	"github.com/eman0056/dream-to-story-app/metrics"
	"github.com/eman0056/dream-to-story-app/middleware"
)

type DreamStoryController interface {
	CreateStory(c *gin.Context)
	StreamStory(c *gin.Context)
	DownloadStory(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type dreamStoryController struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	teller     inbound.StoryTellerPort
	streamer   inbound.StoryStreamerPort
}

func NewDreamStoryController(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	teller inbound.StoryTellerPort, streamer inbound.StoryStreamerPort) DreamStoryController {
	return &dreamStoryController{
		logger:     logger,
		workerPool: workerPool,
		teller:     teller,
		streamer:   streamer,
	}
}

func (s *dreamStoryController) CreateStory(c *gin.Context) {
	var generateStoryRequest dto.GenerateStoryRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&generateStoryRequest); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storyID := uuid.NewString()
	started := time.Now()

	res, err := s.teller.Tell(newCtx, inbound.TellStoryParams{
		StoryID: storyID,
		Request: generateStoryRequest.ToDomain(),
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyDreamText) {
			metrics.StoryGenerationTotal.WithLabelValues("sync", "invalid").Inc()
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.ErrorWithFields(err, "failed to generate story", map[string]interface{}{
			"story_id": storyID,
		})
		metrics.StoryGenerationTotal.WithLabelValues("sync", "error").Inc()
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "story generation failed"})
		return
	}

	metrics.StoryGenerationTotal.WithLabelValues("sync", "ok").Inc()
	metrics.StoryGenerationDuration.WithLabelValues("sync").Observe(time.Since(started).Seconds())

	c.JSON(http.StatusOK, dto.GenerateStoryResponse{
		StoryID:     storyID,
		Mood:        res.Result.Mood,
		Story:       res.Result.Story,
		Moral:       res.Result.Moral,
		ArchiveFile: res.ArchiveFile,
	})
}

func (s *dreamStoryController) StreamStory(c *gin.Context) {
	var generateStoryRequest dto.GenerateStoryRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&generateStoryRequest); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storyID := uuid.NewString()
	started := time.Now()

	events, errCh := s.streamer.Stream(newCtx, inbound.StreamStoryParams{
		StoryID: storyID,
		Request: generateStoryRequest.ToDomain(),
	})

	err := s.workerPool.Submit(func() {
		var sendErrOnce sync.Once
		for err := range errCh {
			cancel()
			s.logger.ErrorWithFields(err, "error in story stream", map[string]interface{}{
				"story_id": storyID,
			})
			sendErrOnce.Do(func() {
				metrics.StoryGenerationTotal.WithLabelValues("stream", "error").Inc()
				c.SSEvent("error", "internal server error")
				c.Writer.Flush()
			})
		}
	})
	if err != nil {
		s.logger.Error(err, "failed to submit error watcher to worker pool")
		c.SSEvent("error", "internal server error")
		return
	}

	for event := range events {
		select {
		case <-newCtx.Done():
			return
		default:
		}

		if event.Type == domain.ResultEventType {
			c.SSEvent(string(event.Type), event.Result)
		} else {
			c.SSEvent(string(event.Type), event.Content)
		}
		c.Writer.Flush()
	}

	select {
	case <-newCtx.Done():
		return
	default:
	}

	s.logger.InfoWithFields("story stream complete", map[string]interface{}{
		"story_id": storyID,
	})
	metrics.StoryGenerationTotal.WithLabelValues("stream", "ok").Inc()
	metrics.StoryGenerationDuration.WithLabelValues("stream").Observe(time.Since(started).Seconds())

	c.SSEvent("generation_complete", nil)
	c.Writer.Flush()
}

func (s *dreamStoryController) DownloadStory(c *gin.Context) {
	var downloadStoryRequest dto.DownloadStoryRequest
	if err := c.ShouldBindJSON(&downloadStoryRequest); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rendered := downloadStoryRequest.ToArtifact().Render()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", domain.ArtifactFileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(rendered))
}

func (s *dreamStoryController) RegisterRoutes(g *gin.Engine) {
	g.POST("/stories", s.CreateStory)
	g.POST("/stories/stream", middleware.SSEMiddleware(s.workerPool), s.StreamStory)
	g.POST("/stories/download", s.DownloadStory)
}
