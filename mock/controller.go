package mock_generator

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/domain"
	"github.com/eman0056/dream-to-story-app/infrastructure/gin_interface/dto"
	"github.com/eman0056/dream-to-story-app/middleware"
)

type MockStoryController interface {
	StreamStory(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type mockStoryController struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	runner     *Runner
}

func NewMockStoryController(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	runner *Runner) MockStoryController {
	return &mockStoryController{
		logger:     logger,
		workerPool: workerPool,
		runner:     runner,
	}
}

func (m *mockStoryController) StreamStory(c *gin.Context) {
	var generateStoryRequest dto.GenerateStoryRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&generateStoryRequest); err != nil {
		c.AbortWithStatusJSON(400, gin.H{"error": err.Error()})
		return
	}

	storyID := uuid.NewString()

	events, errCh := m.runner.Run(newCtx, storyID)

	err := m.workerPool.Submit(func() {
		var sendErrOnce sync.Once
		for err := range errCh {
			cancel()
			m.logger.Error(err, "error in mock story stream")
			sendErrOnce.Do(func() {
				c.SSEvent("error", "internal server error")
				c.Writer.Flush()
			})
		}
	})
	if err != nil {
		m.logger.Error(err, "failed to submit error watcher to worker pool")
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

	m.logger.InfoWithFields("mock story stream complete", map[string]interface{}{
		"story_id": storyID,
	})

	c.SSEvent("generation_complete", nil)
	c.Writer.Flush()
}

func (m *mockStoryController) RegisterRoutes(g *gin.Engine) {
	g.POST("/stories/mock", middleware.SSEMiddleware(m.workerPool), m.StreamStory)
}
