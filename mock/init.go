package mock_generator

import (
	"github.com/gin-gonic/gin"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
)

const defaultFixture = "mock/story_tokens.json"

func Init(g *gin.Engine, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) {
	chunkReader := NewFileChunkReader(logger)
	runner := NewRunner(workerPool, chunkReader, defaultFixture, logger)
	mockController := NewMockStoryController(logger, workerPool, runner)

	mockController.RegisterRoutes(g)
}
