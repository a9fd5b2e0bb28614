package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
	"github.com/eman0056/dream-to-story-app/application/services"
	"github.com/eman0056/dream-to-story-app/config"
	"github.com/eman0056/dream-to-story-app/infrastructure/adapters"
	"github.com/eman0056/dream-to-story-app/infrastructure/gin_interface/controllers"
	"github.com/eman0056/dream-to-story-app/middleware"
	mockgenerator "github.com/eman0056/dream-to-story-app/mock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(cfg.Server.WorkerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	moodClassifier := adapters.NewMoodClassifier(contentFetcher, &cfg.Gpt, zeroLogger)

	scriptGenerator := adapters.NewStoryScriptGenerator(&cfg.Gpt, workerPool, zeroLogger)

	var archive outbound.StoryArchivePort
	if cfg.Archive.Enabled {
		archive = adapters.NewFileStoryArchive(cfg.Archive.Dir, zeroLogger)
	}

	promptBuilder := services.NewPromptBuilder()

	storyTeller := services.NewStoryTeller(zeroLogger, promptBuilder, scriptGenerator, moodClassifier, archive)

	storyStreamer := services.NewStoryStreamer(zeroLogger, workerPool, promptBuilder, scriptGenerator, moodClassifier, archive)

	dreamStoryController := controllers.NewDreamStoryController(zeroLogger, workerPool, storyTeller, storyStreamer)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	mockgenerator.Init(router, workerPool, zeroLogger)

	dreamStoryController.RegisterRoutes(router)

	err = router.Run(cfg.Server.ListenAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
