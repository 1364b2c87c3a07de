// File: voltvox/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voltvox/config"
	"voltvox/handlers"
	"voltvox/middleware"
	"voltvox/routes"
	"voltvox/services/agent"
	"voltvox/services/offers"
	"voltvox/services/speech"
	"voltvox/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if err := os.MkdirAll(config.AppConfig.AudioDir, 0o755); err != nil {
		logger.Sugar().Fatalf("main: failed to create audio directory: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	offerSource := offers.NewVerivoxOfferSource(
		config.AppConfig.VerivoxURL,
		time.Duration(config.AppConfig.ScrapeTimeoutSec)*time.Second,
		config.AppConfig.OfferCacheMaxEntries,
		time.Duration(config.AppConfig.OfferCacheTTLMin)*time.Minute,
	)

	agentService := &agent.DefaultConversationService{
		Offers: offerSource,
	}

	var transcriber speech.Transcriber
	switch config.AppConfig.STTProvider {
	case "google":
		transcriber = &speech.GoogleTranscriber{
			CredentialsFile: config.AppConfig.GoogleServiceAccountFile,
			Language:        config.AppConfig.SpeechLanguage,
		}
	default:
		transcriber = speech.NewWhisperTranscriber(config.AppConfig.OpenAIAPIKey)
	}

	synthesizer := speech.NewElevenLabsSynthesizer(
		config.AppConfig.ElevenLabsAPIKey,
		config.AppConfig.ElevenLabsVoiceID,
		config.AppConfig.AudioDir,
	)

	converseHandler := handlers.NewConverseHandler(agentService, transcriber, synthesizer)
	transcribeHandler := handlers.NewTranscribeHandler(transcriber)
	recommendHandler := handlers.NewRecommendHandler(offerSource)
	wsHandler := handlers.NewConversationWSHandler(agentService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ConverseHandler:     converseHandler.Converse,
		ConverseTextHandler: converseHandler.ConverseText,
		ConversationWS:      wsHandler.Serve,
		TranscribeHandler:   transcribeHandler.Transcribe,
		RecommendHandler:    recommendHandler.Recommend,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
