package routes

import (
	"net/http"
	"time"

	"voltvox/config"
	"voltvox/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterConversationRoutes registers the dialogue endpoints.
func RegisterConversationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/converse", hb.ConverseHandler)
		api.POST("/converse/text", hb.ConverseTextHandler)
	}
	r.GET("/ws/conversation", hb.ConversationWS)
}

// RegisterAudioRoutes registers the transcription endpoint and the static
// directory the synthesizer writes replies into.
func RegisterAudioRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/audio")
	{
		api.POST("/transcribe", hb.TranscribeHandler)
	}
	r.Static("/audio", config.AppConfig.AudioDir)
}

// RegisterRecommendRoutes registers the direct recommendation endpoint.
func RegisterRecommendRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/recommend", hb.RecommendHandler)
}

// RegisterHealthRoute registers a liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterMetricsRoute exposes prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterConversationRoutes(r, hb)
	RegisterAudioRoutes(r, hb)
	RegisterRecommendRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
}
