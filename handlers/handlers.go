package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every endpoint handler for route registration.
type HandlerBundle struct {
	// Conversation endpoints.
	ConverseHandler     gin.HandlerFunc
	ConverseTextHandler gin.HandlerFunc
	ConversationWS      gin.HandlerFunc

	// Audio endpoints.
	TranscribeHandler gin.HandlerFunc

	// Recommendation endpoints.
	RecommendHandler gin.HandlerFunc
}
