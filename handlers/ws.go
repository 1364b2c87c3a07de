package handlers

import (
	"net/http"

	"voltvox/services/agent"
	"voltvox/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The browser client runs on a separate dev origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ConversationWSHandler runs text dialogue turns over a websocket. Each
// inbound frame is one TextTurnRequest; each outbound frame is the matching
// TurnResult. The client owns the state between frames, same as over HTTP.
type ConversationWSHandler struct {
	Agent agent.ConversationService
}

func NewConversationWSHandler(agentSvc agent.ConversationService) *ConversationWSHandler {
	return &ConversationWSHandler{Agent: agentSvc}
}

func (h *ConversationWSHandler) Serve(c *gin.Context) {
	logger := utils.GetLogger()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var req TextTurnRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Websocket read failed", zap.Error(err))
			}
			return
		}

		result, err := h.Agent.ProcessTurn(c.Request.Context(), req.Utterance, req.State)
		if err != nil {
			logger.Error("Agent turn failed", zap.Error(err))
			if writeErr := conn.WriteJSON(gin.H{"error": "agent error", "details": err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(result); err != nil {
			logger.Warn("Websocket write failed", zap.Error(err))
			return
		}
	}
}
