package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"voltvox/models"
	"voltvox/services/agent"
	"voltvox/services/speech"
	"voltvox/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const MaxAudioFileSize = 5 * 1024 * 1024 // 5MB (conservative buffer)

// ConverseHandler wires the speech legs around the dialogue engine for the
// voice endpoint and exposes the bare text-turn endpoint used by the web
// client and the websocket transport.
type ConverseHandler struct {
	Agent       agent.ConversationService
	Transcriber speech.Transcriber
	Synthesizer speech.Synthesizer
}

func NewConverseHandler(agentSvc agent.ConversationService, stt speech.Transcriber, tts speech.Synthesizer) *ConverseHandler {
	return &ConverseHandler{Agent: agentSvc, Transcriber: stt, Synthesizer: tts}
}

// TextTurnRequest is one text dialogue turn: the utterance plus the state
// returned by the previous turn (absent on the first turn).
type TextTurnRequest struct {
	Utterance string                    `json:"utterance"`
	State     *models.ConversationState `json:"state"`
}

// Converse handles one voice turn: transcribe the uploaded audio, run the
// dialogue engine with the caller-supplied state, synthesize the reply.
func (h *ConverseHandler) Converse(c *gin.Context) {
	logger := utils.GetLogger()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file is required",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, MaxAudioFileSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to read audio file",
			"details": err.Error(),
		})
		return
	}

	// The state travels as a JSON form field; an unparseable value starts a
	// fresh conversation rather than failing the turn.
	var state *models.ConversationState
	if raw := c.PostForm("state"); raw != "" {
		var parsed models.ConversationState
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			state = &parsed
		} else {
			logger.Warn("Discarding unparseable conversation state", zap.Error(err))
		}
	}

	transcription, err := h.Transcriber.Transcribe(c.Request.Context(), header.Filename, audio, header.Header.Get("Content-Type"))
	if err != nil {
		logger.Error("Transcription failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "transcription failed",
			"details": err.Error(),
		})
		return
	}
	logger.Info("Transcription", zap.String("text", transcription))

	result, err := h.Agent.ProcessTurn(c.Request.Context(), transcription, state)
	if err != nil {
		logger.Error("Agent turn failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "agent error",
			"details": err.Error(),
		})
		return
	}

	audioURL, err := h.Synthesizer.Synthesize(c.Request.Context(), result.AgentResponse)
	if err != nil {
		logger.Error("Speech synthesis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "speech synthesis failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription":  transcription,
		"agent_response": result.AgentResponse,
		"audio_url":      audioURL,
		"state":          result.State,
		"done":           result.Done,
	})
}

// ConverseText handles one text turn without the speech legs.
func (h *ConverseHandler) ConverseText(c *gin.Context) {
	logger := utils.GetLogger()

	var req TextTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	result, err := h.Agent.ProcessTurn(c.Request.Context(), req.Utterance, req.State)
	if err != nil {
		logger.Error("Agent turn failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "agent error",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
