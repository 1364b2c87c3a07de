package handlers

import (
	"io"
	"net/http"

	"voltvox/services/speech"
	"voltvox/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TranscribeHandler exposes the transcription service on its own endpoint.
type TranscribeHandler struct {
	Transcriber speech.Transcriber
}

func NewTranscribeHandler(stt speech.Transcriber) *TranscribeHandler {
	return &TranscribeHandler{Transcriber: stt}
}

// Transcribe converts an uploaded audio file to text.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
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

	transcription, err := h.Transcriber.Transcribe(c.Request.Context(), header.Filename, audio, header.Header.Get("Content-Type"))
	if err != nil {
		logger.Error("Transcription failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "transcription failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcription": transcription})
}
