package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"voltvox/metrics"

	"github.com/google/uuid"
)

const defaultElevenLabsURL = "https://api.elevenlabs.io/v1/text-to-speech"

// ElevenLabsSynthesizer calls the ElevenLabs text-to-speech endpoint and
// stores the returned MP3 under the audio directory, which the router serves
// at /audio.
type ElevenLabsSynthesizer struct {
	APIKey   string
	VoiceID  string
	BaseURL  string
	AudioDir string
	Client   *http.Client
}

// NewElevenLabsSynthesizer builds the default ElevenLabs client.
func NewElevenLabsSynthesizer(apiKey, voiceID, audioDir string) *ElevenLabsSynthesizer {
	return &ElevenLabsSynthesizer{
		APIKey:   apiKey,
		VoiceID:  voiceID,
		BaseURL:  defaultElevenLabsURL,
		AudioDir: audioDir,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Synthesize implements Synthesizer.
func (e *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("ElevenLabs API key not set")
	}

	payload, err := json.Marshal(map[string]any{
		"text": text,
		"voice_settings": map[string]float64{
			"stability":        0.5,
			"similarity_boost": 0.5,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal tts request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/"+e.VoiceID, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build tts request: %w", err)
	}
	req.Header.Set("xi-api-key", e.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		metrics.SpeechCallsFailed.WithLabelValues("elevenlabs").Inc()
		return "", fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SpeechCallsFailed.WithLabelValues("elevenlabs").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("elevenlabs returned status %d: %s", resp.StatusCode, detail)
	}

	audioBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read tts response: %w", err)
	}

	filename := uuid.New().String() + ".mp3"
	if err := os.WriteFile(filepath.Join(e.AudioDir, filename), audioBytes, 0o644); err != nil {
		return "", fmt.Errorf("save tts audio: %w", err)
	}
	return "/audio/" + filename, nil
}
